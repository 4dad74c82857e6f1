package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadrifoglio/lxc-go/internal/container"
	"github.com/quadrifoglio/lxc-go/internal/liblxc"
	"github.com/quadrifoglio/lxc-go/internal/liblxc/liblxcmock"
	"github.com/quadrifoglio/lxc-go/internal/model"
)

func TestContainerSnapshots(t *testing.T) {
	t.Run("The first snapshot gets index zero and shows up as snap0", func(t *testing.T) {
		store, _ := newFakeStore(t)
		ct := mustCreate(t, store, "calice")
		defer ct.Release()

		idx, err := ct.Snapshot("")
		require.NoError(t, err)
		assert.Equal(t, 0, idx)

		snapshots, err := ct.Snapshots()
		require.NoError(t, err)
		require.Len(t, snapshots, 1)
		assert.Equal(t, "snap0", snapshots[0].Name)
		assert.NotEmpty(t, snapshots[0].Timestamp)
	})

	t.Run("Snapshot indexes are sequential", func(t *testing.T) {
		store, _ := newFakeStore(t)
		ct := mustCreate(t, store, "calice")
		defer ct.Release()

		for want := 0; want < 3; want++ {
			idx, err := ct.Snapshot("")
			require.NoError(t, err)
			assert.Equal(t, want, idx)
		}
	})

	t.Run("Listing with no snapshots is an empty collection", func(t *testing.T) {
		store, _ := newFakeStore(t)
		ct := mustCreate(t, store, "calice")
		defer ct.Release()

		snapshots, err := ct.Snapshots()
		require.NoError(t, err)
		assert.Empty(t, snapshots)
	})

	t.Run("Listing releases every record payload and the array spine once", func(t *testing.T) {
		store, caller := newFakeStore(t)
		ct := mustCreate(t, store, "calice")
		defer ct.Release()

		for i := 0; i < 3; i++ {
			_, err := ct.Snapshot("")
			require.NoError(t, err)
		}

		_, err := ct.Snapshots()
		require.NoError(t, err)

		stats := caller.Stats()
		assert.Equal(t, 0, stats.LiveSnapshotPayloads)
		assert.Equal(t, 0, stats.LiveSnapshotSpines)
		assert.Equal(t, 0, stats.DoubleSnapshotReleases)
	})

	t.Run("Restoring a snapshot into the same name leaves it defined", func(t *testing.T) {
		store, _ := newFakeStore(t)
		ct := mustCreate(t, store, "calice")
		defer ct.Release()

		_, err := ct.Snapshot("")
		require.NoError(t, err)

		require.NoError(t, ct.RestoreSnapshot("snap0", "calice"))

		exists, err := store.Exists("calice")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Restoring a snapshot into another name defines it", func(t *testing.T) {
		store, _ := newFakeStore(t)
		ct := mustCreate(t, store, "calice")
		defer ct.Release()

		_, err := ct.Snapshot("")
		require.NoError(t, err)

		require.NoError(t, ct.RestoreSnapshot("snap0", "copy"))

		exists, err := store.Exists("copy")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Restoring an unknown snapshot is an unknown error", func(t *testing.T) {
		store, _ := newFakeStore(t)
		ct := mustCreate(t, store, "calice")
		defer ct.Release()

		err := ct.RestoreSnapshot("snap9", "calice")
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrUnknown)
	})

	t.Run("Destroying snapshots removes them from the listing", func(t *testing.T) {
		store, _ := newFakeStore(t)
		ct := mustCreate(t, store, "calice")
		defer ct.Release()

		for i := 0; i < 2; i++ {
			_, err := ct.Snapshot("")
			require.NoError(t, err)
		}

		require.NoError(t, ct.DestroySnapshot("snap0"))

		snapshots, err := ct.Snapshots()
		require.NoError(t, err)
		require.Len(t, snapshots, 1)
		assert.Equal(t, "snap1", snapshots[0].Name)

		require.NoError(t, ct.DestroyAllSnapshots())

		snapshots, err = ct.Snapshots()
		require.NoError(t, err)
		assert.Empty(t, snapshots)
	})
}

// stubSlot and stubArray fabricate boundary-owned snapshot arrays with
// release accounting, to exercise decode failures.
type stubSlot struct {
	name, timestamp, commentPath []byte
	releases                     int
}

func (s *stubSlot) Name() []byte        { return s.name }
func (s *stubSlot) Timestamp() []byte   { return s.timestamp }
func (s *stubSlot) CommentPath() []byte { return s.commentPath }
func (s *stubSlot) Release()            { s.releases++ }

type stubArray struct {
	slots []*stubSlot
	frees int
}

func (a *stubArray) At(i int) liblxc.SnapshotSlot { return a.slots[i] }
func (a *stubArray) Free()                        { a.frees++ }

func TestContainerSnapshotsDecodeFailure(t *testing.T) {
	h := &testHandle{id: 1}
	arr := &stubArray{slots: []*stubSlot{
		{name: []byte("snap0"), timestamp: []byte("2024:05:01 10:00:00")},
		{name: []byte{0xff, 0xfe}, timestamp: []byte("2024:05:01 10:05:00")},
	}}

	m := &liblxcmock.MockCaller{}
	m.On("Acquire", "calice", "/var/lib/lxc").Once().Return(h)
	m.On("IsDefined", h).Once().Return(true)
	m.On("Name", h).Return("calice")
	m.On("SnapshotList", h).Once().Return(2, arr)
	m.On("Release", h).Once()

	store, err := container.NewStore(container.StoreConfig{Caller: m})
	require.NoError(t, err)

	ct, err := store.Get("calice")
	require.NoError(t, err)

	_, err = ct.Snapshots()
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnknown)

	ct.Release()

	// Even on a decode failure every payload is released once and the
	// spine is freed once.
	for _, slot := range arr.slots {
		assert.Equal(t, 1, slot.releases)
	}
	assert.Equal(t, 1, arr.frees)
	m.AssertExpectations(t)
}
