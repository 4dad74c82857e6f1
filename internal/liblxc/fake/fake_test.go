package fake_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadrifoglio/lxc-go/internal/liblxc/fake"
)

func TestFakeSizedReadProtocol(t *testing.T) {
	caller, err := fake.NewCaller(fake.CallerConfig{})
	require.NoError(t, err)

	h := caller.Acquire("calice", "/var/lib/lxc")
	require.NotNil(t, h)
	defer caller.Release(h)

	require.True(t, caller.CreateContainer(h, "busybox", 0, nil))
	require.True(t, caller.SetConfigItem(h, "lxc.utsname", "tamer"))

	t.Run("Probe returns the required byte count", func(t *testing.T) {
		n := caller.GetConfigItem(h, "lxc.utsname", nil)
		assert.Equal(t, len("tamer"), n)
	})

	t.Run("Fill writes the value plus a trailing terminator", func(t *testing.T) {
		buf := make([]byte, len("tamer")+1)
		n := caller.GetConfigItem(h, "lxc.utsname", buf)
		require.Equal(t, len("tamer"), n)
		assert.Equal(t, []byte("tamer\x00"), buf)
	})

	t.Run("Undersized buffer is a failure", func(t *testing.T) {
		buf := make([]byte, 2)
		n := caller.GetConfigItem(h, "lxc.utsname", buf)
		assert.Negative(t, n)
	})

	t.Run("Unknown key is a failure", func(t *testing.T) {
		n := caller.GetConfigItem(h, "lxc.nope", nil)
		assert.Negative(t, n)
	})
}

func TestFakeReleaseAccounting(t *testing.T) {
	caller, err := fake.NewCaller(fake.CallerConfig{})
	require.NoError(t, err)

	h := caller.Acquire("calice", "/var/lib/lxc")
	require.NotNil(t, h)
	assert.Equal(t, 1, caller.Stats().LiveHandles)

	caller.Release(h)
	assert.Equal(t, 0, caller.Stats().LiveHandles)
	assert.Equal(t, 0, caller.Stats().DoubleHandleReleases)

	// A second release is counted, not crashed on.
	caller.Release(h)
	assert.Equal(t, 1, caller.Stats().DoubleHandleReleases)
}

func TestFakeSnapshotOwnership(t *testing.T) {
	caller, err := fake.NewCaller(fake.CallerConfig{})
	require.NoError(t, err)

	h := caller.Acquire("calice", "/var/lib/lxc")
	defer caller.Release(h)
	require.True(t, caller.CreateContainer(h, "busybox", 0, nil))

	require.Equal(t, 0, caller.Snapshot(h, ""))
	require.Equal(t, 1, caller.Snapshot(h, ""))

	count, arr := caller.SnapshotList(h)
	require.Equal(t, 2, count)
	require.NotNil(t, arr)

	assert.Equal(t, 2, caller.Stats().LiveSnapshotPayloads)
	assert.Equal(t, 1, caller.Stats().LiveSnapshotSpines)

	// Slot payloads and the spine are owned separately.
	assert.Equal(t, []byte("snap0"), arr.At(0).Name())
	arr.At(0).Release()
	arr.At(1).Release()
	assert.Equal(t, 0, caller.Stats().LiveSnapshotPayloads)
	assert.Equal(t, 1, caller.Stats().LiveSnapshotSpines)

	arr.Free()
	assert.Equal(t, 0, caller.Stats().LiveSnapshotSpines)

	// Double releases of payloads or spine are counted.
	arr.At(1).Release()
	arr.Free()
	assert.Equal(t, 2, caller.Stats().DoubleSnapshotReleases)
}
