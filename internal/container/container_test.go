package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadrifoglio/lxc-go/internal/container"
	"github.com/quadrifoglio/lxc-go/internal/liblxc/fake"
	"github.com/quadrifoglio/lxc-go/internal/model"
)

func newFakeStore(t *testing.T) (*container.Store, *fake.Caller) {
	t.Helper()

	caller, err := fake.NewCaller(fake.CallerConfig{})
	require.NoError(t, err)

	store, err := container.NewStore(container.StoreConfig{Caller: caller})
	require.NoError(t, err)

	return store, caller
}

func mustCreate(t *testing.T, store *container.Store, name string) *container.Container {
	t.Helper()

	ct, err := store.Create(name, *model.NewTemplate("busybox"))
	require.NoError(t, err)

	return ct
}

func TestStoreLifecycle(t *testing.T) {
	t.Run("Listing an empty store returns an empty collection", func(t *testing.T) {
		store, _ := newFakeStore(t)

		containers, err := store.List()
		require.NoError(t, err)
		assert.Empty(t, containers)
	})

	t.Run("A created container exists immediately", func(t *testing.T) {
		store, _ := newFakeStore(t)

		ct := mustCreate(t, store, "calice")
		defer ct.Release()

		exists, err := store.Exists("calice")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Creating the same name twice fails without touching the first container", func(t *testing.T) {
		store, _ := newFakeStore(t)

		ct := mustCreate(t, store, "calice")
		defer ct.Release()
		require.NoError(t, ct.SetConfigItem("lxc.utsname", "tamer"))

		_, err := store.Create("calice", *model.NewTemplate("busybox"))
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrAlreadyExists)

		// First container state is untouched.
		value, err := ct.ConfigItem("lxc.utsname")
		require.NoError(t, err)
		assert.Equal(t, "tamer", value)
	})

	t.Run("Getting an undefined name is not found", func(t *testing.T) {
		store, _ := newFakeStore(t)

		_, err := store.Get("ghost")
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("Created containers show up in the listing", func(t *testing.T) {
		store, _ := newFakeStore(t)

		ct1 := mustCreate(t, store, "alpha")
		defer ct1.Release()
		ct2 := mustCreate(t, store, "beta")
		defer ct2.Release()

		containers, err := store.List()
		require.NoError(t, err)
		defer func() {
			for _, ct := range containers {
				ct.Release()
			}
		}()

		names := make([]string, 0, len(containers))
		for _, ct := range containers {
			names = append(names, ct.Name())
		}
		assert.Equal(t, []string{"alpha", "beta"}, names)
	})
}

func TestContainerRuntime(t *testing.T) {
	t.Run("Start, freeze, unfreeze and stop drive the native state", func(t *testing.T) {
		store, _ := newFakeStore(t)
		ct := mustCreate(t, store, "calice")
		defer ct.Release()

		assert.Equal(t, model.StateStopped, ct.State())
		assert.False(t, ct.Running())

		require.NoError(t, ct.Start())
		assert.Equal(t, model.StateRunning, ct.State())
		assert.True(t, ct.Running())

		require.NoError(t, ct.Freeze())
		assert.Equal(t, model.StateFrozen, ct.State())

		require.NoError(t, ct.Unfreeze())
		require.NoError(t, ct.Stop())
		assert.False(t, ct.Running())
	})

	t.Run("Freezing a stopped container fails with an unknown error", func(t *testing.T) {
		store, _ := newFakeStore(t)
		ct := mustCreate(t, store, "calice")
		defer ct.Release()

		err := ct.Freeze()
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrUnknown)
	})

	t.Run("Shutdown stops a running container", func(t *testing.T) {
		store, _ := newFakeStore(t)
		ct := mustCreate(t, store, "calice")
		defer ct.Release()

		require.NoError(t, ct.Start())
		require.NoError(t, ct.Shutdown(0))
		assert.Equal(t, model.StateStopped, ct.State())
	})

	t.Run("Checkpoint and restore round trip", func(t *testing.T) {
		store, _ := newFakeStore(t)
		ct := mustCreate(t, store, "calice")
		defer ct.Release()

		require.NoError(t, ct.Start())
		require.NoError(t, ct.Checkpoint(container.CheckpointOptions{Directory: "/tmp/ckpt", Stop: true}))
		assert.Equal(t, model.StateStopped, ct.State())

		require.NoError(t, ct.Restore(container.RestoreOptions{Directory: "/tmp/ckpt"}))
		assert.True(t, ct.Running())
	})

	t.Run("Checkpoint without a directory never reaches the boundary", func(t *testing.T) {
		store, _ := newFakeStore(t)
		ct := mustCreate(t, store, "calice")
		defer ct.Release()

		err := ct.Checkpoint(container.CheckpointOptions{})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotValid)
	})
}

func TestContainerDestroy(t *testing.T) {
	t.Run("Destroy consumes the wrapper", func(t *testing.T) {
		store, caller := newFakeStore(t)
		ct := mustCreate(t, store, "calice")

		require.NoError(t, ct.Destroy())

		exists, err := store.Exists("calice")
		require.NoError(t, err)
		assert.False(t, exists)

		// Consumed wrappers reject further use.
		err = ct.Start()
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotValid)

		stats := caller.Stats()
		assert.Equal(t, 0, stats.LiveHandles)
		assert.Equal(t, 0, stats.DoubleHandleReleases)
	})

	t.Run("Destroying a running container fails and still consumes the wrapper", func(t *testing.T) {
		store, caller := newFakeStore(t)
		ct := mustCreate(t, store, "calice")

		require.NoError(t, ct.Start())
		err := ct.Destroy()
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrUnknown)

		stats := caller.Stats()
		assert.Equal(t, 0, stats.LiveHandles)
	})

	t.Run("Destroy with snapshots removes both", func(t *testing.T) {
		store, _ := newFakeStore(t)
		ct := mustCreate(t, store, "calice")

		_, err := ct.Snapshot("")
		require.NoError(t, err)

		require.NoError(t, ct.DestroyWithSnapshots())

		exists, err := store.Exists("calice")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Release is observable exactly once across repeated cycles", func(t *testing.T) {
		store, caller := newFakeStore(t)

		for i := 0; i < 300; i++ {
			ct := mustCreate(t, store, "cycle")

			// Releasing twice on top of a destroy must not reach the
			// native side more than once.
			require.NoError(t, ct.Destroy())
			ct.Release()
			ct.Release()
		}

		stats := caller.Stats()
		assert.Equal(t, 0, stats.LiveHandles)
		assert.Equal(t, 0, stats.DoubleHandleReleases)
	})
}
