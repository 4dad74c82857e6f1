package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadrifoglio/lxc-go/internal/model"
)

func TestContainerConfig(t *testing.T) {
	t.Run("Set then get round trips exactly", func(t *testing.T) {
		store, _ := newFakeStore(t)
		ct := mustCreate(t, store, "calice")
		defer ct.Release()

		require.NoError(t, ct.SetConfigItem("lxc.utsname", "tamer"))

		value, err := ct.ConfigItem("lxc.utsname")
		require.NoError(t, err)
		assert.Equal(t, "tamer", value)
	})

	t.Run("A fresh container's hostname is its own name", func(t *testing.T) {
		store, _ := newFakeStore(t)
		ct := mustCreate(t, store, "calice")
		defer ct.Release()

		value, err := ct.ConfigItem("lxc.utsname")
		require.NoError(t, err)
		assert.Equal(t, "calice", value)
	})

	t.Run("A defined but empty value is not an error", func(t *testing.T) {
		store, _ := newFakeStore(t)
		ct := mustCreate(t, store, "calice")
		defer ct.Release()

		require.NoError(t, ct.SetConfigItem("lxc.cap.drop", ""))

		value, err := ct.ConfigItem("lxc.cap.drop")
		require.NoError(t, err)
		assert.Equal(t, "", value)
	})

	t.Run("An unknown key is an unknown error", func(t *testing.T) {
		store, _ := newFakeStore(t)
		ct := mustCreate(t, store, "calice")
		defer ct.Release()

		_, err := ct.ConfigItem("lxc.nope")
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrUnknown)
	})

	t.Run("Cleared items are gone", func(t *testing.T) {
		store, _ := newFakeStore(t)
		ct := mustCreate(t, store, "calice")
		defer ct.Release()

		require.NoError(t, ct.SetConfigItem("lxc.tty", "4"))
		require.NoError(t, ct.ClearConfigItem("lxc.tty"))

		_, err := ct.ConfigItem("lxc.tty")
		require.Error(t, err)
	})

	t.Run("Keys lists the config keys in order", func(t *testing.T) {
		store, _ := newFakeStore(t)
		ct := mustCreate(t, store, "calice")
		defer ct.Release()

		keys, err := ct.Keys("")
		require.NoError(t, err)
		assert.Equal(t, []string{"lxc.utsname", "lxc.rootfs"}, keys)
	})

	t.Run("Clearing the whole config empties the key list", func(t *testing.T) {
		store, _ := newFakeStore(t)
		ct := mustCreate(t, store, "calice")
		defer ct.Release()

		require.NoError(t, ct.ClearConfig())

		keys, err := ct.Keys("")
		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("Save config goes to the container's own file by default", func(t *testing.T) {
		store, caller := newFakeStore(t)
		ct := mustCreate(t, store, "calice")
		defer ct.Release()

		require.NoError(t, ct.SaveConfig(""))
		assert.Equal(t, "/var/lib/lxc/calice/config", caller.SavedConfigPath("/var/lib/lxc", "calice"))
	})

	t.Run("Config file name is derived from the store path", func(t *testing.T) {
		store, _ := newFakeStore(t)
		ct := mustCreate(t, store, "calice")
		defer ct.Release()

		path, err := ct.ConfigFileName()
		require.NoError(t, err)
		assert.Equal(t, "/var/lib/lxc/calice/config", path)
	})
}
