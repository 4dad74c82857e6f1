package liblxcmock

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/quadrifoglio/lxc-go/internal/liblxc"
)

// MockCaller is a mock implementation of the liblxc.Caller boundary.
type MockCaller struct {
	mock.Mock
}

var _ liblxc.Caller = (*MockCaller)(nil)

func (m *MockCaller) Version() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockCaller) Acquire(name, lxcpath string) liblxc.Handle {
	args := m.Called(name, lxcpath)
	h, _ := args.Get(0).(liblxc.Handle)
	return h
}

func (m *MockCaller) Release(h liblxc.Handle) {
	m.Called(h)
}

func (m *MockCaller) Name(h liblxc.Handle) string {
	args := m.Called(h)
	return args.String(0)
}

func (m *MockCaller) IsDefined(h liblxc.Handle) bool {
	args := m.Called(h)
	return args.Bool(0)
}

func (m *MockCaller) ListDefined(lxcpath string) (int, []liblxc.Handle) {
	args := m.Called(lxcpath)
	handles, _ := args.Get(1).([]liblxc.Handle)
	return args.Int(0), handles
}

func (m *MockCaller) CreateContainer(h liblxc.Handle, template string, flags int, cargs []string) bool {
	args := m.Called(h, template, flags, cargs)
	return args.Bool(0)
}

func (m *MockCaller) Start(h liblxc.Handle) bool {
	args := m.Called(h)
	return args.Bool(0)
}

func (m *MockCaller) Stop(h liblxc.Handle) bool {
	args := m.Called(h)
	return args.Bool(0)
}

func (m *MockCaller) Shutdown(h liblxc.Handle, timeout time.Duration) bool {
	args := m.Called(h, timeout)
	return args.Bool(0)
}

func (m *MockCaller) Freeze(h liblxc.Handle) bool {
	args := m.Called(h)
	return args.Bool(0)
}

func (m *MockCaller) Unfreeze(h liblxc.Handle) bool {
	args := m.Called(h)
	return args.Bool(0)
}

func (m *MockCaller) Running(h liblxc.Handle) bool {
	args := m.Called(h)
	return args.Bool(0)
}

func (m *MockCaller) State(h liblxc.Handle) string {
	args := m.Called(h)
	return args.String(0)
}

func (m *MockCaller) ConfigFileName(h liblxc.Handle) string {
	args := m.Called(h)
	return args.String(0)
}

func (m *MockCaller) GetConfigItem(h liblxc.Handle, key string, buf []byte) int {
	args := m.Called(h, key, buf)
	return args.Int(0)
}

func (m *MockCaller) SetConfigItem(h liblxc.Handle, key, value string) bool {
	args := m.Called(h, key, value)
	return args.Bool(0)
}

func (m *MockCaller) ClearConfig(h liblxc.Handle) {
	m.Called(h)
}

func (m *MockCaller) ClearConfigItem(h liblxc.Handle, key string) bool {
	args := m.Called(h, key)
	return args.Bool(0)
}

func (m *MockCaller) GetKeys(h liblxc.Handle, prefix string, buf []byte) int {
	args := m.Called(h, prefix, buf)
	return args.Int(0)
}

func (m *MockCaller) SaveConfig(h liblxc.Handle, path string) bool {
	args := m.Called(h, path)
	return args.Bool(0)
}

func (m *MockCaller) Snapshot(h liblxc.Handle, commentPath string) int {
	args := m.Called(h, commentPath)
	return args.Int(0)
}

func (m *MockCaller) SnapshotList(h liblxc.Handle) (int, liblxc.SnapshotArray) {
	args := m.Called(h)
	arr, _ := args.Get(1).(liblxc.SnapshotArray)
	return args.Int(0), arr
}

func (m *MockCaller) SnapshotRestore(h liblxc.Handle, snapName, targetName string) bool {
	args := m.Called(h, snapName, targetName)
	return args.Bool(0)
}

func (m *MockCaller) SnapshotDestroy(h liblxc.Handle, snapName string) bool {
	args := m.Called(h, snapName)
	return args.Bool(0)
}

func (m *MockCaller) SnapshotDestroyAll(h liblxc.Handle) bool {
	args := m.Called(h)
	return args.Bool(0)
}

func (m *MockCaller) Checkpoint(h liblxc.Handle, dir string, stop, verbose bool) bool {
	args := m.Called(h, dir, stop, verbose)
	return args.Bool(0)
}

func (m *MockCaller) Restore(h liblxc.Handle, dir string, verbose bool) bool {
	args := m.Called(h, dir, verbose)
	return args.Bool(0)
}

func (m *MockCaller) Destroy(h liblxc.Handle) bool {
	args := m.Called(h)
	return args.Bool(0)
}

func (m *MockCaller) DestroyWithSnapshots(h liblxc.Handle) bool {
	args := m.Called(h)
	return args.Bool(0)
}
