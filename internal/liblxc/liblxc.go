// Package liblxc is the boundary with the native LXC library.
//
// The rest of the module reaches the native side only through the Caller
// interface, one method per native call. Caller methods keep the raw result
// shapes of the native protocol (boolean success flags, negative-on-error
// counts, nil-able handles and buffers) so that result normalization and the
// two-call sized-read protocol stay on the Go side, where they can be tested
// against a fake boundary.
package liblxc

import "time"

// Handle is an opaque reference to one native container object. A handle is
// produced by Acquire or ListDefined and must be released exactly once with
// Release; using it afterwards is undefined.
type Handle interface{}

// CreateQuiet suppresses template script output during container creation.
const CreateQuiet = 1 << 0

// SnapshotSlot is one element of a natively allocated snapshot array. The
// record payload (name, timestamp and comment path buffers) belongs to the
// slot and is freed with Release. Releasing a slot does not touch the array
// spine it lives in.
type SnapshotSlot interface {
	Name() []byte
	Timestamp() []byte
	CommentPath() []byte
	Release()
}

// SnapshotArray owns the spine of a natively allocated snapshot array. Free
// must be called exactly once, after every slot payload has been consumed,
// and no slot may be read after it.
type SnapshotArray interface {
	At(i int) SnapshotSlot
	Free()
}

// Caller is the capability interface over the native container management
// library. All calls are synchronous and block until the native side
// returns; cancellation is not supported by the native protocol. Only
// Shutdown bounds a wait, and the timeout is enforced natively.
type Caller interface {
	// Version reports the native library version string.
	Version() string

	// Acquire returns a handle for the named container under lxcpath, or
	// nil on failure. Acquiring does not require the container to be
	// defined.
	Acquire(name, lxcpath string) Handle
	// Release drops the reference held by the handle. Exactly once per
	// acquired handle, transient ones included.
	Release(h Handle)
	// Name returns the container name the handle was acquired with.
	Name(h Handle) string

	IsDefined(h Handle) bool
	// ListDefined enumerates the defined containers under lxcpath. A
	// negative count is an error, zero is an empty store. Every returned
	// handle is owned by the caller.
	ListDefined(lxcpath string) (int, []Handle)

	// CreateContainer runs the named template script with the flat
	// argument list. The null argv sentinel required by the native
	// protocol is appended by the implementation.
	CreateContainer(h Handle, template string, flags int, args []string) bool

	Start(h Handle) bool
	Stop(h Handle) bool
	Shutdown(h Handle, timeout time.Duration) bool
	Freeze(h Handle) bool
	Unfreeze(h Handle) bool
	Running(h Handle) bool
	State(h Handle) string

	// ConfigFileName returns the path of the container's config file,
	// empty when the native side returns no path.
	ConfigFileName(h Handle) string
	// GetConfigItem probes (nil buf) or fills buf with the value of key,
	// returning the required byte count, negative on error.
	GetConfigItem(h Handle, key string, buf []byte) int
	SetConfigItem(h Handle, key, value string) bool
	ClearConfig(h Handle)
	ClearConfigItem(h Handle, key string) bool
	// GetKeys probes or fills buf with the newline separated config keys
	// under prefix, same protocol as GetConfigItem.
	GetKeys(h Handle, prefix string, buf []byte) int
	// SaveConfig persists the in-memory config tree to path, or to the
	// container's own config file when path is empty.
	SaveConfig(h Handle, path string) bool

	// Snapshot takes a new snapshot and returns its zero-based index,
	// negative on error. commentPath may be empty.
	Snapshot(h Handle, commentPath string) int
	SnapshotList(h Handle) (int, SnapshotArray)
	SnapshotRestore(h Handle, snapName, targetName string) bool
	SnapshotDestroy(h Handle, snapName string) bool
	SnapshotDestroyAll(h Handle) bool

	Checkpoint(h Handle, dir string, stop, verbose bool) bool
	Restore(h Handle, dir string, verbose bool) bool

	Destroy(h Handle) bool
	DestroyWithSnapshots(h Handle) bool
}
