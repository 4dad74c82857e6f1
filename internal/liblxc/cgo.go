//go:build linux && cgo

package liblxc

/*
#cgo LDFLAGS: -llxc
#include <stdbool.h>
#include <stdlib.h>
#include <lxc/lxccontainer.h>

// The native API is a function-pointer table hanging off struct
// lxc_container. cgo cannot call C function pointers, so every table entry
// gets a static shim.

static bool go_lxc_defined(struct lxc_container *c) {
	return c->is_defined(c);
}

static bool go_lxc_create(struct lxc_container *c, const char *t, int flags, char *const argv[]) {
	return c->create(c, t, NULL, NULL, flags, argv);
}

static bool go_lxc_start(struct lxc_container *c) {
	return c->start(c, 0, NULL);
}

static bool go_lxc_stop(struct lxc_container *c) {
	return c->stop(c);
}

static bool go_lxc_shutdown(struct lxc_container *c, int timeout) {
	return c->shutdown(c, timeout);
}

static bool go_lxc_freeze(struct lxc_container *c) {
	return c->freeze(c);
}

static bool go_lxc_unfreeze(struct lxc_container *c) {
	return c->unfreeze(c);
}

static bool go_lxc_running(struct lxc_container *c) {
	return c->is_running(c);
}

static const char *go_lxc_state(struct lxc_container *c) {
	return c->state(c);
}

static char *go_lxc_config_file_name(struct lxc_container *c) {
	return c->config_file_name(c);
}

static int go_lxc_get_config_item(struct lxc_container *c, const char *key, char *retv, int inlen) {
	return c->get_config_item(c, key, retv, inlen);
}

static bool go_lxc_set_config_item(struct lxc_container *c, const char *key, const char *value) {
	return c->set_config_item(c, key, value);
}

static void go_lxc_clear_config(struct lxc_container *c) {
	c->clear_config(c);
}

static bool go_lxc_clear_config_item(struct lxc_container *c, const char *key) {
	return c->clear_config_item(c, key);
}

static int go_lxc_get_keys(struct lxc_container *c, const char *prefix, char *retv, int inlen) {
	return c->get_keys(c, prefix, retv, inlen);
}

static bool go_lxc_save_config(struct lxc_container *c, const char *alt_file) {
	return c->save_config(c, alt_file);
}

static int go_lxc_snapshot(struct lxc_container *c, const char *commentfile) {
	return c->snapshot(c, commentfile);
}

static int go_lxc_snapshot_list(struct lxc_container *c, struct lxc_snapshot **snaps) {
	return c->snapshot_list(c, snaps);
}

static bool go_lxc_snapshot_restore(struct lxc_container *c, const char *snapname, const char *newname) {
	return c->snapshot_restore(c, snapname, newname);
}

static bool go_lxc_snapshot_destroy(struct lxc_container *c, const char *snapname) {
	return c->snapshot_destroy(c, snapname);
}

static bool go_lxc_snapshot_destroy_all(struct lxc_container *c) {
	return c->snapshot_destroy_all(c);
}

static bool go_lxc_checkpoint(struct lxc_container *c, char *directory, bool stop, bool verbose) {
	return c->checkpoint(c, directory, stop, verbose);
}

static bool go_lxc_restore(struct lxc_container *c, char *directory, bool verbose) {
	return c->restore(c, directory, verbose);
}

static bool go_lxc_destroy(struct lxc_container *c) {
	return c->destroy(c);
}

static bool go_lxc_destroy_with_snapshots(struct lxc_container *c) {
	return c->destroy_with_snapshots(c);
}

// Per-record payload release hook of one snapshot array element.
static void go_lxc_snapshot_release(struct lxc_snapshot *s) {
	s->free(s);
}

static struct lxc_snapshot *go_lxc_snapshot_at(struct lxc_snapshot *base, int i) {
	return &base[i];
}
*/
import "C"

import (
	"time"
	"unsafe"
)

// New returns a Caller bound to the liblxc installed on the system.
func New() (Caller, error) {
	return nativeCaller{}, nil
}

type nativeCaller struct{}

type nativeHandle struct {
	ct *C.struct_lxc_container
}

func ct(h Handle) *C.struct_lxc_container {
	return h.(nativeHandle).ct
}

func (nativeCaller) Version() string {
	return C.GoString(C.lxc_get_version())
}

func (nativeCaller) Acquire(name, lxcpath string) Handle {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	cpath := C.CString(lxcpath)
	defer C.free(unsafe.Pointer(cpath))

	c := C.lxc_container_new(cname, cpath)
	if c == nil {
		return nil
	}

	return nativeHandle{ct: c}
}

func (nativeCaller) Release(h Handle) {
	// Drops our reference on the native object, it is not reusable from
	// this handle afterwards.
	C.lxc_container_put(ct(h))
}

func (nativeCaller) Name(h Handle) string {
	return C.GoString(ct(h).name)
}

func (nativeCaller) IsDefined(h Handle) bool {
	return bool(C.go_lxc_defined(ct(h)))
}

func (nativeCaller) ListDefined(lxcpath string) (int, []Handle) {
	cpath := C.CString(lxcpath)
	defer C.free(unsafe.Pointer(cpath))

	var cts **C.struct_lxc_container
	count := int(C.list_defined_containers(cpath, nil, &cts))
	if count <= 0 {
		return count, nil
	}
	// Element references are handed over to the returned handles, only
	// the array spine is freed here.
	defer C.free(unsafe.Pointer(cts))

	handles := make([]Handle, 0, count)
	for _, c := range unsafe.Slice(cts, count) {
		handles = append(handles, nativeHandle{ct: c})
	}

	return count, handles
}

func (nativeCaller) CreateContainer(h Handle, template string, flags int, args []string) bool {
	ctpl := C.CString(template)
	defer C.free(unsafe.Pointer(ctpl))

	var argv **C.char
	if len(args) > 0 {
		cargs := make([]*C.char, len(args)+1) // null sentinel terminated
		for i, a := range args {
			cargs[i] = C.CString(a)
		}
		defer func() {
			for _, ca := range cargs[:len(args)] {
				C.free(unsafe.Pointer(ca))
			}
		}()
		argv = &cargs[0]
	}

	return bool(C.go_lxc_create(ct(h), ctpl, C.int(flags), argv))
}

func (nativeCaller) Start(h Handle) bool {
	return bool(C.go_lxc_start(ct(h)))
}

func (nativeCaller) Stop(h Handle) bool {
	return bool(C.go_lxc_stop(ct(h)))
}

func (nativeCaller) Shutdown(h Handle, timeout time.Duration) bool {
	return bool(C.go_lxc_shutdown(ct(h), C.int(timeout/time.Second)))
}

func (nativeCaller) Freeze(h Handle) bool {
	return bool(C.go_lxc_freeze(ct(h)))
}

func (nativeCaller) Unfreeze(h Handle) bool {
	return bool(C.go_lxc_unfreeze(ct(h)))
}

func (nativeCaller) Running(h Handle) bool {
	return bool(C.go_lxc_running(ct(h)))
}

func (nativeCaller) State(h Handle) string {
	// Static native string, not freed.
	return C.GoString(C.go_lxc_state(ct(h)))
}

func (nativeCaller) ConfigFileName(h Handle) string {
	p := C.go_lxc_config_file_name(ct(h))
	if p == nil {
		return ""
	}
	defer C.free(unsafe.Pointer(p))

	return C.GoString(p)
}

func (nativeCaller) GetConfigItem(h Handle, key string, buf []byte) int {
	ckey := C.CString(key)
	defer C.free(unsafe.Pointer(ckey))

	if len(buf) == 0 {
		return int(C.go_lxc_get_config_item(ct(h), ckey, nil, 0))
	}

	return int(C.go_lxc_get_config_item(ct(h), ckey, (*C.char)(unsafe.Pointer(&buf[0])), C.int(len(buf))))
}

func (nativeCaller) SetConfigItem(h Handle, key, value string) bool {
	ckey := C.CString(key)
	defer C.free(unsafe.Pointer(ckey))
	cvalue := C.CString(value)
	defer C.free(unsafe.Pointer(cvalue))

	return bool(C.go_lxc_set_config_item(ct(h), ckey, cvalue))
}

func (nativeCaller) ClearConfig(h Handle) {
	C.go_lxc_clear_config(ct(h))
}

func (nativeCaller) ClearConfigItem(h Handle, key string) bool {
	ckey := C.CString(key)
	defer C.free(unsafe.Pointer(ckey))

	return bool(C.go_lxc_clear_config_item(ct(h), ckey))
}

func (nativeCaller) GetKeys(h Handle, prefix string, buf []byte) int {
	cprefix := C.CString(prefix)
	defer C.free(unsafe.Pointer(cprefix))

	if len(buf) == 0 {
		return int(C.go_lxc_get_keys(ct(h), cprefix, nil, 0))
	}

	return int(C.go_lxc_get_keys(ct(h), cprefix, (*C.char)(unsafe.Pointer(&buf[0])), C.int(len(buf))))
}

func (nativeCaller) SaveConfig(h Handle, path string) bool {
	var cpath *C.char
	if path != "" {
		cpath = C.CString(path)
		defer C.free(unsafe.Pointer(cpath))
	}

	return bool(C.go_lxc_save_config(ct(h), cpath))
}

func (nativeCaller) Snapshot(h Handle, commentPath string) int {
	var cpath *C.char
	if commentPath != "" {
		cpath = C.CString(commentPath)
		defer C.free(unsafe.Pointer(cpath))
	}

	return int(C.go_lxc_snapshot(ct(h), cpath))
}

func (nativeCaller) SnapshotList(h Handle) (int, SnapshotArray) {
	var snaps *C.struct_lxc_snapshot
	count := int(C.go_lxc_snapshot_list(ct(h), &snaps))
	if count <= 0 {
		return count, nil
	}

	return count, &nativeSnapshotArray{base: snaps}
}

func (nativeCaller) SnapshotRestore(h Handle, snapName, targetName string) bool {
	csnap := C.CString(snapName)
	defer C.free(unsafe.Pointer(csnap))
	ctarget := C.CString(targetName)
	defer C.free(unsafe.Pointer(ctarget))

	return bool(C.go_lxc_snapshot_restore(ct(h), csnap, ctarget))
}

func (nativeCaller) SnapshotDestroy(h Handle, snapName string) bool {
	csnap := C.CString(snapName)
	defer C.free(unsafe.Pointer(csnap))

	return bool(C.go_lxc_snapshot_destroy(ct(h), csnap))
}

func (nativeCaller) SnapshotDestroyAll(h Handle) bool {
	return bool(C.go_lxc_snapshot_destroy_all(ct(h)))
}

func (nativeCaller) Checkpoint(h Handle, dir string, stop, verbose bool) bool {
	cdir := C.CString(dir)
	defer C.free(unsafe.Pointer(cdir))

	return bool(C.go_lxc_checkpoint(ct(h), cdir, C.bool(stop), C.bool(verbose)))
}

func (nativeCaller) Restore(h Handle, dir string, verbose bool) bool {
	cdir := C.CString(dir)
	defer C.free(unsafe.Pointer(cdir))

	return bool(C.go_lxc_restore(ct(h), cdir, C.bool(verbose)))
}

func (nativeCaller) Destroy(h Handle) bool {
	return bool(C.go_lxc_destroy(ct(h)))
}

func (nativeCaller) DestroyWithSnapshots(h Handle) bool {
	return bool(C.go_lxc_destroy_with_snapshots(ct(h)))
}

// nativeSnapshotArray owns the array spine, each slot owns its own payload.
type nativeSnapshotArray struct {
	base *C.struct_lxc_snapshot
}

func (a *nativeSnapshotArray) At(i int) SnapshotSlot {
	return nativeSnapshotSlot{snap: C.go_lxc_snapshot_at(a.base, C.int(i))}
}

func (a *nativeSnapshotArray) Free() {
	C.free(unsafe.Pointer(a.base))
}

type nativeSnapshotSlot struct {
	snap *C.struct_lxc_snapshot
}

func (s nativeSnapshotSlot) Name() []byte        { return goBytes(s.snap.name) }
func (s nativeSnapshotSlot) Timestamp() []byte   { return goBytes(s.snap.timestamp) }
func (s nativeSnapshotSlot) CommentPath() []byte { return goBytes(s.snap.comment_pathname) }

func (s nativeSnapshotSlot) Release() {
	C.go_lxc_snapshot_release(s.snap)
}

func goBytes(p *C.char) []byte {
	if p == nil {
		return nil
	}

	return []byte(C.GoString(p))
}
