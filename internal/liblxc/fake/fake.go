package fake

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/quadrifoglio/lxc-go/internal/liblxc"
	"github.com/quadrifoglio/lxc-go/internal/log"
)

// CallerConfig is the configuration for the fake boundary.
type CallerConfig struct {
	// Version reported by Version. Default: "6.0.0".
	Version string
	Logger  log.Logger
}

func (c *CallerConfig) defaults() error {
	if c.Version == "" {
		c.Version = "6.0.0"
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "liblxc.Fake"})

	return nil
}

// Caller is a fake implementation of the liblxc.Caller boundary. It keeps
// container definitions in memory and mimics the raw result shapes of the
// native protocol (boolean failures, negative counts, handle reference
// counting), so the handle wrapper can be exercised without liblxc.
//
// It also keeps release accounting: tests use Stats to assert that every
// handle and snapshot payload is released exactly once.
type Caller struct {
	mu      sync.Mutex
	version string
	logger  log.Logger

	// stores is lxcpath -> container name -> definition.
	stores map[string]map[string]*definition

	stats Stats
}

// Stats is the fake's resource accounting.
type Stats struct {
	// LiveHandles is the number of acquired but not yet released handles.
	LiveHandles int
	// DoubleHandleReleases counts releases of an already released handle.
	DoubleHandleReleases int
	// LiveSnapshotPayloads is the number of snapshot record payloads
	// handed out by SnapshotList and not yet released.
	LiveSnapshotPayloads int
	// DoubleSnapshotReleases counts releases of an already released
	// snapshot payload.
	DoubleSnapshotReleases int
	// LiveSnapshotSpines is the number of snapshot arrays not yet freed.
	LiveSnapshotSpines int
}

type definition struct {
	config   map[string]string
	keys     []string // insertion order of config
	state    string
	snaps    []snapshotDef
	snapSeq  int
	savedTo  string
	template string
}

type snapshotDef struct {
	name        string
	timestamp   string
	commentPath string
}

type handle struct {
	name     string
	lxcpath  string
	released bool
}

// NewCaller returns a new fake boundary.
func NewCaller(cfg CallerConfig) (*Caller, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Caller{
		version: cfg.Version,
		logger:  cfg.Logger,
		stores:  map[string]map[string]*definition{},
	}, nil
}

// Stats returns a copy of the current resource accounting.
func (c *Caller) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stats
}

func (c *Caller) store(lxcpath string) map[string]*definition {
	s, ok := c.stores[lxcpath]
	if !ok {
		s = map[string]*definition{}
		c.stores[lxcpath] = s
	}

	return s
}

func (c *Caller) definition(h liblxc.Handle) *definition {
	fh := h.(*handle)
	return c.stores[fh.lxcpath][fh.name]
}

func (c *Caller) Version() string { return c.version }

func (c *Caller) Acquire(name, lxcpath string) liblxc.Handle {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Acquiring never requires a definition, same as the native side.
	c.stats.LiveHandles++
	return &handle{name: name, lxcpath: lxcpath}
}

func (c *Caller) Release(h liblxc.Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fh := h.(*handle)
	if fh.released {
		c.stats.DoubleHandleReleases++
		c.logger.Errorf("Double release of handle %q", fh.name)
		return
	}
	fh.released = true
	c.stats.LiveHandles--
}

func (c *Caller) Name(h liblxc.Handle) string {
	return h.(*handle).name
}

func (c *Caller) IsDefined(h liblxc.Handle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.definition(h) != nil
}

func (c *Caller) ListDefined(lxcpath string) (int, []liblxc.Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.stores[lxcpath]))
	for name := range c.stores[lxcpath] {
		names = append(names, name)
	}
	sort.Strings(names)

	handles := make([]liblxc.Handle, 0, len(names))
	for _, name := range names {
		c.stats.LiveHandles++
		handles = append(handles, &handle{name: name, lxcpath: lxcpath})
	}

	return len(handles), handles
}

func (c *Caller) CreateContainer(h liblxc.Handle, template string, flags int, args []string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	fh := h.(*handle)
	if c.stores[fh.lxcpath][fh.name] != nil {
		return false
	}

	def := &definition{
		config:   map[string]string{},
		state:    "STOPPED",
		template: template,
	}
	// The template assigns the container hostname from its name.
	def.set("lxc.utsname", fh.name)
	def.set("lxc.rootfs", filepath.Join(fh.lxcpath, fh.name, "rootfs"))

	c.store(fh.lxcpath)[fh.name] = def
	c.logger.Infof("Created fake container %q (template %q, %d options)", fh.name, template, len(args))

	return true
}

func (d *definition) set(key, value string) {
	if _, ok := d.config[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.config[key] = value
}

func (c *Caller) Start(h liblxc.Handle) bool {
	return c.transition(h, func(d *definition) bool {
		d.state = "RUNNING"
		return true
	})
}

func (c *Caller) Stop(h liblxc.Handle) bool {
	return c.transition(h, func(d *definition) bool {
		if d.state == "STOPPED" {
			return false
		}
		d.state = "STOPPED"
		return true
	})
}

func (c *Caller) Shutdown(h liblxc.Handle, timeout time.Duration) bool {
	return c.transition(h, func(d *definition) bool {
		if d.state != "RUNNING" {
			return false
		}
		d.state = "STOPPED"
		return true
	})
}

func (c *Caller) Freeze(h liblxc.Handle) bool {
	return c.transition(h, func(d *definition) bool {
		if d.state != "RUNNING" {
			return false
		}
		d.state = "FROZEN"
		return true
	})
}

func (c *Caller) Unfreeze(h liblxc.Handle) bool {
	return c.transition(h, func(d *definition) bool {
		if d.state != "FROZEN" {
			return false
		}
		d.state = "RUNNING"
		return true
	})
}

func (c *Caller) transition(h liblxc.Handle, f func(d *definition) bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	def := c.definition(h)
	if def == nil {
		return false
	}

	return f(def)
}

func (c *Caller) Running(h liblxc.Handle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	def := c.definition(h)
	return def != nil && def.state != "STOPPED"
}

func (c *Caller) State(h liblxc.Handle) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	def := c.definition(h)
	if def == nil {
		return "STOPPED"
	}

	return def.state
}

func (c *Caller) ConfigFileName(h liblxc.Handle) string {
	fh := h.(*handle)
	return filepath.Join(fh.lxcpath, fh.name, "config")
}

func (c *Caller) GetConfigItem(h liblxc.Handle, key string, buf []byte) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	def := c.definition(h)
	if def == nil {
		return -1
	}
	value, ok := def.config[key]
	if !ok {
		return -1
	}

	return fillBuffer(value, buf)
}

func (c *Caller) SetConfigItem(h liblxc.Handle, key, value string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	def := c.definition(h)
	if def == nil {
		return false
	}
	def.set(key, value)

	return true
}

func (c *Caller) ClearConfig(h liblxc.Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	def := c.definition(h)
	if def == nil {
		return
	}
	def.config = map[string]string{}
	def.keys = nil
}

func (c *Caller) ClearConfigItem(h liblxc.Handle, key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	def := c.definition(h)
	if def == nil {
		return false
	}
	if _, ok := def.config[key]; !ok {
		return false
	}
	delete(def.config, key)
	for i, k := range def.keys {
		if k == key {
			def.keys = append(def.keys[:i], def.keys[i+1:]...)
			break
		}
	}

	return true
}

func (c *Caller) GetKeys(h liblxc.Handle, prefix string, buf []byte) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	def := c.definition(h)
	if def == nil {
		return -1
	}

	keys := make([]string, 0, len(def.keys))
	for _, k := range def.keys {
		if prefix == "" || strings.HasPrefix(k, prefix+".") {
			keys = append(keys, strings.TrimPrefix(k, prefix+"."))
		}
	}

	return fillBuffer(strings.Join(keys, "\n"), buf)
}

func (c *Caller) SaveConfig(h liblxc.Handle, path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	def := c.definition(h)
	if def == nil {
		return false
	}
	if path == "" {
		path = c.ConfigFileName(h)
	}
	def.savedTo = path

	return true
}

// SavedConfigPath returns where the named container's config was last saved,
// empty when never saved.
func (c *Caller) SavedConfigPath(lxcpath, name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	def := c.stores[lxcpath][name]
	if def == nil {
		return ""
	}

	return def.savedTo
}

func (c *Caller) Snapshot(h liblxc.Handle, commentPath string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	def := c.definition(h)
	if def == nil {
		return -1
	}

	idx := def.snapSeq
	def.snapSeq++
	def.snaps = append(def.snaps, snapshotDef{
		name:        fmt.Sprintf("snap%d", idx),
		timestamp:   time.Now().UTC().Format("2006:01:02 15:04:05"),
		commentPath: commentPath,
	})

	return idx
}

func (c *Caller) SnapshotList(h liblxc.Handle) (int, liblxc.SnapshotArray) {
	c.mu.Lock()
	defer c.mu.Unlock()

	def := c.definition(h)
	if def == nil {
		return -1, nil
	}
	if len(def.snaps) == 0 {
		return 0, nil
	}

	slots := make([]*snapshotSlot, 0, len(def.snaps))
	for _, s := range def.snaps {
		c.stats.LiveSnapshotPayloads++
		slots = append(slots, &snapshotSlot{caller: c, def: s})
	}
	c.stats.LiveSnapshotSpines++

	return len(slots), &snapshotArray{caller: c, slots: slots}
}

func (c *Caller) SnapshotRestore(h liblxc.Handle, snapName, targetName string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	fh := h.(*handle)
	def := c.stores[fh.lxcpath][fh.name]
	if def == nil {
		return false
	}

	found := false
	for _, s := range def.snaps {
		if s.name == snapName {
			found = true
			break
		}
	}
	if !found {
		return false
	}

	// Restoring over an existing name replaces its definition in place.
	restored := &definition{
		config:   map[string]string{},
		state:    "STOPPED",
		template: def.template,
	}
	for _, k := range def.keys {
		restored.set(k, def.config[k])
	}
	restored.set("lxc.utsname", targetName)
	if targetName == fh.name {
		restored.snaps = def.snaps
		restored.snapSeq = def.snapSeq
	}
	c.store(fh.lxcpath)[targetName] = restored

	return true
}

func (c *Caller) SnapshotDestroy(h liblxc.Handle, snapName string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	def := c.definition(h)
	if def == nil {
		return false
	}
	for i, s := range def.snaps {
		if s.name == snapName {
			def.snaps = append(def.snaps[:i], def.snaps[i+1:]...)
			return true
		}
	}

	return false
}

func (c *Caller) SnapshotDestroyAll(h liblxc.Handle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	def := c.definition(h)
	if def == nil {
		return false
	}
	def.snaps = nil

	return true
}

func (c *Caller) Checkpoint(h liblxc.Handle, dir string, stop, verbose bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	def := c.definition(h)
	if def == nil || def.state != "RUNNING" || dir == "" {
		return false
	}
	if stop {
		def.state = "STOPPED"
	}

	return true
}

func (c *Caller) Restore(h liblxc.Handle, dir string, verbose bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	def := c.definition(h)
	if def == nil || dir == "" {
		return false
	}
	def.state = "RUNNING"

	return true
}

func (c *Caller) Destroy(h liblxc.Handle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	fh := h.(*handle)
	def := c.stores[fh.lxcpath][fh.name]
	if def == nil || def.state != "STOPPED" {
		return false
	}
	delete(c.stores[fh.lxcpath], fh.name)

	return true
}

func (c *Caller) DestroyWithSnapshots(h liblxc.Handle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	fh := h.(*handle)
	def := c.stores[fh.lxcpath][fh.name]
	if def == nil || def.state != "STOPPED" {
		return false
	}
	def.snaps = nil
	delete(c.stores[fh.lxcpath], fh.name)

	return true
}

// fillBuffer implements the native sized-read protocol: a probe (empty buf)
// returns the required byte count, a fill copies the value plus a trailing
// NUL when it fits, returning the full count either way.
func fillBuffer(value string, buf []byte) int {
	if len(buf) == 0 {
		return len(value)
	}
	if len(buf) < len(value)+1 {
		return -1
	}
	copy(buf, value)
	buf[len(value)] = 0

	return len(value)
}

type snapshotArray struct {
	caller *Caller
	slots  []*snapshotSlot
	freed  bool
}

func (a *snapshotArray) At(i int) liblxc.SnapshotSlot { return a.slots[i] }

func (a *snapshotArray) Free() {
	a.caller.mu.Lock()
	defer a.caller.mu.Unlock()

	if a.freed {
		a.caller.stats.DoubleSnapshotReleases++
		return
	}
	a.freed = true
	a.caller.stats.LiveSnapshotSpines--
}

type snapshotSlot struct {
	caller   *Caller
	def      snapshotDef
	released bool
}

func (s *snapshotSlot) Name() []byte        { return []byte(s.def.name) }
func (s *snapshotSlot) Timestamp() []byte   { return []byte(s.def.timestamp) }
func (s *snapshotSlot) CommentPath() []byte { return []byte(s.def.commentPath) }

func (s *snapshotSlot) Release() {
	s.caller.mu.Lock()
	defer s.caller.mu.Unlock()

	if s.released {
		s.caller.stats.DoubleSnapshotReleases++
		return
	}
	s.released = true
	s.caller.stats.LiveSnapshotPayloads--
}
