// Package container wraps native container handles into safely owned Go
// values. A Store gives access to the container definitions under one LXC
// store path; a Container owns exactly one native handle for its lifetime.
//
// Every method marshals its arguments, performs exactly one boundary call
// and normalizes the raw result into the model error taxonomy before
// returning. Preconditions that can be checked locally (existence) are
// checked before the boundary call, never inferred from its generic failure.
package container

import (
	"fmt"

	"github.com/quadrifoglio/lxc-go/internal/liblxc"
	"github.com/quadrifoglio/lxc-go/internal/log"
	"github.com/quadrifoglio/lxc-go/internal/model"
)

// DefaultPath is the system LXC store path.
const DefaultPath = "/var/lib/lxc"

// StoreConfig is the configuration for a container store.
type StoreConfig struct {
	// Caller is the boundary with the native library.
	Caller liblxc.Caller
	// Path is the store path container definitions live under.
	// Default: /var/lib/lxc.
	Path   string
	Logger log.Logger
}

func (c *StoreConfig) defaults() error {
	if c.Caller == nil {
		return fmt.Errorf("caller is required")
	}
	if c.Path == "" {
		c.Path = DefaultPath
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "container.Store", "lxcpath": c.Path})

	return nil
}

// Store looks up, enumerates and creates containers under one store path.
type Store struct {
	caller liblxc.Caller
	path   string
	logger log.Logger
}

// NewStore creates a new container store.
func NewStore(cfg StoreConfig) (*Store, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Store{
		caller: cfg.Caller,
		path:   cfg.Path,
		logger: cfg.Logger,
	}, nil
}

// Path returns the store path.
func (s *Store) Path() string { return s.path }

// Version reports the native library version.
func (s *Store) Version() string { return s.caller.Version() }

// List returns the defined containers under the store path. An empty store
// is an empty slice, not an error. Every returned container owns its handle
// and must be released by the caller.
func (s *Store) List() ([]*Container, error) {
	count, handles := s.caller.ListDefined(s.path)
	if count < 0 {
		return nil, fmt.Errorf("could not list containers under %q: %w", s.path, model.ErrUnknown)
	}

	containers := make([]*Container, 0, count)
	for _, h := range handles {
		containers = append(containers, s.wrap(h))
	}

	return containers, nil
}

// Exists returns whether a container definition exists for name. The
// transient handle used for the check is released on every exit path.
func (s *Store) Exists(name string) (bool, error) {
	if err := checkText(name); err != nil {
		return false, fmt.Errorf("invalid container name: %w", err)
	}

	h := s.caller.Acquire(name, s.path)
	if h == nil {
		return false, fmt.Errorf("could not acquire handle for %q: %w", name, model.ErrUnknown)
	}
	defer s.caller.Release(h)

	return s.caller.IsDefined(h), nil
}

// Get returns the defined container named name.
func (s *Store) Get(name string) (*Container, error) {
	if err := checkText(name); err != nil {
		return nil, fmt.Errorf("invalid container name: %w", err)
	}

	h := s.caller.Acquire(name, s.path)
	if h == nil {
		return nil, fmt.Errorf("could not acquire handle for %q: %w", name, model.ErrUnknown)
	}

	if !s.caller.IsDefined(h) {
		s.caller.Release(h)
		return nil, fmt.Errorf("container %q: %w", name, model.ErrNotFound)
	}

	return s.wrap(h), nil
}

// Create creates a new container from a template descriptor. The descriptor
// is consumed: its option list is marshaled into the flat argument array of
// the native creation call.
func (s *Store) Create(name string, tpl model.Template) (*Container, error) {
	if err := checkText(name); err != nil {
		return nil, fmt.Errorf("invalid container name: %w", err)
	}
	if err := tpl.Validate(); err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}
	if err := checkText(tpl.Name); err != nil {
		return nil, fmt.Errorf("invalid template name: %w", err)
	}
	for _, opt := range tpl.Options {
		if err := checkText(opt); err != nil {
			return nil, fmt.Errorf("invalid template option %q: %w", opt, err)
		}
	}

	h := s.caller.Acquire(name, s.path)
	if h == nil {
		return nil, fmt.Errorf("could not acquire handle for %q: %w", name, model.ErrUnknown)
	}

	// Existence is checked before calling create: the native call only
	// reports an undifferentiated failure.
	if s.caller.IsDefined(h) {
		s.caller.Release(h)
		return nil, fmt.Errorf("container %q: %w", name, model.ErrAlreadyExists)
	}

	if !s.caller.CreateContainer(h, tpl.Name, liblxc.CreateQuiet, tpl.Options) {
		s.caller.Release(h)
		return nil, fmt.Errorf("could not create container %q from template %q: %w", name, tpl.Name, model.ErrUnknown)
	}

	s.logger.Infof("Created container %q (template %q)", name, tpl.Name)

	return s.wrap(h), nil
}

func (s *Store) wrap(h liblxc.Handle) *Container {
	name := s.caller.Name(h)

	return &Container{
		caller: s.caller,
		handle: h,
		name:   name,
		logger: s.logger.WithValues(log.Kv{"container": name}),
	}
}
