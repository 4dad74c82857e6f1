package lxc

import (
	"fmt"

	"github.com/quadrifoglio/lxc-go/internal/container"
	"github.com/quadrifoglio/lxc-go/internal/liblxc"
	"github.com/quadrifoglio/lxc-go/internal/log"
	"github.com/quadrifoglio/lxc-go/internal/model"
)

// Config configures the SDK.
//
// All fields are optional: an empty Config{} uses the system store path
// (/var/lib/lxc) and no logging.
type Config struct {
	// Path is the store path container definitions live under.
	// Default: /var/lib/lxc.
	Path string

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger
}

// New returns a Store bound to the liblxc installed on the system.
func New(cfg Config) (*Store, error) {
	caller, err := liblxc.New()
	if err != nil {
		return nil, fmt.Errorf("could not load native lxc support: %w", err)
	}

	store, err := container.NewStore(container.StoreConfig{
		Caller: caller,
		Path:   cfg.Path,
		Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create store: %w", err)
	}

	return store, nil
}

// Version reports the version of the liblxc in use.
func Version() (string, error) {
	caller, err := liblxc.New()
	if err != nil {
		return "", fmt.Errorf("could not load native lxc support: %w", err)
	}

	return caller.Version(), nil
}

// NewTemplate returns a template descriptor for the named creation script.
func NewTemplate(name string) *Template {
	return model.NewTemplate(name)
}

// Aliased types so SDK users don't need to import internal packages.
type (
	// Store looks up, enumerates and creates containers under one store path.
	Store = container.Store
	// Container is an owned handle over one native container.
	Container = container.Container
	// Template is a container creation descriptor.
	Template = model.Template
	// Snapshot is one snapshot record of a container.
	Snapshot = model.Snapshot
	// State is the runtime state token reported by the native side.
	State = model.State
	// CheckpointOptions are the options of Container.Checkpoint.
	CheckpointOptions = container.CheckpointOptions
	// RestoreOptions are the options of Container.Restore.
	RestoreOptions = container.RestoreOptions
)

// Container state tokens.
const (
	StateStopped = model.StateStopped
	StateRunning = model.StateRunning
	StateFrozen  = model.StateFrozen
)

// Sentinel errors, to be tested with errors.Is.
var (
	ErrNotFound      = model.ErrNotFound
	ErrAlreadyExists = model.ErrAlreadyExists
	ErrNotValid      = model.ErrNotValid
	ErrUnknown       = model.ErrUnknown
)

// DefaultPath is the system LXC store path.
const DefaultPath = container.DefaultPath
