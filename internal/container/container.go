package container

import (
	"fmt"
	"time"

	"github.com/quadrifoglio/lxc-go/internal/liblxc"
	"github.com/quadrifoglio/lxc-go/internal/log"
	"github.com/quadrifoglio/lxc-go/internal/model"
)

// Container owns exactly one native container handle. The handle is released
// exactly once: explicitly with Release, or as part of Destroy and
// DestroyWithSnapshots, which consume the wrapper.
//
// A Container is not safe for concurrent use; the native handle has no
// internal locking and neither does this wrapper. Callers running methods
// from multiple goroutines must serialize externally.
type Container struct {
	caller   liblxc.Caller
	handle   liblxc.Handle
	name     string
	logger   log.Logger
	released bool
}

// Name returns the container name.
func (c *Container) Name() string { return c.name }

func (c *Container) live() error {
	if c.released {
		return fmt.Errorf("container %q handle already released: %w", c.name, model.ErrNotValid)
	}

	return nil
}

// Release drops the native handle. It is safe to call more than once, only
// the first call reaches the native side.
func (c *Container) Release() {
	if c.released {
		return
	}
	c.released = true
	c.caller.Release(c.handle)
}

// Start requests the container to start. Success means the request was
// accepted, not that the container converged to running.
func (c *Container) Start() error {
	if err := c.live(); err != nil {
		return err
	}

	if !c.caller.Start(c.handle) {
		return fmt.Errorf("could not start container %q: %w", c.name, model.ErrUnknown)
	}
	c.logger.Debugf("Start requested")

	return nil
}

// Stop requests an immediate container stop.
func (c *Container) Stop() error {
	if err := c.live(); err != nil {
		return err
	}

	if !c.caller.Stop(c.handle) {
		return fmt.Errorf("could not stop container %q: %w", c.name, model.ErrUnknown)
	}
	c.logger.Debugf("Stop requested")

	return nil
}

// Shutdown requests a clean shutdown and waits for the container to reach
// the stopped state. The timeout is enforced by the native side; not
// reaching stopped in time is a failure.
func (c *Container) Shutdown(timeout time.Duration) error {
	if err := c.live(); err != nil {
		return err
	}

	if !c.caller.Shutdown(c.handle, timeout) {
		return fmt.Errorf("container %q did not stop within %s: %w", c.name, timeout, model.ErrUnknown)
	}
	c.logger.Debugf("Shutdown completed")

	return nil
}

// Freeze freezes all container processes.
func (c *Container) Freeze() error {
	if err := c.live(); err != nil {
		return err
	}

	if !c.caller.Freeze(c.handle) {
		return fmt.Errorf("could not freeze container %q: %w", c.name, model.ErrUnknown)
	}

	return nil
}

// Unfreeze thaws a frozen container.
func (c *Container) Unfreeze() error {
	if err := c.live(); err != nil {
		return err
	}

	if !c.caller.Unfreeze(c.handle) {
		return fmt.Errorf("could not unfreeze container %q: %w", c.name, model.ErrUnknown)
	}

	return nil
}

// Running reports whether the container is running right now. The status is
// re-queried from the native side on every call, it can change behind this
// layer's back at any time.
func (c *Container) Running() bool {
	if c.released {
		return false
	}

	return c.caller.Running(c.handle)
}

// State returns the current native state token, re-queried on every call.
func (c *Container) State() model.State {
	if c.released {
		return ""
	}

	return model.State(c.caller.State(c.handle))
}

// Checkpoint checkpoints the running container into a directory. There is no
// rollback: a failure leaves whatever the native side left behind.
func (c *Container) Checkpoint(opts CheckpointOptions) error {
	if err := c.live(); err != nil {
		return err
	}
	if opts.Directory == "" {
		return fmt.Errorf("checkpoint directory is required: %w", model.ErrNotValid)
	}
	if err := checkText(opts.Directory); err != nil {
		return fmt.Errorf("invalid checkpoint directory: %w", err)
	}

	if !c.caller.Checkpoint(c.handle, opts.Directory, opts.Stop, opts.Verbose) {
		return fmt.Errorf("could not checkpoint container %q into %q: %w", c.name, opts.Directory, model.ErrUnknown)
	}
	c.logger.Infof("Checkpointed into %q", opts.Directory)

	return nil
}

// Restore restores the container from a checkpoint directory.
func (c *Container) Restore(opts RestoreOptions) error {
	if err := c.live(); err != nil {
		return err
	}
	if opts.Directory == "" {
		return fmt.Errorf("checkpoint directory is required: %w", model.ErrNotValid)
	}
	if err := checkText(opts.Directory); err != nil {
		return fmt.Errorf("invalid checkpoint directory: %w", err)
	}

	if !c.caller.Restore(c.handle, opts.Directory, opts.Verbose) {
		return fmt.Errorf("could not restore container %q from %q: %w", c.name, opts.Directory, model.ErrUnknown)
	}
	c.logger.Infof("Restored from %q", opts.Directory)

	return nil
}

// Destroy removes the container definition and consumes the wrapper: the
// handle is released and no further use is permitted, whatever the outcome.
func (c *Container) Destroy() error {
	if err := c.live(); err != nil {
		return err
	}

	ok := c.caller.Destroy(c.handle)
	c.Release()
	if !ok {
		return fmt.Errorf("could not destroy container %q: %w", c.name, model.ErrUnknown)
	}
	c.logger.Infof("Destroyed container")

	return nil
}

// DestroyWithSnapshots removes the container definition and all its
// snapshots, then consumes the wrapper. A partial failure (snapshots gone,
// container still there, or the reverse) is reported as a single opaque
// error, there is no rollback.
func (c *Container) DestroyWithSnapshots() error {
	if err := c.live(); err != nil {
		return err
	}

	ok := c.caller.DestroyWithSnapshots(c.handle)
	c.Release()
	if !ok {
		return fmt.Errorf("could not destroy container %q with snapshots: %w", c.name, model.ErrUnknown)
	}
	c.logger.Infof("Destroyed container and snapshots")

	return nil
}

// CheckpointOptions are the options of a checkpoint operation.
type CheckpointOptions struct {
	// Directory receives the checkpoint image.
	Directory string
	// Stop stops the container after the checkpoint.
	Stop bool
	// Verbose enables verbose native logging of the operation.
	Verbose bool
}

// RestoreOptions are the options of a checkpoint restore operation.
type RestoreOptions struct {
	// Directory holds the checkpoint image.
	Directory string
	// Verbose enables verbose native logging of the operation.
	Verbose bool
}
