package container

import (
	"fmt"

	"github.com/quadrifoglio/lxc-go/internal/model"
)

// Snapshot takes a new snapshot of the container and returns its zero-based
// index. commentPath may point to a comment file to attach, or be empty.
func (c *Container) Snapshot(commentPath string) (int, error) {
	if err := c.live(); err != nil {
		return 0, err
	}
	if err := checkText(commentPath); err != nil {
		return 0, fmt.Errorf("invalid comment path: %w", err)
	}

	idx := c.caller.Snapshot(c.handle, commentPath)
	if idx < 0 {
		return 0, fmt.Errorf("could not snapshot container %q: %w", c.name, model.ErrUnknown)
	}
	c.logger.Infof("Created snapshot %d", idx)

	return idx, nil
}

// Snapshots lists the container's snapshots. The natively allocated record
// array is consumed here: each record payload is released right after its
// value copy is built and the array spine is freed exactly once, on every
// exit path.
func (c *Container) Snapshots() ([]model.Snapshot, error) {
	if err := c.live(); err != nil {
		return nil, err
	}

	count, arr := c.caller.SnapshotList(c.handle)
	if count < 0 {
		return nil, fmt.Errorf("could not list snapshots of %q: %w", c.name, model.ErrUnknown)
	}
	if count == 0 {
		return []model.Snapshot{}, nil
	}
	defer arr.Free()

	snapshots := make([]model.Snapshot, 0, count)
	var firstErr error
	for i := 0; i < count; i++ {
		slot := arr.At(i)
		snap, err := decodeSnapshot(slot.Name(), slot.Timestamp(), slot.CommentPath())
		// Each record owns its payload independently of the spine, and
		// releasing must not depend on the decode outcome.
		slot.Release()
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		snapshots = append(snapshots, snap)
	}
	if firstErr != nil {
		return nil, fmt.Errorf("could not decode snapshot record of %q: %w", c.name, firstErr)
	}

	return snapshots, nil
}

func decodeSnapshot(name, timestamp, commentPath []byte) (model.Snapshot, error) {
	n, err := decodeText(name)
	if err != nil {
		return model.Snapshot{}, err
	}
	ts, err := decodeText(timestamp)
	if err != nil {
		return model.Snapshot{}, err
	}
	cp, err := decodeText(commentPath)
	if err != nil {
		return model.Snapshot{}, err
	}

	return model.Snapshot{Name: n, Timestamp: ts, CommentPath: cp}, nil
}

// RestoreSnapshot creates (or replaces) the container named targetName from
// the named snapshot. targetName may equal the container's own name, which
// replaces it in place.
func (c *Container) RestoreSnapshot(snapName, targetName string) error {
	if err := c.live(); err != nil {
		return err
	}
	if err := checkText(snapName); err != nil {
		return fmt.Errorf("invalid snapshot name: %w", err)
	}
	if err := checkText(targetName); err != nil {
		return fmt.Errorf("invalid target name: %w", err)
	}

	if !c.caller.SnapshotRestore(c.handle, snapName, targetName) {
		return fmt.Errorf("could not restore snapshot %q of %q into %q: %w", snapName, c.name, targetName, model.ErrUnknown)
	}
	c.logger.Infof("Restored snapshot %q into %q", snapName, targetName)

	return nil
}

// DestroySnapshot removes the named snapshot.
func (c *Container) DestroySnapshot(snapName string) error {
	if err := c.live(); err != nil {
		return err
	}
	if err := checkText(snapName); err != nil {
		return fmt.Errorf("invalid snapshot name: %w", err)
	}

	if !c.caller.SnapshotDestroy(c.handle, snapName) {
		return fmt.Errorf("could not destroy snapshot %q of %q: %w", snapName, c.name, model.ErrUnknown)
	}

	return nil
}

// DestroyAllSnapshots removes every snapshot of the container.
func (c *Container) DestroyAllSnapshots() error {
	if err := c.live(); err != nil {
		return err
	}

	if !c.caller.SnapshotDestroyAll(c.handle) {
		return fmt.Errorf("could not destroy snapshots of %q: %w", c.name, model.ErrUnknown)
	}

	return nil
}
