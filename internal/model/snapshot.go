package model

import "fmt"

// Snapshot represents one snapshot record of a container. It is a plain value
// decoded from a natively allocated record: the native payload is released as
// soon as the value is built, so a Snapshot never holds boundary memory.
type Snapshot struct {
	// Name is the native snapshot name, e.g. "snap0".
	Name string
	// Timestamp is the native creation timestamp, as reported by the
	// native side (an opaque, human readable string).
	Timestamp string
	// CommentPath is the path of the comment file attached at snapshot
	// time, empty when none was given.
	CommentPath string
}

// Validate validates the snapshot record.
func (s Snapshot) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("snapshot name is required: %w", ErrNotValid)
	}

	if s.Timestamp == "" {
		return fmt.Errorf("snapshot timestamp is required: %w", ErrNotValid)
	}

	return nil
}
