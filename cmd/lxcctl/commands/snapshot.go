package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/alecthomas/kingpin/v2"
)

type SnapshotCreateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	name        string
	commentPath string
}

// NewSnapshotCreateCommand returns the snapshot create command.
func NewSnapshotCreateCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *SnapshotCreateCommand {
	c := &SnapshotCreateCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("create", "Take a new snapshot of a container.")
	c.Cmd.Arg("name", "Container name.").Required().StringVar(&c.name)
	c.Cmd.Flag("comment", "Path of a comment file to attach.").StringVar(&c.commentPath)

	return c
}

func (c SnapshotCreateCommand) Name() string { return c.Cmd.FullCommand() }

func (c SnapshotCreateCommand) Run(ctx context.Context) error {
	store, err := c.rootCmd.store()
	if err != nil {
		return err
	}

	ct, err := store.Get(c.name)
	if err != nil {
		return fmt.Errorf("could not get container: %w", err)
	}
	defer ct.Release()

	idx, err := ct.Snapshot(c.commentPath)
	if err != nil {
		return fmt.Errorf("could not snapshot container: %w", err)
	}

	c.rootCmd.Logger.Infof("Snapshot %d of %q created", idx, c.name)
	fmt.Fprintf(c.rootCmd.Stdout, "snap%d\n", idx)

	return nil
}

type SnapshotListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	name string
}

// NewSnapshotListCommand returns the snapshot list command.
func NewSnapshotListCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *SnapshotListCommand {
	c := &SnapshotListCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("list", "List the snapshots of a container.")
	c.Cmd.Arg("name", "Container name.").Required().StringVar(&c.name)

	return c
}

func (c SnapshotListCommand) Name() string { return c.Cmd.FullCommand() }

func (c SnapshotListCommand) Run(ctx context.Context) error {
	store, err := c.rootCmd.store()
	if err != nil {
		return err
	}

	ct, err := store.Get(c.name)
	if err != nil {
		return fmt.Errorf("could not get container: %w", err)
	}
	defer ct.Release()

	snapshots, err := ct.Snapshots()
	if err != nil {
		return fmt.Errorf("could not list snapshots: %w", err)
	}

	w := tabwriter.NewWriter(c.rootCmd.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTIMESTAMP\tCOMMENT")
	for _, s := range snapshots {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, s.Timestamp, s.CommentPath)
	}

	return w.Flush()
}

type SnapshotRestoreCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	name     string
	snapName string
	target   string
}

// NewSnapshotRestoreCommand returns the snapshot restore command.
func NewSnapshotRestoreCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *SnapshotRestoreCommand {
	c := &SnapshotRestoreCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("restore", "Restore a snapshot into a container.")
	c.Cmd.Arg("name", "Container name.").Required().StringVar(&c.name)
	c.Cmd.Arg("snapshot", "Snapshot name (e.g. snap0).").Required().StringVar(&c.snapName)
	c.Cmd.Flag("target", "Target container name (default: restore in place).").StringVar(&c.target)

	return c
}

func (c SnapshotRestoreCommand) Name() string { return c.Cmd.FullCommand() }

func (c SnapshotRestoreCommand) Run(ctx context.Context) error {
	store, err := c.rootCmd.store()
	if err != nil {
		return err
	}

	ct, err := store.Get(c.name)
	if err != nil {
		return fmt.Errorf("could not get container: %w", err)
	}
	defer ct.Release()

	target := c.target
	if target == "" {
		target = c.name
	}

	if err := ct.RestoreSnapshot(c.snapName, target); err != nil {
		return fmt.Errorf("could not restore snapshot: %w", err)
	}

	c.rootCmd.Logger.Infof("Snapshot %q of %q restored into %q", c.snapName, c.name, target)

	return nil
}

type SnapshotRmCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	name     string
	snapName string
	all      bool
}

// NewSnapshotRmCommand returns the snapshot rm command.
func NewSnapshotRmCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *SnapshotRmCommand {
	c := &SnapshotRmCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("rm", "Remove snapshots of a container.")
	c.Cmd.Arg("name", "Container name.").Required().StringVar(&c.name)
	c.Cmd.Arg("snapshot", "Snapshot name (e.g. snap0).").StringVar(&c.snapName)
	c.Cmd.Flag("all", "Remove every snapshot.").BoolVar(&c.all)

	return c
}

func (c SnapshotRmCommand) Name() string { return c.Cmd.FullCommand() }

func (c SnapshotRmCommand) Run(ctx context.Context) error {
	if !c.all && c.snapName == "" {
		return fmt.Errorf("a snapshot name or --all is required")
	}

	store, err := c.rootCmd.store()
	if err != nil {
		return err
	}

	ct, err := store.Get(c.name)
	if err != nil {
		return fmt.Errorf("could not get container: %w", err)
	}
	defer ct.Release()

	if c.all {
		if err := ct.DestroyAllSnapshots(); err != nil {
			return fmt.Errorf("could not remove snapshots: %w", err)
		}
		c.rootCmd.Logger.Infof("All snapshots of %q removed", c.name)
		return nil
	}

	if err := ct.DestroySnapshot(c.snapName); err != nil {
		return fmt.Errorf("could not remove snapshot: %w", err)
	}
	c.rootCmd.Logger.Infof("Snapshot %q of %q removed", c.snapName, c.name)

	return nil
}
