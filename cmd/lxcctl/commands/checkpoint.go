package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/quadrifoglio/lxc-go/pkg/lxc"
)

type CheckpointCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	name    string
	dir     string
	stop    bool
	verbose bool
}

// NewCheckpointCommand returns the checkpoint command.
func NewCheckpointCommand(rootCmd *RootCommand, app *kingpin.Application) *CheckpointCommand {
	c := &CheckpointCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("checkpoint", "Checkpoint a running container into a directory.")
	c.Cmd.Arg("name", "Container name.").Required().StringVar(&c.name)
	c.Cmd.Arg("dir", "Checkpoint directory.").Required().StringVar(&c.dir)
	c.Cmd.Flag("stop", "Stop the container after the checkpoint.").BoolVar(&c.stop)
	c.Cmd.Flag("verbose", "Enable verbose native logging.").BoolVar(&c.verbose)

	return c
}

func (c CheckpointCommand) Name() string { return c.Cmd.FullCommand() }

func (c CheckpointCommand) Run(ctx context.Context) error {
	store, err := c.rootCmd.store()
	if err != nil {
		return err
	}

	ct, err := store.Get(c.name)
	if err != nil {
		return fmt.Errorf("could not get container: %w", err)
	}
	defer ct.Release()

	err = ct.Checkpoint(lxc.CheckpointOptions{
		Directory: c.dir,
		Stop:      c.stop,
		Verbose:   c.verbose,
	})
	if err != nil {
		return fmt.Errorf("could not checkpoint container: %w", err)
	}

	c.rootCmd.Logger.Infof("Container %q checkpointed into %q", c.name, c.dir)

	return nil
}

type RestoreCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	name    string
	dir     string
	verbose bool
}

// NewRestoreCommand returns the restore command.
func NewRestoreCommand(rootCmd *RootCommand, app *kingpin.Application) *RestoreCommand {
	c := &RestoreCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("restore", "Restore a container from a checkpoint directory.")
	c.Cmd.Arg("name", "Container name.").Required().StringVar(&c.name)
	c.Cmd.Arg("dir", "Checkpoint directory.").Required().StringVar(&c.dir)
	c.Cmd.Flag("verbose", "Enable verbose native logging.").BoolVar(&c.verbose)

	return c
}

func (c RestoreCommand) Name() string { return c.Cmd.FullCommand() }

func (c RestoreCommand) Run(ctx context.Context) error {
	store, err := c.rootCmd.store()
	if err != nil {
		return err
	}

	ct, err := store.Get(c.name)
	if err != nil {
		return fmt.Errorf("could not get container: %w", err)
	}
	defer ct.Release()

	err = ct.Restore(lxc.RestoreOptions{
		Directory: c.dir,
		Verbose:   c.verbose,
	})
	if err != nil {
		return fmt.Errorf("could not restore container: %w", err)
	}

	c.rootCmd.Logger.Infof("Container %q restored from %q", c.name, c.dir)

	return nil
}
