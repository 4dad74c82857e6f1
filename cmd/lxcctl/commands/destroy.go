package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
)

type DestroyCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	name          string
	withSnapshots bool
}

// NewDestroyCommand returns the destroy command.
func NewDestroyCommand(rootCmd *RootCommand, app *kingpin.Application) *DestroyCommand {
	c := &DestroyCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("destroy", "Destroy a container definition.")
	c.Cmd.Arg("name", "Container name.").Required().StringVar(&c.name)
	c.Cmd.Flag("with-snapshots", "Also remove all snapshots.").BoolVar(&c.withSnapshots)

	return c
}

func (c DestroyCommand) Name() string { return c.Cmd.FullCommand() }

func (c DestroyCommand) Run(ctx context.Context) error {
	store, err := c.rootCmd.store()
	if err != nil {
		return err
	}

	ct, err := store.Get(c.name)
	if err != nil {
		return fmt.Errorf("could not get container: %w", err)
	}

	// Destroy consumes the handle, no release needed on success or failure.
	if c.withSnapshots {
		err = ct.DestroyWithSnapshots()
	} else {
		err = ct.Destroy()
	}
	if err != nil {
		return fmt.Errorf("could not destroy container: %w", err)
	}

	c.rootCmd.Logger.Infof("Container %q destroyed", c.name)

	return nil
}
