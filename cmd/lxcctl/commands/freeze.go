package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
)

type FreezeCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	name string
}

// NewFreezeCommand returns the freeze command.
func NewFreezeCommand(rootCmd *RootCommand, app *kingpin.Application) *FreezeCommand {
	c := &FreezeCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("freeze", "Freeze all container processes.")
	c.Cmd.Arg("name", "Container name.").Required().StringVar(&c.name)

	return c
}

func (c FreezeCommand) Name() string { return c.Cmd.FullCommand() }

func (c FreezeCommand) Run(ctx context.Context) error {
	store, err := c.rootCmd.store()
	if err != nil {
		return err
	}

	ct, err := store.Get(c.name)
	if err != nil {
		return fmt.Errorf("could not get container: %w", err)
	}
	defer ct.Release()

	if err := ct.Freeze(); err != nil {
		return fmt.Errorf("could not freeze container: %w", err)
	}

	c.rootCmd.Logger.Infof("Container %q frozen", c.name)

	return nil
}

type UnfreezeCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	name string
}

// NewUnfreezeCommand returns the unfreeze command.
func NewUnfreezeCommand(rootCmd *RootCommand, app *kingpin.Application) *UnfreezeCommand {
	c := &UnfreezeCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("unfreeze", "Thaw a frozen container.")
	c.Cmd.Arg("name", "Container name.").Required().StringVar(&c.name)

	return c
}

func (c UnfreezeCommand) Name() string { return c.Cmd.FullCommand() }

func (c UnfreezeCommand) Run(ctx context.Context) error {
	store, err := c.rootCmd.store()
	if err != nil {
		return err
	}

	ct, err := store.Get(c.name)
	if err != nil {
		return fmt.Errorf("could not get container: %w", err)
	}
	defer ct.Release()

	if err := ct.Unfreeze(); err != nil {
		return fmt.Errorf("could not unfreeze container: %w", err)
	}

	c.rootCmd.Logger.Infof("Container %q thawed", c.name)

	return nil
}
