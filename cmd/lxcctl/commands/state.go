package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
)

type StateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	name string
}

// NewStateCommand returns the state command.
func NewStateCommand(rootCmd *RootCommand, app *kingpin.Application) *StateCommand {
	c := &StateCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("state", "Print the current container state.")
	c.Cmd.Arg("name", "Container name.").Required().StringVar(&c.name)

	return c
}

func (c StateCommand) Name() string { return c.Cmd.FullCommand() }

func (c StateCommand) Run(ctx context.Context) error {
	store, err := c.rootCmd.store()
	if err != nil {
		return err
	}

	ct, err := store.Get(c.name)
	if err != nil {
		return fmt.Errorf("could not get container: %w", err)
	}
	defer ct.Release()

	fmt.Fprintln(c.rootCmd.Stdout, ct.State())

	return nil
}
