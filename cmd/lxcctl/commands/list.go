package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/alecthomas/kingpin/v2"
)

type ListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewListCommand returns the list command.
func NewListCommand(rootCmd *RootCommand, app *kingpin.Application) *ListCommand {
	c := &ListCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("list", "List defined containers.")

	return c
}

func (c ListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ListCommand) Run(ctx context.Context) error {
	store, err := c.rootCmd.store()
	if err != nil {
		return err
	}

	containers, err := store.List()
	if err != nil {
		return fmt.Errorf("could not list containers: %w", err)
	}
	defer func() {
		for _, ct := range containers {
			ct.Release()
		}
	}()

	w := tabwriter.NewWriter(c.rootCmd.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTATE")
	for _, ct := range containers {
		fmt.Fprintf(w, "%s\t%s\n", ct.Name(), ct.State())
	}

	return w.Flush()
}
