package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"
)

type StopCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	name     string
	shutdown bool
	timeout  time.Duration
}

// NewStopCommand returns the stop command.
func NewStopCommand(rootCmd *RootCommand, app *kingpin.Application) *StopCommand {
	c := &StopCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("stop", "Stop a container.")
	c.Cmd.Arg("name", "Container name.").Required().StringVar(&c.name)
	c.Cmd.Flag("shutdown", "Request a clean shutdown instead of an immediate stop.").BoolVar(&c.shutdown)
	c.Cmd.Flag("timeout", "Clean shutdown timeout.").Default("30s").DurationVar(&c.timeout)

	return c
}

func (c StopCommand) Name() string { return c.Cmd.FullCommand() }

func (c StopCommand) Run(ctx context.Context) error {
	store, err := c.rootCmd.store()
	if err != nil {
		return err
	}

	ct, err := store.Get(c.name)
	if err != nil {
		return fmt.Errorf("could not get container: %w", err)
	}
	defer ct.Release()

	if c.shutdown {
		if err := ct.Shutdown(c.timeout); err != nil {
			return fmt.Errorf("could not shut down container: %w", err)
		}
	} else {
		if err := ct.Stop(); err != nil {
			return fmt.Errorf("could not stop container: %w", err)
		}
	}

	c.rootCmd.Logger.Infof("Container %q stopped", c.name)

	return nil
}
