package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"
	"github.com/sirupsen/logrus"

	"github.com/quadrifoglio/lxc-go/cmd/lxcctl/commands"
	"github.com/quadrifoglio/lxc-go/internal/log"
	loglogrus "github.com/quadrifoglio/lxc-go/internal/log/logrus"
)

const (
	// Version is the application version (set via ldflags).
	Version = "dev"
)

// Run runs the main application.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	app := kingpin.New("lxcctl", "LXC container management tool.")
	app.DefaultEnvars()
	rootCmd := commands.NewRootCommand(app)

	// Setup commands (registers flags).
	listCmd := commands.NewListCommand(rootCmd, app)
	createCmd := commands.NewCreateCommand(rootCmd, app)
	startCmd := commands.NewStartCommand(rootCmd, app)
	stopCmd := commands.NewStopCommand(rootCmd, app)
	freezeCmd := commands.NewFreezeCommand(rootCmd, app)
	unfreezeCmd := commands.NewUnfreezeCommand(rootCmd, app)
	stateCmd := commands.NewStateCommand(rootCmd, app)
	destroyCmd := commands.NewDestroyCommand(rootCmd, app)
	checkpointCmd := commands.NewCheckpointCommand(rootCmd, app)
	restoreCmd := commands.NewRestoreCommand(rootCmd, app)
	versionCmd := commands.NewVersionCommand(rootCmd, app)

	// Config subcommands share a parent command.
	configCmd := app.Command("config", "Manage container configuration.")
	configGetCmd := commands.NewConfigGetCommand(rootCmd, configCmd)
	configSetCmd := commands.NewConfigSetCommand(rootCmd, configCmd)
	configKeysCmd := commands.NewConfigKeysCommand(rootCmd, configCmd)
	configSaveCmd := commands.NewConfigSaveCommand(rootCmd, configCmd)

	// Snapshot subcommands share a parent command.
	snapshotCmd := app.Command("snapshot", "Manage container snapshots.")
	snapshotCreateCmd := commands.NewSnapshotCreateCommand(rootCmd, snapshotCmd)
	snapshotListCmd := commands.NewSnapshotListCommand(rootCmd, snapshotCmd)
	snapshotRestoreCmd := commands.NewSnapshotRestoreCommand(rootCmd, snapshotCmd)
	snapshotRmCmd := commands.NewSnapshotRmCommand(rootCmd, snapshotCmd)

	cmds := map[string]commands.Command{
		listCmd.Name():            listCmd,
		createCmd.Name():          createCmd,
		startCmd.Name():           startCmd,
		stopCmd.Name():            stopCmd,
		freezeCmd.Name():          freezeCmd,
		unfreezeCmd.Name():        unfreezeCmd,
		stateCmd.Name():           stateCmd,
		destroyCmd.Name():         destroyCmd,
		checkpointCmd.Name():      checkpointCmd,
		restoreCmd.Name():         restoreCmd,
		versionCmd.Name():         versionCmd,
		configGetCmd.Name():       configGetCmd,
		configSetCmd.Name():       configSetCmd,
		configKeysCmd.Name():      configKeysCmd,
		configSaveCmd.Name():      configSaveCmd,
		snapshotCreateCmd.Name():  snapshotCreateCmd,
		snapshotListCmd.Name():    snapshotListCmd,
		snapshotRestoreCmd.Name(): snapshotRestoreCmd,
		snapshotRmCmd.Name():      snapshotRmCmd,
	}

	// Parse command.
	cmdName, err := app.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("invalid command configuration: %w", err)
	}

	// Set standard input/output.
	rootCmd.Stdin = stdin
	rootCmd.Stdout = stdout
	rootCmd.Stderr = stderr

	// Auto-suppress logging for commands that produce structured output to
	// prevent log noise from mixing with printed output in the terminal.
	// Users can still enable logging with --debug.
	printerCommands := map[string]bool{
		"list":          true,
		"state":         true,
		"config get":    true,
		"config keys":   true,
		"snapshot list": true,
		"version":       true,
	}
	if printerCommands[cmdName] && !rootCmd.Debug {
		rootCmd.NoLog = true
	}

	// Set logger.
	rootCmd.Logger = getLogger(*rootCmd)

	var g run.Group

	// OS signals.
	{
		signalCtx, signalCancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer signalCancel()

		g.Add(
			func() error {
				<-signalCtx.Done()
				rootCmd.Logger.Debugf("Termination signal received")
				return nil
			},
			func(_ error) {
				signalCancel()
			},
		)
	}

	// Execute command.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				err := cmds[cmdName].Run(ctx)
				if err != nil {
					return fmt.Errorf("%q command failed: %w", cmdName, err)
				}
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}

// getLogger returns the application logger.
func getLogger(config commands.RootCommand) log.Logger {
	if config.NoLog {
		return log.Noop
	}

	// If logger not disabled use logrus logger.
	logrusLog := logrus.New()
	logrusLog.Out = config.Stderr // By default logger goes to stderr (so it can split stdout prints).
	logrusLogEntry := logrus.NewEntry(logrusLog)

	if config.Debug {
		logrusLogEntry.Logger.SetLevel(logrus.DebugLevel)
	}

	// Log format.
	switch config.LoggerType {
	case commands.LoggerTypeDefault:
		logrusLogEntry.Logger.SetFormatter(&logrus.TextFormatter{
			ForceColors:   !config.NoColor,
			DisableColors: config.NoColor,
		})
	case commands.LoggerTypeJSON:
		logrusLogEntry.Logger.SetFormatter(&logrus.JSONFormatter{})
	}

	logger := loglogrus.NewLogrus(logrusLogEntry).WithValues(log.Kv{
		"version": Version,
	})

	logger.Debugf("Debug level is enabled") // Will log only when debug enabled.

	return logger
}

func main() {
	ctx := context.Background()
	err := Run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
