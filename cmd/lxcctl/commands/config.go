package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
)

type ConfigGetCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	name string
	key  string
}

// NewConfigGetCommand returns the config get command.
func NewConfigGetCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *ConfigGetCommand {
	c := &ConfigGetCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("get", "Print the value of a config key.")
	c.Cmd.Arg("name", "Container name.").Required().StringVar(&c.name)
	c.Cmd.Arg("key", "Config key (e.g. lxc.utsname).").Required().StringVar(&c.key)

	return c
}

func (c ConfigGetCommand) Name() string { return c.Cmd.FullCommand() }

func (c ConfigGetCommand) Run(ctx context.Context) error {
	store, err := c.rootCmd.store()
	if err != nil {
		return err
	}

	ct, err := store.Get(c.name)
	if err != nil {
		return fmt.Errorf("could not get container: %w", err)
	}
	defer ct.Release()

	value, err := ct.ConfigItem(c.key)
	if err != nil {
		return fmt.Errorf("could not read config item: %w", err)
	}

	fmt.Fprintln(c.rootCmd.Stdout, value)

	return nil
}

type ConfigSetCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	name  string
	key   string
	value string
	save  bool
}

// NewConfigSetCommand returns the config set command.
func NewConfigSetCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *ConfigSetCommand {
	c := &ConfigSetCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("set", "Set a config key in the in-memory config tree.")
	c.Cmd.Arg("name", "Container name.").Required().StringVar(&c.name)
	c.Cmd.Arg("key", "Config key.").Required().StringVar(&c.key)
	c.Cmd.Arg("value", "Config value.").Required().StringVar(&c.value)
	c.Cmd.Flag("save", "Persist the config to disk after setting.").BoolVar(&c.save)

	return c
}

func (c ConfigSetCommand) Name() string { return c.Cmd.FullCommand() }

func (c ConfigSetCommand) Run(ctx context.Context) error {
	store, err := c.rootCmd.store()
	if err != nil {
		return err
	}

	ct, err := store.Get(c.name)
	if err != nil {
		return fmt.Errorf("could not get container: %w", err)
	}
	defer ct.Release()

	if err := ct.SetConfigItem(c.key, c.value); err != nil {
		return fmt.Errorf("could not set config item: %w", err)
	}

	if c.save {
		if err := ct.SaveConfig(""); err != nil {
			return fmt.Errorf("could not save config: %w", err)
		}
	}

	c.rootCmd.Logger.Infof("Config item %q set on %q", c.key, c.name)

	return nil
}

type ConfigKeysCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	name   string
	prefix string
}

// NewConfigKeysCommand returns the config keys command.
func NewConfigKeysCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *ConfigKeysCommand {
	c := &ConfigKeysCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("keys", "List config keys.")
	c.Cmd.Arg("name", "Container name.").Required().StringVar(&c.name)
	c.Cmd.Arg("prefix", "Key prefix to list under.").StringVar(&c.prefix)

	return c
}

func (c ConfigKeysCommand) Name() string { return c.Cmd.FullCommand() }

func (c ConfigKeysCommand) Run(ctx context.Context) error {
	store, err := c.rootCmd.store()
	if err != nil {
		return err
	}

	ct, err := store.Get(c.name)
	if err != nil {
		return fmt.Errorf("could not get container: %w", err)
	}
	defer ct.Release()

	keys, err := ct.Keys(c.prefix)
	if err != nil {
		return fmt.Errorf("could not read config keys: %w", err)
	}

	for _, k := range keys {
		fmt.Fprintln(c.rootCmd.Stdout, k)
	}

	return nil
}

type ConfigSaveCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	name string
	path string
}

// NewConfigSaveCommand returns the config save command.
func NewConfigSaveCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *ConfigSaveCommand {
	c := &ConfigSaveCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("save", "Persist the in-memory config tree to disk.")
	c.Cmd.Arg("name", "Container name.").Required().StringVar(&c.name)
	c.Cmd.Flag("path", "Alternative file to save to (default: the container's config file).").StringVar(&c.path)

	return c
}

func (c ConfigSaveCommand) Name() string { return c.Cmd.FullCommand() }

func (c ConfigSaveCommand) Run(ctx context.Context) error {
	store, err := c.rootCmd.store()
	if err != nil {
		return err
	}

	ct, err := store.Get(c.name)
	if err != nil {
		return fmt.Errorf("could not get container: %w", err)
	}
	defer ct.Release()

	if err := ct.SaveConfig(c.path); err != nil {
		return fmt.Errorf("could not save config: %w", err)
	}

	c.rootCmd.Logger.Infof("Config of %q saved", c.name)

	return nil
}
