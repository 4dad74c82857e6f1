package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"gopkg.in/yaml.v3"

	"github.com/quadrifoglio/lxc-go/pkg/lxc"
)

type CreateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	name     string
	template string
	options  []string
	specFile string
}

// createSpec is the YAML container spec accepted by --spec. Config items are
// an ordered list so they are applied in file order.
type createSpec struct {
	Template struct {
		Name    string   `yaml:"name"`
		Options []string `yaml:"options"`
	} `yaml:"template"`
	Config []struct {
		Key   string `yaml:"key"`
		Value string `yaml:"value"`
	} `yaml:"config"`
}

// NewCreateCommand returns the create command.
func NewCreateCommand(rootCmd *RootCommand, app *kingpin.Application) *CreateCommand {
	c := &CreateCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("create", "Create a new container from a template.")
	c.Cmd.Arg("name", "Container name.").Required().StringVar(&c.name)
	c.Cmd.Flag("template", "Template script name (e.g. download, busybox).").Short('t').StringVar(&c.template)
	c.Cmd.Flag("option", "Template option, repeatable, passed in order (e.g. --option=-d --option=alpine).").StringsVar(&c.options)
	c.Cmd.Flag("spec", "YAML container spec file (template + config items).").StringVar(&c.specFile)

	return c
}

func (c CreateCommand) Name() string { return c.Cmd.FullCommand() }

func (c CreateCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	tplName := c.template
	tplOptions := c.options
	var spec createSpec

	if c.specFile != "" {
		data, err := os.ReadFile(c.specFile)
		if err != nil {
			return fmt.Errorf("could not read spec file: %w", err)
		}
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return fmt.Errorf("could not parse spec file: %w", err)
		}
		if tplName == "" {
			tplName = spec.Template.Name
		}
		tplOptions = append(tplOptions, spec.Template.Options...)
	}

	if tplName == "" {
		return fmt.Errorf("a template is required (--template or --spec)")
	}

	store, err := c.rootCmd.store()
	if err != nil {
		return err
	}

	tpl := lxc.NewTemplate(tplName).Option(tplOptions...)
	ct, err := store.Create(c.name, *tpl)
	if err != nil {
		return fmt.Errorf("could not create container: %w", err)
	}
	defer ct.Release()

	// Apply and persist config items from the spec file.
	if len(spec.Config) > 0 {
		for _, item := range spec.Config {
			if err := ct.SetConfigItem(item.Key, item.Value); err != nil {
				return fmt.Errorf("could not set config item %q: %w", item.Key, err)
			}
		}
		if err := ct.SaveConfig(""); err != nil {
			return fmt.Errorf("could not save config: %w", err)
		}
	}

	logger.Infof("Container %q created", c.name)
	fmt.Fprintln(c.rootCmd.Stdout, c.name)

	return nil
}
