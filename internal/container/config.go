package container

import (
	"fmt"
	"strings"

	"github.com/quadrifoglio/lxc-go/internal/model"
)

// ConfigItem returns the value of a config key from the in-memory config
// tree. A defined but empty value is an empty string, not an error.
func (c *Container) ConfigItem(key string) (string, error) {
	if err := c.live(); err != nil {
		return "", err
	}
	if err := checkText(key); err != nil {
		return "", fmt.Errorf("invalid config key: %w", err)
	}

	value, err := readSized(func(buf []byte) int {
		return c.caller.GetConfigItem(c.handle, key, buf)
	})
	if err != nil {
		return "", fmt.Errorf("could not read config item %q of %q: %w", key, c.name, err)
	}

	return value, nil
}

// SetConfigItem sets a config key in the in-memory config tree. Nothing is
// persisted until SaveConfig.
func (c *Container) SetConfigItem(key, value string) error {
	if err := c.live(); err != nil {
		return err
	}
	if err := checkText(key); err != nil {
		return fmt.Errorf("invalid config key: %w", err)
	}
	if err := checkText(value); err != nil {
		return fmt.Errorf("invalid config value: %w", err)
	}

	if !c.caller.SetConfigItem(c.handle, key, value) {
		return fmt.Errorf("could not set config item %q on %q: %w", key, c.name, model.ErrUnknown)
	}

	return nil
}

// ClearConfigItem removes a config key from the in-memory config tree.
func (c *Container) ClearConfigItem(key string) error {
	if err := c.live(); err != nil {
		return err
	}
	if err := checkText(key); err != nil {
		return fmt.Errorf("invalid config key: %w", err)
	}

	if !c.caller.ClearConfigItem(c.handle, key) {
		return fmt.Errorf("could not clear config item %q on %q: %w", key, c.name, model.ErrUnknown)
	}

	return nil
}

// ClearConfig resets the whole in-memory config tree.
func (c *Container) ClearConfig() error {
	if err := c.live(); err != nil {
		return err
	}

	c.caller.ClearConfig(c.handle)

	return nil
}

// Keys returns the config keys under prefix, in config order. Pass an empty
// prefix for the top level.
func (c *Container) Keys(prefix string) ([]string, error) {
	if err := c.live(); err != nil {
		return nil, err
	}
	if err := checkText(prefix); err != nil {
		return nil, fmt.Errorf("invalid key prefix: %w", err)
	}

	raw, err := readSized(func(buf []byte) int {
		return c.caller.GetKeys(c.handle, prefix, buf)
	})
	if err != nil {
		return nil, fmt.Errorf("could not read config keys of %q: %w", c.name, err)
	}
	if raw == "" {
		return []string{}, nil
	}

	return strings.Split(strings.TrimRight(raw, "\n"), "\n"), nil
}

// SaveConfig persists the in-memory config tree to path, or to the
// container's own config file when path is empty.
func (c *Container) SaveConfig(path string) error {
	if err := c.live(); err != nil {
		return err
	}
	if err := checkText(path); err != nil {
		return fmt.Errorf("invalid config path: %w", err)
	}

	if !c.caller.SaveConfig(c.handle, path) {
		return fmt.Errorf("could not save config of %q: %w", c.name, model.ErrUnknown)
	}
	c.logger.Debugf("Saved config")

	return nil
}

// ConfigFileName returns the path of the container's on-disk config file,
// e.g. /var/lib/lxc/<name>/config.
func (c *Container) ConfigFileName() (string, error) {
	if err := c.live(); err != nil {
		return "", err
	}

	path := c.caller.ConfigFileName(c.handle)
	if path == "" {
		return "", fmt.Errorf("could not get config file name of %q: %w", c.name, model.ErrUnknown)
	}

	return path, nil
}
