package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	xdgAppName = "gtasks-org-tools"
	configFile = "config.yml"

	DefaultTodoKeyword = "TODO"
	DefaultDoneKeyword = "DONE"
)

// Config models config.yml.
type Config struct {
	Keywords struct {
		// Todo is the headline keyword written for imported open
		// tasks; Done is written for imported completed tasks.
		Todo string `yaml:"todo"`
		Done string `yaml:"done"`
	} `yaml:"keywords"`
	Org struct {
		// Files are the org documents scanned by push.
		Files []string `yaml:"files"`
	} `yaml:"org"`
	Hooks struct {
		// AfterAppend is an external command run after a pull
		// appends entries. It receives the written file's absolute
		// path as its argument and the pulled records as JSON on
		// stdin.
		AfterAppend string `yaml:"after_append"`
	} `yaml:"hooks"`
}

func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", xdgAppName, configFile), nil
}

// Load reads config.yml, returning defaults when the file is missing.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := &Config{}
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes the config under the XDG directory, creating it first.
func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Keywords.Todo == "" {
		c.Keywords.Todo = DefaultTodoKeyword
	}
	if c.Keywords.Done == "" {
		c.Keywords.Done = DefaultDoneKeyword
	}
}

// OrgFiles returns the configured document paths with a leading ~
// expanded to the user's home directory.
func (c *Config) OrgFiles() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return c.Org.Files
	}
	expanded := make([]string, 0, len(c.Org.Files))
	for _, p := range c.Org.Files {
		if p == "~" || strings.HasPrefix(p, "~/") {
			p = filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
		}
		expanded = append(expanded, p)
	}
	return expanded
}
