package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	defaultConfigFile = "automock.yaml"
	defaultHeader     = "// Code generated by automock. DO NOT EDIT."
	envPrefix         = "AUTOMOCK_"
)

type Config struct {
	// Output is the file the mocks are written to; empty means stdout.
	Output  string `koanf:"output"`
	Header  string `koanf:"header"`
	Jobs    int    `koanf:"jobs"`
	Verbose bool   `koanf:"verbose"`
	Color   string `koanf:"color"`
	// Attr holds the directives for declarations annotated with a bare
	// #[automock].
	Attr string `koanf:"attr"`
}

func (c *Config) Validate() error {
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1: actual %d", c.Jobs)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color must be one of auto, always or never: actual %q", c.Color)
	}

	return nil
}

// LoadConfig loads configuration from defaults, the config file, environment
// variables and flags, in increasing order of precedence.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	err := k.Load(confmap.Provider(map[string]interface{}{
		"output":  "",
		"header":  defaultHeader,
		"jobs":    4,
		"verbose": false,
		"color":   "auto",
		"attr":    "",
	}, "."), nil)
	if err != nil {
		return nil, fmt.Errorf("cannot load defaults: %w", err)
	}

	if cfgFile == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			cfgFile = defaultConfigFile
		}
	}
	if cfgFile != "" {
		err = k.Load(file.Provider(cfgFile), yaml.Parser())
		if err != nil {
			return nil, fmt.Errorf("cannot read config file %s: %w", cfgFile, err)
		}
	}

	// AUTOMOCK_JOBS -> jobs
	err = k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("cannot load environment variables: %w", err)
	}

	if flags != nil {
		err = k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			return f.Name, posflag.FlagVal(flags, f)
		}), nil)
		if err != nil {
			return nil, fmt.Errorf("cannot load flags: %w", err)
		}
	}

	var c Config
	err = k.Unmarshal("", &c)
	if err != nil {
		return nil, fmt.Errorf("cannot decode config: %w", err)
	}

	err = c.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &c, nil
}
