package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Options struct {
	Paths         []string // e.g. []string{"./config", "/etc/assistant"}
	Names         []string // config file names tried in order, without extension
	Type          string
	EnvPrefix     string
	Defaults      map[string]any
	OptionalFiles bool
}

func Load[T any](opts Options) (T, error) {
	var cfg T

	v := viper.New()

	cfgType := opts.Type
	if cfgType == "" {
		cfgType = "yaml"
	}
	v.SetConfigType(cfgType)

	for _, p := range opts.Paths {
		if p != "" {
			v.AddConfigPath(p)
		}
	}

	for k, val := range opts.Defaults {
		v.SetDefault(k, val)
	}

	found := false
	for _, name := range opts.Names {
		if name == "" {
			continue
		}
		v.SetConfigName(name)
		if err := v.ReadInConfig(); err == nil {
			found = true
			break
		}
	}
	if !found && !opts.OptionalFiles {
		return cfg, fmt.Errorf("config file not found in paths %v for names %v", opts.Paths, opts.Names)
	}

	if opts.EnvPrefix != "" {
		v.SetEnvPrefix(opts.EnvPrefix)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

func MustLoad[T any](opts Options) T {
	cfg, err := Load[T](opts)
	if err != nil {
		panic("config: " + err.Error())
	}
	return cfg
}
