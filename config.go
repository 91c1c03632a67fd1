package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sirkon/streamtrace/internal/emit"
)

const envPrefix = "STREAMTRACE"

// config is CLI settings. Values are taken from flags, STREAMTRACE_*
// environment variables and an optional YAML file, in this order.
//
//	language: kotlin
//	log:
//	  level: debug
//	  format: json
type config struct {
	Language emit.Language
	Log      logConfig
}

type logConfig struct {
	Level  string
	Format string
}

func loadConfig(cmd *cobra.Command) (*config, error) {
	v := viper.New()
	v.SetDefault("language", emit.LanguageJava.String())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, flag := range map[string]string{
		"language":   "language",
		"log.level":  "log-level",
		"log.format": "log-format",
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config path: %w", err)
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg config
	if err := cfg.Language.UnmarshalText([]byte(v.GetString("language"))); err != nil {
		return nil, fmt.Errorf("parse language: %w", err)
	}
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")

	return &cfg, nil
}
