// Package config holds runtime settings for the engine, the shell, and the
// autoplay tools. Settings come from defaults, an optional YAML file, and
// FOURUP_-prefixed environment variables, in increasing precedence.
package config

import (
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	SearchDepth     int    `mapstructure:"search-depth"`
	MLModelPath     string `mapstructure:"ml-model-path"`
	AutoplayGames   int    `mapstructure:"autoplay-games"`
	AutoplayThreads int    `mapstructure:"autoplay-threads"`
	GameLogPath     string `mapstructure:"game-log-path"`
	Debug           bool   `mapstructure:"debug"`
}

// Load reads configuration, optionally merging a YAML file. Pass "" to use
// only defaults and the environment.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("search-depth", 3)
	v.SetDefault("ml-model-path", "./data/models/fourup.onnx")
	v.SetDefault("autoplay-games", 500)
	v.SetDefault("autoplay-threads", runtime.NumCPU())
	v.SetDefault("game-log-path", "./games.csv")
	v.SetDefault("debug", false)

	v.SetEnvPrefix("fourup")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
