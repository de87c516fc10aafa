package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/warroomhq/warroom/go/internal/sports/base"
)

type Config struct {
	Sports struct {
		EnabledPlugins []string `yaml:"enabled_plugins"`
	} `yaml:"sports"`
	Draft struct {
		SchedulerBatchSize int32 `yaml:"scheduler_batch_size"`
	} `yaml:"draft"`
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if config.Draft.SchedulerBatchSize <= 0 {
		config.Draft.SchedulerBatchSize = 50
	}

	return &config, nil
}

// setupSportsPlugins verifies every enabled sport has a registered plugin.
func setupSportsPlugins(config *Config) (map[string]base.SportPlugin, error) {
	plugins := make(map[string]base.SportPlugin)
	for _, key := range config.Sports.EnabledPlugins {
		plg, err := base.GetPlugin(key)
		if err != nil {
			return nil, fmt.Errorf("failed to get plugin %s: %w", key, err)
		}
		plugins[key] = plg
	}
	return plugins, nil
}
