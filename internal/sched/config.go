package sched

import (
	"os"

	yaml "github.com/goccy/go-yaml"
)

// Config mirrors config.yml.
type Config struct {
	MaxTasks        int    `yaml:"max_tasks"`         // hard ceiling on pending tasks, 32 by default
	SleepAccuracyUS uint64 `yaml:"sleep_accuracy_us"` // microsecond-sleep accuracy bound, 16383 by default
	TraceCSV        string `yaml:"trace_csv"`         // optional CSV event log path, empty = disabled
}

// DefaultMaxTasks reflects the constrained memory of the original target:
// the store never holds more tasks than this by default.
const DefaultMaxTasks = 32

// If the config file is not found, we use default values.
func defaultConfig() Config {
	return Config{
		MaxTasks:        DefaultMaxTasks,
		SleepAccuracyUS: DefaultSleepAccuracyUS,
	}
}

// Load reads YAML and overrides defaults; empty path = defaults only.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	_ = yaml.Unmarshal(data, &cfg)

	// sanity clamps
	if cfg.MaxTasks <= 0 {
		cfg.MaxTasks = DefaultMaxTasks
	}
	if cfg.SleepAccuracyUS == 0 {
		cfg.SleepAccuracyUS = DefaultSleepAccuracyUS
	}

	return cfg
}
