package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type SchedulerConfig struct {
	Port                                     int            `mapstructure:"port"`
	RoundRobinTimeQuantum                    int            `mapstructure:"-"`
	MultilevelFeedbackQueueLevelsTimeQuantum []int          `mapstructure:"-"`
	Memory                                   MemoryConfig   `mapstructure:"memory"`
	Logging                                  LoggingConfig  `mapstructure:"logging"`
	Metrics                                  MetricsConfig  `mapstructure:"metrics"`
	Tracing                                  TracingConfig  `mapstructure:"tracing"`
	Report                                   ReportConfig   `mapstructure:"report"`
	Scenario                                 ScenarioConfig `mapstructure:"scenario"`
}

type MemoryConfig struct {
	TotalSize int    `mapstructure:"total_size"`
	Strategy  string `mapstructure:"strategy"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port"`
	Path    string `mapstructure:"path"`
}

type TracingConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Output  string `mapstructure:"output"`
}

type ReportConfig struct {
	URL string `mapstructure:"url"`
}

// ScenarioConfig points at an optional YAML file of extra scenarios.
type ScenarioConfig struct {
	URL string `mapstructure:"url"`
}

var once sync.Once
var config *SchedulerConfig

// GetSchedulerConfig loads the process-wide configuration on first use. A broken config
// file is fatal here because nothing can run without it.
func GetSchedulerConfig() *SchedulerConfig {
	once.Do(func() {
		cfg, err := Load(os.Getenv("CONFIG_FILE_PATH"))
		if err != nil {
			logrus.Fatalln(err)
		}
		config = cfg
	})

	return config
}

// Load builds a configuration from defaults, an optional config file and OSSIM_* environment
// variables. An empty path searches ./config.yaml and ./config/config.yaml; a missing file is
// not an error.
func Load(path string) (*SchedulerConfig, error) {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		logrus.Info("config file not found, using defaults and environment variables")
	}
	return decode(v)
}

// Watch reloads the configuration whenever the file behind path changes and hands the new
// value to onChange. A reload that fails validation is logged and dropped.
func Watch(path string, onChange func(*SchedulerConfig)) error {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		logrus.WithField("file", e.Name).Info("config file changed")
		cfg, err := decode(v)
		if err != nil {
			logrus.WithError(err).Warn("config reload rejected")
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./")
		v.AddConfigPath("./config")
	}
	v.SetEnvPrefix("OSSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 9095)
	v.SetDefault("scheduler.round_robin.time_quantum", 2)
	v.SetDefault("scheduler.multilevel_feedback_queue.levels_time_quantum", []int{2, 4})
	v.SetDefault("memory.total_size", 1024)
	v.SetDefault("memory.strategy", "first_fit")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9096)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.output", "")
	v.SetDefault("report.url", "")
	v.SetDefault("scenario.url", "")
}

func decode(v *viper.Viper) (*SchedulerConfig, error) {
	cfg := &SchedulerConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Port = v.GetInt("port")
	cfg.RoundRobinTimeQuantum = v.GetInt("scheduler.round_robin.time_quantum")
	cfg.MultilevelFeedbackQueueLevelsTimeQuantum = v.GetIntSlice("scheduler.multilevel_feedback_queue.levels_time_quantum")
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *SchedulerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Port)
	}
	if c.RoundRobinTimeQuantum <= 0 {
		return fmt.Errorf("invalid round robin time quantum: %d", c.RoundRobinTimeQuantum)
	}
	if len(c.MultilevelFeedbackQueueLevelsTimeQuantum) == 0 {
		return fmt.Errorf("multilevel feedback queue needs at least one level")
	}
	for i, q := range c.MultilevelFeedbackQueueLevelsTimeQuantum {
		if q <= 0 {
			return fmt.Errorf("invalid time quantum %d for level %d", q, i)
		}
	}
	if c.Memory.TotalSize <= 0 {
		return fmt.Errorf("invalid total memory size: %d", c.Memory.TotalSize)
	}
	switch c.Memory.Strategy {
	case "first_fit", "best_fit", "worst_fit", "next_fit":
	default:
		return fmt.Errorf("invalid memory strategy: %q", c.Memory.Strategy)
	}
	if c.Metrics.Enabled && (c.Metrics.Port <= 0 || c.Metrics.Port > 65535) {
		return fmt.Errorf("invalid metrics port: %d", c.Metrics.Port)
	}
	return nil
}
