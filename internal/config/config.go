package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sky-flux/timetable"
	"github.com/sky-flux/timetable/predictor"
	"github.com/sky-flux/timetable/store"
)

// DefaultPath is read when no path is given and STUDYPLAN_CONFIG is unset.
const DefaultPath = "studyplan.yaml"

type StoreConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

type Config struct {
	LogMode  string                   `yaml:"log_mode"`
	Seed     int64                    `yaml:"seed"`
	Store    StoreConfig              `yaml:"store"`
	Schedule timetable.ScheduleConfig `yaml:"schedule"`
	Trainer  predictor.TrainerConfig  `yaml:"trainer"`
}

func defaultConfig() *Config {
	return &Config{
		LogMode: "development",
		Seed:    42,
		Store: StoreConfig{
			Driver: store.DriverCSV,
			Path:   "study_data.csv",
		},
		Schedule: timetable.DefaultScheduleConfig(),
	}
}

// Load reads the YAML file at path over the defaults and applies environment
// overrides. An empty path falls back to STUDYPLAN_CONFIG, then to
// DefaultPath if it exists; with no file the defaults are used.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	explicit := true
	if path == "" {
		path = strings.TrimSpace(os.Getenv("STUDYPLAN_CONFIG"))
	}
	if path == "" {
		path, explicit = DefaultPath, false
	}

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && !explicit:
	case err != nil:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv("STUDYPLAN_LOG_MODE")); v != "" {
		cfg.LogMode = v
	}
	if v := strings.TrimSpace(os.Getenv("STUDYPLAN_STORE_DRIVER")); v != "" {
		cfg.Store.Driver = v
	}
	if v := strings.TrimSpace(os.Getenv("STUDYPLAN_STORE_PATH")); v != "" {
		cfg.Store.Path = v
	}
	if v := strings.TrimSpace(os.Getenv("STUDYPLAN_SEED")); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("config: STUDYPLAN_SEED: %w", err)
		}
		cfg.Seed = seed
	}

	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	switch cfg.Store.Driver {
	case "":
		cfg.Store.Driver = store.DriverCSV
	case store.DriverCSV, store.DriverSQLite:
	default:
		return nil, fmt.Errorf("config: invalid store.driver=%q", cfg.Store.Driver)
	}
	if strings.TrimSpace(cfg.Store.Path) == "" {
		return nil, errors.New("config: store.path is required")
	}
	if _, err := timetable.NewBuilder(cfg.Schedule); err != nil {
		return nil, fmt.Errorf("config: schedule: %w", err)
	}
	return cfg, nil
}
