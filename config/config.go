package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/transitplan/core/factory"
	"github.com/kilianp07/transitplan/core/metrics"
	"github.com/kilianp07/transitplan/core/model"
	"github.com/kilianp07/transitplan/infra/cache"
	"github.com/kilianp07/transitplan/infra/mqtt"
)

type Config struct {
	Planner PlannerConfig        `json:"planner"`
	Input   InputConfig          `json:"input"`
	Logging LoggingConfig        `json:"logging"`
	Metrics metrics.Config       `json:"metrics"`
	Store   factory.ModuleConfig `json:"store"`
	Cache   cache.Config         `json:"cache"`
	MQTT    mqtt.Config          `json:"mqtt"`
	HTTP    HTTPConfig           `json:"http"`
}

// Load reads a YAML or JSON file and applies K_ prefixed environment
// overrides, "__" separating nested keys (K_PLANNER__PARAMETERS__MAX_INTERLINING).
// An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	cfg := defaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// defaults is the base the file and environment are decoded onto, so a
// partial parameters block only replaces the fields it names.
func defaults() Config {
	return Config{Planner: PlannerConfig{Parameters: model.DefaultParameters()}}
}

// SetDefaults fills every section.
func (c *Config) SetDefaults() {
	c.Planner.SetDefaults()
	c.Logging.SetDefaults()
	c.HTTP.SetDefaults()
	if c.Store.Type == "" {
		c.Store.Type = "memory"
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Planner.Validate(); err != nil {
		return fmt.Errorf("planner: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.HTTP.Validate(); err != nil {
		return fmt.Errorf("http: %w", err)
	}
	return nil
}
