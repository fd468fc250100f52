package store

import (
	"fmt"

	"github.com/kilianp07/transitplan/core/factory"
)

var registry = factory.NewRegistry[RunStore]()

func init() {
	_ = registry.Register("memory", func(map[string]any) (RunStore, error) {
		return NewMemoryStore(), nil
	})
	_ = registry.Register("sqlite", func(conf map[string]any) (RunStore, error) {
		var c struct {
			Path string `json:"path"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Path == "" {
			return nil, fmt.Errorf("sqlite store requires path")
		}
		s, err := NewSQLiteStore(c.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
	_ = registry.Register("postgres", func(conf map[string]any) (RunStore, error) {
		var c struct {
			DSN string `json:"dsn"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.DSN == "" {
			return nil, fmt.Errorf("postgres store requires dsn")
		}
		s, err := NewPostgresStore(c.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}

// New builds the store described by cfg. An empty type selects the memory store.
func New(cfg factory.ModuleConfig) (RunStore, error) {
	if cfg.Type == "" {
		return NewMemoryStore(), nil
	}
	return registry.Create(cfg)
}

// Types lists the registered store types.
func Types() []string { return registry.Types() }
