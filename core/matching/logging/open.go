package logging

import (
	"github.com/inakineitor/algo-comp-2023/core/factory"
)

var storeRegistry = factory.NewRegistry[RunStore]()

func init() {
	_ = RegisterRunStore("jsonl", func(conf map[string]any) (RunStore, error) {
		var c Config
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewJSONLStore(c.Path)
	})
	_ = RegisterRunStore("rotating", func(conf map[string]any) (RunStore, error) {
		var c Config
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewRotatingJSONLStore(c.Path, c.MaxSizeMB, c.MaxBackups, c.MaxAgeDays)
	})
	_ = RegisterRunStore("sqlite", func(conf map[string]any) (RunStore, error) {
		var c Config
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewSQLiteStore(c.Path)
	})
}

// RegisterRunStore adds a store factory identified by backend name.
func RegisterRunStore(name string, f factory.Factory[RunStore]) error {
	return storeRegistry.Register(name, f)
}

// Open creates the store selected by cfg.Backend.
func Open(cfg Config) (RunStore, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return storeRegistry.Create(factory.ModuleConfig{
		Type: cfg.Backend,
		Conf: map[string]any{
			"path":         cfg.Path,
			"max_size_mb":  cfg.MaxSizeMB,
			"max_backups":  cfg.MaxBackups,
			"max_age_days": cfg.MaxAgeDays,
		},
	})
}
