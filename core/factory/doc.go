// Package factory is the generic registry behind every pluggable backend:
// metrics sinks and run stores. A backend is selected by a
// type string and configured by a raw map that the factory decodes into a
// typed struct.
//
//	reg := factory.NewRegistry[store.RunStore]()
//	reg.Register("sqlite", func(conf map[string]any) (store.RunStore, error) {
//	    var c struct{ Path string `json:"path"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return store.NewSQLiteStore(c.Path)
//	})
//	s, err := reg.Create(factory.ModuleConfig{Type: "sqlite", Conf: map[string]any{"path": "runs.db"}})
package factory
