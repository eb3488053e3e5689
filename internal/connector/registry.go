package connector

import (
	"fmt"
	"sort"
	"sync"
)

// Factory is a function that creates a new Connector instance.
type Factory func() Connector

// Registry maps driver identifiers to connector factories. It hands out a
// freshly connected Connector per Open call; connections are never pooled
// or shared across generation runs at this layer.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// RegisterDriver registers a connector factory for a driver type.
func (r *Registry) RegisterDriver(driver string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[driver] = factory
}

// Open resolves the driver, merges credentials, sanitizes the DSN, and
// connects. The caller owns the returned Connector and must Disconnect it.
func (r *Registry) Open(cfg ConnectionConfig) (Connector, error) {
	r.mu.RLock()
	factory, ok := r.factories[cfg.Driver]
	r.mu.RUnlock()
	if !ok {
		return nil, &ConnectionError{
			Driver: cfg.Driver,
			Err:    fmt.Errorf("unsupported driver (available: %v)", r.Drivers()),
		}
	}

	cfg.DSN = WithCredentials(cfg.Driver, cfg.DSN, cfg.User, cfg.Password)
	cfg.DSN = SanitizeDSN(cfg.Driver, cfg.DSN)

	conn := factory()
	if err := conn.Connect(cfg); err != nil {
		return nil, &ConnectionError{Driver: cfg.Driver, Err: err}
	}
	return conn, nil
}

// Drivers returns the registered driver identifiers, sorted.
func (r *Registry) Drivers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	drivers := make([]string, 0, len(r.factories))
	for d := range r.factories {
		drivers = append(drivers, d)
	}
	sort.Strings(drivers)
	return drivers
}
