package format

import (
	"github.com/thirteen37/configbridge/document"
	"github.com/thirteen37/configbridge/logging"
)

// Registry maps formats to adapters.
//
// Registration is expected to finish before the first lookup. The registry
// does no locking: concurrent lookups are safe, registering while lookups
// are in flight is not.
type Registry struct {
	adapters []Adapter
	logger   logging.Logger
}

// NewRegistry creates an empty registry. A nil logger discards output.
func NewRegistry(logger logging.Logger) *Registry {
	return &Registry{logger: logging.OrNop(logger)}
}

// Register adds an adapter. If an adapter for the same format is already
// registered, the newer one wins for Find.
func (r *Registry) Register(a Adapter) {
	r.adapters = append(r.adapters, a)
	r.logger.Debug("registered adapter", "name", a.Name(), "format", a.Format().String())
}

// Find returns the adapter for f, or nil.
func (r *Registry) Find(f document.Format) Adapter {
	for i := len(r.adapters) - 1; i >= 0; i-- {
		if r.adapters[i].Format() == f {
			return r.adapters[i]
		}
	}
	return nil
}

// Lookup is Find with an error for unregistered formats.
func (r *Registry) Lookup(f document.Format) (Adapter, error) {
	a := r.Find(f)
	if a == nil {
		return nil, document.Unregistered(f)
	}
	return a, nil
}

// FindByName returns the adapter with the given name, or nil.
func (r *Registry) FindByName(name string) Adapter {
	for i := len(r.adapters) - 1; i >= 0; i-- {
		if r.adapters[i].Name() == name {
			return r.adapters[i]
		}
	}
	return nil
}

// Adapters returns the registered adapters in registration order.
func (r *Registry) Adapters() []Adapter {
	out := make([]Adapter, len(r.adapters))
	copy(out, r.adapters)
	return out
}
