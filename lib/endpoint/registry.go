package endpoint

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/ether/wsclient-go/lib/hooks"
	endpointmodel "github.com/ether/wsclient-go/lib/models/endpoint"
	"github.com/ether/wsclient-go/lib/models/service"
	"go.uber.org/zap"
)

var (
	ErrRegistryFrozen      = errors.New("endpoint type registry is frozen")
	ErrUnknownEndpointType = errors.New("unknown endpoint type")
	ErrUnknownOperation    = errors.New("unknown operation")
)

type AlterFunc func(types map[string]endpointmodel.Definition) map[string]endpointmodel.Definition

// Registry holds the endpoint types contributed by extensions. Definitions are merged with
// last writer wins until Freeze, after which the set never changes.
type Registry struct {
	mu     sync.RWMutex
	types  map[string]endpointmodel.Definition
	alters []func(types map[string]endpointmodel.Definition) (map[string]endpointmodel.Definition, error)
	frozen bool
	logger *zap.SugaredLogger
}

func NewRegistry(logger *zap.SugaredLogger) *Registry {
	return &Registry{
		types:  make(map[string]endpointmodel.Definition),
		logger: logger,
	}
}

func (r *Registry) Register(defs map[string]endpointmodel.Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return ErrRegistryFrozen
	}
	for _, name := range slices.Sorted(maps.Keys(defs)) {
		def := defs[name]
		def.Name = name
		if _, ok := r.types[name]; ok {
			r.logger.Warnf("Endpoint type %s registered twice, the later definition wins", name)
		}
		r.types[name] = def
	}
	return nil
}

// Alter queues fn to run on the merged set when the registry is frozen.
func (r *Registry) Alter(fn AlterFunc) error {
	return r.queueAlter(func(types map[string]endpointmodel.Definition) (map[string]endpointmodel.Definition, error) {
		return fn(types), nil
	})
}

func (r *Registry) queueAlter(fn func(types map[string]endpointmodel.Definition) (map[string]endpointmodel.Definition, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return ErrRegistryFrozen
	}
	r.alters = append(r.alters, fn)
	return nil
}

// Collect registers the rules_endpoint_types contributions and queues the
// rules_endpoint_types_alter pipeline.
func (r *Registry) Collect(ctx context.Context, hookSystem *hooks.Hook) error {
	contributions, err := hookSystem.ExecuteEndpointTypesHooks(ctx)
	if err != nil {
		return err
	}
	for _, contribution := range contributions {
		if err := r.Register(contribution); err != nil {
			return err
		}
	}

	return r.queueAlter(func(types map[string]endpointmodel.Definition) (map[string]endpointmodel.Definition, error) {
		return hookSystem.ExecuteEndpointTypesAlterHooks(ctx, types)
	})
}

// Freeze applies the queued alter functions in order and makes the set immutable.
// Entries without a key or without a factory are dropped. The alter functions run
// without the registry lock held.
func (r *Registry) Freeze() error {
	r.mu.Lock()
	if r.frozen {
		r.mu.Unlock()
		return ErrRegistryFrozen
	}
	types := maps.Clone(r.types)
	alters := r.alters
	r.mu.Unlock()

	for _, alter := range alters {
		altered, err := alter(maps.Clone(types))
		if err != nil {
			return err
		}
		types = altered
	}

	frozen := make(map[string]endpointmodel.Definition, len(types))
	for name, def := range types {
		if name == "" || def.Factory == nil {
			r.logger.Warnf("Dropping invalid endpoint type %q", name)
			continue
		}
		def.Name = name
		frozen[name] = def
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return ErrRegistryFrozen
	}
	r.types = frozen
	r.alters = nil
	r.frozen = true
	r.logger.Infof("Endpoint types ready: %v", slices.Sorted(maps.Keys(frozen)))
	return nil
}

func (r *Registry) IsFrozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

func (r *Registry) Get(name string) (endpointmodel.Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.types[name]
	return def, ok
}

// Names returns the registered type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.types))
}

func (r *Registry) Definitions() map[string]endpointmodel.Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.types)
}

// NewEndpoint builds the endpoint of desc from its registered type.
func (r *Registry) NewEndpoint(desc *service.ServiceDescription) (endpointmodel.Endpoint, error) {
	def, ok := r.Get(desc.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEndpointType, desc.Type)
	}
	return def.Factory(desc)
}
