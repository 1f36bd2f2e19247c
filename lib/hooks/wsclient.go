package hooks

import (
	"context"
	"maps"

	"github.com/ether/wsclient-go/lib/hooks/events"
	"github.com/ether/wsclient-go/lib/models/endpoint"
	"github.com/ether/wsclient-go/lib/models/service"
)

const (
	EndpointTypes        = "rules_endpoint_types"
	EndpointTypesAlter   = "rules_endpoint_types_alter"
	ServiceLoad          = "wsclient_service_load"
	ServicePresave       = "wsclient_service_presave"
	ServiceInsert        = "wsclient_service_insert"
	ServiceUpdate        = "wsclient_service_update"
	ServiceDelete        = "wsclient_service_delete"
	DefaultServices      = "default_wsclient_service"
	DefaultServicesAlter = "default_wsclient_service_alter"
)

// ServiceHandler implements one of the service lifecycle hooks.
type ServiceHandler func(ctx context.Context, event *events.ServiceContext) error

// ============== ENDPOINT TYPES ==============

func (h *Hook) EnqueueEndpointTypesHook(cb func() map[string]endpoint.Definition) string {
	return h.EnqueueHook(EndpointTypes, func(_ context.Context, event any) error {
		if typesCtx, ok := event.(*events.EndpointTypesContext); ok {
			typesCtx.Contributions = append(typesCtx.Contributions, cb())
		}
		return nil
	})
}

func (h *Hook) ExecuteEndpointTypesHooks(ctx context.Context) ([]map[string]endpoint.Definition, error) {
	typesCtx := &events.EndpointTypesContext{}
	if err := h.ExecuteHooks(ctx, EndpointTypes, typesCtx); err != nil {
		return nil, err
	}
	return typesCtx.Contributions, nil
}

// EnqueueEndpointTypesAlterHook registers a pure alter function. It receives a copy of the
// current set and whatever it returns becomes the input of the next alter handler.
func (h *Hook) EnqueueEndpointTypesAlterHook(cb func(types map[string]endpoint.Definition) map[string]endpoint.Definition) string {
	return h.EnqueueHook(EndpointTypesAlter, func(_ context.Context, event any) error {
		if alterCtx, ok := event.(*events.EndpointTypesAlterContext); ok {
			alterCtx.Types = cb(maps.Clone(alterCtx.Types))
		}
		return nil
	})
}

func (h *Hook) ExecuteEndpointTypesAlterHooks(ctx context.Context, types map[string]endpoint.Definition) (map[string]endpoint.Definition, error) {
	alterCtx := &events.EndpointTypesAlterContext{Types: maps.Clone(types)}
	if err := h.ExecuteHooks(ctx, EndpointTypesAlter, alterCtx); err != nil {
		return nil, err
	}
	return alterCtx.Types, nil
}

// ============== SERVICE LIFECYCLE ==============

func (h *Hook) EnqueueServiceLoadHook(cb func(ctx context.Context, event *events.ServiceLoadContext) error) string {
	return h.EnqueueHook(ServiceLoad, func(ctx context.Context, event any) error {
		if loadCtx, ok := event.(*events.ServiceLoadContext); ok {
			return cb(ctx, loadCtx)
		}
		return nil
	})
}

func (h *Hook) ExecuteServiceLoadHooks(ctx context.Context, services map[string]*service.ServiceDescription) error {
	return h.ExecuteHooks(ctx, ServiceLoad, &events.ServiceLoadContext{Services: services})
}

func (h *Hook) enqueueServiceHook(key string, cb ServiceHandler) string {
	return h.EnqueueHook(key, func(ctx context.Context, event any) error {
		if serviceCtx, ok := event.(*events.ServiceContext); ok {
			return cb(ctx, serviceCtx)
		}
		return nil
	})
}

func (h *Hook) EnqueueServicePresaveHook(cb ServiceHandler) string {
	return h.enqueueServiceHook(ServicePresave, cb)
}

func (h *Hook) EnqueueServiceInsertHook(cb ServiceHandler) string {
	return h.enqueueServiceHook(ServiceInsert, cb)
}

func (h *Hook) EnqueueServiceUpdateHook(cb ServiceHandler) string {
	return h.enqueueServiceHook(ServiceUpdate, cb)
}

func (h *Hook) EnqueueServiceDeleteHook(cb ServiceHandler) string {
	return h.enqueueServiceHook(ServiceDelete, cb)
}

func (h *Hook) ExecuteServicePresaveHooks(ctx context.Context, desc *service.ServiceDescription, isNew bool) error {
	return h.ExecuteHooks(ctx, ServicePresave, &events.ServiceContext{Service: desc, IsNew: isNew})
}

func (h *Hook) ExecuteServiceInsertHooks(ctx context.Context, desc *service.ServiceDescription) error {
	return h.ExecuteHooks(ctx, ServiceInsert, &events.ServiceContext{Service: desc, IsNew: true})
}

func (h *Hook) ExecuteServiceUpdateHooks(ctx context.Context, desc *service.ServiceDescription) error {
	return h.ExecuteHooks(ctx, ServiceUpdate, &events.ServiceContext{Service: desc})
}

func (h *Hook) ExecuteServiceDeleteHooks(ctx context.Context, desc *service.ServiceDescription) error {
	return h.ExecuteHooks(ctx, ServiceDelete, &events.ServiceContext{Service: desc})
}

// ============== DEFAULT SERVICES ==============

func (h *Hook) EnqueueDefaultServicesHook(cb func() map[string]service.ServiceDescription) string {
	return h.EnqueueHook(DefaultServices, func(_ context.Context, event any) error {
		if defaultsCtx, ok := event.(*events.DefaultServicesContext); ok {
			defaultsCtx.Contributions = append(defaultsCtx.Contributions, cb())
		}
		return nil
	})
}

func (h *Hook) ExecuteDefaultServicesHooks(ctx context.Context) ([]map[string]service.ServiceDescription, error) {
	defaultsCtx := &events.DefaultServicesContext{}
	if err := h.ExecuteHooks(ctx, DefaultServices, defaultsCtx); err != nil {
		return nil, err
	}
	return defaultsCtx.Contributions, nil
}

func (h *Hook) EnqueueDefaultServicesAlterHook(cb func(services map[string]service.ServiceDescription) map[string]service.ServiceDescription) string {
	return h.EnqueueHook(DefaultServicesAlter, func(_ context.Context, event any) error {
		if alterCtx, ok := event.(*events.DefaultServicesAlterContext); ok {
			alterCtx.Services = cb(cloneServices(alterCtx.Services))
		}
		return nil
	})
}

func (h *Hook) ExecuteDefaultServicesAlterHooks(ctx context.Context, services map[string]service.ServiceDescription) (map[string]service.ServiceDescription, error) {
	alterCtx := &events.DefaultServicesAlterContext{Services: cloneServices(services)}
	if err := h.ExecuteHooks(ctx, DefaultServicesAlter, alterCtx); err != nil {
		return nil, err
	}
	return alterCtx.Services, nil
}

func cloneServices(services map[string]service.ServiceDescription) map[string]service.ServiceDescription {
	cloned := make(map[string]service.ServiceDescription, len(services))
	for k, v := range services {
		cloned[k] = v.Clone()
	}
	return cloned
}
