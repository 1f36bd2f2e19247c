package events

import "github.com/ether/wsclient-go/lib/models/service"

// ServiceLoadContext is the context for the wsclient_service_load hook.
// Services is keyed by id.
type ServiceLoadContext struct {
	Services map[string]*service.ServiceDescription
}

// ServiceContext is the context for the presave, insert, update and delete hooks.
type ServiceContext struct {
	Service *service.ServiceDescription
	IsNew   bool
}

// DefaultServicesContext collects the maps returned by each default_wsclient_service handler.
type DefaultServicesContext struct {
	Contributions []map[string]service.ServiceDescription
}

// DefaultServicesAlterContext carries the snapshot passed along the default_wsclient_service_alter pipeline.
type DefaultServicesAlterContext struct {
	Services map[string]service.ServiceDescription
}
