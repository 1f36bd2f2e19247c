package events

import "github.com/ether/wsclient-go/lib/models/endpoint"

// EndpointTypesContext collects the definitions returned by each rules_endpoint_types handler,
// one map per handler in registration order.
type EndpointTypesContext struct {
	Contributions []map[string]endpoint.Definition
}

// EndpointTypesAlterContext carries the snapshot passed along the rules_endpoint_types_alter pipeline.
type EndpointTypesAlterContext struct {
	Types map[string]endpoint.Definition
}
