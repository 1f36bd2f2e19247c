package services

import "github.com/ether/wsclient-go/lib/models/service"

// ServiceRequest is the body of create and update calls. Id, status and timestamps are
// owned by the server and cannot be set by clients.
type ServiceRequest struct {
	Name       string                       `json:"name" validate:"required"`
	Label      string                       `json:"label" validate:"required"`
	URL        string                       `json:"url" validate:"required"`
	Type       string                       `json:"type" validate:"required"`
	Settings   map[string]any               `json:"settings"`
	Operations map[string]service.Operation `json:"operations"`
}

func (r ServiceRequest) apply(desc *service.ServiceDescription) {
	desc.Name = r.Name
	desc.Label = r.Label
	desc.URL = r.URL
	desc.Type = r.Type
	desc.Settings = r.Settings
	desc.Operations = r.Operations
}

// InvokeRequest calls one operation of a service.
type InvokeRequest struct {
	Operation string         `json:"operation" validate:"required"`
	Arguments map[string]any `json:"arguments"`
}

type InvokeResponse struct {
	Result any `json:"result"`
}
