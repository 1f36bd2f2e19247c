package endpoint

import (
	"context"

	"github.com/ether/wsclient-go/lib/models/service"
)

// Endpoint is a connection to one remote service, built per service description.
type Endpoint interface {
	Call(ctx context.Context, operation string, args map[string]any) (any, error)
	Operations() []string
	Close() error
}

type Factory func(desc *service.ServiceDescription) (Endpoint, error)

// Definition is an endpoint type contributed by an extension.
type Definition struct {
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	Factory Factory `json:"-"`
}
