package endpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"slices"

	endpointmodel "github.com/ether/wsclient-go/lib/models/endpoint"
	"github.com/ether/wsclient-go/lib/models/service"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

const WebHookTypeName = "rules_web_hook"

// WebHookEndpoint posts every call to the service url as
// {"operation": name, "arguments": {...}}.
type WebHookEndpoint struct {
	desc   service.ServiceDescription
	target string
	client *retryablehttp.Client
}

type webHookPayload struct {
	Operation string         `json:"operation"`
	Arguments map[string]any `json:"arguments"`
}

func NewWebHookFactory(options HTTPOptions, logger *zap.SugaredLogger) endpointmodel.Factory {
	return func(desc *service.ServiceDescription) (endpointmodel.Endpoint, error) {
		target, err := parseServiceURL(desc.URL)
		if err != nil {
			return nil, err
		}
		return &WebHookEndpoint{
			desc:   desc.Clone(),
			target: target.String(),
			client: newHTTPClient(options, logger.With("service", desc.Name)),
		}, nil
	}
}

func WebHookDefinition(options HTTPOptions, logger *zap.SugaredLogger) endpointmodel.Definition {
	return endpointmodel.Definition{
		Name:    WebHookTypeName,
		Label:   "Rules Web Hooks",
		Factory: NewWebHookFactory(options, logger),
	}
}

func (e *WebHookEndpoint) Operations() []string {
	return slices.Sorted(maps.Keys(e.desc.Operations))
}

// Call accepts any operation unless the description declares a list of them.
func (e *WebHookEndpoint) Call(ctx context.Context, operation string, args map[string]any) (any, error) {
	if len(e.desc.Operations) > 0 {
		if _, ok := e.desc.Operations[operation]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, operation)
		}
	}
	if args == nil {
		args = map[string]any{}
	}

	encoded, err := json.Marshal(webHookPayload{Operation: operation, Arguments: args})
	if err != nil {
		return nil, fmt.Errorf("error encoding arguments: %w", err)
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, e.target, encoded)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	applyHeaders(req, e.desc.Settings)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling web hook %s: %w", e.desc.Name, err)
	}
	return decodeResponse(resp)
}

func (e *WebHookEndpoint) Close() error {
	e.client.HTTPClient.CloseIdleConnections()
	return nil
}

var _ endpointmodel.Endpoint = (*WebHookEndpoint)(nil)
