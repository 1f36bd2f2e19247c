package endpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"

	endpointmodel "github.com/ether/wsclient-go/lib/models/endpoint"
	"github.com/ether/wsclient-go/lib/models/service"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

const RESTTypeName = "rest"

// RESTEndpoint calls JSON over HTTP services. Each operation maps to a method and a path
// relative to the service url.
type RESTEndpoint struct {
	desc   service.ServiceDescription
	base   *url.URL
	client *retryablehttp.Client
}

func NewRESTFactory(options HTTPOptions, logger *zap.SugaredLogger) endpointmodel.Factory {
	return func(desc *service.ServiceDescription) (endpointmodel.Endpoint, error) {
		base, err := parseServiceURL(desc.URL)
		if err != nil {
			return nil, err
		}
		return &RESTEndpoint{
			desc:   desc.Clone(),
			base:   base,
			client: newHTTPClient(options, logger.With("service", desc.Name)),
		}, nil
	}
}

func RESTDefinition(options HTTPOptions, logger *zap.SugaredLogger) endpointmodel.Definition {
	return endpointmodel.Definition{
		Name:    RESTTypeName,
		Label:   "REST",
		Factory: NewRESTFactory(options, logger),
	}
}

func (e *RESTEndpoint) Operations() []string {
	return slices.Sorted(maps.Keys(e.desc.Operations))
}

func (e *RESTEndpoint) Call(ctx context.Context, operation string, args map[string]any) (any, error) {
	op, ok := e.desc.Operations[operation]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, operation)
	}

	method := strings.ToUpper(op.Method)
	if method == "" {
		method = http.MethodGet
	}
	target := e.base.JoinPath(op.Path)

	var body any
	switch method {
	case http.MethodGet, http.MethodDelete, http.MethodHead:
		query := target.Query()
		for key, value := range args {
			query.Set(key, fmt.Sprint(value))
		}
		target.RawQuery = query.Encode()
	default:
		if len(args) > 0 {
			encoded, err := json.Marshal(args)
			if err != nil {
				return nil, fmt.Errorf("error encoding arguments: %w", err)
			}
			body = encoded
		}
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	applyHeaders(req, e.desc.Settings)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s %s: %w", method, target.Redacted(), err)
	}
	return decodeResponse(resp)
}

func (e *RESTEndpoint) Close() error {
	e.client.HTTPClient.CloseIdleConnections()
	return nil
}

var _ endpointmodel.Endpoint = (*RESTEndpoint)(nil)
