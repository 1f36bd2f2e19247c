package ws_rest

import (
	"github.com/ether/wsclient-go/lib/endpoint"
	endpointmodel "github.com/ether/wsclient-go/lib/models/endpoint"
	"github.com/ether/wsclient-go/lib/plugins/interfaces"
)

type WsRestExtension struct {
	enabled bool
}

func (w *WsRestExtension) Name() string {
	return "ws_rest"
}

func (w *WsRestExtension) Description() string {
	return "Adds the JSON over HTTP endpoint type"
}

func (w *WsRestExtension) Init(store *interfaces.ExtensionStore) {
	options := store.HTTPOptions()
	logger := store.Logger.Named("rest")
	store.HookSystem.EnqueueEndpointTypesHook(func() map[string]endpointmodel.Definition {
		return map[string]endpointmodel.Definition{
			endpoint.RESTTypeName: endpoint.RESTDefinition(options, logger),
		}
	})
}

func (w *WsRestExtension) SetEnabled(enabled bool) {
	w.enabled = enabled
}

func (w *WsRestExtension) IsEnabled() bool {
	return w.enabled
}
