package ws_webhooks

import (
	"github.com/ether/wsclient-go/lib/endpoint"
	endpointmodel "github.com/ether/wsclient-go/lib/models/endpoint"
	"github.com/ether/wsclient-go/lib/models/service"
	"github.com/ether/wsclient-go/lib/plugins/interfaces"
)

const MasterServiceName = "master"

type WsWebHooksExtension struct {
	enabled bool
}

func (w *WsWebHooksExtension) Name() string {
	return "ws_webhooks"
}

func (w *WsWebHooksExtension) Description() string {
	return "Adds the rules web hook endpoint type and the master site service"
}

func (w *WsWebHooksExtension) Init(store *interfaces.ExtensionStore) {
	options := store.HTTPOptions()
	logger := store.Logger.Named("webhooks")
	store.HookSystem.EnqueueEndpointTypesHook(func() map[string]endpointmodel.Definition {
		return map[string]endpointmodel.Definition{
			endpoint.WebHookTypeName: endpoint.WebHookDefinition(options, logger),
		}
	})
	store.HookSystem.EnqueueDefaultServicesHook(func() map[string]service.ServiceDescription {
		return map[string]service.ServiceDescription{
			MasterServiceName: {
				Label: "The master site.",
				URL:   "http://master.example.com",
				Type:  endpoint.RESTTypeName,
			},
		}
	})
}

func (w *WsWebHooksExtension) SetEnabled(enabled bool) {
	w.enabled = enabled
}

func (w *WsWebHooksExtension) IsEnabled() bool {
	return w.enabled
}
