package plugins

import (
	"github.com/ether/wsclient-go/lib/plugins/interfaces"
	"github.com/ether/wsclient-go/lib/plugins/ws_files"
	"github.com/ether/wsclient-go/lib/plugins/ws_rest"
	"github.com/ether/wsclient-go/lib/plugins/ws_webhooks"
)

// RegisteredExtensions lists every compiled-in extension in initialisation order.
func RegisteredExtensions() []interfaces.Extension {
	return []interfaces.Extension{
		&ws_rest.WsRestExtension{},
		&ws_webhooks.WsWebHooksExtension{},
		&ws_files.WsFilesExtension{},
	}
}

// InitExtensions initialises the extensions enabled in the settings and returns all of them.
func InitExtensions(store *interfaces.ExtensionStore) []interfaces.Extension {
	extensions := RegisteredExtensions()
	for _, extension := range extensions {
		if store.RetrievedSettings.IsExtensionEnabled(extension.Name()) {
			store.Logger.Infof("Loading extension: %s", extension.Name())
			extension.Init(store)
			extension.SetEnabled(true)
		}
	}
	return extensions
}
