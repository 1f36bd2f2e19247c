package ws_files

import (
	"github.com/ether/wsclient-go/lib/models/service"
	"github.com/ether/wsclient-go/lib/plugins/interfaces"
)

// WsFilesExtension contributes default services read from the HCL file named by
// extensions.servicesFile.
type WsFilesExtension struct {
	enabled bool
}

func (w *WsFilesExtension) Name() string {
	return "ws_files"
}

func (w *WsFilesExtension) Description() string {
	return "Provides default services declared in an HCL file"
}

func (w *WsFilesExtension) Init(store *interfaces.ExtensionStore) {
	logger := store.Logger.Named("files")
	path := store.RetrievedSettings.Extensions.ServicesFile
	if path == "" {
		logger.Warn("ws_files is enabled but extensions.servicesFile is empty")
		return
	}

	services, err := LoadServicesFile(path)
	if err != nil {
		logger.Errorf("Error loading default services: %v", err)
		return
	}
	logger.Infof("Loaded %d default services from %s", len(services), path)

	store.HookSystem.EnqueueDefaultServicesHook(func() map[string]service.ServiceDescription {
		contributed := make(map[string]service.ServiceDescription, len(services))
		for name, desc := range services {
			contributed[name] = desc.Clone()
		}
		return contributed
	})
}

func (w *WsFilesExtension) SetEnabled(enabled bool) {
	w.enabled = enabled
}

func (w *WsFilesExtension) IsEnabled() bool {
	return w.enabled
}
