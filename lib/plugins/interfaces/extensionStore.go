package interfaces

import (
	"time"

	"github.com/ether/wsclient-go/lib/endpoint"
	"github.com/ether/wsclient-go/lib/hooks"
	"github.com/ether/wsclient-go/lib/settings"
	"go.uber.org/zap"
)

type ExtensionStore struct {
	Logger            *zap.SugaredLogger
	HookSystem        *hooks.Hook
	RetrievedSettings *settings.Settings
}

// HTTPOptions returns the client options endpoint types should use for remote calls.
func (s *ExtensionStore) HTTPOptions() endpoint.HTTPOptions {
	return endpoint.HTTPOptions{
		Timeout:      time.Duration(s.RetrievedSettings.HTTP.TimeoutSeconds) * time.Second,
		RetryMax:     s.RetrievedSettings.HTTP.RetryMax,
		RetryWaitMin: 500 * time.Millisecond,
		RetryWaitMax: 5 * time.Second,
	}
}
