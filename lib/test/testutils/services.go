package testutils

import (
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/ether/wsclient-go/lib/api/services"
	"github.com/ether/wsclient-go/lib/models/service"
	"github.com/google/uuid"
)

func GenerateServiceName() string {
	return strings.ToLower(gofakeit.LetterN(6)) + "_" + strings.ReplaceAll(uuid.NewString()[:8], "-", "")
}

// GenerateServiceRequest returns a valid create request for a rest service at url.
func GenerateServiceRequest(url string) services.ServiceRequest {
	return services.ServiceRequest{
		Name:  GenerateServiceName(),
		Label: gofakeit.Company(),
		URL:   url,
		Type:  "rest",
		Settings: map[string]any{
			"headers": map[string]any{"X-Api-Key": gofakeit.UUID()},
		},
		Operations: map[string]service.Operation{
			"list":   {Label: "List items", Method: "GET", Path: "/items"},
			"create": {Label: "Create item", Method: "POST", Path: "/items"},
		},
	}
}
