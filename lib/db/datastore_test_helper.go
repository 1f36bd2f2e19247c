package db

import (
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/ether/wsclient-go/lib/models/service"
	"github.com/google/uuid"
)

func CreateRandomService() service.ServiceDescription {
	name := strings.ToLower(gofakeit.LetterN(8)) + "_" + uuid.NewString()[:8]
	return service.ServiceDescription{
		ID:    uuid.NewString(),
		Name:  name,
		Label: gofakeit.Company(),
		URL:   gofakeit.URL(),
		Type:  "rest",
		Settings: map[string]any{
			"token": gofakeit.UUID(),
		},
		Operations: map[string]service.Operation{
			"list": {Label: "List items", Method: "GET", Path: "/items"},
		},
		Status:    service.StatusCustom,
		CreatedAt: gofakeit.Int64(),
	}
}
