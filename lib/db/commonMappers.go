package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ether/wsclient-go/lib/models/service"
)

var serviceColumns = []string{
	"id", "name", "label", "url", "type", "settings", "operations", "status", "created_at", "updated_at",
}

type Reader interface {
	Scan(dest ...any) error
}

func ReadToServiceDescription(reader Reader) (*service.ServiceDescription, error) {
	var desc service.ServiceDescription
	var settings, operations sql.NullString
	var status string

	if err := reader.Scan(&desc.ID, &desc.Name, &desc.Label, &desc.URL, &desc.Type,
		&settings, &operations, &status, &desc.CreatedAt, &desc.UpdatedAt,
	); err != nil {
		return nil, err
	}
	desc.Status = service.Status(status)

	if settings.Valid {
		if err := json.Unmarshal([]byte(settings.String), &desc.Settings); err != nil {
			return nil, fmt.Errorf("error unmarshaling settings: %w", err)
		}
	}
	if operations.Valid {
		if err := json.Unmarshal([]byte(operations.String), &desc.Operations); err != nil {
			return nil, fmt.Errorf("error unmarshaling operations: %w", err)
		}
	}
	return &desc, nil
}

// serviceValues returns the column values of desc in serviceColumns order.
func serviceValues(desc service.ServiceDescription) ([]any, error) {
	settings, err := json.Marshal(desc.Settings)
	if err != nil {
		return nil, fmt.Errorf("error marshaling settings: %w", err)
	}
	operations, err := json.Marshal(desc.Operations)
	if err != nil {
		return nil, fmt.Errorf("error marshaling operations: %w", err)
	}
	return []any{
		desc.ID, desc.Name, desc.Label, desc.URL, desc.Type,
		string(settings), string(operations), string(desc.Status), desc.CreatedAt, desc.UpdatedAt,
	}, nil
}
