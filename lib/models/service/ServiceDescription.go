package service

import (
	"encoding/json"
	"maps"
	"regexp"
)

// MachineNameRegex matches the names services and default keys are allowed to use.
var MachineNameRegex = regexp.MustCompile(`^[a-z0-9_]+$`)

func IsMachineName(name string) bool {
	return MachineNameRegex.MatchString(name)
}

type Status string

const (
	StatusCustom     Status = "custom"
	StatusDefault    Status = "default"
	StatusOverridden Status = "overridden"
)

// Operation is a single remote call a service exposes.
type Operation struct {
	Label  string `json:"label"`
	Method string `json:"method,omitempty"`
	Path   string `json:"path,omitempty"`
}

// ServiceDescription describes one configured remote web service.
// Extra is owned by extensions: load hooks fill it and the datastores never persist it.
type ServiceDescription struct {
	ID         string               `json:"id"`
	Name       string               `json:"name" validate:"required,max=128,machine_name"`
	Label      string               `json:"label" validate:"required,max=255"`
	URL        string               `json:"url" validate:"required,url"`
	Type       string               `json:"type" validate:"required"`
	Settings   map[string]any       `json:"settings,omitempty"`
	Operations map[string]Operation `json:"operations,omitempty"`
	Status     Status               `json:"status"`
	Extra      map[string]any       `json:"extra,omitempty"`
	CreatedAt  int64                `json:"createdAt"`
	UpdatedAt  int64                `json:"updatedAt"`
}

// Clone returns a copy that shares no maps or slices with s, nested ones included.
func (s ServiceDescription) Clone() ServiceDescription {
	s.Settings = cloneMap(s.Settings)
	s.Operations = maps.Clone(s.Operations)
	s.Extra = cloneMap(s.Extra)
	return s
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	cloned := make(map[string]any, len(m))
	for k, v := range m {
		cloned[k] = cloneValue(v)
	}
	return cloned
}

func cloneValue(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		return cloneMap(typed)
	case []any:
		cloned := make([]any, len(typed))
		for i, item := range typed {
			cloned[i] = cloneValue(item)
		}
		return cloned
	case map[string]string:
		return maps.Clone(typed)
	case []string:
		return append([]string(nil), typed...)
	default:
		return v
	}
}

// NormalizeSettings returns settings in the shape a JSON decode produces, numbers as
// float64 and nested values as map[string]any or []any, so every datastore reads
// back what was saved.
func NormalizeSettings(settings map[string]any) (map[string]any, error) {
	if settings == nil {
		return nil, nil
	}
	encoded, err := json.Marshal(settings)
	if err != nil {
		return nil, err
	}
	var normalized map[string]any
	if err := json.Unmarshal(encoded, &normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

func (s ServiceDescription) IsDefault() bool {
	return s.Status == StatusDefault || s.Status == StatusOverridden
}
