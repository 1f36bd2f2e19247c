package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/ether/wsclient-go/lib/db"
	"github.com/ether/wsclient-go/lib/endpoint"
	"github.com/ether/wsclient-go/lib/hooks"
	servicemodel "github.com/ether/wsclient-go/lib/models/service"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidService = errors.New("invalid service description")

// Manager is the persistence boundary for service descriptions. Every read runs the
// load hook and every write runs the presave hook followed by insert or update.
type Manager struct {
	store    db.DataStore
	hook     *hooks.Hook
	registry *endpoint.Registry
	validate *validator.Validate
	logger   *zap.SugaredLogger
}

// RegisterValidations adds the machine_name tag used by service descriptions to v.
func RegisterValidations(v *validator.Validate) {
	_ = v.RegisterValidation("machine_name", func(fl validator.FieldLevel) bool {
		return servicemodel.IsMachineName(fl.Field().String())
	})
}

func NewManager(store db.DataStore, hook *hooks.Hook, registry *endpoint.Registry, validate *validator.Validate, logger *zap.SugaredLogger) *Manager {
	RegisterValidations(validate)
	return &Manager{
		store:    store,
		hook:     hook,
		registry: registry,
		validate: validate,
		logger:   logger,
	}
}

// Load returns the descriptions of ids. Ids that do not exist are left out.
func (m *Manager) Load(ctx context.Context, ids []string) (map[string]*servicemodel.ServiceDescription, error) {
	stored, err := m.store.GetServices(ids)
	if err != nil {
		return nil, err
	}
	loaded := make(map[string]*servicemodel.ServiceDescription, len(stored))
	for id, desc := range stored {
		loaded[id] = &desc
	}
	if err := m.hook.ExecuteServiceLoadHooks(ctx, loaded); err != nil {
		return nil, err
	}
	return loaded, nil
}

func (m *Manager) Get(ctx context.Context, id string) (*servicemodel.ServiceDescription, error) {
	loaded, err := m.Load(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	desc, ok := loaded[id]
	if !ok {
		return nil, db.ErrServiceNotFound
	}
	return desc, nil
}

func (m *Manager) LoadByName(ctx context.Context, name string) (*servicemodel.ServiceDescription, error) {
	desc, err := m.store.GetServiceByName(name)
	if err != nil {
		return nil, err
	}
	if err := m.hook.ExecuteServiceLoadHooks(ctx, map[string]*servicemodel.ServiceDescription{desc.ID: desc}); err != nil {
		return nil, err
	}
	return desc, nil
}

// List returns every stored description ordered by name.
func (m *Manager) List(ctx context.Context) ([]*servicemodel.ServiceDescription, error) {
	ids, err := m.store.GetServiceIds()
	if err != nil {
		return nil, err
	}
	loaded, err := m.Load(ctx, ids)
	if err != nil {
		return nil, err
	}
	list := make([]*servicemodel.ServiceDescription, 0, len(loaded))
	for _, desc := range loaded {
		list = append(list, desc)
	}
	slices.SortFunc(list, func(a, b *servicemodel.ServiceDescription) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return list, nil
}

// Save inserts desc when its id is empty or unknown and updates it otherwise.
// Status and timestamps are owned by the manager: a new record keeps StatusDefault
// only when it is asked for, and an updated default becomes overridden. UpdatedAt
// stays zero until the first update.
func (m *Manager) Save(ctx context.Context, desc servicemodel.ServiceDescription) (*servicemodel.ServiceDescription, error) {
	if err := m.validate.Struct(desc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidService, err)
	}
	if _, ok := m.registry.Get(desc.Type); !ok {
		return nil, fmt.Errorf("%w: %s", endpoint.ErrUnknownEndpointType, desc.Type)
	}

	var existing *servicemodel.ServiceDescription
	if desc.ID != "" {
		found, err := m.store.GetService(desc.ID)
		switch {
		case err == nil:
			existing = found
		case !errors.Is(err, db.ErrServiceNotFound):
			return nil, err
		}
	}
	isNew := existing == nil

	toSave := desc.Clone()
	settings, err := servicemodel.NormalizeSettings(toSave.Settings)
	if err != nil {
		return nil, fmt.Errorf("%w: settings: %w", ErrInvalidService, err)
	}
	toSave.Settings = settings
	if err := m.hook.ExecuteServicePresaveHooks(ctx, &toSave, isNew); err != nil {
		return nil, err
	}
	// Presave hooks may adjust the record but not its identity or endpoint type.
	toSave.ID = desc.ID
	toSave.Type = desc.Type
	if err := m.validate.Struct(toSave); err != nil {
		return nil, fmt.Errorf("%w: after presave: %w", ErrInvalidService, err)
	}
	if toSave.Settings, err = servicemodel.NormalizeSettings(toSave.Settings); err != nil {
		return nil, fmt.Errorf("%w: settings: %w", ErrInvalidService, err)
	}

	if isNew {
		if toSave.ID == "" {
			toSave.ID = uuid.NewString()
		}
		if toSave.Status != servicemodel.StatusDefault {
			toSave.Status = servicemodel.StatusCustom
		}
		toSave.CreatedAt = time.Now().UnixMilli()
		toSave.UpdatedAt = 0
		if err := m.store.CreateService(toSave); err != nil {
			return nil, err
		}
		m.logger.Infof("Created service %s (%s)", toSave.Name, toSave.ID)
		if err := m.hook.ExecuteServiceInsertHooks(ctx, &toSave); err != nil {
			return &toSave, err
		}
		return &toSave, nil
	}

	toSave.CreatedAt = existing.CreatedAt
	toSave.UpdatedAt = time.Now().UnixMilli()
	toSave.Status = existing.Status
	if existing.Status == servicemodel.StatusDefault {
		toSave.Status = servicemodel.StatusOverridden
	}
	if err := m.store.UpdateService(toSave); err != nil {
		return nil, err
	}
	m.logger.Infof("Updated service %s (%s)", toSave.Name, toSave.ID)
	if err := m.hook.ExecuteServiceUpdateHooks(ctx, &toSave); err != nil {
		return &toSave, err
	}
	return &toSave, nil
}

// Delete removes the description and hands the removed record to the delete hook.
func (m *Manager) Delete(ctx context.Context, id string) error {
	existing, err := m.store.GetService(id)
	if err != nil {
		return err
	}
	if err := m.store.RemoveService(id); err != nil {
		return err
	}
	m.logger.Infof("Deleted service %s (%s)", existing.Name, existing.ID)
	return m.hook.ExecuteServiceDeleteHooks(ctx, existing)
}

// Invoke calls operation on the endpoint built for the service called name.
func (m *Manager) Invoke(ctx context.Context, name string, operation string, args map[string]any) (any, error) {
	desc, err := m.LoadByName(ctx, name)
	if err != nil {
		return nil, err
	}
	ep, err := m.registry.NewEndpoint(desc)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := ep.Close(); closeErr != nil {
			m.logger.Warnf("Error closing endpoint of %s: %v", name, closeErr)
		}
	}()

	m.logger.Debugf("Invoking %s on service %s", operation, name)
	return ep.Call(ctx, operation, args)
}
