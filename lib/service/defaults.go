package service

import (
	"context"
	"errors"
	"maps"
	"slices"

	"github.com/ether/wsclient-go/lib/db"
	"github.com/ether/wsclient-go/lib/hooks"
	servicemodel "github.com/ether/wsclient-go/lib/models/service"
	"go.uber.org/zap"
)

// DefaultProvider gathers the service descriptions extensions ship with.
type DefaultProvider struct {
	hook   *hooks.Hook
	logger *zap.SugaredLogger
}

func NewDefaultProvider(hook *hooks.Hook, logger *zap.SugaredLogger) *DefaultProvider {
	return &DefaultProvider{
		hook:   hook,
		logger: logger,
	}
}

// ProvideDefaults merges every default_wsclient_service contribution. On a key clash the
// later contributor wins.
func (p *DefaultProvider) ProvideDefaults(ctx context.Context) (map[string]servicemodel.ServiceDescription, error) {
	contributions, err := p.hook.ExecuteDefaultServicesHooks(ctx)
	if err != nil {
		return nil, err
	}
	defaults := make(map[string]servicemodel.ServiceDescription)
	for _, contribution := range contributions {
		for key, desc := range contribution {
			defaults[key] = desc.Clone()
		}
	}
	return defaults, nil
}

// AlterDefaults runs the alter pipeline and drops entries whose key is not a machine name.
// The key of each surviving entry becomes its name.
func (p *DefaultProvider) AlterDefaults(ctx context.Context, defaults map[string]servicemodel.ServiceDescription) (map[string]servicemodel.ServiceDescription, error) {
	altered, err := p.hook.ExecuteDefaultServicesAlterHooks(ctx, defaults)
	if err != nil {
		return nil, err
	}
	valid := make(map[string]servicemodel.ServiceDescription, len(altered))
	for key, desc := range altered {
		if !servicemodel.IsMachineName(key) {
			p.logger.Warnf("Dropping default service with invalid key %q", key)
			continue
		}
		desc.Name = key
		valid[key] = desc
	}
	return valid, nil
}

func (p *DefaultProvider) Defaults(ctx context.Context) (map[string]servicemodel.ServiceDescription, error) {
	defaults, err := p.ProvideDefaults(ctx)
	if err != nil {
		return nil, err
	}
	return p.AlterDefaults(ctx, defaults)
}

// Rebuild inserts the defaults that are not stored yet. Stored records, overridden or not,
// are left alone. A default that fails to save is logged and skipped. It returns the names
// that were inserted.
func (p *DefaultProvider) Rebuild(ctx context.Context, manager *Manager) ([]string, error) {
	defaults, err := p.Defaults(ctx)
	if err != nil {
		return nil, err
	}

	var inserted []string
	for _, name := range slices.Sorted(maps.Keys(defaults)) {
		_, err := manager.store.GetServiceByName(name)
		if err == nil {
			continue
		}
		if !errors.Is(err, db.ErrServiceNotFound) {
			return inserted, err
		}

		desc := defaults[name]
		desc.ID = ""
		desc.Status = servicemodel.StatusDefault
		if _, err := manager.Save(ctx, desc); err != nil {
			p.logger.Warnf("Could not create default service %s: %v", name, err)
			continue
		}
		inserted = append(inserted, name)
	}
	if len(inserted) > 0 {
		p.logger.Infof("Created default services: %v", inserted)
	}
	return inserted, nil
}
