package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ether/wsclient-go/lib/db"
	"github.com/ether/wsclient-go/lib/endpoint"
	"github.com/ether/wsclient-go/lib/hooks"
	"github.com/ether/wsclient-go/lib/hooks/events"
	endpointmodel "github.com/ether/wsclient-go/lib/models/endpoint"
	servicemodel "github.com/ether/wsclient-go/lib/models/service"
	"github.com/go-playground/validator/v10"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type echoEndpoint struct {
	desc   *servicemodel.ServiceDescription
	closed *bool
}

func (e *echoEndpoint) Call(ctx context.Context, operation string, args map[string]any) (any, error) {
	return map[string]any{"service": e.desc.Name, "operation": operation, "args": args}, nil
}

func (e *echoEndpoint) Operations() []string { return nil }

func (e *echoEndpoint) Close() error {
	*e.closed = true
	return nil
}

type managerFixture struct {
	manager *Manager
	store   *db.MemoryDataStore
	hooks   *hooks.Hook
	closed  bool
}

func newManagerFixture(t *testing.T) *managerFixture {
	t.Helper()
	logger := zap.NewNop().Sugar()
	hookSystem := hooks.NewHook()
	fixture := &managerFixture{store: db.NewMemoryDataStore(), hooks: &hookSystem}

	registry := endpoint.NewRegistry(logger)
	require.NoError(t, registry.Register(map[string]endpointmodel.Definition{
		"rest": {
			Label: "Echo",
			Factory: func(desc *servicemodel.ServiceDescription) (endpointmodel.Endpoint, error) {
				return &echoEndpoint{desc: desc, closed: &fixture.closed}, nil
			},
		},
	}))
	require.NoError(t, registry.Freeze())

	fixture.manager = NewManager(fixture.store, fixture.hooks, registry, validator.New(validator.WithRequiredStructEnabled()), logger)
	return fixture
}

func newDescription() servicemodel.ServiceDescription {
	desc := db.CreateRandomService()
	desc.ID = ""
	desc.Status = ""
	desc.CreatedAt = 0
	return desc
}

func TestSaveInsertsNewService(t *testing.T) {
	f := newManagerFixture(t)
	var calls []string
	f.hooks.EnqueueServicePresaveHook(func(ctx context.Context, event *events.ServiceContext) error {
		assert.True(t, event.IsNew)
		calls = append(calls, "presave")
		return nil
	})
	f.hooks.EnqueueServiceInsertHook(func(ctx context.Context, event *events.ServiceContext) error {
		assert.NotEmpty(t, event.Service.ID)
		calls = append(calls, "insert")
		return nil
	})
	f.hooks.EnqueueServiceUpdateHook(func(ctx context.Context, event *events.ServiceContext) error {
		calls = append(calls, "update")
		return nil
	})

	saved, err := f.manager.Save(context.Background(), newDescription())
	require.NoError(t, err)

	assert.Equal(t, []string{"presave", "insert"}, calls)
	assert.Equal(t, servicemodel.StatusCustom, saved.Status)
	assert.NotZero(t, saved.CreatedAt)
	assert.Zero(t, saved.UpdatedAt)
}

func TestSaveUpdatesExistingService(t *testing.T) {
	f := newManagerFixture(t)
	saved, err := f.manager.Save(context.Background(), newDescription())
	require.NoError(t, err)

	var calls []string
	f.hooks.EnqueueServicePresaveHook(func(ctx context.Context, event *events.ServiceContext) error {
		assert.False(t, event.IsNew)
		calls = append(calls, "presave")
		return nil
	})
	f.hooks.EnqueueServiceUpdateHook(func(ctx context.Context, event *events.ServiceContext) error {
		calls = append(calls, "update")
		return nil
	})

	changed := *saved
	changed.Label = "Changed"
	changed.CreatedAt = 1
	updated, err := f.manager.Save(context.Background(), changed)
	require.NoError(t, err)

	assert.Equal(t, []string{"presave", "update"}, calls)
	assert.Equal(t, saved.CreatedAt, updated.CreatedAt)
	assert.NotZero(t, updated.UpdatedAt)
	assert.GreaterOrEqual(t, updated.UpdatedAt, updated.CreatedAt)
	assert.Equal(t, "Changed", updated.Label)

	stored, err := f.store.GetService(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Changed", stored.Label)
}

func TestSaveWithUnknownIDInserts(t *testing.T) {
	f := newManagerFixture(t)
	desc := newDescription()
	desc.ID = "imported-id"

	saved, err := f.manager.Save(context.Background(), desc)
	require.NoError(t, err)
	assert.Equal(t, "imported-id", saved.ID)
}

func TestSaveDefaultBecomesOverridden(t *testing.T) {
	f := newManagerFixture(t)
	desc := newDescription()
	desc.Status = servicemodel.StatusDefault
	saved, err := f.manager.Save(context.Background(), desc)
	require.NoError(t, err)
	assert.Equal(t, servicemodel.StatusDefault, saved.Status)

	updated, err := f.manager.Save(context.Background(), *saved)
	require.NoError(t, err)
	assert.Equal(t, servicemodel.StatusOverridden, updated.Status)
	assert.True(t, updated.IsDefault())
}

func TestSavePresaveCanModify(t *testing.T) {
	f := newManagerFixture(t)
	f.hooks.EnqueueServicePresaveHook(func(ctx context.Context, event *events.ServiceContext) error {
		event.Service.Label = "From presave"
		return nil
	})

	saved, err := f.manager.Save(context.Background(), newDescription())
	require.NoError(t, err)
	stored, err := f.store.GetService(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "From presave", stored.Label)
}

func TestSavePresaveCannotChangeIdentity(t *testing.T) {
	f := newManagerFixture(t)
	saved, err := f.manager.Save(context.Background(), newDescription())
	require.NoError(t, err)

	f.hooks.EnqueueServicePresaveHook(func(ctx context.Context, event *events.ServiceContext) error {
		event.Service.ID = "hijacked"
		event.Service.Type = "soap"
		event.Service.Label = "Relabeled"
		return nil
	})
	updated, err := f.manager.Save(context.Background(), *saved)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)
	assert.Equal(t, "rest", updated.Type)
	assert.Equal(t, "Relabeled", updated.Label)

	exists, err := f.store.DoesServiceExist("hijacked")
	require.NoError(t, err)
	assert.False(t, exists)
	ids, err := f.store.GetServiceIds()
	require.NoError(t, err)
	assert.Equal(t, []string{saved.ID}, ids)
}

func TestSavePresaveOutputIsValidated(t *testing.T) {
	f := newManagerFixture(t)
	f.hooks.EnqueueServicePresaveHook(func(ctx context.Context, event *events.ServiceContext) error {
		event.Service.Name = "Broken Name"
		return nil
	})

	_, err := f.manager.Save(context.Background(), newDescription())
	assert.ErrorIs(t, err, ErrInvalidService)
	ids, err := f.store.GetServiceIds()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSaveNormalizesSettings(t *testing.T) {
	f := newManagerFixture(t)
	var seen map[string]any
	f.hooks.EnqueueServicePresaveHook(func(ctx context.Context, event *events.ServiceContext) error {
		seen = event.Service.Settings
		return nil
	})

	desc := newDescription()
	desc.Settings = map[string]any{
		"timeout": 5,
		"headers": map[string]string{"X-Key": "abc"},
		"codes":   []int{200, 201},
	}
	saved, err := f.manager.Save(context.Background(), desc)
	require.NoError(t, err)

	want := map[string]any{
		"timeout": float64(5),
		"headers": map[string]any{"X-Key": "abc"},
		"codes":   []any{float64(200), float64(201)},
	}
	assert.Equal(t, want, seen)
	assert.Equal(t, want, saved.Settings)
	assert.Equal(t, 5, desc.Settings["timeout"])

	stored, err := f.store.GetService(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, want, stored.Settings)
}

func TestSaveRejectsUnencodableSettings(t *testing.T) {
	f := newManagerFixture(t)
	desc := newDescription()
	desc.Settings = map[string]any{"callback": func() {}}

	_, err := f.manager.Save(context.Background(), desc)
	assert.ErrorIs(t, err, ErrInvalidService)
}

func TestSaveRejectsInvalid(t *testing.T) {
	f := newManagerFixture(t)
	presaveCalled := false
	f.hooks.EnqueueServicePresaveHook(func(ctx context.Context, event *events.ServiceContext) error {
		presaveCalled = true
		return nil
	})

	invalidName := newDescription()
	invalidName.Name = "Not A Machine Name"
	_, err := f.manager.Save(context.Background(), invalidName)
	assert.ErrorIs(t, err, ErrInvalidService)

	unknownType := newDescription()
	unknownType.Type = "soap"
	_, err = f.manager.Save(context.Background(), unknownType)
	assert.ErrorIs(t, err, endpoint.ErrUnknownEndpointType)

	assert.False(t, presaveCalled)
	ids, err := f.store.GetServiceIds()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSavePresaveErrorAbortsWrite(t *testing.T) {
	f := newManagerFixture(t)
	boom := errors.New("boom")
	f.hooks.EnqueueServicePresaveHook(func(ctx context.Context, event *events.ServiceContext) error {
		return boom
	})

	_, err := f.manager.Save(context.Background(), newDescription())
	require.ErrorIs(t, err, boom)
	assert.EqualError(t, err, "hook wsclient_service_presave: boom")

	ids, err := f.store.GetServiceIds()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSaveDuplicateNameFails(t *testing.T) {
	f := newManagerFixture(t)
	first, err := f.manager.Save(context.Background(), newDescription())
	require.NoError(t, err)

	second := newDescription()
	second.Name = first.Name
	_, err = f.manager.Save(context.Background(), second)
	assert.ErrorIs(t, err, db.ErrServiceNameTaken)
}

func TestLoadRunsHookAndRoundTrips(t *testing.T) {
	f := newManagerFixture(t)
	saved, err := f.manager.Save(context.Background(), newDescription())
	require.NoError(t, err)

	loadCalls := 0
	f.hooks.EnqueueServiceLoadHook(func(ctx context.Context, event *events.ServiceLoadContext) error {
		loadCalls++
		for _, desc := range event.Services {
			desc.Extra = map[string]any{"enriched": true}
		}
		return nil
	})

	loaded, err := f.manager.Load(context.Background(), []string{saved.ID, "missing"})
	require.NoError(t, err)
	assert.Equal(t, 1, loadCalls)
	require.Len(t, loaded, 1)

	got := loaded[saved.ID]
	assert.Equal(t, true, got.Extra["enriched"])
	if diff := cmp.Diff(*saved, *got, cmpopts.IgnoreFields(servicemodel.ServiceDescription{}, "Extra"), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("loaded service mismatch (-want +got):\n%s", diff)
	}
}

func TestGetAndLoadByName(t *testing.T) {
	f := newManagerFixture(t)
	saved, err := f.manager.Save(context.Background(), newDescription())
	require.NoError(t, err)

	byID, err := f.manager.Get(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.Name, byID.Name)

	byName, err := f.manager.LoadByName(context.Background(), saved.Name)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, byName.ID)

	_, err = f.manager.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, db.ErrServiceNotFound)
	_, err = f.manager.LoadByName(context.Background(), "missing")
	assert.ErrorIs(t, err, db.ErrServiceNotFound)
}

func TestListSortedByName(t *testing.T) {
	f := newManagerFixture(t)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		desc := newDescription()
		desc.Name = name
		_, err := f.manager.Save(context.Background(), desc)
		require.NoError(t, err)
	}

	list, err := f.manager.List(context.Background())
	require.NoError(t, err)
	var names []string
	for _, desc := range list {
		names = append(names, desc.Name)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)
}

func TestDeleteRunsDeleteHookOnly(t *testing.T) {
	f := newManagerFixture(t)
	saved, err := f.manager.Save(context.Background(), newDescription())
	require.NoError(t, err)

	var calls []string
	f.hooks.EnqueueServicePresaveHook(func(ctx context.Context, event *events.ServiceContext) error {
		calls = append(calls, "presave")
		return nil
	})
	f.hooks.EnqueueServiceDeleteHook(func(ctx context.Context, event *events.ServiceContext) error {
		assert.Equal(t, saved.ID, event.Service.ID)
		calls = append(calls, "delete")
		return nil
	})

	require.NoError(t, f.manager.Delete(context.Background(), saved.ID))
	assert.Equal(t, []string{"delete"}, calls)

	exists, err := f.store.DoesServiceExist(saved.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, f.manager.Delete(context.Background(), saved.ID), db.ErrServiceNotFound)
}

func TestInvoke(t *testing.T) {
	f := newManagerFixture(t)
	saved, err := f.manager.Save(context.Background(), newDescription())
	require.NoError(t, err)

	result, err := f.manager.Invoke(context.Background(), saved.Name, "list", map[string]any{"page": 1})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"service":   saved.Name,
		"operation": "list",
		"args":      map[string]any{"page": 1},
	}, result)
	assert.True(t, f.closed)

	_, err = f.manager.Invoke(context.Background(), "missing", "list", nil)
	assert.ErrorIs(t, err, db.ErrServiceNotFound)
}
