package stats

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/ether/wsclient-go/lib/db"
	"github.com/ether/wsclient-go/lib/endpoint"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWorse(t *testing.T) {
	assert.Equal(t, StatusWarn, worse(StatusPass, StatusWarn))
	assert.Equal(t, StatusFail, worse(StatusFail, StatusWarn))
	assert.Equal(t, StatusPass, worse(StatusPass, StatusPass))
}

func TestEndpointTypesChecker(t *testing.T) {
	registry := endpoint.NewRegistry(zap.NewNop().Sugar())
	checker := EndpointTypesChecker{registry}
	assert.Equal(t, StatusFail, checker.Check(context.Background()).Status)

	require.NoError(t, registry.Freeze())
	assert.Equal(t, StatusWarn, checker.Check(context.Background()).Status)
}

func TestHandlerUnavailableBeforeFreeze(t *testing.T) {
	app := fiber.New()
	app.Get("/health", Handler("v1", "wsclient-api", []Checker{
		DBChecker{db.NewMemoryDataStore()},
		EndpointTypesChecker{endpoint.NewRegistry(zap.NewNop().Sugar())},
	}))

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil), 1000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	var health HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, StatusFail, health.Status)
	assert.Equal(t, StatusPass, health.Checks["datastore:responseTime"][0].Status)
}
