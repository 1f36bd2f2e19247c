package stats

import (
	"context"
	"time"

	"github.com/ether/wsclient-go/lib/db"
	"github.com/ether/wsclient-go/lib/endpoint"
	"github.com/gofiber/fiber/v2"
)

func observedNow() string {
	return time.Now().UTC().Format(time.RFC3339)
}

type DBChecker struct {
	db db.DataStore
}

func (d DBChecker) Name() string {
	return "datastore:responseTime"
}

func (d DBChecker) Check(_ context.Context) Check {
	started := time.Now()
	if err := d.db.Ping(); err != nil {
		return Check{
			Status:        StatusFail,
			ComponentType: "datastore",
			Output:        err.Error(),
		}
	}
	return Check{
		Status:        StatusPass,
		ComponentType: "datastore",
		Observed:      time.Since(started).Milliseconds(),
		ObservedAt:    observedNow(),
	}
}

// ServicesChecker reports how many service descriptions are stored.
type ServicesChecker struct {
	db db.DataStore
}

func (s ServicesChecker) Name() string {
	return "services:count"
}

func (s ServicesChecker) Check(_ context.Context) Check {
	ids, err := s.db.GetServiceIds()
	if err != nil {
		return Check{
			Status:        StatusWarn,
			ComponentType: "datastore",
			Output:        err.Error(),
		}
	}
	return Check{
		Status:        StatusPass,
		ComponentType: "datastore",
		Observed:      len(ids),
		ObservedAt:    observedNow(),
	}
}

// EndpointTypesChecker fails until the registry is frozen and warns while it is empty,
// since no service can be invoked without an endpoint type.
type EndpointTypesChecker struct {
	registry *endpoint.Registry
}

func (e EndpointTypesChecker) Name() string {
	return "endpointTypes:count"
}

func (e EndpointTypesChecker) Check(_ context.Context) Check {
	if !e.registry.IsFrozen() {
		return Check{
			Status:        StatusFail,
			ComponentType: "component",
			Output:        "endpoint types not collected yet",
		}
	}
	names := e.registry.Names()
	if len(names) == 0 {
		return Check{
			Status:        StatusWarn,
			ComponentType: "component",
			Output:        "no endpoint types registered",
		}
	}
	return Check{
		Status:        StatusPass,
		ComponentType: "component",
		Observed:      len(names),
		ObservedAt:    observedNow(),
	}
}

// Handler godoc
// @Summary Health check endpoint
// @Description Returns the health status of the service (RFC Health Check Draft)
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse "Service is healthy"
// @Failure 503 {object} HealthResponse "Service is unhealthy"
// @Router /admin/api/health [get]
func Handler(version string, serviceID string, checkers []Checker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp := HealthResponse{
			Status:    StatusPass,
			Version:   version,
			ServiceID: serviceID,
			Checks:    make(map[string][]Check, len(checkers)),
		}
		for _, checker := range checkers {
			check := checker.Check(c.UserContext())
			resp.Checks[checker.Name()] = append(resp.Checks[checker.Name()], check)
			resp.Status = worse(resp.Status, check.Status)
		}

		httpStatus := fiber.StatusOK
		if resp.Status == StatusFail {
			httpStatus = fiber.StatusServiceUnavailable
		}
		c.Set(fiber.HeaderCacheControl, "no-cache")
		return c.Status(httpStatus).JSON(resp)
	}
}
