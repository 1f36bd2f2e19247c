package services

import (
	"errors"

	"github.com/ether/wsclient-go/lib"
	apiErrors "github.com/ether/wsclient-go/lib/api/errors"
	"github.com/ether/wsclient-go/lib/api/stats"
	"github.com/ether/wsclient-go/lib/db"
	"github.com/ether/wsclient-go/lib/models/service"
	"github.com/gofiber/fiber/v2"
)

func respondError(c *fiber.Ctx, store *lib.InitStore, err error) error {
	apiErr := apiErrors.FromError(err)
	if apiErr.Error >= 500 {
		store.Logger.Errorf("Error handling %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(apiErr.Error).JSON(apiErr)
}

// ListServices godoc
// @Summary List services
// @Tags Services
// @Produce json
// @Success 200 {array} service.ServiceDescription
// @Failure 500 {object} errors.Error
// @Router /admin/api/services [get]
func ListServices(store *lib.InitStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := store.ServiceManager.List(c.UserContext())
		if err != nil {
			return respondError(c, store, err)
		}
		return c.JSON(list)
	}
}

// GetService godoc
// @Summary Get a service by id
// @Tags Services
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} service.ServiceDescription
// @Failure 404 {object} errors.Error
// @Router /admin/api/services/{id} [get]
func GetService(store *lib.InitStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		desc, err := store.ServiceManager.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, store, err)
		}
		return c.JSON(desc)
	}
}

// CreateService godoc
// @Summary Create a service
// @Tags Services
// @Accept json
// @Produce json
// @Param request body ServiceRequest true "Service"
// @Success 201 {object} service.ServiceDescription
// @Failure 400 {object} errors.Error
// @Failure 409 {object} errors.Error
// @Router /admin/api/services [post]
func CreateService(store *lib.InitStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var request ServiceRequest
		if err := c.BodyParser(&request); err != nil {
			return c.Status(400).JSON(apiErrors.InvalidRequestError)
		}
		if err := store.Validator.Struct(request); err != nil {
			return c.Status(400).JSON(apiErrors.NewValidationError(err))
		}

		var desc service.ServiceDescription
		request.apply(&desc)
		saved, err := store.ServiceManager.Save(c.UserContext(), desc)
		if err != nil {
			return respondError(c, store, err)
		}
		return c.Status(fiber.StatusCreated).JSON(saved)
	}
}

// UpdateService godoc
// @Summary Update a service
// @Tags Services
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param request body ServiceRequest true "Service"
// @Success 200 {object} service.ServiceDescription
// @Failure 400 {object} errors.Error
// @Failure 404 {object} errors.Error
// @Failure 409 {object} errors.Error
// @Router /admin/api/services/{id} [put]
func UpdateService(store *lib.InitStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var request ServiceRequest
		if err := c.BodyParser(&request); err != nil {
			return c.Status(400).JSON(apiErrors.InvalidRequestError)
		}
		if err := store.Validator.Struct(request); err != nil {
			return c.Status(400).JSON(apiErrors.NewValidationError(err))
		}

		existing, err := store.ServiceManager.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, store, err)
		}
		request.apply(existing)
		saved, err := store.ServiceManager.Save(c.UserContext(), *existing)
		if err != nil {
			return respondError(c, store, err)
		}
		return c.JSON(saved)
	}
}

// DeleteService godoc
// @Summary Delete a service
// @Tags Services
// @Param id path string true "Service ID"
// @Success 204
// @Failure 404 {object} errors.Error
// @Router /admin/api/services/{id} [delete]
func DeleteService(store *lib.InitStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := store.ServiceManager.Delete(c.UserContext(), c.Params("id")); err != nil {
			return respondError(c, store, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// InvokeService godoc
// @Summary Invoke an operation of a service
// @Tags Services
// @Accept json
// @Produce json
// @Param name path string true "Service name"
// @Param request body InvokeRequest true "Operation and arguments"
// @Success 200 {object} InvokeResponse
// @Failure 400 {object} errors.Error
// @Failure 404 {object} errors.Error
// @Router /admin/api/services/{name}/invoke [post]
func InvokeService(store *lib.InitStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var request InvokeRequest
		if err := c.BodyParser(&request); err != nil {
			return c.Status(400).JSON(apiErrors.InvalidRequestError)
		}
		if err := store.Validator.Struct(request); err != nil {
			return c.Status(400).JSON(apiErrors.NewMissingParamError("operation"))
		}

		name := c.Params("name")
		result, err := store.ServiceManager.Invoke(c.UserContext(), name, request.Operation, request.Arguments)
		if err != nil {
			label := name
			if errors.Is(err, db.ErrServiceNotFound) {
				label = stats.UnknownService
			}
			stats.RecordInvocation(label, stats.OutcomeError)
			return respondError(c, store, err)
		}
		stats.RecordInvocation(name, stats.OutcomeSuccess)
		return c.JSON(InvokeResponse{Result: result})
	}
}
