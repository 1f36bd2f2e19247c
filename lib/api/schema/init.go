package schema

import (
	"encoding/json"
	"fmt"

	"github.com/ether/wsclient-go/lib"
	apiErrors "github.com/ether/wsclient-go/lib/api/errors"
	"github.com/ether/wsclient-go/lib/api/services"
	"github.com/gofiber/fiber/v2"
	"github.com/invopop/jsonschema"
)

// requestBodies maps the schema kinds served under /schema to the request bodies they describe.
var requestBodies = map[string]any{
	"service": &services.ServiceRequest{},
	"invoke":  &services.InvokeRequest{},
}

// Generate returns the JSON schema of every request body kind.
func Generate() (map[string][]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
	}

	generated := make(map[string][]byte, len(requestBodies))
	for kind, body := range requestBodies {
		data, err := json.Marshal(reflector.Reflect(body))
		if err != nil {
			return nil, fmt.Errorf("failed to marshal schema for %s: %w", kind, err)
		}
		generated[kind] = data
	}
	return generated, nil
}

// GetSchema godoc
// @Summary Get the JSON schema of a request body
// @Tags Schema
// @Produce json
// @Param kind path string true "service or invoke"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.Error
// @Router /admin/api/schema/{kind} [get]
func GetSchema(schemas map[string][]byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, ok := schemas[c.Params("kind")]
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(apiErrors.Error{
				Message: "unknown schema " + c.Params("kind"),
				Error:   fiber.StatusNotFound,
			})
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(data)
	}
}

func Init(store *lib.InitStore) {
	schemas, err := Generate()
	if err != nil {
		store.Logger.Errorf("Schema routes disabled: %v", err)
		return
	}
	store.PrivateAPI.Get("/schema/:kind", GetSchema(schemas))
}
