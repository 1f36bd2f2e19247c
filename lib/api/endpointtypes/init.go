package endpointtypes

import (
	"github.com/ether/wsclient-go/lib"
	"github.com/gofiber/fiber/v2"
)

type EndpointTypeResponse struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// ListEndpointTypes godoc
// @Summary List the registered endpoint types
// @Tags Endpoint types
// @Produce json
// @Success 200 {array} EndpointTypeResponse
// @Router /admin/api/endpoint-types [get]
func ListEndpointTypes(store *lib.InitStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		definitions := store.Registry.Definitions()
		types := make([]EndpointTypeResponse, 0, len(definitions))
		for _, name := range store.Registry.Names() {
			types = append(types, EndpointTypeResponse{
				Name:  name,
				Label: definitions[name].Label,
			})
		}
		return c.JSON(types)
	}
}

func Init(store *lib.InitStore) {
	store.PrivateAPI.Get("/endpoint-types", ListEndpointTypes(store))
}
