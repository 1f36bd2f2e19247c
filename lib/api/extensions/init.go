package extensions

import (
	"github.com/ether/wsclient-go/lib"
	"github.com/gofiber/fiber/v2"
)

type ExtensionResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

// ListExtensions godoc
// @Summary List the compiled-in extensions
// @Tags Extensions
// @Produce json
// @Success 200 {array} ExtensionResponse
// @Router /admin/api/extensions [get]
func ListExtensions(store *lib.InitStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		response := make([]ExtensionResponse, 0, len(store.Extensions))
		for _, extension := range store.Extensions {
			response = append(response, ExtensionResponse{
				Name:        extension.Name(),
				Description: extension.Description(),
				Enabled:     extension.IsEnabled(),
			})
		}
		return c.JSON(response)
	}
}

func Init(store *lib.InitStore) {
	store.PrivateAPI.Get("/extensions", ListExtensions(store))
}
