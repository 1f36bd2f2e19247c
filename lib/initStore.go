package lib

import (
	"github.com/ether/wsclient-go/lib/db"
	"github.com/ether/wsclient-go/lib/endpoint"
	"github.com/ether/wsclient-go/lib/hooks"
	"github.com/ether/wsclient-go/lib/plugins/interfaces"
	"github.com/ether/wsclient-go/lib/service"
	"github.com/ether/wsclient-go/lib/settings"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type InitStore struct {
	C                 *fiber.App
	PrivateAPI        fiber.Router
	RetrievedSettings *settings.Settings
	Store             db.DataStore
	ServiceManager    *service.Manager
	Registry          *endpoint.Registry
	Extensions        []interfaces.Extension
	Validator         *validator.Validate
	Logger            *zap.SugaredLogger
	Hooks             *hooks.Hook
}
