package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ether/wsclient-go/lib"
	api2 "github.com/ether/wsclient-go/lib/api"
	"github.com/ether/wsclient-go/lib/endpoint"
	"github.com/ether/wsclient-go/lib/hooks"
	"github.com/ether/wsclient-go/lib/plugins"
	"github.com/ether/wsclient-go/lib/plugins/interfaces"
	"github.com/ether/wsclient-go/lib/service"
	settings2 "github.com/ether/wsclient-go/lib/settings"
	"github.com/ether/wsclient-go/lib/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// App bundles everything InitServer wires together so it can be served or tested.
type App struct {
	Fiber     *fiber.App
	InitStore *lib.InitStore
}

// NewApp initialises extensions, the endpoint type registry, the datastore and the
// default services, then mounts the API.
func NewApp(ctx context.Context, settings *settings2.Settings, setupLogger *zap.SugaredLogger) (*App, error) {
	validatorEvaluator := validator.New(validator.WithRequiredStructEnabled())
	retrievedHooks := hooks.NewHook()

	extensions := plugins.InitExtensions(&interfaces.ExtensionStore{
		Logger:            setupLogger,
		HookSystem:        &retrievedHooks,
		RetrievedSettings: settings,
	})

	registry := endpoint.NewRegistry(setupLogger.Named("endpoints"))
	if err := registry.Collect(ctx, &retrievedHooks); err != nil {
		return nil, fmt.Errorf("collecting endpoint types: %w", err)
	}
	if err := registry.Freeze(); err != nil {
		return nil, fmt.Errorf("freezing endpoint types: %w", err)
	}

	dataStore, err := utils.GetDB(*settings, setupLogger)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	serviceManager := service.NewManager(dataStore, &retrievedHooks, registry, validatorEvaluator, setupLogger.Named("services"))
	defaults := service.NewDefaultProvider(&retrievedHooks, setupLogger.Named("defaults"))
	if _, err := defaults.Rebuild(ctx, serviceManager); err != nil {
		_ = dataStore.Close()
		return nil, fmt.Errorf("creating default services: %w", err)
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	adminAPIRoute := app.Group("/admin/api")

	initStore := &lib.InitStore{
		C:                 app,
		PrivateAPI:        adminAPIRoute,
		RetrievedSettings: settings,
		Store:             dataStore,
		ServiceManager:    serviceManager,
		Registry:          registry,
		Extensions:        extensions,
		Validator:         validatorEvaluator,
		Logger:            setupLogger,
		Hooks:             &retrievedHooks,
	}
	api2.InitAPI(initStore)

	return &App{Fiber: app, InitStore: initStore}, nil
}

func InitServer(setupLogger *zap.SugaredLogger) {
	settings, err := settings2.InitSettings(setupLogger)
	if err != nil {
		setupLogger.Fatalf("Error reading settings: %v", err)
	}

	logger := utils.SetupLogger(settings.LogLevel)
	defer logger.Sync()
	logger.Info("Starting wsclient...")
	logger.Info("Your wsclient version is " + settings.GitVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx, settings, logger)
	if err != nil {
		logger.Fatalf("Error starting wsclient: %v", err)
	}
	defer app.InitStore.Store.Close()

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down")
		if err := app.Fiber.Shutdown(); err != nil {
			logger.Errorf("Error shutting down: %v", err)
		}
	}()

	fiberString := fmt.Sprintf("%s:%s", settings.IP, settings.Port)
	logger.Info("Starting admin API on " + fiberString)
	if err := app.Fiber.Listen(fiberString); err != nil {
		logger.Errorf("Error starting admin API: %v", err)
		os.Exit(1)
	}
}
