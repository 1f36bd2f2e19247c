package testutils

import (
	"database/sql"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ether/wsclient-go/lib"
	"github.com/ether/wsclient-go/lib/db"
	"github.com/ether/wsclient-go/lib/endpoint"
	hooks2 "github.com/ether/wsclient-go/lib/hooks"
	endpointmodel "github.com/ether/wsclient-go/lib/models/endpoint"
	"github.com/ether/wsclient-go/lib/plugins"
	"github.com/ether/wsclient-go/lib/plugins/interfaces"
	"github.com/ether/wsclient-go/lib/service"
	"github.com/ether/wsclient-go/lib/settings"
	"github.com/ether/wsclient-go/lib/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Postgres runs only when WSCLIENT_TEST_POSTGRES=1, the container is shared by every
// test of the binary.
var (
	postgresOnce      sync.Once
	postgresContainer *utils.PostgresContainer
	postgresErr       error
	postgresTestLock  sync.Mutex
)

var TestHTTPOptions = endpoint.HTTPOptions{
	Timeout:      5 * time.Second,
	RetryMax:     0,
	RetryWaitMin: time.Millisecond,
	RetryWaitMax: time.Millisecond,
}

type TestDataStore struct {
	DS              db.DataStore
	Logger          *zap.SugaredLogger
	Hooks           *hooks2.Hook
	Registry        *endpoint.Registry
	ServiceManager  *service.Manager
	DefaultProvider *service.DefaultProvider
	Validator       *validator.Validate
	App             *fiber.App
	PrivateAPI      fiber.Router
	Settings        *settings.Settings
}

func (t *TestDataStore) ToInitStore() *lib.InitStore {
	return &lib.InitStore{
		C:                 t.App,
		PrivateAPI:        t.PrivateAPI,
		RetrievedSettings: t.Settings,
		Store:             t.DS,
		ServiceManager:    t.ServiceManager,
		Registry:          t.Registry,
		Extensions:        plugins.RegisteredExtensions(),
		Validator:         t.Validator,
		Logger:            t.Logger,
		Hooks:             t.Hooks,
	}
}

func (t *TestDataStore) ToExtensionStore() *interfaces.ExtensionStore {
	return &interfaces.ExtensionStore{
		Logger:            t.Logger,
		HookSystem:        t.Hooks,
		RetrievedSettings: t.Settings,
	}
}

type TestRunConfig struct {
	Name string
	Test func(t *testing.T, tsStore TestDataStore)
}

type TestDBHandler struct {
	t     *testing.T
	tests []TestRunConfig
}

func NewTestDBHandler(t *testing.T) *TestDBHandler {
	t.Helper()

	if os.Getenv("WSCLIENT_TEST_POSTGRES") == "1" {
		postgresOnce.Do(func() {
			postgresContainer, postgresErr = utils.PreparePostgresDB()
		})
		if postgresErr != nil {
			t.Fatalf("Failed to prepare Postgres container: %v", postgresErr)
		}
	}

	return &TestDBHandler{
		t: t,
	}
}

func (test *TestDBHandler) AddTests(testConfs ...TestRunConfig) {
	test.tests = append(test.tests, testConfs...)
}

func (test *TestDBHandler) StartTestDBHandler() {
	datastores := map[string]func() db.DataStore{
		"Memory": func() db.DataStore {
			return db.NewMemoryDataStore()
		},
		"SQLite": func() db.DataStore {
			sqliteDB, err := db.NewSQLiteDB(":memory:")
			if err != nil {
				test.t.Fatalf("Failed to create SQLite DataStore: %v", err)
			}
			return sqliteDB
		},
	}
	if postgresContainer != nil {
		datastores["Postgres"] = func() db.DataStore {
			return test.InitPostgres()
		}
	}

	for dsName, newDS := range datastores {
		test.t.Run(dsName, func(t *testing.T) {
			for _, testConf := range test.tests {
				test.TestRun(t, testConf, newDS, dsName)
			}
		})
	}
}

func postgresOptions() db.PostgresOptions {
	return postgresContainer.Options
}

func (test *TestDBHandler) InitPostgres() *db.PostgresDB {
	postgresDB, err := db.NewPostgresDB(postgresOptions())
	if err != nil {
		panic(err)
	}
	return postgresDB
}

// cleanupPostgresTables empties the service table, the schema is kept.
func cleanupPostgresTables() error {
	conn, err := sql.Open("postgres", postgresOptions().DSN())
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.Exec("TRUNCATE TABLE wsclient_service")
	return err
}

// NewTestRegistry returns a frozen registry with the built-in endpoint types.
func NewTestRegistry(logger *zap.SugaredLogger) *endpoint.Registry {
	registry := endpoint.NewRegistry(logger)
	_ = registry.Register(map[string]endpointmodel.Definition{
		endpoint.RESTTypeName:    endpoint.RESTDefinition(TestHTTPOptions, logger),
		endpoint.WebHookTypeName: endpoint.WebHookDefinition(TestHTTPOptions, logger),
	})
	_ = registry.Freeze()
	return registry
}

func (test *TestDBHandler) TestRun(
	t *testing.T,
	testRun TestRunConfig,
	newDS func() db.DataStore,
	dsName string,
) {
	t.Run(testRun.Name, func(t *testing.T) {
		if dsName == "Postgres" {
			postgresTestLock.Lock()
			defer postgresTestLock.Unlock()
			if err := cleanupPostgresTables(); err != nil {
				t.Fatalf("Postgres cleanup before test failed: %v", err)
			}
		}

		ds := newDS()
		loggerPart := zap.NewNop().Sugar()
		hooks := hooks2.NewHook()
		registry := NewTestRegistry(loggerPart)
		validatorEvaluator := validator.New(validator.WithRequiredStructEnabled())
		app := fiber.New(fiber.Config{DisableStartupMessage: true})
		privateAPI := app.Group("/admin/api")

		testRun.Test(t, TestDataStore{
			DS:              ds,
			Logger:          loggerPart,
			Hooks:           &hooks,
			Registry:        registry,
			ServiceManager:  service.NewManager(ds, &hooks, registry, validatorEvaluator, loggerPart),
			DefaultProvider: service.NewDefaultProvider(&hooks, loggerPart),
			Validator:       validatorEvaluator,
			App:             app,
			PrivateAPI:      privateAPI,
			Settings: &settings.Settings{
				EnableMetrics: true,
				GitVersion:    "test",
				Extensions:    settings.ExtensionSettings{Enabled: []string{"ws_rest", "ws_webhooks"}},
				HTTP:          settings.HTTPSettings{TimeoutSeconds: 5},
			},
		})

		if err := ds.Close(); err != nil {
			t.Errorf("Failed to close DataStore: %v", err)
		}
	})
}
