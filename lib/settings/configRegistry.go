package settings

import (
	"strings"

	"github.com/spf13/viper"
)

const (
	IP                 = "ip"
	Port               = "port"
	DBType             = "dbType"
	DBSettingsFilename = "dbSettings.filename"
	DBSettingsHost     = "dbSettings.host"
	DBSettingsPort     = "dbSettings.port"
	DBSettingsDatabase = "dbSettings.database"
	DBSettingsUser     = "dbSettings.user"
	DBSettingsPassword = "dbSettings.password"
	Loglevel           = "loglevel"
	ExtensionsEnabled  = "extensions.enabled"
	ServicesFile       = "extensions.servicesFile"
	HTTPTimeoutSeconds = "http.timeoutSeconds"
	HTTPRetryMax       = "http.retryMax"
	EnableMetrics      = "enableMetrics"
	DevMode            = "devMode"
)

type ConfigKey struct {
	Key         string
	Default     any
	Description string
}

const envPrefix = "WSCLIENT"

func EnvVar(key string) string {
	return envPrefix + "_" + strings.ToUpper(
		strings.ReplaceAll(key, ".", "_"),
	)
}

var Registry = []ConfigKey{
	// ---------------------------------------------------------------------
	// Core
	// ---------------------------------------------------------------------
	{Key: IP, Default: "0.0.0.0", Description: "Bind address"},
	{Key: Port, Default: "9002", Description: "HTTP server port"},
	{Key: Loglevel, Default: "INFO", Description: "Log level (DEBUG, INFO, WARN, ERROR)"},
	{Key: EnableMetrics, Default: true, Description: "Expose prometheus metrics on /metrics"},
	{Key: DevMode, Default: false, Description: "Development mode"},

	// ---------------------------------------------------------------------
	// Database
	// ---------------------------------------------------------------------
	{Key: DBType, Default: SQLITE.String(), Description: "Database backend (sqlite, memory, postgres)"},
	{Key: DBSettingsFilename, Default: "var/wsclient.db", Description: "SQLite database file"},
	{Key: DBSettingsHost, Default: "localhost", Description: "Postgres host"},
	{Key: DBSettingsPort, Default: "5432", Description: "Postgres port"},
	{Key: DBSettingsDatabase, Default: "wsclient", Description: "Postgres database"},
	{Key: DBSettingsUser, Default: "wsclient", Description: "Postgres user"},
	{Key: DBSettingsPassword, Default: "", Description: "Postgres password"},

	// ---------------------------------------------------------------------
	// Extensions and remote calls
	// ---------------------------------------------------------------------
	{
		Key:         ExtensionsEnabled,
		Default:     []string{"ws_rest", "ws_webhooks"},
		Description: "Extensions to initialise, in order",
	},
	{Key: ServicesFile, Default: "", Description: "HCL file with default services for ws_files"},
	{Key: HTTPTimeoutSeconds, Default: 30, Description: "Timeout of remote service calls"},
	{Key: HTTPRetryMax, Default: 2, Description: "Retries of failed remote service calls"},
}

func ApplyRegistryDefaults(v *viper.Viper) {
	for _, c := range Registry {
		v.SetDefault(c.Key, c.Default)
	}
}
