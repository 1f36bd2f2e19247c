package settings

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type DBSettings struct {
	Filename string `json:"filename"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	Database string `json:"database"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type ExtensionSettings struct {
	Enabled      []string `json:"enabled"`
	ServicesFile string   `json:"servicesFile"`
}

type HTTPSettings struct {
	TimeoutSeconds int `json:"timeoutSeconds"`
	RetryMax       int `json:"retryMax"`
}

type Settings struct {
	Root             string
	SettingsFilename string            `json:"settingsFilename"`
	IP               string            `json:"ip"`
	Port             string            `json:"port"`
	DBType           IDBType           `json:"dbType"`
	DBSettings       *DBSettings       `json:"dbSettings"`
	LogLevel         string            `json:"loglevel"`
	Extensions       ExtensionSettings `json:"extensions"`
	HTTP             HTTPSettings      `json:"http"`
	EnableMetrics    bool              `json:"enableMetrics"`
	DevMode          bool              `json:"devMode"`
	GitVersion       string            `json:"-"`
}

func (s *Settings) IsExtensionEnabled(name string) bool {
	return slices.Contains(s.Extensions.Enabled, name)
}

var Displayed Settings

// InitSettings reads settings.json from WSCLIENT_SETTINGS_PATH or the working directory
// and stores the result in Displayed. A missing file leaves the defaults in place. A .env
// file next to it is loaded first, variables already set in the environment win.
func InitSettings(logger *zap.SugaredLogger) (*Settings, error) {
	root := os.Getenv("WSCLIENT_SETTINGS_PATH")
	if root == "" {
		var err error
		root, err = os.Getwd()
		if err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(filepath.Join(root, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	settingsFilePath := filepath.Join(root, "settings.json")
	content, err := os.ReadFile(settingsFilePath)
	if err != nil {
		logger.Infof("No settings file at %s, using defaults", settingsFilePath)
		content = nil
	}

	setting, err := ReadConfig(string(content))
	if err != nil {
		return nil, err
	}
	setting.GitVersion = GitVersion()
	setting.Root = root
	setting.SettingsFilename = settingsFilePath
	Displayed = *setting
	return setting, nil
}
