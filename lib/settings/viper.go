package settings

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// current is the viper instance of the last ReadConfig call. The config command reads it.
var current = viper.New()

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("settings")
	v.SetConfigType("json")

	v.AddConfigPath(".")
	v.AutomaticEnv()
	v.SetEnvPrefix("wsclient")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	ApplyRegistryDefaults(v)
	return v
}

func ReadConfig(jsonStr string) (*Settings, error) {
	v := newViper()
	if jsonStr != "" {
		if err := v.ReadConfig(strings.NewReader(jsonStr)); err != nil {
			return nil, err
		}
	} else {
		if err := v.ReadInConfig(); err != nil {
			var configFileNotFoundError viper.ConfigFileNotFoundError
			if !errors.As(err, &configFileNotFoundError) {
				return nil, err
			}
		}
	}
	current = v

	dbTypeToUse, err := ParseDBType(v.GetString(DBType))
	if err != nil {
		return nil, err
	}

	s := &Settings{
		IP:     v.GetString(IP),
		Port:   v.GetString(Port),
		DBType: dbTypeToUse,
		DBSettings: &DBSettings{
			Filename: v.GetString(DBSettingsFilename),
			Host:     v.GetString(DBSettingsHost),
			Port:     v.GetString(DBSettingsPort),
			Database: v.GetString(DBSettingsDatabase),
			User:     v.GetString(DBSettingsUser),
			Password: v.GetString(DBSettingsPassword),
		},
		LogLevel: v.GetString(Loglevel),
		Extensions: ExtensionSettings{
			Enabled:      splitList(v.GetStringSlice(ExtensionsEnabled)),
			ServicesFile: v.GetString(ServicesFile),
		},
		HTTP: HTTPSettings{
			TimeoutSeconds: v.GetInt(HTTPTimeoutSeconds),
			RetryMax:       v.GetInt(HTTPRetryMax),
		},
		EnableMetrics: v.GetBool(EnableMetrics),
		DevMode:       v.GetBool(DevMode),
	}

	if s.HTTP.TimeoutSeconds <= 0 {
		return nil, errors.New("http.timeoutSeconds must be positive")
	}
	if s.HTTP.RetryMax < 0 {
		return nil, errors.New("http.retryMax must not be negative")
	}

	return s, nil
}

// splitList also splits comma separated entries, as environment variables carry lists.
func splitList(values []string) []string {
	var list []string
	for _, value := range values {
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				list = append(list, item)
			}
		}
	}
	return list
}
