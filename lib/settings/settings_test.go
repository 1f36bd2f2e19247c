package settings

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefaultsAreApplied(t *testing.T) {
	cfg, err := ReadConfig("")
	require.NoError(t, err)

	require.Equal(t, "9002", cfg.Port)
	require.Equal(t, SQLITE, cfg.DBType)
	require.Equal(t, "var/wsclient.db", cfg.DBSettings.Filename)
	require.Equal(t, []string{"ws_rest", "ws_webhooks"}, cfg.Extensions.Enabled)
	require.Equal(t, 30, cfg.HTTP.TimeoutSeconds)
	require.True(t, cfg.EnableMetrics)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("WSCLIENT_PORT", "9999")
	t.Setenv("WSCLIENT_DBSETTINGS_FILENAME", "/tmp/other.db")

	cfg, err := ReadConfig("")
	require.NoError(t, err)
	require.Equal(t, "9999", cfg.Port)
	require.Equal(t, "/tmp/other.db", cfg.DBSettings.Filename)
}

func TestEnvExtensionList(t *testing.T) {
	t.Setenv("WSCLIENT_EXTENSIONS_ENABLED", "ws_rest, ws_files,,ws_webhooks")

	cfg, err := ReadConfig("")
	require.NoError(t, err)
	require.Equal(t, []string{"ws_rest", "ws_files", "ws_webhooks"}, cfg.Extensions.Enabled)
	require.True(t, cfg.IsExtensionEnabled("ws_files"))
}

func TestJSONOverride(t *testing.T) {
	cfg, err := ReadConfig(`{"dbType": "memory", "extensions": {"enabled": ["ws_rest"]}, "http": {"retryMax": 5}}`)
	require.NoError(t, err)
	require.Equal(t, MEMORY, cfg.DBType)
	require.True(t, cfg.IsExtensionEnabled("ws_rest"))
	require.False(t, cfg.IsExtensionEnabled("ws_webhooks"))
	require.Equal(t, 5, cfg.HTTP.RetryMax)
}

func TestUnknownDBType(t *testing.T) {
	_, err := ReadConfig(`{"dbType": "mongodb"}`)
	require.ErrorIs(t, err, ErrUnknownDBType)
}

func TestDBTypeAliases(t *testing.T) {
	for input, expected := range map[string]IDBType{
		"SQLite3":    SQLITE,
		" memory ":   MEMORY,
		"PostgreSQL": POSTGRES,
		"postgres":   POSTGRES,
	} {
		parsed, err := ParseDBType(input)
		require.NoError(t, err, input)
		require.Equal(t, expected, parsed)
	}
	require.False(t, MEMORY.Persistent())
	require.True(t, SQLITE.Persistent())
}

func TestVersionFromBuildInfo(t *testing.T) {
	require.Equal(t, "v1.2.0", versionFromBuildInfo(&debug.BuildInfo{Main: debug.Module{Version: "v1.2.0"}}))
	require.Equal(t, "abcdef1-dirty", versionFromBuildInfo(&debug.BuildInfo{
		Main: debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abcdef1234567"},
			{Key: "vcs.modified", Value: "true"},
		},
	}))
	require.Equal(t, "dev", versionFromBuildInfo(&debug.BuildInfo{}))
}

func TestInvalidTimeout(t *testing.T) {
	_, err := ReadConfig(`{"http": {"timeoutSeconds": 0}}`)
	require.Error(t, err)
}

func TestEnvVar(t *testing.T) {
	require.Equal(t, "WSCLIENT_DBSETTINGS_FILENAME", EnvVar(DBSettingsFilename))
}

func TestSetNested(t *testing.T) {
	out := map[string]any{}
	setNested(out, "http.retryMax", 2)
	setNested(out, "http.timeoutSeconds", 30)
	setNested(out, "port", "9002")

	require.Equal(t, map[string]any{
		"http": map[string]any{"retryMax": 2, "timeoutSeconds": 30},
		"port": "9002",
	}, out)
}

func TestConfigGet(t *testing.T) {
	_, err := ReadConfig(`{"port": "8080"}`)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, ConfigGet(&out, Port))
	require.Equal(t, "8080\n", out.String())

	require.ErrorIs(t, ConfigGet(&out, "nope"), ErrUnknownConfigKey)
}

func TestConfigInitIsValidJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, ConfigInit(&out))

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &parsed))
	require.Contains(t, parsed, "dbSettings")
	require.Equal(t, "9002", parsed["port"])
}

func TestConfigEnvListsEveryKey(t *testing.T) {
	var out bytes.Buffer
	ConfigEnv(&out)
	for _, c := range Registry {
		require.Contains(t, out.String(), EnvVar(c.Key))
	}
}

func TestInitSettingsLoadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("WSCLIENT_PORT=7001\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte(`{"dbType": "memory"}`), 0o600))
	t.Setenv("WSCLIENT_SETTINGS_PATH", dir)
	t.Cleanup(func() { _ = os.Unsetenv("WSCLIENT_PORT") })

	cfg, err := InitSettings(zap.NewNop().Sugar())
	require.NoError(t, err)
	require.Equal(t, "7001", cfg.Port)
	require.Equal(t, MEMORY, cfg.DBType)
	require.Equal(t, dir, cfg.Root)
	require.Equal(t, *cfg, Displayed)
}
