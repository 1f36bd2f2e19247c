package utils

import (
	"fmt"
	"strconv"

	"github.com/ether/wsclient-go/lib/db"
	"github.com/ether/wsclient-go/lib/settings"
	"go.uber.org/zap"
)

// GetDB opens the datastore selected by dbType.
func GetDB(retrievedSettings settings.Settings, setupLogger *zap.SugaredLogger) (db.DataStore, error) {
	dbSettings := retrievedSettings.DBSettings
	if dbSettings == nil {
		dbSettings = &settings.DBSettings{}
	}
	if !retrievedSettings.DBType.Persistent() {
		setupLogger.Warn("Using the in-memory datastore, services are lost on restart")
	}

	switch retrievedSettings.DBType {
	case settings.SQLITE:
		setupLogger.Infof("Using SQLite datastore at %s", dbSettings.Filename)
		return db.NewSQLiteDB(dbSettings.Filename)
	case settings.MEMORY:
		return db.NewMemoryDataStore(), nil
	case settings.POSTGRES:
		options, err := postgresOptions(dbSettings)
		if err != nil {
			return nil, err
		}
		setupLogger.Infof("Using Postgres datastore %s on %s:%d", options.Database, options.Host, options.Port)
		return db.NewPostgresDB(options)
	default:
		return nil, fmt.Errorf("%w: %q", settings.ErrUnknownDBType, retrievedSettings.DBType)
	}
}

func postgresOptions(dbSettings *settings.DBSettings) (db.PostgresOptions, error) {
	port, err := strconv.Atoi(dbSettings.Port)
	if err != nil {
		return db.PostgresOptions{}, fmt.Errorf("invalid postgres port %q: %w", dbSettings.Port, err)
	}
	return db.PostgresOptions{
		Username: dbSettings.User,
		Password: dbSettings.Password,
		Host:     dbSettings.Host,
		Database: dbSettings.Database,
		Port:     port,
	}, nil
}
