package migrations

import (
	"database/sql"
)

// GetMigrations returns all available migrations
func GetMigrations() []Migration {
	return []Migration{
		migration001InitialSchema(),
	}
}

// migration001InitialSchema creates the service description table
func migration001InitialSchema() Migration {
	return Migration{
		Version:     1,
		Description: "Initial schema - create wsclient_service",
		Up: func(tx *sql.Tx, dialect Dialect) error {
			var queries []string

			switch dialect {
			case DialectPostgres:
				queries = getPostgresInitialSchema()
			default:
				queries = getSQLiteInitialSchema()
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func getSQLiteInitialSchema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS wsclient_service (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			label TEXT NOT NULL,
			url TEXT NOT NULL,
			type TEXT NOT NULL,
			settings TEXT DEFAULT NULL,
			operations TEXT DEFAULT NULL,
			status TEXT NOT NULL DEFAULT 'custom',
			created_at INTEGER NOT NULL DEFAULT 0,
			updated_at INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_wsclient_service_type ON wsclient_service(type)`,
	}
}

func getPostgresInitialSchema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS wsclient_service (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			label TEXT NOT NULL,
			url TEXT NOT NULL,
			type TEXT NOT NULL,
			settings JSONB DEFAULT NULL,
			operations JSONB DEFAULT NULL,
			status TEXT NOT NULL DEFAULT 'custom',
			created_at BIGINT NOT NULL DEFAULT 0,
			updated_at BIGINT NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_wsclient_service_type ON wsclient_service(type)`,
	}
}
