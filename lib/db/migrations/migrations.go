package migrations

import (
	"database/sql"
	"fmt"
	"slices"
	"time"

	sq "github.com/Masterminds/squirrel"
)

const versionTable = "schema_migrations"

// Migration is one schema step. Up runs inside the transaction that records the version.
type Migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx, dialect Dialect) error
}

type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

func (d Dialect) builder() sq.StatementBuilderType {
	if d == DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

type MigrationManager struct {
	db         *sql.DB
	dialect    Dialect
	builder    sq.StatementBuilderType
	migrations []Migration
}

func NewMigrationManager(db *sql.DB, dialect Dialect) *MigrationManager {
	return newMigrationManager(db, dialect, GetMigrations())
}

func newMigrationManager(db *sql.DB, dialect Dialect, migrations []Migration) *MigrationManager {
	sorted := slices.Clone(migrations)
	slices.SortFunc(sorted, func(a, b Migration) int {
		return a.Version - b.Version
	})
	return &MigrationManager{
		db:         db,
		dialect:    dialect,
		builder:    dialect.builder(),
		migrations: sorted,
	}
}

// Run applies every migration newer than the recorded version, in version order.
func (m *MigrationManager) Run() error {
	pending, err := m.Pending()
	if err != nil {
		return err
	}
	for _, migration := range pending {
		if err := m.apply(migration); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Description, err)
		}
	}
	return nil
}

// Pending returns the migrations Run would apply.
func (m *MigrationManager) Pending() ([]Migration, error) {
	if err := m.createVersionTable(); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", versionTable, err)
	}
	current, err := m.GetCurrentVersion()
	if err != nil {
		return nil, fmt.Errorf("failed to get current version: %w", err)
	}

	var pending []Migration
	for _, migration := range m.migrations {
		if migration.Version > current {
			pending = append(pending, migration)
		}
	}
	return pending, nil
}

func (m *MigrationManager) apply(migration Migration) error {
	tx, err := m.db.Begin()
	if err != nil {
		return err
	}
	if err := migration.Up(tx, m.dialect); err != nil {
		_ = tx.Rollback()
		return err
	}

	resultedSQL, args, err := m.builder.
		Insert(versionTable).
		Columns("version", "description", "applied_at").
		Values(migration.Version, migration.Description, time.Now().UTC()).
		ToSql()
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec(resultedSQL, args...); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to record version: %w", err)
	}
	return tx.Commit()
}

func (m *MigrationManager) createVersionTable() error {
	_, err := m.db.Exec(`CREATE TABLE IF NOT EXISTS ` + versionTable + ` (
			version INTEGER PRIMARY KEY,
			description TEXT,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`)
	return err
}

// GetCurrentVersion returns the highest applied version, 0 on a fresh database.
func (m *MigrationManager) GetCurrentVersion() (int, error) {
	resultedSQL, args, err := m.builder.
		Select("COALESCE(MAX(version), 0)").
		From(versionTable).
		ToSql()
	if err != nil {
		return 0, err
	}

	var version int
	if err := m.db.QueryRow(resultedSQL, args...).Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}
