package db

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/ether/wsclient-go/lib/db/migrations"
	_ "github.com/lib/pq"
)

type PostgresDB struct {
	sqlStore
	options PostgresOptions
}

type PostgresOptions struct {
	Username string
	Password string
	Port     int
	Host     string
	Database string
}

func (o PostgresOptions) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable", o.Username, o.Password, o.Host, o.Port, o.Database)
}

// NewPostgresDB This function creates a new PostgresDB and returns a pointer to it.
func NewPostgresDB(options PostgresOptions) (*PostgresDB, error) {
	sqlDb, err := sql.Open("postgres", options.DSN())
	if err != nil {
		return nil, err
	}
	if err := sqlDb.Ping(); err != nil {
		sqlDb.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	migrationManager := migrations.NewMigrationManager(sqlDb, migrations.DialectPostgres)
	if err := migrationManager.Run(); err != nil {
		sqlDb.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &PostgresDB{
		sqlStore: sqlStore{
			sqlDB:   sqlDb,
			builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		},
		options: options,
	}, nil
}

var _ DataStore = (*PostgresDB)(nil)
