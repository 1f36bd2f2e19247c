package utils

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/ether/wsclient-go/lib/db"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage   = "postgres:alpine"
	postgresPort    = "5432/tcp"
	testDBName      = "wsclient_test"
	testDBUser      = "wsclient_user"
	testDBPassword  = "wsclient_password"
	postgresStartup = 30 * time.Second
)

// PostgresContainer is a throwaway Postgres server for the datastore tests.
type PostgresContainer struct {
	Container *testcontainers.DockerContainer
	Options   db.PostgresOptions
}

func (p *PostgresContainer) Terminate(ctx context.Context) error {
	return p.Container.Terminate(ctx)
}

func testDSN(host string, port nat.Port) string {
	return db.PostgresOptions{
		Username: testDBUser,
		Password: testDBPassword,
		Host:     host,
		Port:     port.Int(),
		Database: testDBName,
	}.DSN()
}

// PreparePostgresDB starts the container and waits until it accepts queries.
func PreparePostgresDB() (*PostgresContainer, error) {
	ctx := context.Background()
	container, err := testcontainers.Run(
		ctx, postgresImage,
		testcontainers.WithExposedPorts(postgresPort),
		testcontainers.WithWaitStrategy(
			wait.ForSQL(postgresPort, "postgres", testDSN).
				WithStartupTimeout(postgresStartup).
				WithQuery("SELECT 1"),
		),
		testcontainers.WithEnv(map[string]string{
			"POSTGRES_PASSWORD": testDBPassword,
			"POSTGRES_USER":     testDBUser,
			"POSTGRES_DB":       testDBName,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("starting postgres container: %w", err)
	}

	mapped, err := container.MappedPort(ctx, postgresPort)
	if err != nil {
		return nil, err
	}
	host, err := container.Host(ctx)
	if err != nil {
		return nil, err
	}
	port, err := strconv.Atoi(mapped.Port())
	if err != nil {
		return nil, err
	}

	return &PostgresContainer{
		Container: container,
		Options: db.PostgresOptions{
			Username: testDBUser,
			Password: testDBPassword,
			Host:     host,
			Port:     port,
			Database: testDBName,
		},
	}, nil
}
