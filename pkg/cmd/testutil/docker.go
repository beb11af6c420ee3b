package testutil

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// SkipIfNoDocker skips the test if Docker is not available.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("Docker not available")
	}

	cmd := exec.CommandContext(t.Context(), "docker", "ps")
	if err := cmd.Run(); err != nil {
		t.Skip("Docker daemon not running")
	}
}

// PostgresContainer is a running Postgres instance plus the connection
// parameters an adaptor/config.Postgres section needs to reach it.
type PostgresContainer struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// StartPostgresContainer launches a disposable Postgres container for
// integration tests. It skips the test outright when Docker isn't available.
func StartPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	const (
		user = "movine"
		pass = "movine"
		db   = "movine"
	)

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase(db),
		postgres.WithUsername(user),
		postgres.WithPassword(pass),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err, "failed to get postgres container host")

	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err, "failed to get postgres container port")

	return &PostgresContainer{
		Host:     host,
		Port:     port.Int(),
		User:     user,
		Password: pass,
		Database: db,
	}
}
