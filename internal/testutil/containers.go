package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresEndpoint describes a running test database.
type PostgresEndpoint struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

// requireDocker skips t under -short or when no Docker daemon answers.
func requireDocker(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		t.Skipf("docker client unavailable: %v", err)
	}
	defer cli.Close()

	if _, err := cli.Ping(ctx); err != nil {
		t.Skipf("docker daemon unavailable: %v", err)
	}
}

func startContainer(t *testing.T, req testcontainers.ContainerRequest, port nat.Port) (string, string) {
	t.Helper()
	ctx := context.Background()

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start %s: %v", req.Image, err)
	}
	t.Cleanup(func() {
		if err := ctr.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate %s: %v", req.Image, err)
		}
	})

	host, err := ctr.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get %s host: %v", req.Image, err)
	}
	mapped, err := ctr.MappedPort(ctx, port)
	if err != nil {
		t.Fatalf("Failed to get %s port: %v", req.Image, err)
	}
	return host, mapped.Port()
}

// StartPostgres runs a disposable PostgreSQL server for t.
func StartPostgres(t *testing.T) PostgresEndpoint {
	t.Helper()
	requireDocker(t)

	image := os.Getenv("TEST_POSTGRES_IMAGE")
	if image == "" {
		image = "postgres:16-alpine"
	}
	ep := PostgresEndpoint{Database: "inventory_test", User: "inventory", Password: "inventory"}

	port, err := nat.NewPort("tcp", "5432")
	if err != nil {
		t.Fatalf("Failed to create DB port: %v", err)
	}
	ep.Host, ep.Port = startContainer(t, testcontainers.ContainerRequest{
		Image:        image,
		ExposedPorts: []string{string(port)},
		Env: map[string]string{
			"POSTGRES_DB":       ep.Database,
			"POSTGRES_USER":     ep.User,
			"POSTGRES_PASSWORD": ep.Password,
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort(port),
		).WithDeadline(60 * time.Second),
	}, port)
	return ep
}

// StartRedis runs a disposable Redis server for t and returns its URL.
func StartRedis(t *testing.T) string {
	t.Helper()
	requireDocker(t)

	image := os.Getenv("TEST_REDIS_IMAGE")
	if image == "" {
		image = "redis:7-alpine"
	}
	port, err := nat.NewPort("tcp", "6379")
	if err != nil {
		t.Fatalf("Failed to create Redis port: %v", err)
	}
	host, mapped := startContainer(t, testcontainers.ContainerRequest{
		Image:        image,
		ExposedPorts: []string{string(port)},
		WaitingFor:   wait.ForListeningPort(port).WithStartupTimeout(30 * time.Second),
	}, port)
	return fmt.Sprintf("redis://%s:%s/0", host, mapped)
}
