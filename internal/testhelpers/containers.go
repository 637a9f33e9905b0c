// This file is a helper for running tests with testcontainers.
// It is used by the integration tests and by the standalone cmd/testcontainers executable.
//

package testhelpers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/localnerve/agsdb/internal/config"
	"github.com/localnerve/agsdb/internal/database"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

// Network aliases of the containers
const (
	DBNetworkAlias    = "db"
	RedisNetworkAlias = "redis"
)

type TestContainers struct {
	Network        *testcontainers.DockerNetwork
	DBContainer    testcontainers.Container
	RedisContainer testcontainers.Container

	// Config is the input config pointed at the mapped container ports
	Config *config.Config
}

type dbImage struct {
	image string
	port  string
}

var dbImages = map[string]dbImage{
	"postgres":  {image: "postgres:16-alpine", port: "5432"},
	"mysql":     {image: "mysql:8.4", port: "3306"},
	"mariadb":   {image: "mariadb:11.4", port: "3306"},
	"sqlserver": {image: "mcr.microsoft.com/mssql/server:2022-latest", port: "1433"},
}

func (tc *TestContainers) Terminate(t *testing.T) {
	ctx := context.Background()
	if tc.RedisContainer != nil {
		if err := tc.RedisContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate Redis: %v", err)
		}
	}
	if tc.DBContainer != nil {
		if err := tc.DBContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate database: %v", err)
		}
	}
	if tc.Network != nil {
		if err := tc.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

// CreateTestContainers starts a database of cfg.DBType and a Redis server on
// a shared network. DB_IMAGE overrides the database image.
func CreateTestContainers(t *testing.T, cfg config.Config) (*TestContainers, error) {
	ctx := context.Background()
	testContainers := &TestContainers{}

	image, ok := dbImages[cfg.DBType]
	if !ok {
		return nil, fmt.Errorf("no test container for DB_TYPE %q", cfg.DBType)
	}
	if override := os.Getenv("DB_IMAGE"); override != "" {
		image.image = override
	}

	nw, err := network.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create network: %w", err)
	}
	testContainers.Network = nw
	networkName := nw.Name

	// Database
	tcpDBPort, err := nat.NewPort("tcp", image.port)
	if err != nil {
		testContainers.Terminate(t)
		return nil, fmt.Errorf("failed to create database port: %w", err)
	}
	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image.image,
			ExposedPorts: []string{string(tcpDBPort)},
			Env:          getDBInitEnvMap(cfg),
			WaitingFor:   wait.ForListeningPort(tcpDBPort).WithStartupTimeout(120 * time.Second),
			Networks:     []string{networkName},
			NetworkAliases: map[string][]string{
				networkName: {DBNetworkAlias},
			},
		},
		Started: true,
	})
	if err != nil {
		testContainers.Terminate(t)
		return nil, fmt.Errorf("failed to start database: %w", err)
	}
	testContainers.DBContainer = dbContainer

	dbHost, _ := dbContainer.Host(ctx)
	dbPort, err := dbContainer.MappedPort(ctx, tcpDBPort)
	if err != nil {
		testContainers.Terminate(t)
		return nil, fmt.Errorf("failed to map database port: %w", err)
	}
	cfg.DBHost = dbHost
	cfg.DBPort = dbPort.Port()

	if err := waitForDatabase(t, &cfg); err != nil {
		testContainers.Terminate(t)
		return nil, err
	}
	logMessage(t, "DB_HOST=%s", cfg.DBHost)
	logMessage(t, "DB_PORT=%s", cfg.DBPort)

	// Redis
	tcpRedisPort, err := nat.NewPort("tcp", "6379")
	if err != nil {
		testContainers.Terminate(t)
		return nil, fmt.Errorf("failed to create Redis port: %w", err)
	}
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{string(tcpRedisPort)},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
			Networks:     []string{networkName},
			NetworkAliases: map[string][]string{
				networkName: {RedisNetworkAlias},
			},
		},
		Started: true,
	})
	if err != nil {
		testContainers.Terminate(t)
		return nil, fmt.Errorf("failed to start Redis: %w", err)
	}
	testContainers.RedisContainer = redisContainer

	redisHost, _ := redisContainer.Host(ctx)
	redisPort, err := redisContainer.MappedPort(ctx, tcpRedisPort)
	if err != nil {
		testContainers.Terminate(t)
		return nil, fmt.Errorf("failed to map Redis port: %w", err)
	}
	cfg.RedisURL = fmt.Sprintf("redis://%s:%s/0", redisHost, redisPort.Port())
	logMessage(t, "REDIS_URL=%s", cfg.RedisURL)

	testContainers.Config = &cfg
	logMessage(t, "agsdb testcontainers started successfully")
	return testContainers, nil
}

func getDBInitEnvMap(cfg config.Config) map[string]string {
	switch cfg.DBType {
	case "postgres":
		return map[string]string{
			"POSTGRES_PASSWORD": cfg.DBPassword,
			"POSTGRES_USER":     cfg.DBUser,
			"POSTGRES_DB":       cfg.DBDatabase,
		}
	case "mysql":
		return map[string]string{
			"MYSQL_ROOT_PASSWORD": cfg.DBPassword,
			"MYSQL_DATABASE":      cfg.DBDatabase,
			"MYSQL_USER":          cfg.DBUser,
			"MYSQL_PASSWORD":      cfg.DBPassword,
		}
	case "mariadb":
		return map[string]string{
			"MARIADB_ROOT_PASSWORD": cfg.DBPassword,
			"MARIADB_DATABASE":      cfg.DBDatabase,
			"MARIADB_USER":          cfg.DBUser,
			"MARIADB_PASSWORD":      cfg.DBPassword,
		}
	case "sqlserver":
		return map[string]string{
			"ACCEPT_EULA":       "Y",
			"MSSQL_SA_PASSWORD": cfg.DBPassword,
		}
	}
	return nil
}

// waitForDatabase retries until the database accepts connections. SQL Server
// has no init env for the application database, so it is created here as sa.
func waitForDatabase(t *testing.T, cfg *config.Config) error {
	probe := *cfg
	if cfg.DBType == "sqlserver" {
		probe.DBUser = "sa"
		probe.DBDatabase = "master"
	}

	var err error
	for i := 0; i < 30; i++ {
		if err = pingDatabase(&probe, cfg.DBDatabase); err == nil {
			if cfg.DBType == "sqlserver" {
				cfg.DBUser = "sa"
			}
			return nil
		}
		time.Sleep(1 * time.Second)
	}
	logMessage(t, "Database not ready after 30 seconds")
	return fmt.Errorf("database not ready: %w", err)
}

func pingDatabase(cfg *config.Config, appDatabase string) error {
	db, err := database.Connect(cfg, zap.NewNop())
	if err != nil {
		return err
	}
	defer database.Close(db)

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Ping(); err != nil {
		return err
	}
	if cfg.DBType == "sqlserver" {
		return db.Exec(fmt.Sprintf("IF DB_ID('%[1]s') IS NULL CREATE DATABASE [%[1]s]", appDatabase)).Error
	}
	return nil
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
