//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testUser     = "test"
	testPassword = "testpass"
)

type ContainerInfo struct {
	Host string
	Port nat.Port
}

func (i ContainerInfo) Addr() string {
	return i.Host + ":" + i.Port.Port()
}

// sharedContainer はテストプロセス内で一度だけ起動し、全スイートで共有する
type sharedContainer struct {
	once      sync.Once
	container testcontainers.Container
	info      ContainerInfo
	err       error
}

func (s *sharedContainer) start(name string, port nat.Port, req testcontainers.ContainerRequest) (ContainerInfo, error) {
	s.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		s.container, s.err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		if s.err != nil {
			s.err = fmt.Errorf("%sコンテナの起動に失敗: %w", name, s.err)
			return
		}
		s.info, s.err = hostPort(ctx, s.container, port)
		if s.err == nil {
			slog.Info("コンテナを起動しました", "name", name, "addr", s.info.Addr())
		}
	})
	return s.info, s.err
}

var (
	postgresContainer sharedContainer
	redisContainer    sharedContainer
)

func startPostgres() (ContainerInfo, error) {
	return postgresContainer.start("PostgreSQL", "5432/tcp", testcontainers.ContainerRequest{
		Image:        "postgres:17",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     testUser,
			"POSTGRES_PASSWORD": testPassword,
			"POSTGRES_DB":       "postgres",
		},
		Tmpfs: map[string]string{
			"/var/lib/postgresql/data": "rw,size=512m", // データをRAMに載せてI/O削減
		},
		Cmd: []string{
			"postgres",
			"-c", "fsync=off",
			"-c", "full_page_writes=off",
			"-c", "synchronous_commit=off",
			"-c", "shared_buffers=256MB",
			"-c", "max_connections=200",
			"-c", "log_statement=none",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
			return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
				testUser, testPassword, host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
		Labels: map[string]string{"purpose": "roomboard-e2e"},
	})
}

// 永続化は不要なのでスナップショットを無効にする
func startRedis() (ContainerInfo, error) {
	return redisContainer.start("Redis", "6379/tcp", testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		Cmd:          []string{"redis-server", "--save", "", "--appendonly", "no"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		Labels:       map[string]string{"purpose": "roomboard-e2e"},
	})
}

func hostPort(ctx context.Context, c testcontainers.Container, port nat.Port) (ContainerInfo, error) {
	mapped, err := c.MappedPort(ctx, port)
	if err != nil {
		return ContainerInfo{}, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return ContainerInfo{}, err
	}
	return ContainerInfo{Host: host, Port: mapped}, nil
}
