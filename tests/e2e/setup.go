//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"decor-booking/cmd/bootstrap"
	"decor-booking/cmd/bootstrap/components"
	"decor-booking/internal/domain/user"
	"decor-booking/internal/infra/db"
	"decor-booking/internal/pkg/config"
	"decor-booking/internal/usecase/commands"
	"decor-booking/tests/common/authtest"
	"decor-booking/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	pgUser     = "test"
	pgPassword = "testpass"

	DecoratorEmail = "decorator@example.com"
	AdminEmail     = "admin@example.com"
	AdminName      = "Platform Admin"

	RetiredServiceName = "Retired Office Theme"
)

var (
	pgOnce      sync.Once
	pgContainer testcontainers.Container
	pgAddr      struct {
		host string
		port nat.Port
	}
)

// Fixtures are present at the start of every subtest.
type Fixtures struct {
	ServiceID        uuid.UUID
	RetiredServiceID uuid.UUID
	DecoratorID      uuid.UUID
	AdminID          uuid.UUID
}

// SharedSuite gives each e2e suite its own database and a running application.
type SharedSuite struct {
	suite.Suite
	Router   *gin.Engine
	DB       *pgxpool.Pool
	Config   config.Config
	Fixtures Fixtures

	users commands.UserAdminCommands
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	dbCfg := createSuiteDatabase(t)
	pool, _, err := db.Connect(dbCfg)
	require.NoError(t, err, "データベース接続に失敗")
	require.NoError(t, applyMigrations(pool), "マイグレーションに失敗")
	t.Cleanup(pool.Close)

	s.DB = pool
	s.Config = e2eConfig(dbCfg)
	s.startApp(t)
}

func (s *SharedSuite) SetupTest() {}

// SetupSubTest empties every table, then restores reference data and the shared fixtures.
func (s *SharedSuite) SetupSubTest() {
	t := s.T()
	require.NoError(t, dbtest.ResetDB(s.DB), "Failed to reset database state")
	s.Fixtures = s.seedFixtures(t)
}

// Login authenticates as a fixture or test user. All of them share authtest.Password.
func (s *SharedSuite) Login(t *testing.T, email string) string {
	t.Helper()
	return authtest.LoginUser(t, s.Router, email, authtest.Password)
}

func (s *SharedSuite) seedFixtures(t *testing.T) Fixtures {
	t.Helper()

	adminID, _, err := s.users.EnsureAdmin(context.Background(), commands.RegisterRequest{
		Email:    s.Config.Admin.Email,
		Password: s.Config.Admin.Password,
		Name:     s.Config.Admin.Name,
	})
	require.NoError(t, err, "管理者の作成に失敗")

	return Fixtures{
		ServiceID:        dbtest.ServiceID(t, s.DB, dbtest.DefaultServiceName),
		RetiredServiceID: dbtest.ServiceID(t, s.DB, RetiredServiceName),
		DecoratorID:      dbtest.CreateTestUser(t, s.DB, DecoratorEmail, "Rahim Decorator", string(user.RoleDecorator)),
		AdminID:          adminID,
	}
}

// startApp runs the production module graph against the suite database.
// The admin seed hook runs on start, the same way it does in the server binary.
func (s *SharedSuite) startApp(t *testing.T) {
	t.Helper()

	app := fx.New(
		fx.Supply(s.DB, s.Config),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		bootstrap.RedisModule,
		bootstrap.BrokerModule,
		bootstrap.MetricsModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		bootstrap.AdminSeedModule,
		fx.Populate(&s.Router, &s.users),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "fxアプリケーションの起動に失敗")
	require.NotNil(t, s.Router)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("fxアプリケーションの停止に失敗しました", "error", err.Error())
		}
	})
}

func e2eConfig(dbCfg config.DBConfig) config.Config {
	cfg := config.NewTestConfig()
	cfg.DB = dbCfg
	cfg.Admin = config.AdminConfig{Email: AdminEmail, Password: authtest.Password, Name: AdminName}
	return cfg
}

// createSuiteDatabase creates a database private to the calling suite and drops it on cleanup.
func createSuiteDatabase(t *testing.T) config.DBConfig {
	t.Helper()
	startPostgres(t)

	name := "e2e_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		pgUser, pgPassword, pgAddr.host, pgAddr.port.Port())

	exec := func(sql string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		pool, err := pgxpool.New(ctx, adminDSN)
		if err != nil {
			return err
		}
		defer pool.Close()
		_, err = pool.Exec(ctx, sql)
		return err
	}

	var err error
	for attempt := 0; attempt < 5; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
			slog.Warn("データベース作成を再試行中", "attempt", attempt+1, "error", err.Error())
		}
		if err = exec("CREATE DATABASE " + name); err == nil {
			break
		}
	}
	require.NoError(t, err, "テスト用データベースの作成に失敗")

	t.Cleanup(func() {
		if err := exec("DROP DATABASE IF EXISTS " + name + " WITH (FORCE)"); err != nil {
			slog.Warn("テストデータベースの削除に失敗しました", "database", name, "error", err.Error())
		}
	})

	return config.DBConfig{
		Host:     pgAddr.host,
		Port:     pgAddr.port.Port(),
		User:     pgUser,
		Password: pgPassword,
		DBName:   name,
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 10,
	}
}

// applyMigrations runs every migrations/*.sql file in name order.
func applyMigrations(pool *pgxpool.Pool) error {
	dir, err := findMigrationsDir()
	if err != nil {
		return err
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return err
	}
	sort.Strings(files)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	for _, f := range files {
		sql, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply %s: %w", f, err)
		}
	}
	return nil
}

// findMigrationsDir walks up from the package directory `go test` runs in.
func findMigrationsDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("migrations directory not found")
		}
		dir = parent
	}
}

// startPostgres starts one throwaway PostgreSQL per test process.
func startPostgres(t *testing.T) {
	pgOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "postgres:17",
				ExposedPorts: []string{"5432/tcp"},
				Env: map[string]string{
					"POSTGRES_USER":     pgUser,
					"POSTGRES_PASSWORD": pgPassword,
					"POSTGRES_DB":       "postgres",
				},
				// データはRAM上、耐久性は不要
				Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
				Cmd: []string{
					"postgres",
					"-c", "fsync=off",
					"-c", "synchronous_commit=off",
					"-c", "full_page_writes=off",
					"-c", "max_connections=200",
				},
				WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
					return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", pgUser, pgPassword, host, port.Port())
				}).WithStartupTimeout(time.Minute),
				Labels: map[string]string{"purpose": "decor-booking-e2e"},
			},
			Started: true,
		})
		require.NoError(t, err, "PostgreSQLコンテナの起動に失敗")
		pgContainer = c

		port, err := c.MappedPort(ctx, "5432/tcp")
		require.NoError(t, err)
		host, err := c.Host(ctx)
		require.NoError(t, err)
		pgAddr.host, pgAddr.port = host, port
	})
	require.NotNil(t, pgContainer, "PostgreSQLコンテナが起動していません")
}
