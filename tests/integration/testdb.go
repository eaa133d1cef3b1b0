//go:build integration

// Package integration runs the repositories and the HTTP API against a real
// PostgreSQL started with testcontainers.
package integration

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	applog "github.com/realtyadmin/backend/internal/infrastructure/logger"
	"github.com/realtyadmin/backend/internal/infrastructure/migration"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// postgresContainer is started once per package run and migrated on start
var postgresContainer struct {
	sync.Mutex
	c   *tcpostgres.PostgresContainer
	dsn string
}

// TestDB is one connection pool to the package's migrated database
type TestDB struct {
	DB    *gorm.DB
	SqlDB *sql.DB
	t     *testing.T
}

// NewSharedTestDB connects to the package's database, starting and migrating
// it on first use. Data is shared between tests, so callers register
// CleanTables as cleanup.
func NewSharedTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dsn := sharedDSN(t)
	gl := gormlogger.Interface(gormlogger.Discard)
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gl = applog.NewGormLogger(zaptest.NewLogger(t), gormlogger.Info)
	}
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{Logger: gl, SkipDefaultTransaction: true, TranslateError: true})
	require.NoError(t, err, "Failed to connect to database")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return &TestDB{DB: db, SqlDB: sqlDB, t: t}
}

func sharedDSN(t *testing.T) string {
	postgresContainer.Lock()
	defer postgresContainer.Unlock()
	if postgresContainer.c != nil {
		return postgresContainer.dsn
	}

	ctx := context.Background()
	c, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("realty_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("realty123"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	dsn, err := c.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	defer sqlDB.Close()
	m, err := migration.New(sqlDB, migrationsDir(t), zap.NewNop())
	require.NoError(t, err, "Failed to create migrator")
	require.NoError(t, m.Up(), "Failed to run migrations")
	_, dirty, err := m.Version()
	require.NoError(t, err)
	require.False(t, dirty, "Migrations left the schema dirty")

	postgresContainer.c, postgresContainer.dsn = c, dsn
	return dsn
}

// CleanTables empties every application table in one statement, keeping
// the migration bookkeeping
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()

	var tables []string
	require.NoError(tdb.t, tdb.DB.Raw(`
		SELECT quote_ident(tablename) FROM pg_tables
		WHERE schemaname = 'public' AND tablename <> 'schema_migrations'
	`).Scan(&tables).Error)
	if len(tables) == 0 {
		return
	}
	require.NoError(tdb.t, tdb.DB.Exec("TRUNCATE TABLE "+strings.Join(tables, ", ")+" CASCADE").Error)
}

// migrationsDir walks up from this file to the repository's migrations/
func migrationsDir(t *testing.T) string {
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	for dir := filepath.Dir(file); dir != filepath.Dir(dir); dir = filepath.Dir(dir) {
		candidate := filepath.Join(dir, "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
	}
	t.Fatal("migrations directory not found")
	return ""
}

// CleanupSharedContainer terminates the package's database, call it from TestMain
func CleanupSharedContainer() {
	postgresContainer.Lock()
	defer postgresContainer.Unlock()
	if postgresContainer.c == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_ = postgresContainer.c.Terminate(ctx)
	postgresContainer.c, postgresContainer.dsn = nil, ""
}
