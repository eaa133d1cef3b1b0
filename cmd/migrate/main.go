package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	identityapp "github.com/realtyadmin/backend/internal/application/identity"
	"github.com/realtyadmin/backend/internal/domain/identity"
	"github.com/realtyadmin/backend/internal/domain/shared"
	"github.com/realtyadmin/backend/internal/infrastructure/auth"
	"github.com/realtyadmin/backend/internal/infrastructure/config"
	"github.com/realtyadmin/backend/internal/infrastructure/logger"
	"github.com/realtyadmin/backend/internal/infrastructure/migration"
	"github.com/realtyadmin/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

func main() {
	var (
		migrationsPath string
		logLevel       string
	)
	flag.StringVar(&migrationsPath, "path", "", "Path to migrations directory (default: ./migrations)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	migrationsPath = resolveMigrationsPath(migrationsPath)

	switch command {
	case "create":
		if len(args) < 2 {
			log.Fatal("Migration name required. Usage: migrate create <name>")
		}
		mf, err := migration.Create(migrationsPath, args[1], time.Now())
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		log.Info("Migration created",
			zap.String("version", mf.Version),
			zap.String("up_file", mf.UpPath),
			zap.String("down_file", mf.DownPath),
		)
		return

	case "list":
		files, err := migration.List(migrationsPath)
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		log.Info("Available migrations", zap.Int("count", len(files)))
		for _, f := range files {
			fmt.Println("  -", f)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	if command == "seed-admin" {
		if len(args) < 3 {
			log.Fatal("Username and password required. Usage: migrate seed-admin <username> <password>")
		}
		if err := seedAdmin(cfg, args[1], args[2], log); err != nil {
			log.Fatal("Failed to seed administrator", zap.Error(err))
		}
		return
	}

	log.Info("Migration CLI started",
		zap.String("command", command),
		zap.String("migrations_path", migrationsPath),
	)

	m, err := migration.Open(&cfg.Database, migrationsPath, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Error("Error closing migrator", zap.Error(err))
		}
	}()

	switch command {
	case "up":
		err = m.Up()

	case "down":
		err = m.Down()

	case "steps":
		n, convErr := intArg(args, "Step count required. Usage: migrate steps <n>")
		if convErr != nil {
			log.Fatal("Invalid step count", zap.Error(convErr))
		}
		err = m.Steps(n)

	case "goto":
		n, convErr := intArg(args, "Version required. Usage: migrate goto <version>")
		if convErr != nil || n < 0 {
			log.Fatal("Invalid version number", zap.Error(convErr))
		}
		err = m.GoTo(uint(n))

	case "force":
		n, convErr := intArg(args, "Version required. Usage: migrate force <version>")
		if convErr != nil {
			log.Fatal("Invalid version number", zap.Error(convErr))
		}
		log.Warn("Forcing migration version, the schema is not changed")
		err = m.Force(n)

	case "version":
		version, dirty, verr := m.Version()
		if verr != nil {
			log.Fatal("Failed to get version", zap.Error(verr))
		}
		if version == 0 {
			log.Info("No migrations applied")
			return
		}
		log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		log.Fatal("Migration failed", zap.String("command", command), zap.Error(err))
	}
}

func resolveMigrationsPath(path string) string {
	if path == "" {
		path = defaultMigrationsPath
		if _, err := os.Stat(path); err != nil {
			if exe, err := os.Executable(); err == nil {
				candidate := filepath.Join(filepath.Dir(exe), "..", "..", defaultMigrationsPath)
				if _, err := os.Stat(candidate); err == nil {
					path = candidate
				}
			}
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func intArg(args []string, usage string) (int, error) {
	if len(args) < 2 {
		return 0, errors.New(usage)
	}
	return strconv.Atoi(args[1])
}

// seedAdmin creates the first admin_head account. An existing username is
// left untouched.
func seedAdmin(cfg *config.Config, username, password string, log *zap.Logger) error {
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	users := identityapp.NewUserService(persistence.NewGormUserRepository(db.DB),
		auth.NewInMemoryTokenBlacklist(), nil, cfg.JWT.RefreshTokenExpiration, log)

	ctx, cancel := context.WithTimeout(shared.WithActor(context.Background(), shared.SystemActor), 30*time.Second)
	defer cancel()

	user, err := users.Create(ctx, identityapp.CreateUserInput{
		Username:    username,
		Password:    password,
		Role:        identity.RoleAdminHead,
		DisplayName: "Administrator",
	})
	var de *shared.DomainError
	if errors.As(err, &de) && de.Code == "USERNAME_EXISTS" {
		log.Warn("Administrator already exists", zap.String("username", username))
		return nil
	}
	if err != nil {
		return err
	}
	log.Info("Administrator created", zap.String("username", user.Username), zap.String("id", user.ID.String()))
	return nil
}

func printUsage() {
	fmt.Println(`Realty Admin database migration tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                          Apply all pending migrations
  down                        Roll back all migrations
  steps <n>                   Apply n migrations (positive=up, negative=down)
  goto <version>              Migrate to a specific version
  version                     Show current migration version
  force <version>             Set the migration version without running it
  create <name>               Create a new migration file pair
  list                        List available migrations
  seed-admin <user> <pass>    Create the first admin_head account

Flags:
  -path string                Path to migrations directory (default: ./migrations)
  -log-level string           Log level: debug, info, warn, error (default: info)

Configuration is read from config.toml and REALTY_ environment variables,
e.g. REALTY_DATABASE_HOST, REALTY_DATABASE_PASSWORD.

Examples:
  migrate up
  migrate steps -1
  migrate create add_unit_photos
  migrate seed-admin admin 'S3cure-Passw0rd'`)
}
