package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"

	"github.com/polkiloo/loanledger/internal/storage/postgres"
)

const usageText = `Usage: migrate <command> [args]

Commands:
  up           Apply all pending migrations
  down [N]     Roll back N migrations (default: 1)
  version      Print current migration version
  force <V>    Set migration version without running it

Environment:
  DATABASE_URI  Required. PostgreSQL DSN shared with the service.`

// migrator is the subset of *migrate.Migrate used by the commands.
type migrator interface {
	Up() error
	Steps(n int) error
	Version() (uint, bool, error)
	Force(v int) error
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", "loanledger-migrate")

	dsn := os.Getenv("DATABASE_URI")
	if dsn == "" {
		logger.Error("DATABASE_URI environment variable is required")
		os.Exit(1)
	}

	m, err := postgres.NewMigrator(dsn)
	if err != nil {
		logger.Error("migration init failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer m.Close()
	m.Log = &migrateLogger{logger: logger}

	if err := run(os.Args[1:], m, os.Stdout, logger); err != nil {
		logger.Error("migration failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(args []string, m migrator, out io.Writer, logger *slog.Logger) error {
	if len(args) == 0 {
		fmt.Fprintln(out, usageText)
		return errors.New("command required")
	}

	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("up: %w", err)
		}
		logger.Info("migrations: up completed")

	case "down":
		steps := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				return fmt.Errorf("down: invalid steps argument %q", args[1])
			}
			steps = n
		}
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("down: %w", err)
		}
		logger.Info("migrations: down completed", "steps", steps)

	case "version":
		v, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("version: %w", err)
		}
		fmt.Fprintf(out, "version: %d dirty: %v\n", v, dirty)

	case "force":
		if len(args) < 2 {
			return errors.New("force: version argument required")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("force: invalid version %q", args[1])
		}
		if err := m.Force(v); err != nil {
			return fmt.Errorf("force: %w", err)
		}
		logger.Info("migrations: forced", "version", v)

	default:
		fmt.Fprintln(out, usageText)
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

type migrateLogger struct {
	logger *slog.Logger
}

func (l *migrateLogger) Printf(format string, v ...any) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *migrateLogger) Verbose() bool { return false }
