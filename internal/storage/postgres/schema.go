package postgres

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Migrations holds the versioned schema in golang-migrate layout.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// schemaMigrator is the part of *migrate.Migrate used at startup.
type schemaMigrator interface {
	Up() error
	Close() (error, error)
}

var newSchemaMigrator = func(dsn string) (schemaMigrator, error) {
	m, err := NewMigrator(dsn)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// NewMigrator opens the embedded migrations against the database behind dsn.
func NewMigrator(dsn string) (*migrate.Migrate, error) {
	src, err := iofs.New(Migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, MigrationURL(dsn))
	if err != nil {
		return nil, fmt.Errorf("open migration target: %w", err)
	}
	return m, nil
}

// MigrationURL rewrites a postgres DSN to the scheme registered by the pgx/v5 driver.
func MigrationURL(dsn string) string {
	for _, scheme := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(dsn, scheme) {
			return "pgx5://" + strings.TrimPrefix(dsn, scheme)
		}
	}
	return dsn
}

// migrateSchema brings the schema to the latest version and records it in
// schema_migrations, so cmd/migrate sees the same state as the service.
func migrateSchema(dsn string) (err error) {
	m, err := newSchemaMigrator(dsn)
	if err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err == nil {
			err = errors.Join(srcErr, dbErr)
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
