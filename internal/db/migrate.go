// Package db provides database schema migration management.
package db

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"time"

	apperrors "github.com/kimhsiao/inventory/internal/errors"
)

// migration is a schema change compiled into the binary. The CLI ships
// as a single file, so migrations live here instead of a directory of
// .sql files.
type migration struct {
	version     int
	description string
	sql         string
}

var migrations = []migration{
	{
		version:     1,
		description: "create_products",
		sql: `
		CREATE TABLE IF NOT EXISTS products (
			product_id INTEGER PRIMARY KEY AUTOINCREMENT,
			product_name TEXT NOT NULL UNIQUE CHECK(length(product_name) > 0),
			product_quantity INTEGER NOT NULL DEFAULT 0 CHECK(product_quantity >= 0),
			product_price INTEGER NOT NULL DEFAULT 0 CHECK(product_price >= 0),
			date_updated TEXT NOT NULL
		);`,
	},
}

// Migration records an applied schema migration.
type Migration struct {
	Version     int
	AppliedAt   time.Time
	Description string
	Checksum    string
}

// Migrator brings the store schema up to date.
type Migrator struct {
	db *sql.DB
}

// NewMigrator creates a new Migrator instance.
func NewMigrator(db *sql.DB) *Migrator {
	return &Migrator{db: db}
}

// Initialize creates the schema_migrations table if it doesn't exist.
func (m *Migrator) Initialize() error {
	query := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY CHECK(version > 0),
		applied_at INTEGER NOT NULL CHECK(applied_at > 0),
		description TEXT NOT NULL CHECK(length(description) > 0),
		checksum TEXT NOT NULL CHECK(length(checksum) = 64)
	);`
	if _, err := m.db.Exec(query); err != nil {
		return apperrors.Wrap(apperrors.ErrMigration, "creating schema_migrations table", err)
	}
	return nil
}

// CurrentVersion returns the current schema version.
func (m *Migrator) CurrentVersion() (int, error) {
	var version int
	err := m.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrMigration, "reading current version", err)
	}
	return version, nil
}

// AppliedMigrations returns all applied migrations in version order.
func (m *Migrator) AppliedMigrations() ([]Migration, error) {
	rows, err := m.db.Query("SELECT version, applied_at, description, checksum FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrMigration, "listing applied migrations", err)
	}
	defer rows.Close()

	var applied []Migration
	for rows.Next() {
		var mig Migration
		var appliedAt int64
		if err := rows.Scan(&mig.Version, &appliedAt, &mig.Description, &mig.Checksum); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrMigration, "scanning migration row", err)
		}
		mig.AppliedAt = time.Unix(appliedAt, 0)
		applied = append(applied, mig)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrMigration, "iterating applied migrations", err)
	}
	return applied, nil
}

// Up applies all pending migrations. Already applied versions are
// skipped, so Up is idempotent.
func (m *Migrator) Up() error {
	if err := m.Initialize(); err != nil {
		return err
	}

	applied, err := m.AppliedMigrations()
	if err != nil {
		return err
	}
	appliedVersions := make(map[int]bool)
	for _, mig := range applied {
		appliedVersions[mig.Version] = true
	}

	for _, mig := range migrations {
		if appliedVersions[mig.version] {
			continue
		}
		if err := m.apply(mig); err != nil {
			return err
		}
	}
	return nil
}

// apply executes a single migration and records it, in one transaction.
func (m *Migrator) apply(mig migration) error {
	tx, err := m.db.Begin()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrMigration, "beginning transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(mig.sql); err != nil {
		return apperrors.Wrap(apperrors.ErrMigration, "executing migration "+mig.description, err)
	}

	hash := sha256.Sum256([]byte(mig.sql))
	checksum := hex.EncodeToString(hash[:])
	query := `INSERT INTO schema_migrations (version, applied_at, description, checksum)
			  VALUES (?, ?, ?, ?)`
	if _, err := tx.Exec(query, mig.version, time.Now().Unix(), mig.description, checksum); err != nil {
		return apperrors.Wrap(apperrors.ErrMigration, "recording migration "+mig.description, err)
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Wrap(apperrors.ErrMigration, "committing migration "+mig.description, err)
	}
	return nil
}
