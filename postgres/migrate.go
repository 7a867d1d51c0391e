package postgres

import (
	"fmt"
	"time"

	"github.com/xy-planning-network/tojson"
	"gorm.io/gorm"
)

const migrationsTable = "migrations"

// Migration is used to hold the database key and function for creating the migration.
type Migration struct {
	Executor func(*gorm.DB) error
	Key      string
}

// execute runs the Migration and records it ran in a single transaction.
func (m Migration) execute(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := m.Executor(tx); err != nil {
			return err
		}

		return tx.Exec(`INSERT INTO migrations (key, ran_at) VALUES (?, ?)`, m.Key, time.Now().Unix()).Error
	})
}

// MigrateUp runs, in order, each Migration in migrations not yet recorded as ran.
//
// MigrateUp stops at the first Migration failing.
func MigrateUp(db *gorm.DB, schema string, migrations []Migration) error {
	if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)).Error; err != nil {
		return fmt.Errorf("%w: creating %s schema: %s", tojson.ErrUnexpected, schema, err)
	}

	err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			ran_at bigint,
			key text,
			CONSTRAINT migrations_key UNIQUE (key)
		)
	`).Error
	if err != nil {
		return fmt.Errorf("%w: creating migrations table: %s", tojson.ErrUnexpected, err)
	}

	toRun, err := determineMigrationsToRun(db, migrations)
	if err != nil {
		return err
	}

	for _, m := range toRun {
		if m.Executor == nil {
			return fmt.Errorf("%w: migration %q has no Executor", tojson.ErrMissingData, m.Key)
		}

		if err := m.execute(db); err != nil {
			return fmt.Errorf("%w: migration %q: %s", tojson.ErrUnexpected, m.Key, err)
		}
	}

	return nil
}

func determineMigrationsToRun(db *gorm.DB, all []Migration) ([]Migration, error) {
	var ran []string
	if err := db.Table(migrationsTable).Pluck("key", &ran).Error; err != nil {
		return nil, fmt.Errorf("%w: fetching ran migrations: %s", tojson.ErrUnexpected, err)
	}

	seen := make(map[string]bool, len(ran))
	for _, key := range ran {
		seen[key] = true
	}

	toRun := make([]Migration, 0, len(all))
	for _, m := range all {
		if !seen[m.Key] {
			toRun = append(toRun, m)
		}
	}

	return toRun, nil
}
