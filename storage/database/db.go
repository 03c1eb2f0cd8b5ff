package database

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"

	"github.com/rpeck07/StudentoS/core"
	"github.com/rpeck07/StudentoS/fs"
)

// MigrationsDir is the directory of the migrations inside appfs.FS.
const MigrationsDir = "migrations"

var dialects = map[string]string{
	core.DriverSQLite:   "sqlite3",
	core.DriverPostgres: "postgres",
}

// Open connects to the database configured in conf and waits until it answers.
func Open(conf *core.Config) (*sqlx.DB, error) {
	driver, dsn, err := conf.Database.DriverAndDSN()
	if err != nil {
		return nil, err
	}

	if driver == core.DriverSQLite {
		if dsn != ":memory:" {
			if err = os.MkdirAll(filepath.Dir(dsn), 0750); err != nil {
				return nil, errors.Wrap(err, "creating database directory")
			}
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if driver == core.DriverSQLite {
		db.SetMaxOpenConns(1) // one writer at a time
	}

	if err = ping(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sqlx.DB) error {
	var err error
	maxAttempts := 10
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

// Prepare selects the goose dialect of db and points goose at the embedded migrations.
func Prepare(db *sqlx.DB) error {
	dialect, ok := dialects[db.DriverName()]
	if !ok {
		return errors.Errorf("no migration dialect for driver %q", db.DriverName())
	}
	goose.SetBaseFS(appfs.FS)
	if err := goose.SetDialect(dialect); err != nil {
		return errors.Wrap(err, "setting migration dialect")
	}
	return nil
}

// Migrate applies all pending migrations.
func Migrate(db *sqlx.DB) error {
	if err := Prepare(db); err != nil {
		return err
	}
	if err := goose.Up(db.DB, MigrationsDir); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}
