package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"github.com/rpeck07/StudentoS/core"
	"github.com/rpeck07/StudentoS/core/user"
	"github.com/rpeck07/StudentoS/storage/database"
)

// NewValidator returns a validator with every custom validation of the app registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	return validate, translator
}

// PrepareDB opens a migrated SQLite database in a temporary directory.
// The database is closed when the test ends.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conf := &core.Config{
		Database: core.DatabaseConfig{URL: "sqlite:///" + filepath.Join(t.TempDir(), "test.db")},
	}
	db, err := database.Open(conf)
	if err != nil {
		t.Fatalf("database.Open() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Migrate(db); err != nil {
		t.Fatalf("database.Migrate() failed: %v", err)
	}
	return db
}

func CreateUser(t *testing.T, repo user.Repository, uname, pwd string, isActive bool, createdAt ...time.Time) user.User {
	t.Helper()

	tstamp := time.Now().UTC().Truncate(time.Second)
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		ID:        "id-" + uname,
		Username:  uname,
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("createUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}
