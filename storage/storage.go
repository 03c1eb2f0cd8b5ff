// Package storage opens the repositories of the configured storage backend.
package storage

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/rpeck07/StudentoS/core"
	"github.com/rpeck07/StudentoS/core/assignment"
	"github.com/rpeck07/StudentoS/core/user"
	"github.com/rpeck07/StudentoS/storage/database"
	"github.com/rpeck07/StudentoS/storage/database/sqlx"
	"github.com/rpeck07/StudentoS/storage/filestore"
)

type Backend struct {
	Users       user.Repository
	Assignments assignment.Repository
	DB          *sqlx.DB // nil for the file backend
}

// Open sets up conf.Storage.Backend. With migrate, pending database migrations are applied.
func Open(conf *core.Config, migrate bool) (*Backend, error) {
	switch conf.Storage.Backend {
	case core.StorageFile:
		store, err := filestore.New(conf.Storage.DataDir)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Users:       filestore.NewUserRepository(store),
			Assignments: filestore.NewAssignmentRepository(store),
		}, nil

	case core.StorageDatabase:
		db, err := database.Open(conf)
		if err != nil {
			return nil, err
		}
		if migrate {
			if err = database.Migrate(db); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		return &Backend{
			Users:       sqlxrepos.NewUserRepository(db),
			Assignments: sqlxrepos.NewAssignmentRepository(db),
			DB:          db,
		}, nil
	}
	return nil, errors.Errorf("unknown storage backend %q", conf.Storage.Backend)
}

func (b *Backend) Close() error {
	if b.DB != nil {
		return b.DB.Close()
	}
	return nil
}
