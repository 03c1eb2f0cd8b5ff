package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/rpeck07/StudentoS/core"
	"github.com/rpeck07/StudentoS/core/user"
)

const userColumns = "id, username, password_hash, is_active, created_at, updated_at, last_login"

type userRow struct {
	ID           string       `db:"id"`
	Username     string       `db:"username"`
	PasswordHash string       `db:"password_hash"`
	IsActive     bool         `db:"is_active"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
	LastLogin    sql.NullTime `db:"last_login"`
}

func newUserRow(usr user.User) userRow {
	return userRow{
		ID:           usr.ID,
		Username:     usr.Username,
		PasswordHash: string(usr.PasswordHash),
		IsActive:     usr.IsActive,
		CreatedAt:    usr.CreatedAt.UTC(),
		UpdatedAt:    usr.UpdatedAt.UTC(),
		LastLogin:    sql.NullTime{Time: usr.LastLogin.UTC(), Valid: !usr.LastLogin.IsZero()},
	}
}

func (r userRow) toUser() user.User {
	usr := user.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: []byte(r.PasswordHash),
		IsActive:     r.IsActive,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
	if r.LastLogin.Valid {
		usr.LastLogin = r.LastLogin.Time.UTC()
	}
	return usr
}

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	q := repo.db.Rebind("INSERT INTO users (" + userColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?)")
	r := newUserRow(usr)
	if _, err := repo.db.ExecContext(ctx, q, r.ID, r.Username, r.PasswordHash, r.IsActive, r.CreatedAt, r.UpdatedAt, r.LastLogin); err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUsernameExists
		}
		return user.User{}, wrapErr(err, "inserting user")
	}
	return r.toUser(), nil
}

func (repo *userRepository) getUser(ctx context.Context, where string, arg interface{}) (user.User, error) {
	var r userRow
	q := repo.db.Rebind("SELECT " + userColumns + " FROM users WHERE " + where + " = ?")
	if err := repo.db.GetContext(ctx, &r, q, arg); err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, wrapErr(err, "selecting user")
	}
	return r.toUser(), nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	return repo.getUser(ctx, "id", id)
}

func (repo *userRepository) GetUserByUsername(ctx context.Context, username string) (user.User, error) {
	return repo.getUser(ctx, "username", username)
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	q := repo.db.Rebind(`UPDATE users
		SET username = ?, password_hash = ?, is_active = ?, updated_at = ?, last_login = ?
		WHERE id = ?`)
	r := newUserRow(usr)
	res, err := repo.db.ExecContext(ctx, q, r.Username, r.PasswordHash, r.IsActive, r.UpdatedAt, r.LastLogin, r.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUsernameExists
		}
		return user.User{}, wrapErr(err, "updating user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return repo.GetUserByID(ctx, usr.ID)
}

func isUniqueViolation(err error) bool {
	switch e := errors.Cause(err).(type) {
	case *pq.Error:
		return e.Code == "23505"
	case sqlite3.Error:
		return e.ExtendedCode == sqlite3.ErrConstraintUnique || e.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// wrapErr turns a closed connection into a shutdown error so that the API stops.
func wrapErr(err error, msg string) error {
	if errors.Cause(err) == sql.ErrConnDone {
		return core.NewShutdownError(msg + ": " + err.Error())
	}
	return errors.Wrap(err, msg)
}
