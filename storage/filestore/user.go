package filestore

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/rpeck07/StudentoS/core/user"
)

// userRecord is the users.json value of a user.
// Older files store the bcrypt hash alone; those users get their username as id.
type userRecord struct {
	ID           string    `json:"id"`
	PasswordHash string    `json:"password_hash"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LastLogin    time.Time `json:"last_login"`
}

func (r userRecord) toUser(uname string) user.User {
	return user.User{
		ID:           r.ID,
		Username:     uname,
		IsActive:     r.IsActive,
		PasswordHash: []byte(r.PasswordHash),
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
		LastLogin:    r.LastLogin.UTC(),
	}
}

func newUserRecord(usr user.User) userRecord {
	return userRecord{
		ID:           usr.ID,
		PasswordHash: string(usr.PasswordHash),
		IsActive:     usr.IsActive,
		CreatedAt:    usr.CreatedAt.UTC(),
		UpdatedAt:    usr.UpdatedAt.UTC(),
		LastLogin:    usr.LastLogin.UTC(),
	}
}

func (s *Store) readUsers() map[string]userRecord {
	raw := make(map[string]json.RawMessage)
	users := make(map[string]userRecord)
	if !readJSON(s.usersPath(), &raw) {
		return users
	}
	for uname, msg := range raw {
		var hash string
		if err := json.Unmarshal(msg, &hash); err == nil {
			users[uname] = userRecord{ID: uname, PasswordHash: hash, IsActive: true}
			continue
		}
		var rec userRecord
		if err := json.Unmarshal(msg, &rec); err == nil {
			if rec.ID == "" {
				rec.ID = uname
			}
			users[uname] = rec
		}
	}
	return users
}

type userRepository struct {
	store *Store
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(s *Store) user.Repository {
	return &userRepository{store: s}
}

func (repo *userRepository) CreateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	users := repo.store.readUsers()
	if _, ok := users[usr.Username]; ok {
		return user.User{}, user.ErrUsernameExists
	}
	rec := newUserRecord(usr)
	users[usr.Username] = rec
	if err := writeJSON(repo.store.usersPath(), users); err != nil {
		return user.User{}, err
	}
	return rec.toUser(usr.Username), nil
}

func (repo *userRepository) GetUserByID(_ context.Context, id string) (user.User, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if uname, rec, ok := findByID(repo.store.readUsers(), id); ok {
		return rec.toUser(uname), nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByUsername(_ context.Context, username string) (user.User, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if rec, ok := repo.store.readUsers()[username]; ok {
		return rec.toUser(username), nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) UpdateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	users := repo.store.readUsers()
	oldName, _, ok := findByID(users, usr.ID)
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	if oldName != usr.Username {
		if _, taken := users[usr.Username]; taken {
			return user.User{}, user.ErrUsernameExists
		}
		delete(users, oldName)
	}
	rec := newUserRecord(usr)
	users[usr.Username] = rec
	if err := writeJSON(repo.store.usersPath(), users); err != nil {
		return user.User{}, err
	}
	return rec.toUser(usr.Username), nil
}

func findByID(users map[string]userRecord, id string) (string, userRecord, bool) {
	names := make([]string, 0, len(users))
	for uname := range users {
		names = append(names, uname)
	}
	sort.Strings(names) // deterministic when legacy ids collide with new ones
	for _, uname := range names {
		if users[uname].ID == id {
			return uname, users[uname], true
		}
	}
	return "", userRecord{}, false
}
