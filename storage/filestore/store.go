// Package filestore keeps users and assignments in JSON files under one data directory:
// users.json maps usernames to user records and data_<owner>.json holds one owner's assignment list.
package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

const usersFile = "users.json"

var ownerReplacer = strings.NewReplacer("/", "_", "..", "", " ", "_", `\`, "_")

type Store struct {
	dir string
	mu  sync.Mutex
}

// New creates dir if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, errors.Wrap(err, "creating data directory")
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

func (s *Store) usersPath() string {
	return filepath.Join(s.dir, usersFile)
}

func (s *Store) dataPath(owner string) string {
	return filepath.Join(s.dir, "data_"+ownerReplacer.Replace(owner)+".json")
}

// readJSON decodes path into v. It reports false when the file is missing or unreadable.
func readJSON(path string, v interface{}) bool {
	b, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return json.Unmarshal(b, v) == nil
}

// writeJSON replaces path atomically.
func writeJSON(path string, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding json")
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err = tmp.Write(b); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "syncing temp file")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	return errors.Wrap(os.Rename(tmp.Name(), path), "renaming temp file")
}
