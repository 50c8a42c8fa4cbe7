package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const userIDFile = "user-id"

// loadUserID returns the pseudo-anonymous id stored under dir, creating one
// on first use. A corrupt file is replaced.
func loadUserID(dir string) (string, error) {
	path := filepath.Join(dir, userIDFile)
	raw, err := os.ReadFile(path)
	if err == nil {
		if id, parseErr := uuid.Parse(strings.TrimSpace(string(raw))); parseErr == nil {
			return id.String(), nil
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}
	return saveUserID(path, uuid.NewString())
}

func saveUserID(path, id string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", err
	}
	return id, nil
}

func defaultStateDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "ginraidee")
	}
	return filepath.Join(dir, "ginraidee")
}
