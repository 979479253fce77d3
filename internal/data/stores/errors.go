package stores

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// IsBusyError returns true if the error is a SQLITE_BUSY error.
func IsBusyError(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_BUSY
	}
	return false
}

// IsCorruptionError returns true if the error indicates an unreadable cache file.
func IsCorruptionError(err error) bool {
	if err == nil {
		return false
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3.SQLITE_CORRUPT || code == sqlite3.SQLITE_NOTADB
	}

	msg := err.Error()
	return strings.Contains(msg, "database disk image is malformed") ||
		strings.Contains(msg, "file is not a database")
}

// RecoverFromCorruption moves a broken cache file aside, together with its
// WAL and SHM companions, so the next Open starts from an empty cache.
// The cache only holds refetchable responses so nothing is lost.
func RecoverFromCorruption(path string) (string, error) {
	backup := fmt.Sprintf("%s.corrupt.%s", path, time.Now().Format("20060102-150405"))

	if err := os.Rename(path, backup); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to back up corrupted cache: %w", err)
	}

	for _, suffix := range []string{"-wal", "-shm"} {
		src := path + suffix
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if err := os.Rename(src, backup+suffix); err != nil {
			if rmErr := os.Remove(src); rmErr != nil {
				return "", fmt.Errorf("failed to move or remove %s: %w", src, err)
			}
		}
	}

	return backup, nil
}
