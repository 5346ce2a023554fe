package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// lockDir holds the lock files. Log directories themselves are left with
// nothing but the run logs.
var lockDir = os.TempDir()

// dirLock serializes log file selection in one directory across processes.
type dirLock struct {
	path   string
	flock  *flock.Flock
	locked bool
}

func newDirLock(dir string) *dirLock {
	path := lockPath(dir)
	return &dirLock{path: path, flock: flock.New(path)}
}

// lockPath maps a log directory to its lock file under lockDir, keyed by the
// absolute directory path.
func lockPath(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = filepath.Clean(dir)
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(lockDir, "logexec-"+hex.EncodeToString(sum[:8])+".lock")
}

// Lock blocks until the lock is held.
func (l *dirLock) Lock() error {
	if err := l.flock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock %s: %w", l.path, err)
	}
	l.locked = true
	return nil
}

// Unlock releases the lock. Safe to call when not locked.
func (l *dirLock) Unlock() error {
	if !l.locked {
		return nil
	}
	l.locked = false
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock %s: %w", l.path, err)
	}
	return nil
}
