package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/tempo-cli/tempo/internal/errors"
)

const (
	// LockFileName is the name of the lock file in the data directory.
	LockFileName = "tempo.lock"

	// lockPollInterval is how often acquisition retries while waiting.
	lockPollInterval = 50 * time.Millisecond
)

// errLockContended signals one failed non-blocking attempt; Acquire keeps
// retrying these until its deadline.
var errLockContended = fmt.Errorf("lock contended")

// FileLock is an exclusive advisory lock scoped to one load-mutate-save
// cycle. It is never held across user-interaction pauses.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock creates a lock for the given data directory.
func NewFileLock(dir string) *FileLock {
	return &FileLock{
		path: filepath.Join(dir, LockFileName),
	}
}

// Acquire attempts to take the lock, retrying until maxWait elapses. It
// fails with ErrLedgerLocked rather than blocking indefinitely.
func (l *FileLock) Acquire(maxWait time.Duration) error {
	deadline := time.Now().Add(maxWait)
	for {
		err := l.tryAcquire()
		if err == nil {
			return nil
		}
		if err != errLockContended {
			return err
		}
		if time.Now().After(deadline) {
			if pid := l.readPID(); pid > 0 {
				return errors.Wrapf(errors.ErrLedgerLocked, "held by PID %d", pid)
			}
			return errors.ErrLedgerLocked
		}
		time.Sleep(lockPollInterval)
	}
}

// tryAcquire makes one non-blocking attempt at the lock.
func (l *FileLock) tryAcquire() error {
	if err := l.cleanStaleLock(); err != nil {
		return err
	}

	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return errors.NewSystemErrorWithOp("lock", "cannot create lock file", err)
	}

	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		file.Close()
		if err == syscall.EWOULDBLOCK {
			return errLockContended
		}
		return errors.NewSystemErrorWithOp("lock", "flock failed", err)
	}

	// Stamp the lock with our PID so a contending invocation can report
	// who holds it and detect staleness.
	if err := l.writePID(file); err != nil {
		syscall.Flock(int(file.Fd()), syscall.LOCK_UN)
		file.Close()
		return err
	}

	l.file = file
	return nil
}

func (l *FileLock) writePID(file *os.File) error {
	if err := file.Truncate(0); err != nil {
		return errors.NewSystemErrorWithOp("lock", "cannot truncate lock file", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		return errors.NewSystemErrorWithOp("lock", "cannot seek lock file", err)
	}
	if _, err := fmt.Fprintf(file, "%d", os.Getpid()); err != nil {
		return errors.NewSystemErrorWithOp("lock", "cannot write lock file", err)
	}
	return file.Sync()
}

// Release releases the lock and removes the lock file.
func (l *FileLock) Release() error {
	if l.file == nil {
		return nil
	}

	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN); err != nil {
		l.file.Close()
		return err
	}

	if err := l.file.Close(); err != nil {
		return err
	}

	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return err
	}

	l.file = nil
	return nil
}

// cleanStaleLock removes the lock file if the process that wrote it is gone.
func (l *FileLock) cleanStaleLock() error {
	pid := l.readPID()
	if pid <= 0 {
		return nil
	}

	if isProcessRunning(pid) {
		return nil
	}

	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clean stale lock: %v", err)
	}

	return nil
}

// readPID reads the PID from the lock file.
// Returns 0 if the file doesn't exist or doesn't contain a valid PID.
func (l *FileLock) readPID() int {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return 0
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}

	return pid
}

// isProcessRunning checks if a process with the given PID is still running.
func isProcessRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	// On Unix FindProcess always succeeds; signal 0 probes for existence.
	err = process.Signal(syscall.Signal(0))
	return err == nil
}
