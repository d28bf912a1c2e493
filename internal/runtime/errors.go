package runtime

import (
	"errors"
	"fmt"
	"strings"
	"syscall"
)

// ErrDiskFull reports that the run history could not be written.
var ErrDiskFull = errors.New("disk full: unable to write run history")

// DiskFullError represents a disk full condition with additional context.
type DiskFullError struct {
	Op      string // The operation that failed (e.g., "record run")
	Path    string // The database path, empty when in memory
	wrapped error
}

func (e *DiskFullError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("disk full during %s on %s: %v", e.Op, e.Path, e.wrapped)
	}
	return fmt.Sprintf("disk full during %s: %v", e.Op, e.wrapped)
}

func (e *DiskFullError) Unwrap() error {
	return ErrDiskFull
}

// NewDiskFullError creates a new DiskFullError.
func NewDiskFullError(op, path string, err error) *DiskFullError {
	return &DiskFullError{
		Op:      op,
		Path:    path,
		wrapped: err,
	}
}

var diskFullPatterns = []string{
	"no space left on device",
	"disk full",
	"enospc",
	"not enough space",
	"insufficient disk space",
}

// IsDiskFullError checks for ENOSPC and common disk full messages.
func IsDiskFullError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDiskFull) {
		return true
	}

	var errno syscall.Errno
	if errors.As(err, &errno) && errno == syscall.ENOSPC {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range diskFullPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// WrapDiskFullError wraps err as a DiskFullError if it indicates a full disk.
// Other errors are returned unchanged.
func WrapDiskFullError(err error, op, path string) error {
	if err == nil {
		return nil
	}
	if IsDiskFullError(err) {
		return NewDiskFullError(op, path, err)
	}
	return err
}
