package filesystem

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrDestinationExists is returned when a copy target is already present
var ErrDestinationExists = errors.New("destination already exists")

// CopyFileExclusive copies src to dst, failing if dst already exists
func CopyFileExclusive(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close()

	// O_EXCL so an existing file is never overwritten
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrDestinationExists, dst)
		}
		return fmt.Errorf("failed to create destination: %w", err)
	}

	// Remove the partial copy on failure
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("failed to copy data: %w", err)
	}
	if err := out.Sync(); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("failed to sync destination: %w", err)
	}
	return out.Close()
}
