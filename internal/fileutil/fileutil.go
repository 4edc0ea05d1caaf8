// Package fileutil holds the file permissions and write helpers shared by
// the command-line tools.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// OwnerReadWrite is the file permission mode for definition output files
// containing potentially sensitive API data (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// OwnerDir is the permission mode for output directories.
const OwnerDir os.FileMode = 0o750

// RejectSymlink returns an error if path exists and is a symlink.
func RejectSymlink(path string) error {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("fileutil: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("fileutil: refusing to write to symlink: %s", path)
	}
	return nil
}

// WriteOwnerFile writes data to path with OwnerReadWrite permissions,
// creating missing parent directories with OwnerDir. Existing symlinks are
// never followed.
func WriteOwnerFile(path string, data []byte) error {
	cleaned := filepath.Clean(path)
	if dir := filepath.Dir(cleaned); dir != "." {
		if err := os.MkdirAll(dir, OwnerDir); err != nil {
			return fmt.Errorf("fileutil: creating directory: %w", err)
		}
	}
	if err := RejectSymlink(cleaned); err != nil {
		return err
	}
	if err := os.WriteFile(cleaned, data, OwnerReadWrite); err != nil {
		return fmt.Errorf("fileutil: writing %s: %w", cleaned, err)
	}
	return nil
}
