package fileutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
)

// signatureHeaderSize is how many leading bytes are sniffed for container magic.
const signatureHeaderSize = 4096

// Exists reports whether path exists. Errors other than "not exist" are
// returned so callers do not mistake an unreadable path for a missing one.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// EnsureParentDir creates the parent directory of path. It is safe to call
// concurrently for the same directory.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}

// TempSibling returns a hidden temporary path next to path, used for atomic
// writes that are renamed into place on success.
func TempSibling(path string) string {
	return filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".partial")
}

// IsMatroska sniffs the file header and reports whether it carries an EBML
// header with the matroska doctype.
func IsMatroska(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, signatureHeaderSize)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read header: %w", err)
	}
	return filetype.Is(head[:n], "mkv"), nil
}
