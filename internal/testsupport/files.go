package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// MatroskaHeader is the leading EBML header of a Matroska file.
var MatroskaHeader = []byte{
	0x1A, 0x45, 0xDF, 0xA3, 0x93, 0x42, 0x82, 0x88,
	'm', 'a', 't', 'r', 'o', 's', 'k', 'a',
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteMatroskaHeader writes a file that starts with a Matroska EBML header.
func WriteMatroskaHeader(t testing.TB, path string) {
	t.Helper()
	data := append([]byte{}, MatroskaHeader...)
	data = append(data, make([]byte, 64)...)
	WriteFile(t, path, data)
}

// WriteScript writes an executable file.
func WriteScript(t testing.TB, path, script string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write script %s: %v", path, err)
	}
}
