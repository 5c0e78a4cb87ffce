package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"mkvreorder/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The source directory exists; the destination does not.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.SourceDir = filepath.Join(base, "Original")
	cfgVal.Paths.DestDir = filepath.Join(base, "Modified")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Batch.Workers = 2
	if err := os.MkdirAll(cfgVal.Paths.SourceDir, 0o755); err != nil {
		t.Fatalf("mkdir source: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithMKVMerge points the config at an explicit mkvmerge binary.
func WithMKVMerge(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.MKVMerge.Binary = path
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, mkvmerge is stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"mkvmerge"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		for _, name := range names {
			WriteScript(b.t, filepath.Join(binDir, name), "#!/bin/sh\nexit 0\n")
		}
		b.t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.SourceDir)
}
