package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mkvreorder/internal/config"
	"mkvreorder/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	mkvmerge   string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	stub := testsupport.StubMKVMerge(t, testsupport.StandardIdentification)
	cfg := testsupport.NewConfig(t, testsupport.WithMKVMerge(stub))
	base := testsupport.BaseDir(cfg)
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Chdir(base)

	env := &cliTestEnv{
		cfg:        cfg,
		configPath: filepath.Join(base, "config.toml"),
		baseDir:    base,
		mkvmerge:   stub,
	}
	cfg.Logging.Level = "error"
	writeTestConfig(t, env.configPath, cfg)
	return env
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
source_dir = %q
dest_dir = %q
log_dir = %q

[batch]
workers = %d

[mkvmerge]
binary = %q

[logging]
level = %q

[metrics]
textfile = %q
`,
		cfg.Paths.SourceDir,
		cfg.Paths.DestDir,
		cfg.Paths.LogDir,
		cfg.Batch.Workers,
		cfg.MKVMerge.Binary,
		cfg.Logging.Level,
		cfg.Metrics.Textfile,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func stubCallCount(t *testing.T, binary, prefix string) int {
	t.Helper()
	data, err := os.ReadFile(testsupport.StubCalls(binary))
	if os.IsNotExist(err) {
		return 0
	}
	if err != nil {
		t.Fatalf("read stub calls: %v", err)
	}
	n := 0
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, prefix) {
			n++
		}
	}
	return n
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
