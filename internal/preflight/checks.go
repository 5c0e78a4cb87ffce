package preflight

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"mkvreorder/internal/config"
	"mkvreorder/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	return checkDir(name, path, unix.R_OK|unix.W_OK|unix.X_OK, "read/write ok")
}

// CheckReadableDir verifies that the directory exists and can be listed.
func CheckReadableDir(name, path string) Result {
	return checkDir(name, path, unix.R_OK|unix.X_OK, "readable")
}

// CheckWritableDir verifies that path can be written, or created beneath its
// nearest existing ancestor when it does not exist yet.
func CheckWritableDir(name, path string) Result {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		ancestor := filepath.Dir(path)
		for {
			if _, err := os.Stat(ancestor); err == nil {
				break
			}
			parent := filepath.Dir(ancestor)
			if parent == ancestor {
				break
			}
			ancestor = parent
		}
		res := checkDir(name, ancestor, unix.W_OK|unix.X_OK, "")
		if !res.Passed {
			return res
		}
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
	}
	return checkDir(name, path, unix.W_OK|unix.X_OK, "writable")
}

func checkDir(name, path string, mode uint32, okDetail string) Result {
	if path == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, okDetail)}
}

// CheckSystemDeps evaluates the external binaries required by cfg. Both the
// run and status commands use it so the requirement list lives in one place.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	return deps.CheckBinaries([]deps.Requirement{
		{
			Name:        "mkvmerge",
			Command:     cfg.MKVMergeBinary(),
			Description: "Required for probing and remuxing (MKVToolNix)",
		},
	})
}
