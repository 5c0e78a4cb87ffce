package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Job maps one source file to its destination.
type Job struct {
	Source      string
	Destination string
	Relative    string
}

// Discover walks sourceDir for regular files whose extension matches ext
// (case-insensitively) and mirrors each relative path under destDir. The
// destination subtree is skipped when it lies inside sourceDir. Jobs are
// returned in lexical path order.
func Discover(sourceDir, destDir, ext string) ([]Job, error) {
	sourceDir = filepath.Clean(sourceDir)
	destDir = filepath.Clean(destDir)
	ext = strings.ToLower(ext)

	var jobs []Job
	err := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == destDir {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.ToLower(filepath.Ext(path)) != ext || !isRegular(path, d) {
			return nil
		}
		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		jobs = append(jobs, Job{
			Source:      path,
			Destination: filepath.Join(destDir, rel),
			Relative:    rel,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", sourceDir, err)
	}
	return jobs, nil
}

// isRegular accepts regular files and symlinks that resolve to one.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
