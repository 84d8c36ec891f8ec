package util

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// DefaultVideoExtensions are the container extensions offered as inputs.
var DefaultVideoExtensions = []string{".mp4", ".mkv"}

// ScanCandidates lists regular files (or symlinks to them) directly inside dir whose extension
// (case-insensitive) is in exts. Names are returned relative to dir, sorted.
// An empty result is not an error.
func ScanCandidates(dir string, exts []string) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	if len(exts) == 0 {
		exts = DefaultVideoExtensions
	}
	allowed := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		allowed[e] = true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "scan %s", dir)
	}

	var files []string
	for _, ent := range entries {
		if !allowed[strings.ToLower(filepath.Ext(ent.Name()))] {
			continue
		}
		mode := ent.Type()
		if mode&os.ModeSymlink != 0 {
			fi, err := os.Stat(filepath.Join(dir, ent.Name()))
			if err != nil {
				continue
			}
			mode = fi.Mode()
		}
		if mode.IsRegular() {
			files = append(files, ent.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// FileSize returns the size of path, or 0 when it cannot be stat'ed.
func FileSize(path string) int64 {
	fi, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return fi.Size()
}
