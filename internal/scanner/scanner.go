// Package scanner finds source images under a root directory.
//
// Matching follows shell glob rules against the base name of each file, so
// patterns are case-sensitive and never contain a separator. Results are
// grouped by pattern in the order the patterns were given; within a group the
// order is directory-walk order and callers should not rely on it.
//
// Directories that cannot be read are skipped without aborting the walk.
// Names beginning with "." are neither matched nor descended into unless
// Options.IncludeHidden is set. Symlinked directories are not followed;
// symlinked files are included when their target is a regular file.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Options controls a scan.
type Options struct {
	Patterns      []string
	IncludeHidden bool
}

// Scan walks root and returns the paths of files matching any pattern. Each
// returned path is root joined with the file's relative path. A file that
// matches several patterns appears once per pattern.
//
// Errors are returned only for an unusable root or a malformed pattern.
func Scan(root string, opts Options) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}

	groups := make([][]string, len(opts.Patterns))
	collect := func(name, path string) error {
		if !opts.IncludeHidden && isHidden(name) {
			return nil
		}
		for i, pattern := range opts.Patterns {
			ok, err := filepath.Match(pattern, name)
			if err != nil {
				return fmt.Errorf("pattern %q: %w", pattern, err)
			}
			if ok {
				groups[i] = append(groups[i], path)
			}
		}
		return nil
	}

	if !info.IsDir() {
		if err := collect(filepath.Base(root), root); err != nil {
			return nil, err
		}
		return flatten(groups), nil
	}

	// WalkDir does not descend into a symlinked root, so walk its target and
	// report paths under root as given.
	walkRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, err
	}

	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == walkRoot {
				return walkErr
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != walkRoot && !opts.IncludeHidden && isHidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !isRegularFile(path, d) {
			return nil
		}
		rel, err := filepath.Rel(walkRoot, path)
		if err != nil {
			return err
		}
		return collect(d.Name(), filepath.Join(root, rel))
	})
	if err != nil {
		return nil, err
	}

	return flatten(groups), nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	target, err := os.Stat(path)
	if err != nil {
		return false
	}
	return target.Mode().IsRegular()
}

func flatten(groups [][]string) []string {
	n := 0
	for _, g := range groups {
		n += len(g)
	}
	out := make([]string, 0, n)
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
