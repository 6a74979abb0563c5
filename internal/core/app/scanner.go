package app

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"typeonly/internal/core/errors"
	"typeonly/internal/shared/observability"

	"github.com/gobwas/glob"
)

// scanFilter holds the compiled exclude globs. Directory globs match a
// directory's base name; file globs match a file's base name.
type scanFilter struct {
	dirs  []glob.Glob
	files []glob.Glob
}

func newScanFilter(excludeDirs, excludeFiles []string) (*scanFilter, error) {
	dirGlobs := make([]glob.Glob, 0, len(excludeDirs))
	for _, p := range excludeDirs {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.Configf("scan.exclude_dirs", "invalid exclude dir pattern %q: %v", p, err)
		}
		dirGlobs = append(dirGlobs, g)
	}

	fileGlobs := make([]glob.Glob, 0, len(excludeFiles))
	for _, p := range excludeFiles {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.Configf("scan.exclude_files", "invalid exclude file pattern %q: %v", p, err)
		}
		fileGlobs = append(fileGlobs, g)
	}
	return &scanFilter{dirs: dirGlobs, files: fileGlobs}, nil
}

func (f *scanFilter) skipDir(path string) bool {
	return matchAny(f.dirs, filepath.Base(path))
}

func (f *scanFilter) skipFile(path string) bool {
	return matchAny(f.files, filepath.Base(path))
}

func matchAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Discover expands paths into the sorted, de-duplicated list of candidate
// files. Directories are walked recursively; explicitly named files are
// kept even when an exclude glob would match them. Scope filtering is
// left to the checker.
func (c *Checker) Discover(paths []string) ([]string, error) {
	filter, err := newScanFilter(c.cfg.Scan.ExcludeDirs, c.cfg.Scan.ExcludeFiles)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, errors.AddContext(errors.Wrap(err, errors.CodeNotFound, "scan path"), errors.CtxPath, root)
		}
		if !info.IsDir() {
			seen[filepath.Clean(root)] = struct{}{}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && filter.skipDir(path) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() || filter.skipFile(path) {
				return nil
			}
			seen[path] = struct{}{}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	files := make([]string, 0, len(seen))
	for path := range seen {
		files = append(files, path)
	}
	sort.Strings(files)
	observability.FilesDiscoveredTotal.Add(float64(len(files)))
	return files, nil
}
