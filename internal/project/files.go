package project

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExt is the extension of compiled source files.
const SourceExt = ".wss"

// ListSources returns every .wss file under dir, sorted. Hidden
// directories and any directory in skip are not entered.
func ListSources(dir string, skip ...string) ([]string, error) {
	skipped := make(map[string]struct{}, len(skip))
	for _, s := range skip {
		if abs, err := filepath.Abs(s); err == nil {
			skipped[abs] = struct{}{}
		}
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != dir && len(name) > 1 && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if abs, err := filepath.Abs(path); err == nil {
				if _, ok := skipped[abs]; ok {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if filepath.Ext(path) == SourceExt {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
