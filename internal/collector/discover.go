package collector

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// DiscoveryError means the scanned directory yielded no matching files.
// This is a configuration problem and aborts the run before any output.
type DiscoveryError struct {
	Dir string
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("no YAML documents found under %s", e.Dir)
}

// The two conventional suffixes for YAML documents.
var docExtensions = map[string]bool{
	".yml":  true,
	".yaml": true,
}

// Discover recursively enumerates candidate document files under root and
// returns them in lexicographic path order. Returns *DiscoveryError when
// nothing matches.
func Discover(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if docExtensions[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "scanning %s", root)
	}
	if len(paths) == 0 {
		return nil, &DiscoveryError{Dir: root}
	}

	sort.Strings(paths)
	return paths, nil
}
