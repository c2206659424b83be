package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Resolver turns run-config document entries into concrete file paths.
// An entry is either a plain filename relative to the input directory or a
// doublestar glob pattern matched against it.
type Resolver struct {
	root string
}

// NewResolver creates a resolver rooted at the input directory.
func NewResolver(root string) *Resolver {
	return &Resolver{root: root}
}

// Resolve expands the entries in order. Plain entries that do not exist are
// kept as-is so the pipeline can report the extraction failure per document;
// a glob that matches nothing is an error (a misconfigured pattern would
// silently empty the run otherwise).
func (r *Resolver) Resolve(entries []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, entry := range entries {
		if !isPattern(entry) {
			add(filepath.Join(r.root, entry))
			continue
		}

		matches, err := r.glob(entry)
		if err != nil {
			return nil, fmt.Errorf("bad document pattern %q: %w", entry, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("document pattern %q matched nothing", entry)
		}
		sort.Strings(matches)
		for _, m := range matches {
			add(m)
		}
	}

	return paths, nil
}

func (r *Resolver) glob(pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern")
	}

	var matches []string
	err := filepath.Walk(r.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(r.root, path)
		if err != nil {
			return err
		}
		ok, err := doublestar.Match(pattern, filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		if ok {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func isPattern(entry string) bool {
	return strings.ContainsAny(entry, "*?[{")
}
