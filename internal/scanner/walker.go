// Package scanner discovers source files under a root and runs the import
// extraction engine over them with a bounded worker pool.
package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/src-d/enry/v2"
)

// WalkOptions control file discovery.
type WalkOptions struct {
	// Include restricts the walk to paths matching at least one pattern;
	// empty means every file is a candidate.
	Include []string
	// Exclude drops paths matching any pattern.
	Exclude []string
	// SkipVendor drops vendored and generated paths (node_modules,
	// vendor trees, minified bundles) via enry's vendor heuristics.
	SkipVendor bool
}

// Walker collects candidate file paths in deterministic lexical order.
type Walker struct {
	include []glob.Glob
	exclude []glob.Glob
	opts    WalkOptions
}

// NewWalker compiles the include/exclude patterns.
func NewWalker(opts WalkOptions) (*Walker, error) {
	include, err := compilePatterns(opts.Include)
	if err != nil {
		return nil, fmt.Errorf("include pattern: %w", err)
	}

	exclude, err := compilePatterns(opts.Exclude)
	if err != nil {
		return nil, fmt.Errorf("exclude pattern: %w", err)
	}

	return &Walker{include: include, exclude: exclude, opts: opts}, nil
}

func compilePatterns(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", pattern, err)
		}

		globs = append(globs, g)
	}

	return globs, nil
}

// Walk returns the matching file paths under root. filepath.WalkDir visits
// entries lexically, so the result order is stable for identical trees.
func (w *Walker) Walk(root string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}

		slashed := filepath.ToSlash(rel)

		if d.IsDir() {
			if path != root && w.skipDir(d.Name(), slashed) {
				return filepath.SkipDir
			}

			return nil
		}

		if w.opts.SkipVendor && enry.IsVendor(slashed) {
			return nil
		}

		if !w.matches(slashed) {
			return nil
		}

		paths = append(paths, path)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return paths, nil
}

func (w *Walker) skipDir(name, slashed string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}

	if w.opts.SkipVendor && enry.IsVendor(slashed+"/") {
		return true
	}

	return false
}

func (w *Walker) matches(slashed string) bool {
	if len(w.include) > 0 {
		matched := false

		for _, g := range w.include {
			if g.Match(slashed) {
				matched = true

				break
			}
		}

		if !matched {
			return false
		}
	}

	for _, g := range w.exclude {
		if g.Match(slashed) {
			return false
		}
	}

	return true
}
