// Package scan implements the repository detector: a single walk over the
// materialized tree that classifies files by ecosystem and partitions the
// tree into tagged subdirectories.
//
// The detector also computes the snapshot fingerprint used as the result
// cache key: a stable hash over the full scanned content, so any file
// change invalidates the cached inference result.
package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/matzehuels/envforge/pkg/ecosystem"
	envferrors "github.com/matzehuels/envforge/pkg/errors"
)

// skipDirs are directories never scanned: VCS metadata and dependency
// install trees, which would dominate counts without describing the
// project's own code.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
}

// Detect walks the directory tree once and classifies every file by
// extension into an ecosystem tag.
//
// Unknown extensions are ignored, not errors. Directories that cannot be
// read are skipped with a recorded warning. Every visited directory appears
// in the snapshot, even with an empty tag set; the root is tagged "/".
//
// A directory is additionally tagged with an ecosystem when it contains one
// of that ecosystem's well-known manifest files, so a directory holding
// only a package.json is still analyzed as javascript.
func Detect(root string, all []*ecosystem.Ecosystem) (*Snapshot, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Root:   root,
		Counts: make(map[string]int),
		Dirs:   map[string][]string{RootDir: nil},
	}
	tags := map[string]map[string]bool{RootDir: {}}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			snap.Warnings = append(snap.Warnings, fmt.Sprintf("skipped %s: %v", relDir(root, path), err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != root && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			dir := relDir(root, path)
			if dir != RootDir {
				if err := envferrors.ValidateRepoPath(dir); err != nil {
					snap.Warnings = append(snap.Warnings, fmt.Sprintf("skipped %s: %v", dir, err))
					return filepath.SkipDir
				}
			}
			if _, ok := tags[dir]; !ok {
				tags[dir] = map[string]bool{}
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		dir := relDir(root, filepath.Dir(path))
		if _, ok := tags[dir]; !ok {
			tags[dir] = map[string]bool{}
		}
		for _, eco := range all {
			if eco.RecognizesFile(d.Name()) {
				snap.Counts[eco.Name]++
				tags[dir][eco.Name] = true
			} else if eco.IsManifest(d.Name()) {
				tags[dir][eco.Name] = true
			}
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	for dir, set := range tags {
		names := make([]string, 0, len(set))
		for name := range set {
			names = append(names, name)
		}
		sort.Strings(names)
		snap.Dirs[dir] = names
	}
	return snap, nil
}

// relDir converts an absolute directory path to its snapshot tag:
// "/" for the root, a slash-separated relative path otherwise.
func relDir(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return RootDir
	}
	return filepath.ToSlash(rel)
}
