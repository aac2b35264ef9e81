package scan

import (
	"path/filepath"
	"sort"

	"github.com/matzehuels/envforge/pkg/ecosystem"
)

// RootDir is the subdirectory tag for the repository root.
const RootDir = "/"

// Snapshot is the immutable result of repository detection: which ecosystems
// are present, and where. Once produced by Detect it is never mutated.
type Snapshot struct {
	// Root is the absolute path of the materialized repository.
	Root string `json:"root"`

	// Counts maps ecosystem name to the total number of recognized source
	// files across the whole tree. Used only to pick the default primary
	// ecosystem.
	Counts map[string]int `json:"counts"`

	// Dirs maps each visited subdirectory (RootDir for the root) to the
	// sorted set of ecosystems observed among its direct files. A
	// subdirectory with no recognized files still appears with an empty set.
	Dirs map[string][]string `json:"dirs"`

	// Warnings records directories skipped during the walk (permission
	// errors, unreadable entries). Never fatal.
	Warnings []string `json:"warnings,omitempty"`
}

// Primary returns the primary ecosystem name for the snapshot.
//
// A non-empty forced value always wins. Otherwise the ecosystem with the
// highest file count is chosen; ties break on the fixed preference order
// given by prefer (first listed wins). Returns "" when nothing was
// recognized and no override is given.
func (s *Snapshot) Primary(forced string, prefer []*ecosystem.Ecosystem) string {
	if forced != "" {
		return forced
	}

	best, bestCount := "", 0
	for _, eco := range prefer {
		if c := s.Counts[eco.Name]; c > bestCount {
			best, bestCount = eco.Name, c
		}
	}
	return best
}

// SortedDirs returns all subdirectory tags in lexicographic order.
// The engine iterates subdirectories in this order to keep merge order
// deterministic regardless of completion order.
func (s *Snapshot) SortedDirs() []string {
	dirs := make([]string, 0, len(s.Dirs))
	for d := range s.Dirs {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}

// Tags returns the ecosystem tags for one subdirectory.
func (s *Snapshot) Tags(dir string) []string {
	return s.Dirs[dir]
}

// AbsDir converts a snapshot subdirectory tag back to an absolute path
// under root.
func AbsDir(root, dir string) string {
	if dir == RootDir {
		return root
	}
	return filepath.Join(root, filepath.FromSlash(dir))
}
