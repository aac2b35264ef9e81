package scan

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/matzehuels/envforge/pkg/ecosystem"
)

// Fingerprint computes a stable content hash for a repository tree. Two
// trees with identical recognized files (same relative paths, same bytes)
// produce the same fingerprint regardless of walk order or filesystem
// metadata, so the fingerprint keys the result cache.
//
// Only files recognized by some ecosystem (source extensions and manifest
// files) contribute; unrelated files can change without invalidating a
// cached result.
func Fingerprint(root string, all []*ecosystem.Ecosystem) (string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}

	var paths []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		for _, eco := range all {
			if eco.RecognizesFile(d.Name()) || eco.IsManifest(d.Name()) {
				paths = append(paths, path)
				return nil
			}
		}
		return nil
	})
	if walkErr != nil {
		return "", walkErr
	}
	sort.Strings(paths)

	h := sha256.New()
	for _, path := range paths {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return "", err
		}
		f, err := os.Open(path)
		if err != nil {
			// Deleted between walk and hash: treat as absent.
			continue
		}
		fmt.Fprintf(h, "%s\x00", filepath.ToSlash(rel))
		if _, err := io.Copy(h, f); err != nil {
			f.Close()
			return "", err
		}
		f.Close()
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
