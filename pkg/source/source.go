// Package source materializes a repository reference into a local
// directory tree: local paths pass through after validation, remote URLs
// are shallow-cloned into a temporary directory.
package source

import (
	"context"
	"os"
	"strings"

	git "github.com/go-git/go-git/v5"

	"github.com/matzehuels/envforge/pkg/cache"
	envferrors "github.com/matzehuels/envforge/pkg/errors"
)

// Materialize resolves a repository reference to a local path. For a local
// directory the path itself is returned with a no-op cleanup. For an
// http(s) or git reference the repository is shallow-cloned into a
// temporary directory; cleanup removes it.
//
// Retrieval is the one fatal failure mode of the pipeline: after the retry
// budget is exhausted, the returned error carries the RETRIEVAL_ERROR code.
func Materialize(ctx context.Context, ref string) (path string, cleanup func(), err error) {
	noop := func() {}
	if !IsRemote(ref) {
		info, err := os.Stat(ref)
		if err != nil {
			return "", noop, envferrors.Wrap(envferrors.ErrCodeRetrieval, err, "cannot access repository %s", ref)
		}
		if !info.IsDir() {
			return "", noop, envferrors.New(envferrors.ErrCodeRetrieval, "repository reference %s is not a directory", ref)
		}
		return ref, noop, nil
	}

	dir, err := os.MkdirTemp("", "envforge-clone-*")
	if err != nil {
		return "", noop, envferrors.Wrap(envferrors.ErrCodeRetrieval, err, "creating clone directory")
	}
	cleanup = func() { os.RemoveAll(dir) }

	cloneErr := cache.RetryWithBackoff(ctx, func() error {
		_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
			URL:   ref,
			Depth: 1,
		})
		if err == nil {
			return nil
		}
		// Leftovers from a failed attempt break the next one.
		os.RemoveAll(dir)
		os.MkdirAll(dir, 0o755)
		return cache.Retryable(err)
	})
	if cloneErr != nil {
		cleanup()
		return "", noop, envferrors.Wrap(envferrors.ErrCodeRetrieval, cloneErr, "cloning %s", ref)
	}
	return dir, cleanup, nil
}

// IsRemote reports whether ref is a remote repository reference rather
// than a local path.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "https://") ||
		strings.HasPrefix(ref, "git@") ||
		strings.HasPrefix(ref, "ssh://")
}
