package common

import (
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
)

// CommitHash returns the short HEAD hash of the checkout containing the
// working directory or the running binary, or "unknown".
func CommitHash() string {
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, cwd)
	}
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Dir(exe))
	}
	for _, p := range paths {
		if hash := headHash(p); hash != "" {
			return hash[:min(8, len(hash))]
		}
	}
	return "unknown"
}

func headHash(path string) string {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	return head.Hash().String()
}
