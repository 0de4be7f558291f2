// Package vcs enumerates annotation files from the latest revision of a
// git repository, or from a plain directory for unversioned corpora.
package vcs

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/lingtools/elanstats/internal/model"
)

// HeadFiles yields (path, content) pairs for every file with the given
// extension (without dot) in the repository's HEAD commit tree.
func HeadFiles(repoPath, ext string) ([]model.SourceFile, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("read HEAD commit: %w", err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("read commit tree: %w", err)
	}

	var files []model.SourceFile
	err = tree.Files().ForEach(func(f *object.File) error {
		if !hasExt(f.Name, ext) {
			return nil
		}
		r, err := f.Reader()
		if err != nil {
			return fmt.Errorf("open %s: %w", f.Name, err)
		}
		defer r.Close()
		data, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("read %s: %w", f.Name, err)
		}
		files = append(files, model.SourceFile{Path: f.Name, Data: data})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// DirFiles yields (path, content) pairs for every file with the given
// extension under dir.
func DirFiles(dir, ext string) ([]model.SourceFile, error) {
	var files []model.SourceFile
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !hasExt(path, ext) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		files = append(files, model.SourceFile{Path: rel, Data: data})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func hasExt(path, ext string) bool {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".") == strings.ToLower(ext)
}
