package vcs

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func commitAll(t *testing.T, repoDir string, files map[string]string) {
	t.Helper()
	repo, err := git.PlainInit(repoDir, false)
	if err != nil {
		t.Fatalf("init repository: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	for name, content := range files {
		path := filepath.Join(repoDir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := wt.Add(name); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
	_, err = wt.Commit("add corpus", &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
}

func TestHeadFiles(t *testing.T) {
	dir := t.TempDir()
	commitAll(t, dir, map[string]string{
		"session1.eaf":        "<doc one/>",
		"nested/session2.EAF": "<doc two/>",
		"readme.txt":          "not an annotation",
	})

	// Worktree edits after the commit must not be visible.
	if err := os.WriteFile(filepath.Join(dir, "session1.eaf"), []byte("<dirty/>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "untracked.eaf"), []byte("<untracked/>"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := HeadFiles(dir, "eaf")
	if err != nil {
		t.Fatalf("HeadFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Expected 2 files, got %d", len(files))
	}

	got := make(map[string]string, len(files))
	for _, f := range files {
		got[f.Path] = string(f.Data)
	}
	if got["session1.eaf"] != "<doc one/>" {
		t.Errorf("session1.eaf = %q, want committed content", got["session1.eaf"])
	}
	if got["nested/session2.EAF"] != "<doc two/>" {
		t.Errorf("nested/session2.EAF = %q, want committed content", got["nested/session2.EAF"])
	}
}

func TestHeadFiles_NotARepository(t *testing.T) {
	if _, err := HeadFiles(t.TempDir(), "eaf"); err == nil {
		t.Fatal("Expected plain directory to fail as a repository")
	}
}

func TestDirFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeAll := map[string]string{
		"one.eaf":        "<one/>",
		"nested/two.eaf": "<two/>",
		"skip.txt":       "ignored",
	}
	for name, content := range writeAll {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := DirFiles(dir, "eaf")
	if err != nil {
		t.Fatalf("DirFiles: %v", err)
	}
	var got []string
	for _, f := range files {
		got = append(got, f.Path)
	}
	sort.Strings(got)
	want := []string{filepath.Join("nested", "two.eaf"), "one.eaf"}
	sort.Strings(want)
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("paths = %v, want %v", got, want)
	}
}

func TestDirFiles_MissingDir(t *testing.T) {
	if _, err := DirFiles(filepath.Join(t.TempDir(), "no-such"), "eaf"); err == nil {
		t.Fatal("Expected missing directory to fail")
	}
}
