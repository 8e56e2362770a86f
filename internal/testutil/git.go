// Package testutil provides temp-dir git repository fixtures for tests.
// Repositories are built with go-git directly so tests need no git CLI and
// commit timestamps are deterministic.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// Repo is a scratch git repository rooted in a test temp directory.
// Each commit advances an internal clock so log ordering by committer time
// is stable.
type Repo struct {
	t     *testing.T
	Dir   string
	Repo  *gogit.Repository
	clock time.Time
}

// NewRepo initializes an empty git repository in a fresh temp directory.
func NewRepo(t *testing.T) *Repo {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	return &Repo{
		t:     t,
		Dir:   dir,
		Repo:  repo,
		clock: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

// WriteFile writes a file relative to the repository root.
func (r *Repo) WriteFile(name, content string) {
	r.t.Helper()
	path := filepath.Join(r.Dir, name)
	require.NoError(r.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(r.t, os.WriteFile(path, []byte(content), 0o644))
}

// Commit stages everything and creates a commit with the given message,
// returning the full commit hash. The worktree is touched first so every
// commit has content to record.
func (r *Repo) Commit(message string) string {
	r.t.Helper()
	return r.commit(message, r.nextTime(), nil)
}

// CommitAt creates a commit with an explicit author/committer timestamp,
// which may predate earlier commits the way long-lived branch work does.
func (r *Repo) CommitAt(message string, when time.Time) string {
	r.t.Helper()
	return r.commit(message, when, nil)
}

// Merge creates a commit with the given parent hashes, simulating a merge
// of a side branch into the current branch.
func (r *Repo) Merge(message string, parents ...string) string {
	r.t.Helper()
	hashes := make([]plumbing.Hash, len(parents))
	for i, p := range parents {
		hashes[i] = plumbing.NewHash(p)
	}
	return r.commit(message, r.nextTime(), hashes)
}

func (r *Repo) commit(message string, when time.Time, parents []plumbing.Hash) string {
	r.t.Helper()

	r.WriteFile("notes.txt", message+"\n")
	worktree, err := r.Repo.Worktree()
	require.NoError(r.t, err)
	_, err = worktree.Add(".")
	require.NoError(r.t, err)

	sig := &object.Signature{
		Name:  "Test User",
		Email: "test@example.com",
		When:  when,
	}
	hash, err := worktree.Commit(message, &gogit.CommitOptions{
		Author:    sig,
		Committer: sig,
		Parents:   parents,
	})
	require.NoError(r.t, err)
	return hash.String()
}

// Tag creates an annotated tag at HEAD.
func (r *Repo) Tag(name string) {
	r.t.Helper()
	head, err := r.Repo.Head()
	require.NoError(r.t, err)
	_, err = r.Repo.CreateTag(name, head.Hash(), &gogit.CreateTagOptions{
		Tagger: &object.Signature{
			Name:  "Test User",
			Email: "test@example.com",
			When:  r.nextTime(),
		},
		Message: "Tag " + name,
	})
	require.NoError(r.t, err)
}

// SetRemote configures the origin remote URL.
func (r *Repo) SetRemote(url string) {
	r.t.Helper()
	_, err := r.Repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{url},
	})
	require.NoError(r.t, err)
}

// WriteDescriptor writes a minimal pyproject.toml with the given project
// name and version.
func (r *Repo) WriteDescriptor(name, version string) {
	r.t.Helper()
	WriteDescriptor(r.t, r.Dir, name, version)
}

// WriteDescriptor writes a minimal pyproject.toml into dir.
func WriteDescriptor(t *testing.T, dir, name, version string) {
	t.Helper()
	content := "[project]\nname = \"" + name + "\"\nversion = \"" + version + "\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte(content), 0o644))
}

// nextTime returns the current fixture time and advances the clock so
// consecutive commits are strictly ordered by committer time.
func (r *Repo) nextTime() time.Time {
	when := r.clock
	r.clock = r.clock.Add(time.Minute)
	return when
}
