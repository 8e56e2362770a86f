// Package git provides repository access for relkit: commit retrieval,
// tag queries and creation, and remote URL normalization. It uses the
// go-git library exclusively, so no git CLI installation is required.
package git

import (
	"fmt"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	relerrors "github.com/ariel-frischer/relkit/internal/errors"
)

// debugLogger is a function that logs debug messages when debug mode is
// enabled. By default, it's a no-op. Set it via SetDebugLogger.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Repository wraps an opened git repository plus invocation options.
type Repository struct {
	repo   *gogit.Repository
	path   string
	dryRun bool
}

// Open opens the git repository at path, traversing up the directory tree
// to find the repository root.
func Open(path string) (*Repository, error) {
	if path == "" {
		path = "."
	}

	logDebug("[git] opening repository at %s", path)
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, relerrors.WrapWithMessage(err, relerrors.Precondition,
			fmt.Sprintf("the path '%s' is not a git repository", path))
	}

	return &Repository{repo: repo, path: path}, nil
}

// IsRepository checks whether path is within a git repository.
func IsRepository(path string) bool {
	_, err := Open(path)
	result := err == nil
	logDebug("[git] IsRepository(%s): %v", path, result)
	return result
}

// SetDryRun suppresses all mutating operations on the repository.
func (r *Repository) SetDryRun(dryRun bool) {
	r.dryRun = dryRun
}

// Commits returns the commits reachable from toRef and not from fromRef,
// ordered most-recent-first. An empty fromRef means all history up to
// toRef; an empty toRef defaults to HEAD. Each commit is stamped with the
// normalized remote URL when one is configured.
//
// Exclusion is by ancestor-set membership, matching `git log from..to`:
// a merged side-branch commit whose committer time predates fromRef's
// target still counts, because it is not an ancestor of fromRef.
func (r *Repository) Commits(fromRef, toRef string) ([]Commit, error) {
	if toRef == "" {
		toRef = "HEAD"
	}

	toHash, err := r.resolve(toRef)
	if err != nil {
		return nil, err
	}

	var excluded map[plumbing.Hash]bool
	if fromRef != "" {
		fromHash, err := r.resolve(fromRef)
		if err != nil {
			return nil, err
		}
		excluded, err = r.ancestors(fromHash)
		if err != nil {
			return nil, relerrors.WrapWithMessage(err, relerrors.External,
				fmt.Sprintf("walking history of '%s'", fromRef))
		}
	}

	remoteURL, err := r.RemoteURL()
	if err != nil {
		return nil, err
	}

	iter, err := r.repo.Log(&gogit.LogOptions{
		From:  toHash,
		Order: gogit.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, relerrors.WrapWithMessage(err, relerrors.External,
			fmt.Sprintf("reading commit log for '%s'", toRef))
	}
	defer iter.Close()

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if excluded[c.Hash] {
			return nil
		}
		commits = append(commits, newCommit(c, remoteURL))
		return nil
	})
	if err != nil {
		return nil, relerrors.WrapWithMessage(err, relerrors.External,
			fmt.Sprintf("walking commits in range '%s..%s'", fromRef, toRef))
	}

	logDebug("[git] Commits(%q, %q): %d commits", fromRef, toRef, len(commits))
	return commits, nil
}

// ancestors returns the set of commit hashes reachable from start,
// including start itself.
func (r *Repository) ancestors(start plumbing.Hash) (map[plumbing.Hash]bool, error) {
	iter, err := r.repo.Log(&gogit.LogOptions{From: start})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	set := make(map[plumbing.Hash]bool)
	err = iter.ForEach(func(c *object.Commit) error {
		set[c.Hash] = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// resolve resolves a revision (ref name, tag or hash) to a commit hash.
// An unresolvable HEAD means the repository has no commits yet, which is a
// distinct condition from a commit range matching nothing.
func (r *Repository) resolve(rev string) (plumbing.Hash, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		if rev == "HEAD" {
			return plumbing.ZeroHash, relerrors.NewPreconditionError(
				"no commits yet: the repository has no commit history to examine",
				"Create at least one commit before running this command.")
		}
		return plumbing.ZeroHash, relerrors.WrapWithMessage(err, relerrors.Validation,
			fmt.Sprintf("cannot resolve revision '%s'", rev))
	}
	return *hash, nil
}

// LatestTag returns the name of the tag whose target commit is newest, or
// an empty string when the repository has no tags. Annotated tags resolve
// through the tag object to the tagged commit.
func (r *Repository) LatestTag() (string, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return "", relerrors.WrapWithMessage(err, relerrors.External, "listing tags")
	}
	defer iter.Close()

	var latest string
	var latestTime time.Time
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		commit, err := r.tagCommit(ref)
		if err != nil {
			// Tags pointing at non-commit objects are skipped.
			return nil
		}
		if latest == "" || commit.Committer.When.After(latestTime) {
			latest = ref.Name().Short()
			latestTime = commit.Committer.When
		}
		return nil
	})
	if err != nil {
		return "", relerrors.WrapWithMessage(err, relerrors.External, "iterating tags")
	}

	logDebug("[git] LatestTag: %q", latest)
	return latest, nil
}

// tagCommit resolves a tag reference to its target commit, peeling
// annotated tag objects.
func (r *Repository) tagCommit(ref *plumbing.Reference) (*object.Commit, error) {
	if tagObj, err := r.repo.TagObject(ref.Hash()); err == nil {
		return tagObj.Commit()
	}
	return r.repo.CommitObject(ref.Hash())
}

// CreateTag creates an annotated tag at HEAD. An already-existing tag is
// downgraded from error to a non-fatal condition: created is false and err
// is nil. In dry-run mode no tag is written.
func (r *Repository) CreateTag(name, message string) (created bool, err error) {
	if r.dryRun {
		logDebug("[git] CreateTag(%s): skipped (dry run)", name)
		return true, nil
	}

	head, err := r.repo.Head()
	if err != nil {
		return false, relerrors.NewPreconditionError(
			"no commits yet: cannot tag an empty repository",
			"Create at least one commit before tagging.")
	}

	_, err = r.repo.CreateTag(name, head.Hash(), &gogit.CreateTagOptions{
		Tagger:  r.tagger(),
		Message: message,
	})
	if err != nil {
		if err == gogit.ErrTagExists {
			logDebug("[git] CreateTag(%s): already exists", name)
			return false, nil
		}
		return false, relerrors.WrapWithMessage(err, relerrors.External,
			fmt.Sprintf("failed to create git tag '%s' at '%s'", name, r.path))
	}

	logDebug("[git] CreateTag(%s): created", name)
	return true, nil
}

// tagger builds the tag author signature from the repository config,
// falling back to a fixed identity when none is configured.
func (r *Repository) tagger() *object.Signature {
	sig := &object.Signature{
		Name:  "relkit",
		Email: "relkit@localhost",
		When:  time.Now(),
	}
	cfg, err := r.repo.ConfigScoped(gitconfig.GlobalScope)
	if err != nil {
		return sig
	}
	if cfg.User.Name != "" {
		sig.Name = cfg.User.Name
	}
	if cfg.User.Email != "" {
		sig.Email = cfg.User.Email
	}
	return sig
}

// RemoteURL returns the normalized https URL of the origin remote, or an
// empty string when no origin is configured. An origin with an unsupported
// scheme is a validation error.
func (r *Repository) RemoteURL() (string, error) {
	remote, err := r.repo.Remote("origin")
	if err != nil {
		logDebug("[git] RemoteURL: no origin remote")
		return "", nil
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", nil
	}
	return NormalizeRemoteURL(urls[0])
}

// NormalizeRemoteURL converts a git remote URL to its https form.
// Supported inputs: https://, http://, ssh://git@host/ and git@host: SCP
// syntax. A trailing .git suffix is stripped. Any other scheme is rejected.
func NormalizeRemoteURL(raw string) (string, error) {
	url := strings.TrimSuffix(strings.TrimSpace(raw), ".git")
	switch {
	case strings.HasPrefix(url, "https://"):
		return url, nil
	case strings.HasPrefix(url, "http://"):
		return "https://" + strings.TrimPrefix(url, "http://"), nil
	case strings.HasPrefix(url, "ssh://git@"):
		return "https://" + strings.TrimPrefix(url, "ssh://git@"), nil
	case strings.HasPrefix(url, "git@"):
		rest := strings.TrimPrefix(url, "git@")
		host, path, found := strings.Cut(rest, ":")
		if !found {
			return "", unsupportedRemoteError(raw)
		}
		return "https://" + host + "/" + path, nil
	default:
		return "", unsupportedRemoteError(raw)
	}
}

func unsupportedRemoteError(raw string) *relerrors.ReleaseError {
	return relerrors.NewValidationError(
		fmt.Sprintf("unsupported remote URL format: '%s'", raw),
		"remote.origin.url must start with 'https://', 'http://', 'ssh://git@' or 'git@host:'.")
}
