package git_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	relerrors "github.com/ariel-frischer/relkit/internal/errors"
	"github.com/ariel-frischer/relkit/internal/git"
	"github.com/ariel-frischer/relkit/internal/testutil"
)

func TestOpen(t *testing.T) {
	fixture := testutil.NewRepo(t)
	fixture.Commit("feat: initial")

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)
	assert.NotNil(t, repo)
}

func TestOpenNotARepository(t *testing.T) {
	_, err := git.Open(t.TempDir())
	require.Error(t, err)
	assert.True(t, relerrors.IsCategory(err, relerrors.Precondition))
	assert.Contains(t, err.Error(), "is not a git repository")
}

func TestIsRepository(t *testing.T) {
	fixture := testutil.NewRepo(t)
	assert.True(t, git.IsRepository(fixture.Dir))
	assert.False(t, git.IsRepository(t.TempDir()))
}

func TestCommits(t *testing.T) {
	fixture := testutil.NewRepo(t)
	fixture.Commit("feat: first")
	fixture.Commit("fix: second")
	fixture.Commit("docs: third")

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)

	commits, err := repo.Commits("", "HEAD")
	require.NoError(t, err)
	require.Len(t, commits, 3)

	// Most recent first.
	assert.Equal(t, "docs: third", commits[0].Message)
	assert.Equal(t, "fix: second", commits[1].Message)
	assert.Equal(t, "feat: first", commits[2].Message)
}

func TestCommitsSinceRef(t *testing.T) {
	fixture := testutil.NewRepo(t)
	fixture.Commit("feat: first")
	fixture.Tag("v1.0.0")
	fixture.Commit("fix: second")
	fixture.Commit("docs: third")

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)

	commits, err := repo.Commits("v1.0.0", "HEAD")
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, "docs: third", commits[0].Message)
	assert.Equal(t, "fix: second", commits[1].Message)
}

func TestCommitsSinceRefIncludesMergedSideBranch(t *testing.T) {
	// A side branch started before the release carries commits whose
	// committer time predates the tag target. They are not ancestors of
	// the tag, so the range must still include them after the merge.
	fixture := testutil.NewRepo(t)
	base := fixture.Commit("feat: first")
	fixture.Tag("v1.0.0")
	branch := fixture.CommitAt("fix: long-lived branch work",
		time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC))
	fixture.Merge("merge: branch into main", base, branch)

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)

	commits, err := repo.Commits("v1.0.0", "HEAD")
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, "merge: branch into main", commits[0].Message)
	assert.Equal(t, "fix: long-lived branch work", commits[1].Message)
}

func TestCommitsEmptyRange(t *testing.T) {
	fixture := testutil.NewRepo(t)
	fixture.Commit("feat: first")
	fixture.Tag("v1.0.0")

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)

	commits, err := repo.Commits("v1.0.0", "HEAD")
	require.NoError(t, err)
	assert.Empty(t, commits)
}

func TestCommitsNoHistory(t *testing.T) {
	fixture := testutil.NewRepo(t)

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)

	_, err = repo.Commits("", "HEAD")
	require.Error(t, err)
	assert.True(t, relerrors.IsCategory(err, relerrors.Precondition))
	assert.Contains(t, err.Error(), "no commits yet")
}

func TestCommitsUnresolvableRef(t *testing.T) {
	fixture := testutil.NewRepo(t)
	fixture.Commit("feat: first")

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)

	_, err = repo.Commits("v9.9.9", "HEAD")
	require.Error(t, err)
	assert.True(t, relerrors.IsCategory(err, relerrors.Validation))
	assert.Contains(t, err.Error(), "cannot resolve revision 'v9.9.9'")
}

func TestCommitsStampRemoteURL(t *testing.T) {
	fixture := testutil.NewRepo(t)
	fixture.SetRemote("git@example.com:owner/repo.git")
	fixture.Commit("feat: first")

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)

	commits, err := repo.Commits("", "HEAD")
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, "https://example.com/owner/repo", commits[0].RemoteURL)
}

func TestCommitFields(t *testing.T) {
	fixture := testutil.NewRepo(t)
	hash := fixture.Commit("feat: add export\n\nlonger body describing the change")

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)

	commits, err := repo.Commits("", "HEAD")
	require.NoError(t, err)
	require.Len(t, commits, 1)

	c := commits[0]
	assert.Equal(t, hash, c.Hash)
	assert.Equal(t, hash[:7], c.AbbrevHash)
	assert.Equal(t, "feat: add export", c.Message, "message should be the subject line only")
	assert.Equal(t, "feat", c.Type())
	assert.Equal(t, "Test User", c.Author)
	assert.Equal(t, "test@example.com", c.AuthorEmail)
}

func TestLatestTag(t *testing.T) {
	fixture := testutil.NewRepo(t)
	fixture.Commit("feat: first")
	fixture.Tag("v1.0.0")
	fixture.Commit("fix: second")
	fixture.Tag("v1.0.1")

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)

	tag, err := repo.LatestTag()
	require.NoError(t, err)
	assert.Equal(t, "v1.0.1", tag)
}

func TestLatestTagNoTags(t *testing.T) {
	fixture := testutil.NewRepo(t)
	fixture.Commit("feat: first")

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)

	tag, err := repo.LatestTag()
	require.NoError(t, err)
	assert.Equal(t, "", tag)
}

func TestCreateTag(t *testing.T) {
	fixture := testutil.NewRepo(t)
	fixture.Commit("feat: first")

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)

	created, err := repo.CreateTag("v1.1.0", "Release 1.1.0")
	require.NoError(t, err)
	assert.True(t, created)

	tag, err := repo.LatestTag()
	require.NoError(t, err)
	assert.Equal(t, "v1.1.0", tag)
}

func TestCreateTagAlreadyExists(t *testing.T) {
	fixture := testutil.NewRepo(t)
	fixture.Commit("feat: first")
	fixture.Tag("v1.1.0")

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)

	created, err := repo.CreateTag("v1.1.0", "Release 1.1.0")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestCreateTagDryRun(t *testing.T) {
	fixture := testutil.NewRepo(t)
	fixture.Commit("feat: first")

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)
	repo.SetDryRun(true)

	created, err := repo.CreateTag("v1.1.0", "Release 1.1.0")
	require.NoError(t, err)
	assert.True(t, created)

	tag, err := repo.LatestTag()
	require.NoError(t, err)
	assert.Equal(t, "", tag, "dry run must not write the tag")
}

func TestCreateTagEmptyRepository(t *testing.T) {
	fixture := testutil.NewRepo(t)

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)

	_, err = repo.CreateTag("v1.0.0", "Release 1.0.0")
	require.Error(t, err)
	assert.True(t, relerrors.IsCategory(err, relerrors.Precondition))
}

func TestRemoteURLNoOrigin(t *testing.T) {
	fixture := testutil.NewRepo(t)
	fixture.Commit("feat: first")

	repo, err := git.Open(fixture.Dir)
	require.NoError(t, err)

	url, err := repo.RemoteURL()
	require.NoError(t, err)
	assert.Equal(t, "", url)
}

func TestNormalizeRemoteURL(t *testing.T) {
	tests := map[string]struct {
		input   string
		want    string
		wantErr bool
	}{
		"https passthrough": {
			input: "https://github.com/owner/repo",
			want:  "https://github.com/owner/repo",
		},
		"https strips git suffix": {
			input: "https://github.com/owner/repo.git",
			want:  "https://github.com/owner/repo",
		},
		"http upgraded": {
			input: "http://github.com/owner/repo.git",
			want:  "https://github.com/owner/repo",
		},
		"ssh scheme": {
			input: "ssh://git@github.com/owner/repo.git",
			want:  "https://github.com/owner/repo",
		},
		"scp syntax": {
			input: "git@github.com:owner/repo.git",
			want:  "https://github.com/owner/repo",
		},
		"scp syntax without suffix": {
			input: "git@gitlab.example.com:group/sub/repo",
			want:  "https://gitlab.example.com/group/sub/repo",
		},
		"unsupported scheme": {
			input:   "ftp://example.com/repo",
			wantErr: true,
		},
		"scp without colon": {
			input:   "git@example.com/owner/repo",
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := git.NormalizeRemoteURL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, relerrors.IsCategory(err, relerrors.Validation))
				assert.Contains(t, err.Error(), "unsupported remote URL format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
