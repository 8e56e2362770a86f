package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/relkit/internal/bump"
	relerrors "github.com/ariel-frischer/relkit/internal/errors"
)

func TestBumpInvalidLevel(t *testing.T) {
	_, _, err := executeCommand(t, "bump", "--path", t.TempDir(),
		"--project-version", "1.2.3", "--bump", "bogus")
	require.Error(t, err)
	assert.True(t, relerrors.IsCategory(err, relerrors.Validation))
	assert.Contains(t, err.Error(), "invalid bump level 'bogus'")
	assert.Contains(t, err.Error(), "major, minor, patch, stable, alpha, beta, rc, post, dev")
}

func TestBumpConflictingReleaseLevels(t *testing.T) {
	_, _, err := executeCommand(t, "bump", "--path", t.TempDir(),
		"--project-version", "1.2.3", "--bump", "minor", "--bump", "patch")
	require.Error(t, err)
	assert.True(t, relerrors.IsCategory(err, relerrors.Conflict))
	assert.Contains(t, err.Error(), "only one release version component may be specified")
}

func TestBumpBareAdditionalLevel(t *testing.T) {
	_, _, err := executeCommand(t, "bump", "--path", t.TempDir(),
		"--project-version", "1.2.3", "--bump", "rc")
	require.Error(t, err)
	assert.True(t, relerrors.IsCategory(err, relerrors.Precondition))
	assert.Contains(t, err.Error(), "you also need to increase a release version component to bump 'rc'")
}

func TestBumpInvalidProjectVersion(t *testing.T) {
	_, _, err := executeCommand(t, "bump", "--path", t.TempDir(),
		"--project-version", "not-a-version", "--bump", "minor")
	require.Error(t, err)
	assert.True(t, relerrors.IsCategory(err, relerrors.Validation))
	assert.Contains(t, err.Error(), "'not-a-version' is not a valid semantic version")
}

func TestBumpNoModeSelected(t *testing.T) {
	_, _, err := executeCommand(t, "bump", "--path", t.TempDir(),
		"--project-version", "1.2.3")
	require.Error(t, err)
	assert.True(t, relerrors.IsCategory(err, relerrors.Validation))
	assert.Contains(t, err.Error(), "either an explicit bump level or conventional mode must be specified")
}

func TestBumpConventionalNoMatchingCommits(t *testing.T) {
	fixture := projectFixture(t, "1.2.3")
	fixture.Commit("ci: adjust pipeline")

	stdout, stderr, err := executeCommand(t, "bump", "--path", fixture.Dir,
		"--project-version", "1.2.3", "--conventional")
	require.NoError(t, err, "zero matching commits is a warning, not a failure")
	assert.Contains(t, stderr, "no conventional commits found since the last version, skipping version bump")
	assert.NotContains(t, stdout, "->")
}

func TestBumpConventionalOnlyTaggedHistory(t *testing.T) {
	// Commits before the latest version tag are out of scope.
	fixture := projectFixture(t, "1.2.3")
	fixture.Commit("feat: shipped already")
	fixture.Tag("v1.2.3")

	_, stderr, err := executeCommand(t, "bump", "--path", fixture.Dir,
		"--project-version", "1.2.3", "--conventional")
	require.NoError(t, err)
	assert.Contains(t, stderr, "skipping version bump")
}

func TestBumpConventionalBadMapping(t *testing.T) {
	fixture := projectFixture(t, "1.2.3")
	fixture.Commit("feat: add export")

	_, _, err := executeCommand(t, "bump", "--path", fixture.Dir,
		"--project-version", "1.2.3", "--conventional",
		"--conventional-bump-mapping", "a-b")
	require.Error(t, err)
	assert.True(t, relerrors.IsCategory(err, relerrors.Validation))
	assert.Contains(t, err.Error(), "malformed mapping entry 'a-b'")
}

func TestBumpConventionalNotARepository(t *testing.T) {
	_, _, err := executeCommand(t, "bump", "--path", t.TempDir(),
		"--project-version", "1.2.3", "--conventional")
	require.Error(t, err)
	assert.True(t, relerrors.IsCategory(err, relerrors.Precondition))
	assert.Contains(t, err.Error(), "is not a git repository")
}

func TestBumpMissingDescriptor(t *testing.T) {
	_, _, err := executeCommand(t, "bump", "--path", t.TempDir(), "--bump", "minor")
	require.Error(t, err)
	assert.True(t, relerrors.IsCategory(err, relerrors.Precondition))
	assert.Contains(t, err.Error(), "pyproject.toml not found")
}

func TestParseExplicitLevels(t *testing.T) {
	levels, err := parseExplicitLevels([]string{"minor", "rc"})
	require.NoError(t, err)
	assert.Equal(t, []bump.Level{bump.Minor, bump.RC}, levels)

	levels, err = parseExplicitLevels(nil)
	require.NoError(t, err)
	assert.Nil(t, levels)

	_, err = parseExplicitLevels([]string{"huge"})
	require.Error(t, err)
	assert.True(t, relerrors.IsCategory(err, relerrors.Validation))
}
