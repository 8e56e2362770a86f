package bump

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	relerrors "github.com/ariel-frischer/relkit/internal/errors"
	"github.com/ariel-frischer/relkit/internal/git"
)

// ErrNoApplicableChange is the distinguished outcome when conventional
// classification finds no commit matching any configured type. It is
// non-fatal: callers report a warning and skip the version change.
var ErrNoApplicableChange = errors.New("no conventional commits matched any configured type")

// Decision is the resolved bump for one invocation: at most one release
// component and at most one additional component.
type Decision struct {
	// Release is the major/minor/patch component, or LevelNone.
	Release Level
	// Additional is the pre-release/post-release qualifier, or LevelNone.
	Additional Level
}

// IsZero reports whether the decision selects no bump at all.
func (d Decision) IsZero() bool {
	return d.Release == LevelNone && d.Additional == LevelNone
}

// String renders the decision for display, e.g. "minor" or "minor+rc".
func (d Decision) String() string {
	switch {
	case d.IsZero():
		return "none"
	case d.Release == LevelNone:
		return d.Additional.String()
	case d.Additional == LevelNone:
		return d.Release.String()
	default:
		return d.Release.String() + "+" + d.Additional.String()
	}
}

// Levels returns the decision's levels in application order (release
// component first), omitting LevelNone entries.
func (d Decision) Levels() []Level {
	var levels []Level
	if d.Release != LevelNone {
		levels = append(levels, d.Release)
	}
	if d.Additional != LevelNone {
		levels = append(levels, d.Additional)
	}
	return levels
}

// Decide resolves the single bump decision for an invocation.
//
// When explicit levels are supplied they win: at most one release component
// and at most one additional component are accepted, and an additional
// component on its own requires the current version to already carry a
// qualifier it can advance. When conventional mode is requested instead,
// every commit's derived type is classified against the mapping and the
// highest-precedence matching level wins; zero matches yield
// ErrNoApplicableChange.
//
// The result is deterministic for identical inputs: precedence is the fixed
// ranked order on Level, never map iteration order.
func Decide(explicit []Level, commits []git.Commit, mapping *Mapping, conventional bool, current *semver.Version) (Decision, error) {
	if len(explicit) > 0 {
		return decideExplicit(explicit, current)
	}
	if conventional {
		if mapping == nil {
			return Decision{}, relerrors.NewValidationError("bump mapping cannot be empty",
				"Provide a mapping such as 'feat:minor,fix:patch'.")
		}
		return decideConventional(commits, mapping)
	}
	return Decision{}, relerrors.NewValidationError(
		"either an explicit bump level or conventional mode must be specified",
		"Pass --bump <level> or --conventional.")
}

func decideExplicit(explicit []Level, current *semver.Version) (Decision, error) {
	var d Decision
	var releases, additionals []string

	for _, level := range explicit {
		switch {
		case level.IsRelease():
			releases = append(releases, level.String())
			if d.Release == LevelNone {
				d.Release = level
			}
		case level.IsAdditional():
			additionals = append(additionals, level.String())
			if d.Additional == LevelNone {
				d.Additional = level
			}
		default:
			return Decision{}, relerrors.NewValidationError(
				fmt.Sprintf("invalid bump level: valid levels are %s", strings.Join(LevelNames(), ", ")))
		}
	}

	if len(releases) > 1 {
		return Decision{}, relerrors.NewConflictError(
			fmt.Sprintf("only one release version component may be specified, got %s",
				strings.Join(releases, ", ")))
	}
	if len(additionals) > 1 {
		return Decision{}, relerrors.NewConflictError(
			fmt.Sprintf("only one additional version component may be specified, got %s",
				strings.Join(additionals, ", ")))
	}

	// A bare qualifier has no version-altering basis unless the current
	// version already carries one it can advance or finalize.
	if d.Release == LevelNone && d.Additional != LevelNone {
		if current == nil || current.Prerelease() == "" {
			return Decision{}, relerrors.NewPreconditionError(
				fmt.Sprintf("you also need to increase a release version component to bump '%s'", d.Additional),
				"Combine it with a release component, e.g. --bump minor --bump "+d.Additional.String()+".")
		}
	}

	return d, nil
}

func decideConventional(commits []git.Commit, mapping *Mapping) (Decision, error) {
	best := LevelNone
	for _, commit := range commits {
		level, ok := mapping.LevelFor(commit.Type())
		if ok && level.Outranks(best) {
			best = level
		}
	}

	if best == LevelNone {
		return Decision{}, ErrNoApplicableChange
	}
	if best.IsAdditional() {
		return Decision{Additional: best}, nil
	}
	return Decision{Release: best}, nil
}
