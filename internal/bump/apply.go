package bump

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/Masterminds/semver/v3"

	relerrors "github.com/ariel-frischer/relkit/internal/errors"
)

// qualifierRe matches a pre-release identifier of the `<name><N>` or
// `<name>.<N>` form, e.g. "rc1" or "beta.2".
var qualifierRe = regexp.MustCompile(`^([a-zA-Z]+)\.?([0-9]+)$`)

// Apply computes the version that results from applying a decision to the
// current version. The release component is applied first (which clears any
// existing qualifier), then the additional component sets, advances or
// strips the qualifier.
func Apply(current *semver.Version, d Decision) (*semver.Version, error) {
	if current == nil {
		return nil, relerrors.NewPreconditionError("no current version to bump")
	}
	if d.IsZero() {
		return nil, relerrors.NewValidationError("no bump level selected")
	}

	next := *current
	switch d.Release {
	case Major:
		next = next.IncMajor()
	case Minor:
		next = next.IncMinor()
	case Patch:
		next = next.IncPatch()
	}

	if d.Additional == LevelNone {
		return &next, nil
	}
	return applyAdditional(&next, current, d)
}

func applyAdditional(next, current *semver.Version, d Decision) (*semver.Version, error) {
	if d.Additional == Stable {
		if d.Release == LevelNone && current.Prerelease() == "" {
			return nil, bareQualifierError(d.Additional)
		}
		v, err := next.SetPrerelease("")
		if err != nil {
			return nil, relerrors.WrapWithMessage(err, relerrors.Validation, "finalizing version")
		}
		return &v, nil
	}

	name := d.Additional.String()
	qualifier := name + "1"

	if d.Release == LevelNone {
		// Bare qualifier bump: advance the existing qualifier when the name
		// matches, restart the counter when promoting (e.g. beta2 -> rc1).
		existing := current.Prerelease()
		if existing == "" {
			return nil, bareQualifierError(d.Additional)
		}
		if m := qualifierRe.FindStringSubmatch(existing); m != nil && m[1] == name {
			n, _ := strconv.Atoi(m[2])
			qualifier = fmt.Sprintf("%s%d", name, n+1)
		}
	}

	v, err := next.SetPrerelease(qualifier)
	if err != nil {
		return nil, relerrors.WrapWithMessage(err, relerrors.Validation,
			fmt.Sprintf("setting '%s' qualifier", qualifier))
	}
	return &v, nil
}

func bareQualifierError(level Level) *relerrors.ReleaseError {
	return relerrors.NewPreconditionError(
		fmt.Sprintf("you also need to increase a release version component to bump '%s'", level),
		"Combine it with a release component, e.g. --bump minor --bump "+level.String()+".")
}
