package bump

import (
	"fmt"
	"strings"

	relerrors "github.com/ariel-frischer/relkit/internal/errors"
)

// DefaultMapping maps the standard conventional-commit types to bump levels.
// Breaking-change markers (feat!, fix!) trigger a major bump.
const DefaultMapping = "feat!:major,fix!:major,feat:minor,fix:patch,docs:patch," +
	"style:patch,refactor:patch,perf:patch,test:patch,chore:patch"

// Mapping is a validated table assigning commit-type tokens to bump levels.
// Every type maps to exactly one level; a level may own many types.
type Mapping struct {
	byType  map[string]Level
	byLevel map[Level][]string
}

// ParseMapping parses a "type:level,type:level,..." configuration string
// into a validated Mapping. Blank entries (trailing or doubled commas) are
// skipped; everything else must be a well-formed type:level pair with a
// level from the fixed enumeration and no type assigned twice.
func ParseMapping(s string) (*Mapping, error) {
	if strings.TrimSpace(s) == "" {
		return nil, relerrors.NewValidationError("bump mapping cannot be empty",
			"Provide a mapping such as 'feat:minor,fix:patch'.")
	}

	m := &Mapping{
		byType:  make(map[string]Level),
		byLevel: make(map[Level][]string),
	}

	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.Split(entry, ":")
		if len(parts) != 2 {
			return nil, relerrors.NewValidationError(
				fmt.Sprintf("malformed mapping entry '%s': expected 'type:level' form", entry))
		}

		commitType := strings.TrimSpace(parts[0])
		levelName := strings.TrimSpace(parts[1])
		if commitType == "" {
			return nil, relerrors.NewValidationError(
				fmt.Sprintf("malformed mapping entry '%s': commit type cannot be empty", entry))
		}

		level, ok := ParseLevel(levelName)
		if !ok {
			return nil, relerrors.NewValidationError(
				fmt.Sprintf("invalid bump level '%s' in mapping entry '%s': valid levels are %s",
					levelName, entry, strings.Join(LevelNames(), ", ")))
		}

		if existing, dup := m.byType[commitType]; dup {
			return nil, relerrors.NewValidationError(
				fmt.Sprintf("commit type '%s' is mapped to both '%s' and '%s': each type may map to exactly one level",
					commitType, existing, level))
		}

		m.byType[commitType] = level
		m.byLevel[level] = append(m.byLevel[level], commitType)
	}

	return m, nil
}

// LevelFor returns the bump level assigned to a commit type.
func (m *Mapping) LevelFor(commitType string) (Level, bool) {
	level, ok := m.byType[commitType]
	return level, ok
}

// Types returns the commit types assigned to a level, in the order they
// appeared in the configuration string.
func (m *Mapping) Types(level Level) []string {
	return m.byLevel[level]
}

// TypeCount returns the number of configured commit types.
func (m *Mapping) TypeCount() int {
	return len(m.byType)
}
