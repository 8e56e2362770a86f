package changelog

import (
	"fmt"
	"strings"

	relerrors "github.com/ariel-frischer/relkit/internal/errors"
)

// OtherSection is the implicit bucket collecting commits whose derived type
// matches no configured section. It always renders after the named
// sections, and is omitted entirely when empty.
const OtherSection = "Other Changes"

// DefaultTypeMapping assigns the common conventional-commit types to
// changelog sections. The trailing comma is deliberate: blank entries are
// skipped by the parser.
const DefaultTypeMapping = "feat:Features,fix:Bug Fixes,docs:Documentation,style:Styling,"

// SectionMapping is an ordered type→section table. Section order follows
// the first appearance of each section name in the configuration string,
// not commit order; two types mapping to the same section share one bucket.
type SectionMapping struct {
	names  []string
	byType map[string]string
}

// ParseSectionMapping parses a "type:Section Name,..." configuration string.
// Blank entries are skipped; each remaining entry must contain a ':' with a
// non-empty type on the left. Unlike bump levels, section names are free
// text, but a type assigned to two different sections is rejected.
func ParseSectionMapping(s string) (*SectionMapping, error) {
	if strings.TrimSpace(s) == "" {
		return nil, relerrors.NewValidationError("type-to-section mapping cannot be empty",
			"Provide a mapping such as 'feat:Features,fix:Bug Fixes'.")
	}

	m := &SectionMapping{byType: make(map[string]string)}
	seen := make(map[string]bool)

	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		commitType, section, found := strings.Cut(entry, ":")
		commitType = strings.TrimSpace(commitType)
		section = strings.TrimSpace(section)
		if !found || commitType == "" || section == "" {
			return nil, relerrors.NewValidationError(
				fmt.Sprintf("malformed section mapping entry '%s': expected 'type:Section Name' form", entry))
		}

		if existing, dup := m.byType[commitType]; dup && existing != section {
			return nil, relerrors.NewValidationError(
				fmt.Sprintf("commit type '%s' is mapped to both '%s' and '%s' sections",
					commitType, existing, section))
		}

		m.byType[commitType] = section
		if !seen[section] {
			seen[section] = true
			m.names = append(m.names, section)
		}
	}

	return m, nil
}

// Section returns the section name assigned to a commit type.
func (m *SectionMapping) Section(commitType string) (string, bool) {
	section, ok := m.byType[commitType]
	return section, ok
}

// Names returns the section names in declaration order.
func (m *SectionMapping) Names() []string {
	return m.names
}
