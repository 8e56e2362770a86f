// Package changelog implements the parameterized changelog composition
// engine: it classifies commits into named sections, renders each commit
// through the flat template language, and assembles the final document.
package changelog

import (
	"strings"

	"github.com/ariel-frischer/relkit/internal/format"
	"github.com/ariel-frischer/relkit/internal/git"
)

// DefaultCommitFormat renders one commit as a linked markdown list item.
const DefaultCommitFormat = "- {message} ([{abbr_hash}]({remote_url}/commit/{abbr_hash}))"

// DefaultChangelogFormat renders the outer changelog document with a
// trailing comparison link.
const DefaultChangelogFormat = "# {version}\n" +
	"=========================\n" +
	"{changes}\n\n" +
	"See all changes at: " +
	"[{from_ref}..{to_ref}]({remote_url}/compare/{from_ref}..{to_ref})"

// DocumentFieldNames returns the placeholder names valid in changelog
// document templates.
func DocumentFieldNames() []string {
	return []string{"version", "changes", "remote_url", "from_ref", "to_ref"}
}

// Request carries everything Compose needs to render one changelog.
type Request struct {
	Commits []git.Commit
	// Sections is the ordered type→section mapping. Nil composes a flat
	// (non-conventional) list of commit lines with no section headers.
	Sections       *SectionMapping
	CommitFormat   string
	DocumentFormat string
	FromRef        string
	ToRef          string
	RemoteURL      string
	Version        string
}

// Compose renders the full changelog document. Both templates are validated
// against their known field sets before any rendering, so a misconfigured
// user template fails fast with a field-name diagnostic.
func Compose(req Request) (string, error) {
	if err := format.Validate(req.CommitFormat, git.FieldNames()); err != nil {
		return "", err
	}
	if err := format.Validate(req.DocumentFormat, DocumentFieldNames()); err != nil {
		return "", err
	}

	changes, err := composeChanges(req)
	if err != nil {
		return "", err
	}

	return format.Render(req.DocumentFormat, map[string]string{
		"version":    req.Version,
		"changes":    changes,
		"remote_url": req.RemoteURL,
		"from_ref":   req.FromRef,
		"to_ref":     req.ToRef,
	})
}

func composeChanges(req Request) (string, error) {
	if req.Sections == nil {
		lines, err := renderCommits(req.Commits, req.CommitFormat)
		if err != nil {
			return "", err
		}
		return strings.Join(lines, "\n"), nil
	}
	return composeSections(req)
}

// composeSections buckets commits by section in declaration order, with the
// implicit "Other Changes" bucket last. Within a bucket commits preserve
// retrieval order. Empty buckets are dropped.
func composeSections(req Request) (string, error) {
	buckets := make(map[string][]string, len(req.Sections.Names())+1)

	for _, commit := range req.Commits {
		section, ok := req.Sections.Section(commit.Type())
		if !ok {
			section = OtherSection
		}
		line, err := format.Render(req.CommitFormat, commit.Fields())
		if err != nil {
			return "", err
		}
		buckets[section] = append(buckets[section], line)
	}

	// The implicit bucket renders last unless a configured section already
	// claimed the name.
	order := append([]string(nil), req.Sections.Names()...)
	claimed := false
	for _, name := range order {
		if name == OtherSection {
			claimed = true
			break
		}
	}
	if !claimed {
		order = append(order, OtherSection)
	}
	var blocks []string
	for _, section := range order {
		lines := buckets[section]
		if len(lines) == 0 {
			continue
		}
		blocks = append(blocks, "### "+section+"\n"+strings.Join(lines, "\n"))
	}

	return strings.Join(blocks, "\n\n"), nil
}

func renderCommits(commits []git.Commit, commitFormat string) ([]string, error) {
	lines := make([]string, 0, len(commits))
	for _, commit := range commits {
		line, err := format.Render(commitFormat, commit.Fields())
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
