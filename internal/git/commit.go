package git

import (
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// abbrevHashLen matches git's default abbreviated hash length.
const abbrevHashLen = 7

// Commit is an immutable record of one retrieved commit. It is constructed
// once per retrieval and held only for the duration of a single invocation.
type Commit struct {
	AbbrevHash     string
	Hash           string
	Message        string
	Author         string
	AuthorEmail    string
	Date           time.Time
	CommitterName  string
	CommitterEmail string
	CommitterDate  time.Time
	// RemoteURL is the normalized https URL of the origin remote, empty
	// when the repository has none configured.
	RemoteURL string
}

func newCommit(c *object.Commit, remoteURL string) Commit {
	hash := c.Hash.String()
	return Commit{
		AbbrevHash:     hash[:abbrevHashLen],
		Hash:           hash,
		Message:        subjectLine(c.Message),
		Author:         c.Author.Name,
		AuthorEmail:    c.Author.Email,
		Date:           c.Author.When,
		CommitterName:  c.Committer.Name,
		CommitterEmail: c.Committer.Email,
		CommitterDate:  c.Committer.When,
		RemoteURL:      remoteURL,
	}
}

// subjectLine extracts the raw first line of a commit message.
func subjectLine(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	return strings.TrimSpace(line)
}

// Type derives the conventional-commit type: the message text before the
// first ':', or the whole message when no ':' is present (in which case it
// will not match any configured type unless the type equals the message).
func (c Commit) Type() string {
	commitType, _, _ := strings.Cut(c.Message, ":")
	return commitType
}

// Fields returns the commit's presentation values keyed by the placeholder
// names available to commit-line format templates. Timestamps render in
// strict ISO-8601 form.
func (c Commit) Fields() map[string]string {
	return map[string]string{
		"message":         c.Message,
		"abbr_hash":       c.AbbrevHash,
		"commit_hash":     c.Hash,
		"author":          c.Author,
		"author_email":    c.AuthorEmail,
		"date":            c.Date.Format(time.RFC3339),
		"committer_name":  c.CommitterName,
		"committer_email": c.CommitterEmail,
		"committer_date":  c.CommitterDate.Format(time.RFC3339),
		"remote_url":      c.RemoteURL,
	}
}

// FieldNames returns the placeholder names valid in commit-line templates.
func FieldNames() []string {
	return []string{
		"message", "abbr_hash", "commit_hash", "author", "author_email",
		"date", "committer_name", "committer_email", "committer_date",
		"remote_url",
	}
}
