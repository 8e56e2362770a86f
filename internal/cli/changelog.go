package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relkit/internal/changelog"
	"github.com/ariel-frischer/relkit/internal/config"
	relerrors "github.com/ariel-frischer/relkit/internal/errors"
	"github.com/ariel-frischer/relkit/internal/git"
)

var (
	changelogFromRefFlag      string
	changelogToRefFlag        string
	changelogFormatFlag       string
	changelogCommitFormatFlag string
	changelogConventionalFlag bool
	changelogTypeMappingFlag  string
	changelogOutputFlag       string
)

var changelogCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Create a changelog of commits in a ref range",
	Long: `Create a changelog of commits between two refs.

When --from-ref is omitted the range starts at the most recent version tag,
or at the beginning of history when the repository has no tags. With
--conventional, commits are grouped into sections by their conventional
commit type; unmatched commits land in an "Other Changes" section.

Both format strings use flat {key} placeholders. Commit lines may reference
{message}, {abbr_hash}, {commit_hash}, {author}, {author_email}, {date},
{committer_name}, {committer_email}, {committer_date} and {remote_url};
the document may reference {version}, {changes}, {remote_url}, {from_ref}
and {to_ref}.

Examples:
  relkit changelog                          # changes since the last tag
  relkit changelog --from-ref v1.2.0 --to-ref HEAD
  relkit changelog --conventional --output CHANGELOG.md`,
	SilenceUsage: true,
	RunE:         runChangelog,
}

func init() {
	rootCmd.AddCommand(changelogCmd)

	flags := changelogCmd.Flags()
	flags.StringVar(&changelogFromRefFlag, "from-ref", "",
		"Ref to get commits since (default: latest version tag)")
	flags.StringVar(&changelogToRefFlag, "to-ref", "HEAD",
		"Ref to get commits to")
	flags.StringVar(&changelogFormatFlag, "changelog-format", "",
		"Format string for the changelog document")
	flags.StringVar(&changelogCommitFormatFlag, "commit-format", "",
		"Format string for each commit line")
	flags.BoolVar(&changelogConventionalFlag, "conventional", false,
		"Group commits into sections by conventional commit type")
	flags.StringVar(&changelogTypeMappingFlag, "conventional-type-mapping", "",
		"Mapping of commit types to changelog sections (e.g. 'feat:Features,fix:Bug Fixes')")
	flags.StringVar(&changelogOutputFlag, "output", "",
		"Output file for the changelog (prints to stdout if not provided)")
}

func runChangelog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration(cmd)
	if err != nil {
		return err
	}
	opts, fromRefSet := resolveChangelogOptions(cmd, cfg)

	repo, err := git.Open(cfg.Path)
	if err != nil {
		return err
	}

	if opts.FromRef == "" && !fromRefSet {
		opts.FromRef, err = repo.LatestTag()
		if err != nil {
			return err
		}
	}

	commits, err := repo.Commits(opts.FromRef, opts.ToRef)
	if err != nil {
		return err
	}

	remoteURL, err := repo.RemoteURL()
	if err != nil {
		return err
	}

	version, err := resolveProjectVersion(cfg)
	if err != nil {
		return err
	}

	var sections *changelog.SectionMapping
	if opts.Conventional {
		sections, err = changelog.ParseSectionMapping(opts.TypeMapping)
		if err != nil {
			return err
		}
	}

	doc, err := changelog.Compose(changelog.Request{
		Commits:        commits,
		Sections:       sections,
		CommitFormat:   opts.CommitFormat,
		DocumentFormat: opts.ChangelogFormat,
		FromRef:        opts.FromRef,
		ToRef:          opts.ToRef,
		RemoteURL:      remoteURL,
		Version:        version,
	})
	if err != nil {
		return err
	}

	if !cfg.Silent {
		fmt.Fprintln(cmd.OutOrStdout(), doc)
	}
	if opts.Output != "" && !cfg.DryRun {
		if err := os.WriteFile(opts.Output, []byte(doc), 0o644); err != nil {
			return relerrors.WrapWithMessage(err, relerrors.External,
				fmt.Sprintf("writing changelog to %s", opts.Output))
		}
	}
	return nil
}

// resolveChangelogOptions merges command flags over the changelog config
// section. The second return reports whether --from-ref was given
// explicitly (an explicit empty value means "all history", not "since the
// latest tag").
func resolveChangelogOptions(cmd *cobra.Command, cfg *config.Configuration) (config.ChangelogConfig, bool) {
	opts := cfg.Changelog
	flags := cmd.Flags()
	if flags.Changed("from-ref") {
		opts.FromRef = changelogFromRefFlag
	}
	if flags.Changed("to-ref") {
		opts.ToRef = changelogToRefFlag
	}
	if flags.Changed("changelog-format") {
		opts.ChangelogFormat = changelogFormatFlag
	}
	if flags.Changed("commit-format") {
		opts.CommitFormat = changelogCommitFormatFlag
	}
	if flags.Changed("conventional") {
		opts.Conventional = changelogConventionalFlag
	}
	if flags.Changed("conventional-type-mapping") {
		opts.TypeMapping = changelogTypeMappingFlag
	}
	if flags.Changed("output") {
		opts.Output = changelogOutputFlag
	}
	fromRefSet := flags.Changed("from-ref") || cfg.Changelog.FromRef != ""
	return opts, fromRefSet
}
