package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relkit/internal/config"
	relerrors "github.com/ariel-frischer/relkit/internal/errors"
	"github.com/ariel-frischer/relkit/internal/format"
	"github.com/ariel-frischer/relkit/internal/git"
	"github.com/ariel-frischer/relkit/internal/progress"
)

var (
	tagMessageFlag       string
	tagMessageFormatFlag string
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Create a version tag in the git repository",
	Long: `Create an annotated tag named v{version} from the project version.

The tag message comes from --message, or from --message-format rendered
with the {version} placeholder. With neither, relkit prompts for a message
on interactive terminals and falls back to "Release {version}" otherwise.
A tag that already exists is a warning, not an error.

Examples:
  relkit tag --message "First stable release"
  relkit tag --message-format "Release {version}"`,
	SilenceUsage: true,
	RunE:         runTag,
}

func init() {
	rootCmd.AddCommand(tagCmd)

	tagCmd.Flags().StringVar(&tagMessageFlag, "message", "", "Tag message")
	tagCmd.Flags().StringVar(&tagMessageFormatFlag, "message-format", "",
		"Format string for the tag message ({version} placeholder)")
}

func runTag(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration(cmd)
	if err != nil {
		return err
	}
	opts := resolveTagOptions(cmd, cfg)

	version, err := resolveProjectVersion(cfg)
	if err != nil {
		return err
	}

	message, err := resolveTagMessage(opts, version)
	if err != nil {
		return err
	}

	repo, err := git.Open(cfg.Path)
	if err != nil {
		return err
	}
	repo.SetDryRun(cfg.DryRun)

	tagName := "v" + version
	created, err := repo.CreateTag(tagName, message)
	if err != nil {
		return err
	}
	if !created {
		relerrors.PrintWarning(cmd.ErrOrStderr(), "tag '%s' already exists", tagName)
		return nil
	}

	if !cfg.Silent {
		fmt.Fprintf(cmd.OutOrStdout(), "Created git tag '%s' with message: '%s'\n", tagName, message)
	}
	return nil
}

// resolveTagMessage picks the tag message: explicit message, rendered
// message format, interactive prompt, non-interactive fallback, in that
// order. A supplied message format is validated before rendering so a bad
// placeholder fails fast.
func resolveTagMessage(opts config.TagConfig, version string) (string, error) {
	if opts.Message != "" {
		return opts.Message, nil
	}

	messageFormat := opts.MessageFormat
	if messageFormat == "" {
		if progress.IsInteractiveInput() {
			return promptTagMessage()
		}
		messageFormat = config.DefaultTagMessageFormat
	}

	if err := format.Validate(messageFormat, []string{"version"}); err != nil {
		return "", err
	}
	return format.Render(messageFormat, map[string]string{"version": version})
}

func promptTagMessage() (string, error) {
	fmt.Fprint(os.Stderr, "Enter tag message: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", relerrors.WrapWithMessage(err, relerrors.External, "reading tag message")
	}
	return strings.TrimSpace(line), nil
}

// resolveTagOptions merges command flags over the tag config section.
func resolveTagOptions(cmd *cobra.Command, cfg *config.Configuration) config.TagConfig {
	opts := cfg.Tag
	flags := cmd.Flags()
	if flags.Changed("message") {
		opts.Message = tagMessageFlag
	}
	if flags.Changed("message-format") {
		opts.MessageFormat = tagMessageFormatFlag
	}
	return opts
}
