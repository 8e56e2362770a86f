// Package cli wires the relkit commands. Subcommands register themselves
// on the root command via init(), so adding a command means adding a file,
// not editing a dispatcher.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relkit/internal/config"
	relerrors "github.com/ariel-frischer/relkit/internal/errors"
	"github.com/ariel-frischer/relkit/internal/git"
	"github.com/ariel-frischer/relkit/internal/project"
	"github.com/ariel-frischer/relkit/internal/version"
)

var (
	flagPath           string
	flagProjectName    string
	flagProjectVersion string
	flagSilent         bool
	flagDebug          bool
	flagDryRun         bool
)

var rootCmd = &cobra.Command{
	Use:   "relkit",
	Short: "Release automation for projects under version control",
	Long: `relkit inspects commit history, derives semantic version bumps from
conventional commits, generates changelogs grouped by commit type, and
creates annotated version tags. It is built for reproducible, scriptable
release steps in CI pipelines.`,
	Version:       fmt.Sprintf("%s (commit %s, built %s)", version.Version, version.Commit, version.BuildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagDebug {
			git.SetDebugLogger(func(format string, args ...any) {
				fmt.Fprintf(os.Stderr, "[debug] "+format+"\n", args...)
			})
		}
	},
	// Unmatched arguments reach the root command itself; an unknown
	// subcommand is an argument-parsing error and exits with the usage
	// code, same as a bad flag.
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			err := fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n\n%s", err, cmd.UsageString())
			return &ExitError{Code: ExitUsage, Err: err}
		}
		return cmd.Help()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagPath, "path", ".", "Path to the git repository")
	pf.StringVar(&flagProjectName, "project-name", "", "Name of the project (overrides the descriptor)")
	pf.StringVar(&flagProjectVersion, "project-version", "", "Version of the project (overrides the descriptor)")
	pf.BoolVar(&flagSilent, "silent", false, "Suppress output to stdout")
	pf.BoolVar(&flagDebug, "debug", false, "Enable debug output")
	pf.BoolVar(&flagDryRun, "dry-run", false, "Perform a trial run with no changes made")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n%s", err, cmd.UsageString())
		return &ExitError{Code: ExitUsage, Err: err}
	})
}

// Execute runs the root command and maps failures to exit codes:
// 2 for argument-parsing errors, 1 for everything else.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		if relErr := relerrors.AsReleaseError(err); relErr != nil {
			relerrors.PrintError(relErr)
			return ExitFailure
		}
		fmt.Fprint(os.Stderr, relerrors.FormatSimpleError(err, relerrors.External))
		return ExitFailure
	}
	return ExitSuccess
}

// loadConfiguration resolves the layered configuration for one invocation
// and applies the global flags on top: explicit flag > environment >
// project config > user config > built-in default.
func loadConfiguration(cmd *cobra.Command) (*config.Configuration, error) {
	cfg, err := config.Load(flagPath)
	if err != nil {
		return nil, relerrors.WrapWithMessage(err, relerrors.Validation, "loading configuration")
	}

	flags := cmd.Flags()
	if flags.Changed("path") || cfg.Path == "" {
		cfg.Path = flagPath
	}
	if flags.Changed("project-name") {
		cfg.ProjectName = flagProjectName
	}
	if flags.Changed("project-version") {
		cfg.ProjectVersion = flagProjectVersion
	}
	if flags.Changed("silent") {
		cfg.Silent = flagSilent
	}
	if flags.Changed("debug") {
		cfg.Debug = flagDebug
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = flagDryRun
	}

	return cfg, nil
}

// resolveProjectVersion returns the version supplied on the command line or
// in config, falling back to the project descriptor.
func resolveProjectVersion(cfg *config.Configuration) (string, error) {
	if cfg.ProjectVersion != "" {
		return cfg.ProjectVersion, nil
	}
	return project.ReadVersion(cfg.Path)
}
