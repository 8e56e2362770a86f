package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relkit/internal/bump"
	"github.com/ariel-frischer/relkit/internal/ci"
	"github.com/ariel-frischer/relkit/internal/config"
	relerrors "github.com/ariel-frischer/relkit/internal/errors"
	"github.com/ariel-frischer/relkit/internal/git"
	"github.com/ariel-frischer/relkit/internal/progress"
	"github.com/ariel-frischer/relkit/internal/project"
)

var (
	bumpLevelsFlag       []string
	bumpConventionalFlag bool
	bumpMappingFlag      string
)

var bumpCmd = &cobra.Command{
	Use:   "bump",
	Short: "Bump the project version",
	Long: `Bump the project version, either explicitly or derived from
conventional commit messages since the last version tag.

Explicit bumps take one release component (major, minor, patch) and
optionally one additional component (stable, alpha, beta, rc, post, dev).
Conventional mode classifies commits against a type:level mapping and picks
the highest-precedence matching level.

Examples:
  relkit bump --bump minor                 # 1.2.3 -> 1.3.0
  relkit bump --bump minor --bump rc       # 1.2.3 -> 1.3.0-rc1
  relkit bump --conventional               # level derived from commits
  relkit bump --conventional --conventional-bump-mapping 'feat:minor,fix:patch'`,
	SilenceUsage: true,
	RunE:         runBump,
}

func init() {
	rootCmd.AddCommand(bumpCmd)

	bumpCmd.Flags().StringArrayVar(&bumpLevelsFlag, "bump", nil,
		"Version component to bump (repeatable)")
	bumpCmd.Flags().BoolVar(&bumpConventionalFlag, "conventional", false,
		"Use conventional commit messages to determine the version bump")
	bumpCmd.Flags().StringVar(&bumpMappingFlag, "conventional-bump-mapping", "",
		"Mapping of commit types to bump levels (e.g. 'feat:minor,fix:patch')")
}

func runBump(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration(cmd)
	if err != nil {
		return err
	}
	opts := resolveBumpOptions(cmd, cfg)

	currentVersion, err := resolveProjectVersion(cfg)
	if err != nil {
		return err
	}
	current, err := semver.NewVersion(currentVersion)
	if err != nil {
		return relerrors.NewValidationError(
			fmt.Sprintf("project version '%s' is not a valid semantic version: %v", currentVersion, err))
	}

	explicit, err := parseExplicitLevels(opts.Bump)
	if err != nil {
		return err
	}

	decision, err := decideBump(explicit, opts, cfg, current)
	if errors.Is(err, bump.ErrNoApplicableChange) {
		relerrors.PrintWarning(cmd.ErrOrStderr(),
			"no conventional commits found since the last version, skipping version bump")
		return nil
	}
	if err != nil {
		return err
	}

	next, err := bump.Apply(current, decision)
	if err != nil {
		return err
	}

	if err := applyBump(cfg, decision); err != nil {
		return err
	}

	newVersion := next.String()
	if !cfg.DryRun {
		// The descriptor is the source of truth after the external tool ran.
		newVersion, err = project.ReadVersion(cfg.Path)
		if err != nil {
			return err
		}
		if err := ci.WriteVariables(
			ci.Variable{Name: "old-version", Value: currentVersion},
			ci.Variable{Name: "new-version", Value: newVersion},
		); err != nil {
			return relerrors.Wrap(err, relerrors.External)
		}
	}

	if !cfg.Silent {
		symbols := progress.SelectSymbols(progress.DetectTerminalCapabilities())
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s -> %s\n",
			symbols.Checkmark, decision, currentVersion, newVersion)
	}
	return nil
}

// resolveBumpOptions merges command flags over the bump config section.
func resolveBumpOptions(cmd *cobra.Command, cfg *config.Configuration) config.BumpConfig {
	opts := cfg.Bump
	flags := cmd.Flags()
	if flags.Changed("bump") {
		opts.Bump = bumpLevelsFlag
	}
	if flags.Changed("conventional") {
		opts.Conventional = bumpConventionalFlag
	}
	if flags.Changed("conventional-bump-mapping") {
		opts.Mapping = bumpMappingFlag
	}
	return opts
}

func parseExplicitLevels(names []string) ([]bump.Level, error) {
	var levels []bump.Level
	for _, name := range names {
		level, ok := bump.ParseLevel(name)
		if !ok {
			return nil, relerrors.NewValidationError(
				fmt.Sprintf("invalid bump level '%s': valid levels are %s",
					name, strings.Join(bump.LevelNames(), ", ")))
		}
		levels = append(levels, level)
	}
	return levels, nil
}

// decideBump resolves the bump decision. Conventional mode scopes commits
// to those since the most recent version tag; no prior tag means all
// retrievable history is in scope.
func decideBump(explicit []bump.Level, opts config.BumpConfig, cfg *config.Configuration, current *semver.Version) (bump.Decision, error) {
	if len(explicit) > 0 || !opts.Conventional {
		return bump.Decide(explicit, nil, nil, false, current)
	}

	mapping, err := bump.ParseMapping(opts.Mapping)
	if err != nil {
		return bump.Decision{}, err
	}

	repo, err := git.Open(cfg.Path)
	if err != nil {
		return bump.Decision{}, err
	}
	latestTag, err := repo.LatestTag()
	if err != nil {
		return bump.Decision{}, err
	}
	commits, err := repo.Commits(latestTag, "HEAD")
	if err != nil {
		return bump.Decision{}, err
	}

	return bump.Decide(nil, commits, mapping, true, current)
}

// applyBump runs the external version tool once per decision level, with a
// spinner on interactive terminals.
func applyBump(cfg *config.Configuration, decision bump.Decision) error {
	for _, level := range decision.Levels() {
		sp := progress.NewSpinner(fmt.Sprintf("bumping %s version", level), cfg.Silent)
		sp.Start()
		output, err := project.BumpVersion(cfg.Path, level, cfg.DryRun)
		sp.Stop()
		if err != nil {
			return err
		}
		if !cfg.Silent && output != "" {
			fmt.Fprintln(os.Stdout, output)
		}
	}
	return nil
}
