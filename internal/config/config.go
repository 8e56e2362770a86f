// Package config provides hierarchical configuration management for relkit
// using koanf. Values are resolved with priority: environment variables >
// project config > user config > defaults; explicit command-line flags are
// applied on top by the CLI layer. Project configuration lives either in a
// dedicated .relkit file (YAML, TOML or JSON selected by extension) or in
// the [tool.relkit] table of pyproject.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	toml "github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces relkit environment overrides, e.g. RELKIT_SILENT=1
// or RELKIT_CHANGELOG__OUTPUT=CHANGELOG.md (double underscore nests).
const envPrefix = "RELKIT_"

// Configuration is the fully resolved settings for one invocation.
// Per-command sections override nothing by themselves; the CLI reads the
// section matching the subcommand being run.
type Configuration struct {
	Path           string `koanf:"path"`
	ProjectName    string `koanf:"project_name"`
	ProjectVersion string `koanf:"project_version"`
	Silent         bool   `koanf:"silent"`
	Debug          bool   `koanf:"debug"`
	DryRun         bool   `koanf:"dry_run"`

	Bump      BumpConfig      `koanf:"bump"`
	Changelog ChangelogConfig `koanf:"changelog"`
	Tag       TagConfig       `koanf:"tag"`
}

// BumpConfig configures the bump subcommand.
type BumpConfig struct {
	Bump         []string `koanf:"bump"`
	Conventional bool     `koanf:"conventional"`
	Mapping      string   `koanf:"conventional_bump_mapping"`
}

// ChangelogConfig configures the changelog subcommand.
type ChangelogConfig struct {
	FromRef         string `koanf:"from_ref"`
	ToRef           string `koanf:"to_ref"`
	ChangelogFormat string `koanf:"changelog_format"`
	CommitFormat    string `koanf:"commit_format"`
	Conventional    bool   `koanf:"conventional"`
	TypeMapping     string `koanf:"conventional_type_mapping"`
	Output          string `koanf:"output"`
}

// TagConfig configures the tag subcommand.
type TagConfig struct {
	Message       string `koanf:"message"`
	MessageFormat string `koanf:"message_format"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectDir is the directory searched for project config files
	// (default: current directory; set from --path).
	ProjectDir string
	// ProjectConfigPath overrides project config discovery (for testing).
	ProjectConfigPath string
}

// Load resolves configuration for the given project directory.
func Load(projectDir string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectDir: projectDir})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// loadDefaults applies built-in default values.
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level YAML config when present.
func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil || !fileExists(path) {
		return nil
	}
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for user config: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load user config %s: %w", path, err)
	}
	return nil
}

// loadProjectConfig loads the project-level config. Discovery order:
// explicit override path, then .relkit.yml / .relkit.toml / .relkit.json in
// the project directory, then the [tool.relkit] table of pyproject.toml.
func loadProjectConfig(k *koanf.Koanf, opts LoadOptions) error {
	dir := opts.ProjectDir
	if dir == "" {
		dir = "."
	}

	if opts.ProjectConfigPath != "" {
		return loadConfigFile(k, opts.ProjectConfigPath)
	}

	for _, name := range ProjectConfigNames() {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return loadConfigFile(k, path)
		}
	}

	return loadDescriptorConfig(k, filepath.Join(dir, "pyproject.toml"))
}

// loadConfigFile loads one config file, picking the parser by extension.
func loadConfigFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser
	switch filepath.Ext(path) {
	case ".yml", ".yaml":
		if err := ValidateYAMLSyntax(path); err != nil {
			return fmt.Errorf("validating YAML syntax for project config: %w", err)
		}
		parser = yaml.Parser()
	case ".toml":
		parser = toml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return fmt.Errorf("unsupported config file extension: %s", path)
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("failed to load project config %s: %w", path, err)
	}
	return nil
}

// loadDescriptorConfig merges the [tool.relkit] table of pyproject.toml,
// when both the file and the table exist.
func loadDescriptorConfig(k *koanf.Koanf, path string) error {
	if !fileExists(path) {
		return nil
	}

	pk := koanf.New(".")
	if err := pk.Load(file.Provider(path), toml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	section := pk.Cut("tool.relkit")
	if len(section.Keys()) == 0 {
		return nil
	}
	if err := k.Merge(section); err != nil {
		return fmt.Errorf("merging [tool.relkit] from %s: %w", path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// envTransform converts environment variable names to config keys.
// Example: RELKIT_DRY_RUN -> dry_run, RELKIT_BUMP__CONVENTIONAL -> bump.conventional
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// fileExists returns true if the file exists and is readable.
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
