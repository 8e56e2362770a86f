package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ariel-frischer/relkit/internal/testutil"
)

// executeCommand runs the root command with args, returning captured stdout
// and stderr. The command tree is package-global state, so every run resets
// flag values and Changed markers first and isolates the user config dir.
func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetCommandState()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GITHUB_OUTPUT", "")

	var outBuf, errBuf bytes.Buffer
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func resetCommandState() {
	commands := append([]*cobra.Command{rootCmd}, rootCmd.Commands()...)
	for _, cmd := range commands {
		cmd.Flags().VisitAll(resetFlag)
	}
	rootCmd.PersistentFlags().VisitAll(resetFlag)
}

func resetFlag(f *pflag.Flag) {
	if !f.Changed {
		return
	}
	if sv, ok := f.Value.(pflag.SliceValue); ok {
		_ = sv.Replace([]string{})
	} else {
		_ = f.Value.Set(f.DefValue)
	}
	f.Changed = false
}

// projectFixture builds a git repository with a pyproject.toml descriptor.
func projectFixture(t *testing.T, version string) *testutil.Repo {
	t.Helper()
	fixture := testutil.NewRepo(t)
	fixture.WriteDescriptor("demo", version)
	return fixture
}
