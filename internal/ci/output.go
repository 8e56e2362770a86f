// Package ci writes step output variables for CI pipelines. GitHub Actions
// exposes the output file path via the GITHUB_OUTPUT environment variable;
// when it is unset every write is a no-op.
package ci

import (
	"fmt"
	"os"
)

// outputEnv is the environment variable naming the output file.
const outputEnv = "GITHUB_OUTPUT"

// Variable is one key=value output pair. Order of writes is preserved.
type Variable struct {
	Name  string
	Value string
}

// OutputFile returns the configured CI output file path, empty when not
// running under a CI environment that provides one.
func OutputFile() string {
	return os.Getenv(outputEnv)
}

// WriteVariables appends the variables to the CI output file. Returns nil
// without touching the filesystem when no output file is configured.
func WriteVariables(vars ...Variable) error {
	path := OutputFile()
	if path == "" {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s file: %w", outputEnv, err)
	}
	defer f.Close()

	for _, v := range vars {
		if _, err := fmt.Fprintf(f, "%s=%s\n", v.Name, v.Value); err != nil {
			return fmt.Errorf("writing %s variable %s: %w", outputEnv, v.Name, err)
		}
	}
	return nil
}
