// Package project reads project metadata from the pyproject.toml descriptor
// and delegates version mutation to the external 'uv' tool. The descriptor
// is never rewritten by relkit itself.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	relerrors "github.com/ariel-frischer/relkit/internal/errors"
)

// DescriptorName is the project descriptor file relkit reads metadata from.
const DescriptorName = "pyproject.toml"

// Metadata is the project identity read from the descriptor.
type Metadata struct {
	Name    string
	Version string
}

type descriptor struct {
	Project struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"project"`
}

// ReadMetadata reads the project name and version from the descriptor in
// the given project directory.
func ReadMetadata(dir string) (*Metadata, error) {
	path := filepath.Join(dir, DescriptorName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, relerrors.NewPreconditionError(
			fmt.Sprintf("%s not found in path: %s", DescriptorName, dir),
			"Run relkit from the project root or pass --path.")
	}

	var doc descriptor
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, relerrors.WrapWithMessage(err, relerrors.Validation,
			fmt.Sprintf("parsing %s", path))
	}

	if doc.Project.Name == "" || doc.Project.Version == "" {
		return nil, relerrors.NewValidationError(
			fmt.Sprintf("project.name and project.version must be defined in %s", DescriptorName))
	}

	return &Metadata{Name: doc.Project.Name, Version: doc.Project.Version}, nil
}

// ReadVersion reads just the project version from the descriptor.
func ReadVersion(dir string) (string, error) {
	meta, err := ReadMetadata(dir)
	if err != nil {
		return "", err
	}
	return meta.Version, nil
}
