package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SyntaxError reports a malformed config file with location context when
// the parser provides one.
type SyntaxError struct {
	FilePath string
	Message  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// ValidateYAMLSyntax checks if the YAML file has valid syntax before koanf
// parses it, so a broken config file produces a pointed diagnostic instead
// of a partial load. A missing or empty file is valid (defaults apply).
func ValidateYAMLSyntax(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &SyntaxError{FilePath: filePath, Message: err.Error()}
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return &SyntaxError{FilePath: filePath, Message: err.Error()}
	}
	return nil
}
