package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	// Color functions with auto-detection for terminal support.
	// These fall back gracefully when colors are unavailable.
	errorLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	errorMsg    = color.New(color.FgRed).SprintFunc()
	fixLabel    = color.New(color.FgGreen, color.Bold).SprintFunc()
	bullet      = color.New(color.FgGreen).SprintFunc()
	categoryFmt = color.New(color.FgYellow).SprintFunc()
	warnLabel   = color.New(color.FgYellow, color.Bold).SprintFunc()
)

// FormatError formats a ReleaseError for display in the terminal.
// It uses colors when available and falls back to plain text otherwise.
func FormatError(err *ReleaseError) string {
	if err == nil {
		return ""
	}
	return formatError(err, true)
}

// FormatErrorPlain formats a ReleaseError without colors.
func FormatErrorPlain(err *ReleaseError) string {
	if err == nil {
		return ""
	}
	return formatError(err, false)
}

func formatError(err *ReleaseError, useColors bool) string {
	var sb strings.Builder

	// Error category and message
	if useColors {
		sb.WriteString(errorLabel("Error"))
		sb.WriteString(" [")
		sb.WriteString(categoryFmt(err.Category.String()))
		sb.WriteString("]: ")
		sb.WriteString(errorMsg(err.Message))
	} else {
		sb.WriteString("Error [")
		sb.WriteString(err.Category.String())
		sb.WriteString("]: ")
		sb.WriteString(err.Message)
	}
	sb.WriteString("\n")

	// Remediation steps
	if len(err.Remediation) > 0 {
		sb.WriteString("\n")
		if useColors {
			sb.WriteString(fixLabel("To fix this:"))
		} else {
			sb.WriteString("To fix this:")
		}
		sb.WriteString("\n")
		for _, step := range err.Remediation {
			if useColors {
				sb.WriteString("  ")
				sb.WriteString(bullet("•"))
				sb.WriteString(" ")
			} else {
				sb.WriteString("  • ")
			}
			sb.WriteString(step)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// PrintError prints a formatted ReleaseError to stderr.
func PrintError(err *ReleaseError) {
	FprintError(os.Stderr, err)
}

// FprintError prints a formatted ReleaseError to the given writer.
func FprintError(w io.Writer, err *ReleaseError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}

// FormatSimpleError formats a regular error with a category.
// Use this when you have a plain error and want structured output.
func FormatSimpleError(err error, category Category) string {
	if err == nil {
		return ""
	}
	relErr := &ReleaseError{
		Category: category,
		Message:  err.Error(),
	}
	return FormatError(relErr)
}

// PrintWarning prints a highlighted warning to the given writer. Warnings
// are non-fatal: the invocation still exits successfully.
func PrintWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", warnLabel("Warning:"), fmt.Sprintf(format, args...))
}
