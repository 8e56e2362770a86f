package progress

import (
	"time"

	"github.com/briandowns/spinner"
)

// Spinner wraps a terminal spinner that is only active on interactive
// stdout; on pipes and in silent mode it does nothing, so output stays
// machine-readable.
type Spinner struct {
	s       *spinner.Spinner
	enabled bool
}

// NewSpinner creates a spinner with the given suffix message. The spinner
// is disabled when stdout is not a terminal or when quiet is set.
func NewSpinner(message string, quiet bool) *Spinner {
	caps := DetectTerminalCapabilities()
	if quiet || !caps.IsTTY {
		return &Spinner{}
	}

	symbols := SelectSymbols(caps)
	s := spinner.New(spinner.CharSets[symbols.SpinnerSet], 100*time.Millisecond)
	s.Suffix = " " + message
	return &Spinner{s: s, enabled: true}
}

// Start begins the spinner animation.
func (sp *Spinner) Start() {
	if sp.enabled {
		sp.s.Start()
	}
}

// Stop halts the spinner and clears its line.
func (sp *Spinner) Stop() {
	if sp.enabled {
		sp.s.Stop()
	}
}
