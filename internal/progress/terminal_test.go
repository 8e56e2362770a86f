package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectSymbols(t *testing.T) {
	tests := map[string]struct {
		caps TerminalCapabilities
		want Symbols
	}{
		"unicode terminal": {
			caps: TerminalCapabilities{IsTTY: true, SupportsUnicode: true},
			want: Symbols{Checkmark: "✓", Failure: "✗", SpinnerSet: 14},
		},
		"ascii fallback": {
			caps: TerminalCapabilities{IsTTY: true, SupportsUnicode: false},
			want: Symbols{Checkmark: "[OK]", Failure: "[FAIL]", SpinnerSet: 9},
		},
		"non tty": {
			caps: TerminalCapabilities{},
			want: Symbols{Checkmark: "[OK]", Failure: "[FAIL]", SpinnerSet: 9},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectSymbols(tt.caps))
		})
	}
}

func TestDetectTerminalCapabilitiesUnderTest(t *testing.T) {
	// go test attaches stdout to a pipe, so everything tty-derived is off.
	caps := DetectTerminalCapabilities()
	assert.False(t, caps.IsTTY)
	assert.False(t, caps.SupportsColor)
	assert.False(t, caps.SupportsUnicode)
}

func TestSpinnerDisabled(t *testing.T) {
	// Disabled spinners (quiet mode or piped stdout) are inert.
	sp := NewSpinner("working", true)
	sp.Start()
	sp.Stop()

	sp = NewSpinner("working", false)
	sp.Start()
	sp.Stop()
}
