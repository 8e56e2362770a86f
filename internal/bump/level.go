// Package bump implements the conventional-commit classification and
// version-bump resolution engine: parsing type:level mappings, deciding the
// single bump to apply for a commit range, and applying that decision to a
// semantic version.
package bump

import "strings"

// Level is one bump magnitude. Release components change the numeric
// major.minor.patch portion; additional components set or advance a
// pre-release style qualifier.
type Level int

const (
	// LevelNone is the zero value: no bump selected.
	LevelNone Level = iota
	Major
	Minor
	Patch
	Stable
	Alpha
	Beta
	RC
	Post
	Dev
)

// precedence ranks levels for conflict resolution. Lower rank wins:
// major beats minor beats patch, and release components always beat
// additional components. The ranks are explicit so the total order is a
// visible, testable property rather than an accident of declaration order.
var precedence = map[Level]int{
	Major:  1,
	Minor:  2,
	Patch:  3,
	Stable: 4,
	Alpha:  5,
	Beta:   6,
	RC:     7,
	Post:   8,
	Dev:    9,
}

var levelNames = map[Level]string{
	Major:  "major",
	Minor:  "minor",
	Patch:  "patch",
	Stable: "stable",
	Alpha:  "alpha",
	Beta:   "beta",
	RC:     "rc",
	Post:   "post",
	Dev:    "dev",
}

// Levels returns all valid levels in precedence order.
func Levels() []Level {
	return []Level{Major, Minor, Patch, Stable, Alpha, Beta, RC, Post, Dev}
}

// LevelNames returns the names of all valid levels in precedence order.
// Used in validation diagnostics.
func LevelNames() []string {
	names := make([]string, 0, len(levelNames))
	for _, l := range Levels() {
		names = append(names, levelNames[l])
	}
	return names
}

// ParseLevel matches a level name case-insensitively against the fixed
// enumeration. Returns false for unknown names.
func ParseLevel(s string) (Level, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	for level, levelName := range levelNames {
		if levelName == name {
			return level, true
		}
	}
	return LevelNone, false
}

// String returns the canonical lower-case level name.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "none"
}

// IsRelease reports whether the level changes the major.minor.patch portion.
func (l Level) IsRelease() bool {
	return l == Major || l == Minor || l == Patch
}

// IsAdditional reports whether the level is a pre-release/post-release
// qualifier rather than a release component.
func (l Level) IsAdditional() bool {
	switch l {
	case Stable, Alpha, Beta, RC, Post, Dev:
		return true
	}
	return false
}

// Outranks reports whether l takes precedence over other. LevelNone never
// outranks anything and everything outranks LevelNone.
func (l Level) Outranks(other Level) bool {
	if l == LevelNone {
		return false
	}
	if other == LevelNone {
		return true
	}
	return precedence[l] < precedence[other]
}
