// Package label maps catalog gamemode labels to the form shown in Discord and back.
// Everything here is pure: it runs on every autocomplete keystroke.
package label

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// a dash run counts as a separator only when whitespace sits on both sides,
	// so "pvp-arena" keeps its hyphen.
	separatorRe  = regexp.MustCompile(`\s+[-\x{2013}\x{2014}]+\s+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// ToDisplay returns the user-facing form of a raw catalog label, e.g.
// "PvP - Arena" -> "pvp: arena".
func ToDisplay(raw string) string {
	s := strings.ToLower(norm.NFC.String(raw))
	s = separatorRe.ReplaceAllString(s, ": ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Lookup finds the raw label in known whose display form equals display.
func Lookup(display string, known []string) (string, bool) {
	for _, raw := range known {
		if ToDisplay(raw) == display {
			return raw, true
		}
	}
	return display, false
}

// ToBackend is Lookup without the match flag. An unknown label comes back
// unchanged and the catalog is expected to report it as not found.
func ToBackend(display string, known []string) string {
	raw, _ := Lookup(display, known)
	return raw
}

// Contains reports whether substr is within s, ignoring case.
func Contains(s, substr string) bool {
	return strings.Contains(fold(s), fold(substr))
}

func fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}
