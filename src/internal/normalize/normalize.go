// Package normalize prepares raw Solidity source for the parser: comments are
// removed, every whitespace run becomes one space and the end-of-input
// sentinel is appended.
package normalize

import (
	"regexp"
	"strings"
	"sync"
)

// Sentinel terminates normalized text. It never survives Clean, so it cannot
// appear inside the source part of the buffer.
const Sentinel = "$"

var (
	// Line comments not preceded by ':' (keeps URLs such as https://) and
	// non-nested block comments. Go's regexp has no lookbehind, so the
	// preceding character is captured and written back.
	commentPattern = regexp.MustCompile(`(^|[^:])//[^\n]*|/\*[\s\S]*?\*/`)
	spacePattern   = regexp.MustCompile(`[\s$]+`)
)

// StripComments removes line and block comments.
func StripComments(src string) string {
	return commentPattern.ReplaceAllString(src, "${1}")
}

// StripSpaces collapses whitespace runs, newlines included, into one space.
// Stray sentinel characters are folded into the surrounding whitespace.
func StripSpaces(src string) string {
	return spacePattern.ReplaceAllString(src, " ")
}

// Clean strips comments and collapses whitespace. Clean(Clean(s)) == Clean(s).
func Clean(src string) string {
	return strings.Trim(StripSpaces(StripComments(src)), " ")
}

// Normalize returns Clean(src) followed by a single space and the sentinel,
// the exact buffer shape the parser consumes.
func Normalize(src string) string {
	return Clean(src) + " " + Sentinel
}

// NormalizeWith is Normalize for a caller-chosen sentinel byte. Occurrences
// of that byte in src fold into whitespace, as `$` does for Normalize.
func NormalizeWith(src string, sentinel byte) string {
	re := spacesFor(sentinel)
	body := strings.Trim(re.ReplaceAllString(StripComments(src), " "), " ")
	return body + " " + string(sentinel)
}

// byte -> *regexp.Regexp
var sentinelSpaces sync.Map

func spacesFor(sentinel byte) *regexp.Regexp {
	if sentinel == Sentinel[0] {
		return spacePattern
	}
	if re, ok := sentinelSpaces.Load(sentinel); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`[\s` + regexp.QuoteMeta(string(sentinel)) + `]+`)
	sentinelSpaces.Store(sentinel, re)
	return re
}
