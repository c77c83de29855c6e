// Package strings provides small string helpers for drover's CLI output.
package strings

import (
	"strings"
)

// DefaultCellMaxLen is the default maximum length for list cells in
// formatted table output.
const DefaultCellMaxLen = 60

// minTruncateLen leaves room for at least one character plus "...".
const minTruncateLen = 4

// Truncate collapses s to a single line and shortens it to at most
// maxLen runes, appending "..." when content was cut. Operating on
// runes keeps multi-byte characters intact.
func Truncate(s string, maxLen int) string {
	if maxLen < minTruncateLen {
		maxLen = minTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

// JoinTruncated joins items with ", " and truncates the result to
// DefaultCellMaxLen, for use in table cells that hold name lists.
func JoinTruncated(items []string) string {
	return Truncate(strings.Join(items, ", "), DefaultCellMaxLen)
}
