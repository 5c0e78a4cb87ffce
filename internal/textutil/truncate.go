package textutil

import "strings"

// Truncate collapses whitespace runs in s to single spaces and limits the
// result to max runes. A non-positive max disables the limit.
func Truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// ShortenMiddle keeps the start and end of s and replaces the middle with an
// ellipsis so the result fits in width runes.
func ShortenMiddle(s string, width int) string {
	runes := []rune(s)
	if width <= 0 || len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	keep := width - 1
	head := keep / 2
	tail := keep - head
	return string(runes[:head]) + "…" + string(runes[len(runes)-tail:])
}
