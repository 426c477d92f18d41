package segmenter

import (
	"strings"
	"unicode/utf8"
)

// SplitLines renders text into at most two display lines of at most
// maxLineChars characters each. Text already within the budget is returned
// unchanged. Otherwise every inter-word split index is scanned and the one
// with both lines under the budget and the smallest length difference wins.
// When no index fits, the first line is filled greedily and the remainder
// hard-truncated: a bounded, deterministic loss policy, not a fault.
func SplitLines(text string, maxLineChars int) string {
	if utf8.RuneCountInString(text) <= maxLineChars {
		return text
	}

	fields := strings.Fields(text)
	if len(fields) == 0 {
		return text
	}

	bestAt, bestDiff := -1, 0
	for i := 1; i < len(fields); i++ {
		left := utf8.RuneCountInString(strings.Join(fields[:i], " "))
		right := utf8.RuneCountInString(strings.Join(fields[i:], " "))
		if left > maxLineChars || right > maxLineChars {
			continue
		}
		if diff := abs(left - right); bestAt < 0 || diff < bestDiff {
			bestAt, bestDiff = i, diff
		}
	}
	if bestAt > 0 {
		return strings.Join(fields[:bestAt], " ") + "\n" + strings.Join(fields[bestAt:], " ")
	}

	return greedyFill(fields, maxLineChars)
}

// greedyFill accumulates words into the first line while it stays within the
// budget and pushes the remainder onto the second, truncating it if needed.
func greedyFill(fields []string, maxLineChars int) string {
	var line1 []string
	used := 0
	i := 0
	for ; i < len(fields); i++ {
		width := used + utf8.RuneCountInString(fields[i])
		if len(line1) > 0 {
			width++ // joining space
		}
		if width > maxLineChars {
			break
		}
		line1 = append(line1, fields[i])
		used = width
	}

	line2 := truncateLine(strings.Join(fields[i:], " "), maxLineChars)
	switch {
	case len(line1) == 0:
		return line2
	case line2 == "":
		return strings.Join(line1, " ")
	default:
		return strings.Join(line1, " ") + "\n" + line2
	}
}

// truncateLine drops everything past the character budget and strips the
// trailing whitespace, rune-safe.
func truncateLine(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return strings.TrimRight(string(runes[:maxChars]), " ")
}
