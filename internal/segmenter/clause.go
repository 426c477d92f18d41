package segmenter

import (
	"strings"
	"unicode/utf8"

	"github.com/radio-t/ai-subtitles/subtitle"
)

// connectorWords are the conjunctions and prepositions the natural split
// detector may break after when a long sentence has no usable commas.
var connectorWords = map[string]struct{}{
	"and": {}, "but": {}, "for": {}, "or": {}, "nor": {}, "so": {}, "yet": {},
	"because": {}, "while": {}, "when": {}, "after": {}, "before": {},
	"with": {}, "without": {}, "about": {}, "against": {}, "between": {},
	"through": {}, "during": {}, "under": {}, "over": {}, "that": {},
	"which": {}, "where": {},
}

// splitClauses divides an over-limit sentence at comma boundaries. Sentences
// with fewer than two commas do not carry enough structure for a sensible
// comma split; those fall back to the natural-point detector when their text
// still exceeds the soft character budget and come back unsplit otherwise.
// The union of the returned clauses equals the input, in order.
func splitClauses(sentence []subtitle.Word, limits subtitle.Limits) [][]subtitle.Word {
	text := subtitle.JoinWords(sentence)
	if strings.Count(text, ",") < 2 {
		if utf8.RuneCountInString(text) > limits.BlockChars(subtitle.BlockSoft) {
			return splitNatural(sentence, limits)
		}
		return [][]subtitle.Word{sentence}
	}

	var clauses [][]subtitle.Word
	var current []subtitle.Word
	for _, w := range sentence {
		current = append(current, w)
		if strings.Contains(w.Text, ",") {
			clauses = append(clauses, current)
			current = nil
		}
	}
	if len(current) > 0 {
		clauses = append(clauses, current)
	}
	return clauses
}

// splitNatural breaks a comma-poor sentence at the boundary immediately
// after the connector word closest to the midpoint, recursing on halves
// that still exceed the soft character budget. A sentence with no safe
// boundary is returned unsplit.
func splitNatural(words []subtitle.Word, limits subtitle.Limits) [][]subtitle.Word {
	points := naturalSplitPoints(words)
	if len(points) == 0 {
		return [][]subtitle.Word{words}
	}

	mid := len(words) / 2
	best := points[0]
	for _, p := range points[1:] {
		if abs(p-mid) < abs(best-mid) {
			best = p
		}
	}

	var out [][]subtitle.Word
	for _, half := range [][]subtitle.Word{words[:best], words[best:]} {
		if utf8.RuneCountInString(subtitle.JoinWords(half)) > limits.BlockChars(subtitle.BlockSoft) {
			out = append(out, splitNatural(half, limits)...)
			continue
		}
		out = append(out, half)
	}
	return out
}

// naturalSplitPoints returns the indices where a new clause may begin: the
// position immediately after a connector word, never within the leading or
// trailing two words of the sentence.
func naturalSplitPoints(words []subtitle.Word) []int {
	var points []int
	for i := 1; i < len(words)-2; i++ {
		token := strings.ToLower(strings.Trim(words[i].Text, ".,!?;:"))
		if _, ok := connectorWords[token]; ok {
			points = append(points, i+1)
		}
	}
	return points
}
