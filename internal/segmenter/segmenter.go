// Package segmenter turns a flat, word-level timestamped transcription into
// an ordered list of display-ready subtitle cues. Every cue has to satisfy a
// character budget, at most two bounded display lines, a min/max on-screen
// duration and a min/max reading speed at the same time; the pipeline trades
// those constraints off with greedy heuristics and explicit fallbacks while
// never losing, duplicating or reordering source words.
package segmenter

import (
	"strings"
	"unicode/utf8"

	"github.com/radio-t/ai-subtitles/subtitle"
)

// SegmentWords runs the full segmentation pipeline: sentence split, clause
// split for oversized sentences, short-segment merge, pseudo-word expansion,
// reading-speed enforcement and line wrapping. It is a pure function: all
// working state is allocated per call and identical input yields identical
// output. An empty word list yields an empty result, not an error.
func SegmentWords(words []subtitle.Word, limits subtitle.Limits) []subtitle.Segment {
	if len(words) == 0 {
		return nil
	}

	var groups [][]subtitle.Word
	for _, sentence := range splitSentences(words) {
		if respectsLimits(sentence, limits, subtitle.BlockHard) {
			groups = append(groups, sentence)
			continue
		}
		groups = append(groups, splitClauses(sentence, limits)...)
	}

	segments := make([]subtitle.Segment, 0, len(groups))
	for _, group := range groups {
		segments = append(segments, subtitle.NewSegment(group))
	}

	segments = mergeShort(segments, limits)
	segments = expandSingleWords(segments)
	segments = enforceReadingSpeed(segments, limits)

	for i := range segments {
		segments[i].Text = SplitLines(segments[i].Text, limits.MaxLineChars)
	}
	return segments
}

// splitSentences groups words into sentence-level units, closing a group
// after any word carrying terminal punctuation and emitting the trailing
// partial group. Every word appears exactly once, in original order.
func splitSentences(words []subtitle.Word) [][]subtitle.Word {
	var sentences [][]subtitle.Word
	var current []subtitle.Word
	for _, w := range words {
		current = append(current, w)
		if strings.ContainsAny(w.Text, ".!?") {
			sentences = append(sentences, current)
			current = nil
		}
	}
	if len(current) > 0 {
		sentences = append(sentences, current)
	}
	return sentences
}

// respectsLimits reports whether a word group fits the character budget of
// the given policy tier, the duration window and the reading-speed window,
// all four at once.
func respectsLimits(words []subtitle.Word, limits subtitle.Limits, policy subtitle.BlockCharPolicy) bool {
	if len(words) == 0 {
		return true
	}
	seg := subtitle.NewSegment(words)
	if seg.CharCount() > limits.BlockChars(policy) {
		return false
	}
	d := seg.Duration()
	if d < limits.MinDuration || d > limits.MaxDuration {
		return false
	}
	cps := seg.ReadingSpeed()
	return cps >= limits.MinCPS && cps <= limits.MaxCPS
}

// mergeShort runs a single left-to-right pass with an accumulator: a current
// segment shorter than the minimum duration that does not already end a
// sentence absorbs its successor. Merging never crosses a sentence boundary.
func mergeShort(segments []subtitle.Segment, limits subtitle.Limits) []subtitle.Segment {
	if len(segments) == 0 {
		return segments
	}
	out := make([]subtitle.Segment, 0, len(segments))
	current := segments[0]
	for _, next := range segments[1:] {
		if current.Duration() < limits.MinDuration && !endsSentence(current.Text) {
			current.Text += " " + next.Text
			current.End = next.End
			current.Words = append(current.Words, next.Words...)
			continue
		}
		out = append(out, current)
		current = next
	}
	return append(out, current)
}

func endsSentence(text string) bool {
	t := strings.TrimSpace(text)
	return strings.HasSuffix(t, ".") || strings.HasSuffix(t, "!") || strings.HasSuffix(t, "?")
}

// expandSingleWords replaces collapsed pseudo-words with real sub-words.
// A segment qualifies when its word list has exactly one element whose text
// embeds whitespace, which happens when only chunk-level timing was
// available upstream.
func expandSingleWords(segments []subtitle.Segment) []subtitle.Segment {
	for i := range segments {
		segments[i] = expandSingleWord(segments[i])
	}
	return segments
}

func expandSingleWord(seg subtitle.Segment) subtitle.Segment {
	if len(seg.Words) != 1 {
		return seg
	}
	tokens := strings.Fields(seg.Words[0].Text)
	if len(tokens) <= 1 {
		return seg
	}

	total := 0
	for _, tok := range tokens {
		total += utf8.RuneCountInString(tok)
	}

	// distribute the parent interval proportionally by token length, the
	// last token absorbs the exact remainder to avoid floating-point drift
	start, end := seg.Words[0].Start, seg.Words[0].End
	span := end - start
	words := make([]subtitle.Word, 0, len(tokens))
	cursor := start
	for i, tok := range tokens {
		w := subtitle.Word{Text: tok, Start: cursor}
		if i == len(tokens)-1 {
			w.End = end
		} else {
			w.End = cursor + span*float64(utf8.RuneCountInString(tok))/float64(total)
		}
		cursor = w.End
		words = append(words, w)
	}

	seg.Words = words
	seg.Text = subtitle.JoinWords(words)
	return seg
}

// enforceReadingSpeed re-chunks or re-times segments whose reading speed
// falls outside the configured window. Segments already within bounds pass
// through, as do segments shorter than the minimum duration: those are too
// short to re-time without fragmenting and are left to the line wrapper.
func enforceReadingSpeed(segments []subtitle.Segment, limits subtitle.Limits) []subtitle.Segment {
	out := make([]subtitle.Segment, 0, len(segments))
	for _, seg := range segments {
		cps := seg.ReadingSpeed()
		if cps >= limits.MinCPS && cps <= limits.MaxCPS {
			out = append(out, seg)
			continue
		}
		if seg.Duration() < limits.MinDuration {
			out = append(out, seg)
			continue
		}
		// when the source duration is physically too short for the text no
		// partition of the real timestamps can read legally, so synthesize
		if seg.Duration()*limits.MaxCPS < float64(seg.CharCount()) {
			out = append(out, synthesizeTiming(seg, limits)...)
			continue
		}
		out = append(out, rechunk(seg, limits)...)
	}
	return out
}

// synthesizeTiming discards the original timestamps and lays out new ones:
// tokens are packed greedily into chunks of at most maxCPS*maxDuration
// characters, each chunk gets a synthetic duration derived from its length
// and the chunks run back to back from the segment start.
func synthesizeTiming(seg subtitle.Segment, limits subtitle.Limits) []subtitle.Segment {
	capacity := int(limits.MaxCPS * limits.MaxDuration)

	var chunks [][]subtitle.Word
	var current []subtitle.Word
	count := 0
	for _, w := range seg.Words {
		n := utf8.RuneCountInString(w.Text)
		if len(current) > 0 && count+1+n > capacity {
			chunks = append(chunks, current)
			current, count = nil, 0
		}
		if len(current) > 0 {
			count++ // joining space
		}
		current = append(current, w)
		count += n
	}
	if len(current) > 0 {
		chunks = append(chunks, current)
	}

	out := make([]subtitle.Segment, 0, len(chunks))
	cursor := seg.Start
	for _, chunk := range chunks {
		text := subtitle.JoinWords(chunk)
		d := float64(utf8.RuneCountInString(text)) / limits.MaxCPS
		if d < limits.MinDuration {
			d = limits.MinDuration
		}
		if d > limits.MaxDuration {
			d = limits.MaxDuration
		}

		// subdivide the chunk duration evenly across its tokens
		per := d / float64(len(chunk))
		words := make([]subtitle.Word, len(chunk))
		for i, w := range chunk {
			words[i] = subtitle.Word{
				Text:  w.Text,
				Start: cursor + per*float64(i),
				End:   cursor + per*float64(i+1),
			}
		}
		words[len(words)-1].End = cursor + d

		out = append(out, subtitle.Segment{Text: text, Start: cursor, End: cursor + d, Words: words})
		cursor += d
	}
	return out
}

// rechunk runs the two-phase greedy scan over the segment words: widen the
// window while it reads too fast, then keep widening while it reads too slow
// as long as one more word stays under the ceiling. The window always grows
// by at least one word per iteration, which guarantees termination.
func rechunk(seg subtitle.Segment, limits subtitle.Limits) []subtitle.Segment {
	words := seg.Words
	var out []subtitle.Segment
	i := 0
	for i < len(words) {
		j := i + 1
		for j < len(words) && groupCPS(words[i:j]) > limits.MaxCPS {
			j++
		}
		for j < len(words) && groupCPS(words[i:j]) < limits.MinCPS && groupCPS(words[i:j+1]) <= limits.MaxCPS {
			j++
		}
		out = append(out, subtitle.NewSegment(words[i:j]))
		i = j
	}
	return out
}

func groupCPS(words []subtitle.Word) float64 {
	return subtitle.NewSegment(words).ReadingSpeed()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
