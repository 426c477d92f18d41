// Package subtitle holds the domain types shared between the transcription,
// segmentation and export layers: timestamped words, display cues and the
// readability limits a cue has to satisfy.
package subtitle

import (
	"strings"
	"unicode/utf8"
)

// Word is a single transcribed token with its time interval in seconds.
// Words are produced by the ASR layer and treated as read-only afterwards.
type Word struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Duration returns the word interval length in seconds.
func (w Word) Duration() float64 {
	return w.End - w.Start
}

// Segment is one timed display cue. Text equals the space-joined word texts
// at every pipeline stage except line wrapping, which only changes whitespace.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Words []Word  `json:"words"`
}

// NewSegment builds a segment from a non-empty word group, taking its text
// from the space-joined words and its interval from the first and last word.
func NewSegment(words []Word) Segment {
	return Segment{
		Text:  JoinWords(words),
		Start: words[0].Start,
		End:   words[len(words)-1].End,
		Words: words,
	}
}

// Duration returns the on-screen time of the segment in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// CharCount returns the number of visible characters in the segment text,
// counting runes and ignoring line breaks.
func (s Segment) CharCount() int {
	return utf8.RuneCountInString(strings.ReplaceAll(s.Text, "\n", " "))
}

// ReadingSpeed returns the characters-per-second rate of the segment.
// A zero or negative duration yields 0 rather than a division fault.
func (s Segment) ReadingSpeed() float64 {
	d := s.Duration()
	if d <= 0 {
		return 0
	}
	return float64(s.CharCount()) / d
}

// JoinWords returns the space-joined text of a word group.
func JoinWords(words []Word) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}
