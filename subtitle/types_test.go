package subtitle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegment_ReadingSpeed(t *testing.T) {
	tests := []struct {
		name     string
		segment  Segment
		expected float64
	}{
		{
			name:     "normal speech",
			segment:  Segment{Text: "Welcome to the debate.", Start: 0.256, End: 2.259},
			expected: 10.98,
		},
		{
			name:     "zero duration yields zero, not a division fault",
			segment:  Segment{Text: "instant", Start: 1.0, End: 1.0},
			expected: 0,
		},
		{
			name:     "negative duration yields zero",
			segment:  Segment{Text: "backwards", Start: 2.0, End: 1.0},
			expected: 0,
		},
		{
			name:     "line break counted as one character",
			segment:  Segment{Text: "ab\ncd", Start: 0, End: 1.0},
			expected: 5,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, tc.segment.ReadingSpeed(), 0.01)
		})
	}
}

func TestSegment_CharCount(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{name: "plain ascii", text: "hello world", expected: 11},
		{name: "utf-8 counted in runes", text: "привет мир", expected: 10},
		{name: "empty", text: "", expected: 0},
		{name: "embedded newline", text: "one\ntwo", expected: 7},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seg := Segment{Text: tc.text}
			assert.Equal(t, tc.expected, seg.CharCount())
		})
	}
}

func TestNewSegment(t *testing.T) {
	words := []Word{
		{Text: "Welcome", Start: 0.256, End: 0.720},
		{Text: "to", Start: 0.720, End: 1.120},
		{Text: "the", Start: 1.120, End: 1.379},
		{Text: "debate.", Start: 1.379, End: 2.259},
	}

	seg := NewSegment(words)
	assert.Equal(t, "Welcome to the debate.", seg.Text)
	assert.InDelta(t, 0.256, seg.Start, 0.0001)
	assert.InDelta(t, 2.259, seg.End, 0.0001)
	assert.Equal(t, words, seg.Words)
}

func TestJoinWords(t *testing.T) {
	assert.Equal(t, "", JoinWords(nil))
	assert.Equal(t, "one", JoinWords([]Word{{Text: "one"}}))
	assert.Equal(t, "one two", JoinWords([]Word{{Text: "one"}, {Text: "two"}}))
}

func TestLimits_BlockChars(t *testing.T) {
	limits := DefaultLimits()
	assert.Equal(t, limits.MaxBlockChars, limits.BlockChars(BlockHard))
	assert.Equal(t, limits.SoftBlockChars, limits.BlockChars(BlockSoft))
	assert.Greater(t, limits.SoftBlockChars, limits.MaxBlockChars, "soft tier is the looser one")
}

func TestDefaultLimits(t *testing.T) {
	limits := DefaultLimits()
	assert.Equal(t, 42, limits.MaxLineChars)
	assert.Equal(t, 2*limits.MaxLineChars, limits.MaxBlockChars)
	assert.Less(t, limits.MinDuration, limits.MaxDuration)
	assert.Less(t, limits.MinCPS, limits.MaxCPS)
}
