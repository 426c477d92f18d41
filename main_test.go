package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/radio-t/ai-subtitles/internal/export"
	"github.com/radio-t/ai-subtitles/subtitle"
)

func TestDeriveOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		format   export.Format
		expected string
	}{
		{name: "video input", input: "/media/talk.mp4", format: export.FormatSRT, expected: "/media/talk.srt"},
		{name: "audio input", input: "episode.mp3", format: export.FormatVTT, expected: "episode.vtt"},
		{name: "no extension", input: "recording", format: export.FormatJSON, expected: "recording.json"},
		{name: "dotted directory", input: "/data.v2/show.wav", format: export.FormatTXT, expected: "/data.v2/show.txt"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, deriveOutputPath(tc.input, tc.format))
		})
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		maxLength int
		expected  string
	}{
		{name: "short string not truncated", input: "hello", maxLength: 10, expected: "hello"},
		{name: "long string truncated", input: "hello world", maxLength: 5, expected: "hello..."},
		{name: "exact length not truncated", input: "hello", maxLength: 5, expected: "hello"},
		{name: "utf-8 string truncated at rune boundary", input: "привет мир", maxLength: 6, expected: "привет..."},
		{name: "empty string", input: "", maxLength: 5, expected: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, truncateString(tc.input, tc.maxLength))
		})
	}
}

func TestPrintStats(t *testing.T) {
	segments := []subtitle.Segment{
		{Text: "Hello there", Start: 0.256, End: 2.0},
		{Text: "two\nlines", Start: 2.0, End: 4.0},
	}

	var buf bytes.Buffer
	printStats(&buf, segments)

	out := buf.String()
	assert.Contains(t, out, "Hello there")
	assert.Contains(t, out, "two | lines", "embedded line breaks flattened for the table")
	assert.Contains(t, out, "2 CUES", "footer is uppercased by the table style")
	assert.NotEmpty(t, out)
}
