package main

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/radio-t/ai-subtitles/subtitle"
)

// printStats renders a per-cue table with timing, character count and
// reading speed, so limit tuning can be done by eye.
func printStats(w io.Writer, segments []subtitle.Segment) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"#", "start", "end", "dur", "chars", "cps", "text"})

	for i, seg := range segments {
		tw.AppendRow(table.Row{
			i + 1,
			fmt.Sprintf("%.3f", seg.Start),
			fmt.Sprintf("%.3f", seg.End),
			fmt.Sprintf("%.2f", seg.Duration()),
			seg.CharCount(),
			fmt.Sprintf("%.1f", seg.ReadingSpeed()),
			truncateString(strings.ReplaceAll(seg.Text, "\n", " | "), statsTextColumnWidth),
		})
	}
	tw.AppendFooter(table.Row{"", "", "", "", "", "", fmt.Sprintf("%d cues", len(segments))})
	tw.Render()
}

// truncateString truncates a string to the specified length and adds "..."
// if truncated, without breaking UTF-8 characters
func truncateString(s string, maxLength int) string {
	if utf8.RuneCountInString(s) <= maxLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLength]) + "..."
}
