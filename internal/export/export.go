// Package export renders an ordered segment list into the supported
// subtitle file formats: SRT, WebVTT, plain text and JSON.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/radio-t/ai-subtitles/subtitle"
)

// Format identifies a supported output format.
type Format string

// supported output formats
const (
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
	FormatTXT  Format = "txt"
	FormatJSON Format = "json"
)

// ParseFormat resolves a format by name or file extension.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimPrefix(name, "."))) {
	case FormatSRT:
		return FormatSRT, nil
	case FormatVTT:
		return FormatVTT, nil
	case FormatTXT:
		return FormatTXT, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported format %q", name)
}

// Render writes the segments to w in the given format.
func Render(w io.Writer, format Format, segments []subtitle.Segment) error {
	switch format {
	case FormatSRT:
		return WriteSRT(w, segments)
	case FormatVTT:
		return WriteVTT(w, segments)
	case FormatTXT:
		return WriteTXT(w, segments)
	case FormatJSON:
		return WriteJSON(w, segments)
	}
	return fmt.Errorf("unsupported format %q", format)
}

// WriteSRT writes numbered SRT blocks, blank-line separated, with
// comma-millisecond timestamps.
func WriteSRT(w io.Writer, segments []subtitle.Segment) error {
	for i, seg := range segments {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return fmt.Errorf("write srt block: %w", err)
			}
		}
		_, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n",
			i+1, formatTimestamp(seg.Start, ','), formatTimestamp(seg.End, ','), seg.Text)
		if err != nil {
			return fmt.Errorf("write srt block: %w", err)
		}
	}
	return nil
}

// WriteVTT writes a WEBVTT file with dot-millisecond timestamps.
func WriteVTT(w io.Writer, segments []subtitle.Segment) error {
	if _, err := fmt.Fprint(w, "WEBVTT\n"); err != nil {
		return fmt.Errorf("write vtt header: %w", err)
	}
	for _, seg := range segments {
		_, err := fmt.Fprintf(w, "\n%s --> %s\n%s\n",
			formatTimestamp(seg.Start, '.'), formatTimestamp(seg.End, '.'), seg.Text)
		if err != nil {
			return fmt.Errorf("write vtt cue: %w", err)
		}
	}
	return nil
}

// WriteTXT writes one cue text per line with embedded line breaks flattened.
func WriteTXT(w io.Writer, segments []subtitle.Segment) error {
	for _, seg := range segments {
		if _, err := fmt.Fprintln(w, strings.ReplaceAll(seg.Text, "\n", " ")); err != nil {
			return fmt.Errorf("write txt line: %w", err)
		}
	}
	return nil
}

// WriteJSON writes the segments as an indented JSON array.
func WriteJSON(w io.Writer, segments []subtitle.Segment) error {
	if segments == nil {
		segments = []subtitle.Segment{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(segments); err != nil {
		return fmt.Errorf("encode segments: %w", err)
	}
	return nil
}

// formatTimestamp renders seconds as HH:MM:SS<sep>mmm. Negative inputs are
// clamped to zero.
func formatTimestamp(seconds float64, sep byte) string {
	if seconds < 0 {
		seconds = 0
	}
	millis := int(math.Round(seconds * 1000))
	h := millis / 3600000
	m := millis % 3600000 / 60000
	s := millis % 60000 / 1000
	ms := millis % 1000
	return fmt.Sprintf("%02d:%02d:%02d%c%03d", h, m, s, sep, ms)
}
