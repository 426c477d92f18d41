// Package config holds the application configuration assembled from flags
// and the optional TOML limits file.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/radio-t/ai-subtitles/subtitle"
)

// Config represents the application configuration
type Config struct {
	Input        string // local media file to subtitle
	URL          string // page or direct media URL to subtitle
	Output       string // output file path, empty derives from input
	Format       string // srt, vtt, txt or json
	Language     string // language hint for the ASR model, "auto" to detect
	LimitsFile   string // optional TOML file overriding readability limits
	ChunkSeconds int    // chunk length in seconds for long inputs
	OpenAIAPIKey string
	ShowStats    bool   // print the per-cue statistics table
	ListenAddr   string // when set, serve the HTTP surface instead of the pipeline

	Limits subtitle.Limits
}

// LoadLimits reads readability limit overrides from a TOML file on top of
// the defaults. Missing, zero or negative values keep the default, so a
// partial file only overrides what it names.
func LoadLimits(path string) (subtitle.Limits, error) {
	limits := subtitle.DefaultLimits()
	if path == "" {
		return limits, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is provided by command-line flag
	if err != nil {
		return limits, fmt.Errorf("failed to read limits file: %w", err)
	}

	var overrides subtitle.Limits
	if err := toml.Unmarshal(data, &overrides); err != nil {
		return limits, fmt.Errorf("failed to parse limits file: %w", err)
	}

	if overrides.MaxLineChars > 0 {
		limits.MaxLineChars = overrides.MaxLineChars
	}
	if overrides.MaxBlockChars > 0 {
		limits.MaxBlockChars = overrides.MaxBlockChars
	}
	if overrides.SoftBlockChars > 0 {
		limits.SoftBlockChars = overrides.SoftBlockChars
	}
	if overrides.MinDuration > 0 {
		limits.MinDuration = overrides.MinDuration
	}
	if overrides.MaxDuration > 0 {
		limits.MaxDuration = overrides.MaxDuration
	}
	if overrides.MinCPS > 0 {
		limits.MinCPS = overrides.MinCPS
	}
	if overrides.MaxCPS > 0 {
		limits.MaxCPS = overrides.MaxCPS
	}
	return limits, nil
}
