// Package audio shells out to ffmpeg/ffprobe for the media plumbing around
// transcription: extracting a mono audio track, probing duration and
// splitting long inputs into fixed-length chunks.
package audio

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

//go:generate moq -out mocks/command_runner.go -pkg mocks -skip-ensure -fmt goimports . CommandRunner

// CommandRunner executes an external media command and returns its stdout
type CommandRunner interface {
	Run(name string, args ...string) ([]byte, error)
}

// DefaultChunkSeconds is the chunk length used when none is configured.
const DefaultChunkSeconds = 600

// Chunk is one piece of a split audio file with its start offset in the
// original recording.
type Chunk struct {
	Path   string
	Offset float64
}

// FFmpegProcessor implements audio processing using ffmpeg and ffprobe
type FFmpegProcessor struct {
	cmdRunner CommandRunner
}

// NewFFmpegProcessor creates a new FFmpeg audio processor
func NewFFmpegProcessor() *FFmpegProcessor {
	return &FFmpegProcessor{cmdRunner: &DefaultCommandRunner{}}
}

// Extract converts any input container into a 16kHz mono mp3 suitable for
// the transcription API and returns the output path.
func (p *FFmpegProcessor) Extract(input, outputDir string) (string, error) {
	output := filepath.Join(outputDir, fmt.Sprintf("audio_%s.mp3", uuid.NewString()))
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", input,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-b:a", "64k",
		output,
	}
	if _, err := p.cmdRunner.Run("ffmpeg", args...); err != nil {
		return "", fmt.Errorf("failed to extract audio: %w", err)
	}
	return output, nil
}

// Duration probes the media duration in seconds.
func (p *FFmpegProcessor) Duration(path string) (float64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}
	out, err := p.cmdRunner.Run("ffprobe", args...)
	if err != nil {
		return 0, fmt.Errorf("failed to probe duration: %w", err)
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected ffprobe output %q: %w", strings.TrimSpace(string(out)), err)
	}
	return seconds, nil
}

// Split cuts the audio into chunks of at most chunkSeconds and returns them
// with their start offsets. Inputs not longer than one chunk come back as a
// single zero-offset chunk pointing at the original file.
func (p *FFmpegProcessor) Split(path, outputDir string, chunkSeconds int) ([]Chunk, error) {
	if chunkSeconds <= 0 {
		chunkSeconds = DefaultChunkSeconds
	}

	total, err := p.Duration(path)
	if err != nil {
		return nil, err
	}
	if total <= float64(chunkSeconds) {
		return []Chunk{{Path: path, Offset: 0}}, nil
	}

	prefix := fmt.Sprintf("chunk_%s", uuid.NewString())
	pattern := filepath.Join(outputDir, prefix+"_%03d.mp3")
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", path,
		"-f", "segment",
		"-segment_time", strconv.Itoa(chunkSeconds),
		"-reset_timestamps", "1",
		"-c", "copy",
		pattern,
	}
	if _, err := p.cmdRunner.Run("ffmpeg", args...); err != nil {
		return nil, fmt.Errorf("failed to split audio: %w", err)
	}

	paths, err := filepath.Glob(filepath.Join(outputDir, prefix+"_*.mp3"))
	if err != nil {
		return nil, fmt.Errorf("failed to list chunks: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("ffmpeg produced no chunks for %s", path)
	}
	sort.Strings(paths)

	chunks := make([]Chunk, 0, len(paths))
	for i, chunkPath := range paths {
		chunks = append(chunks, Chunk{Path: chunkPath, Offset: float64(i * chunkSeconds)})
	}
	return chunks, nil
}

// DefaultCommandRunner is the default implementation of CommandRunner
type DefaultCommandRunner struct{}

// Run executes the command and returns its stdout, folding stderr into the
// error on failure.
func (r *DefaultCommandRunner) Run(name string, args ...string) ([]byte, error) {
	// #nosec G204 -- Arguments are constructed internally, not from external input
	cmd := exec.Command(name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s failed: %w: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
