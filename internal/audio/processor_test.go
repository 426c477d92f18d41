package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radio-t/ai-subtitles/internal/audio/mocks"
)

func TestFFmpegProcessor_Extract(t *testing.T) {
	mockRunner := &mocks.CommandRunnerMock{
		RunFunc: func(name string, args ...string) ([]byte, error) {
			return nil, nil
		},
	}
	p := &FFmpegProcessor{cmdRunner: mockRunner}

	output, err := p.Extract("/media/input.mp4", t.TempDir())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(output), "audio_"))
	assert.True(t, strings.HasSuffix(output, ".mp3"))

	calls := mockRunner.RunCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "ffmpeg", calls[0].Name)
	assert.Contains(t, calls[0].Args, "/media/input.mp4")
	assert.Contains(t, calls[0].Args, "-vn")
	assert.Contains(t, calls[0].Args, "16000")
	assert.Equal(t, output, calls[0].Args[len(calls[0].Args)-1])
}

func TestFFmpegProcessor_Extract_Error(t *testing.T) {
	mockRunner := &mocks.CommandRunnerMock{
		RunFunc: func(name string, args ...string) ([]byte, error) {
			return nil, fmt.Errorf("ffmpeg failed: no such file")
		},
	}
	p := &FFmpegProcessor{cmdRunner: mockRunner}

	_, err := p.Extract("/media/missing.mp4", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to extract audio")
}

func TestFFmpegProcessor_Duration(t *testing.T) {
	t.Run("parses trimmed ffprobe output", func(t *testing.T) {
		mockRunner := &mocks.CommandRunnerMock{
			RunFunc: func(name string, args ...string) ([]byte, error) {
				assert.Equal(t, "ffprobe", name)
				return []byte("123.45\n"), nil
			},
		}
		p := &FFmpegProcessor{cmdRunner: mockRunner}

		seconds, err := p.Duration("/media/audio.mp3")
		require.NoError(t, err)
		assert.InDelta(t, 123.45, seconds, 0.0001)
	})

	t.Run("garbage output rejected", func(t *testing.T) {
		mockRunner := &mocks.CommandRunnerMock{
			RunFunc: func(name string, args ...string) ([]byte, error) {
				return []byte("N/A"), nil
			},
		}
		p := &FFmpegProcessor{cmdRunner: mockRunner}

		_, err := p.Duration("/media/audio.mp3")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected ffprobe output")
	})
}

func TestFFmpegProcessor_Split(t *testing.T) {
	t.Run("short input stays a single zero-offset chunk", func(t *testing.T) {
		mockRunner := &mocks.CommandRunnerMock{
			RunFunc: func(name string, args ...string) ([]byte, error) {
				return []byte("300.0\n"), nil
			},
		}
		p := &FFmpegProcessor{cmdRunner: mockRunner}

		chunks, err := p.Split("/media/audio.mp3", t.TempDir(), 600)
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, "/media/audio.mp3", chunks[0].Path)
		assert.Zero(t, chunks[0].Offset)

		// only the ffprobe call, no ffmpeg split
		require.Len(t, mockRunner.RunCalls(), 1)
		assert.Equal(t, "ffprobe", mockRunner.RunCalls()[0].Name)
	})

	t.Run("long input split with sequential offsets", func(t *testing.T) {
		dir := t.TempDir()
		mockRunner := &mocks.CommandRunnerMock{
			RunFunc: func(name string, args ...string) ([]byte, error) {
				if name == "ffprobe" {
					return []byte("1500.0\n"), nil
				}
				// the output pattern is the last ffmpeg argument; fake the
				// files ffmpeg would have produced
				pattern := args[len(args)-1]
				for i := 0; i < 3; i++ {
					path := fmt.Sprintf(pattern, i)
					require.NoError(t, os.WriteFile(path, []byte("chunk"), 0o600))
				}
				return nil, nil
			},
		}
		p := &FFmpegProcessor{cmdRunner: mockRunner}

		chunks, err := p.Split("/media/audio.mp3", dir, 600)
		require.NoError(t, err)
		require.Len(t, chunks, 3)

		assert.InDelta(t, 0, chunks[0].Offset, 0.0001)
		assert.InDelta(t, 600, chunks[1].Offset, 0.0001)
		assert.InDelta(t, 1200, chunks[2].Offset, 0.0001)
		for i, c := range chunks {
			assert.Contains(t, c.Path, fmt.Sprintf("_%03d.mp3", i), "chunks come back sorted")
		}
	})

	t.Run("no chunks produced is an error", func(t *testing.T) {
		mockRunner := &mocks.CommandRunnerMock{
			RunFunc: func(name string, args ...string) ([]byte, error) {
				if name == "ffprobe" {
					return []byte("1500.0\n"), nil
				}
				return nil, nil // ffmpeg "succeeds" but writes nothing
			},
		}
		p := &FFmpegProcessor{cmdRunner: mockRunner}

		_, err := p.Split("/media/audio.mp3", t.TempDir(), 600)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "produced no chunks")
	})

	t.Run("non-positive chunk length falls back to the default", func(t *testing.T) {
		var probed bool
		mockRunner := &mocks.CommandRunnerMock{
			RunFunc: func(name string, args ...string) ([]byte, error) {
				probed = true
				return []byte("300.0\n"), nil
			},
		}
		p := &FFmpegProcessor{cmdRunner: mockRunner}

		chunks, err := p.Split("/media/audio.mp3", t.TempDir(), 0)
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.True(t, probed)
	})
}
