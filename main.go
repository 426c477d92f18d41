package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/radio-t/ai-subtitles/internal/asr"
	"github.com/radio-t/ai-subtitles/internal/audio"
	"github.com/radio-t/ai-subtitles/internal/config"
	"github.com/radio-t/ai-subtitles/internal/export"
	"github.com/radio-t/ai-subtitles/internal/fetch"
	"github.com/radio-t/ai-subtitles/internal/segmenter"
	"github.com/radio-t/ai-subtitles/internal/webui"
)

func main() {
	input := flag.String("input", "", "local audio or video file to subtitle")
	pageURL := flag.String("url", "", "page or direct media URL to subtitle")
	output := flag.String("output", "", "output file path (default: input name with format extension)")
	format := flag.String("format", "srt", "output format: srt, vtt, txt or json")
	lang := flag.String("lang", "auto", "language hint for transcription")
	limitsFile := flag.String("limits", "", "TOML file with readability limit overrides")
	chunkSeconds := flag.Int("chunk", audio.DefaultChunkSeconds, "chunk length in seconds for long inputs")
	apiKey := flag.String("apikey", "", "OpenAI API key")
	showStats := flag.Bool("stats", false, "print per-cue statistics after generation")
	listenAddr := flag.String("serve", "", "serve the HTTP API on this address instead of running the pipeline")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if *listenAddr == "" {
		if *input == "" && *pageURL == "" {
			log.Fatal("Please provide a media file with -input or a URL with -url")
		}
		if *apiKey == "" {
			// try to get from environment
			*apiKey = os.Getenv("OPENAI_API_KEY")
			if *apiKey == "" {
				log.Fatal("Please provide an OpenAI API key with -apikey or OPENAI_API_KEY environment variable")
			}
		}
	}

	limits, err := config.LoadLimits(*limitsFile)
	if err != nil {
		log.Fatalf("Invalid limits file: %v", err)
	}

	cfg := config.Config{
		Input:        *input,
		URL:          *pageURL,
		Output:       *output,
		Format:       *format,
		Language:     *lang,
		LimitsFile:   *limitsFile,
		ChunkSeconds: *chunkSeconds,
		OpenAIAPIKey: *apiKey,
		ShowStats:    *showStats,
		ListenAddr:   *listenAddr,
		Limits:       limits,
	}

	// run the application
	if err := run(cfg); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run(cfg config.Config) error {
	if cfg.ListenAddr != "" {
		return webui.New(cfg.Limits).Run(cfg.ListenAddr)
	}

	format, err := export.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	tempDir, err := os.MkdirTemp("", "ai-subtitles")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	// 1. resolve the input media
	inputPath := cfg.Input
	if cfg.URL != "" {
		slog.Info("downloading media", "url", cfg.URL)
		fetcher := fetch.NewMediaFetcher(&http.Client{Timeout: downloadHTTPTimeout})
		inputPath, err = fetcher.Fetch(cfg.URL, tempDir)
		if err != nil {
			return fmt.Errorf("error fetching media: %w", err)
		}
	}

	// 2. extract a mono audio track and split long recordings
	processor := audio.NewFFmpegProcessor()
	slog.Info("extracting audio", "input", inputPath)
	audioPath, err := processor.Extract(inputPath, tempDir)
	if err != nil {
		return fmt.Errorf("error extracting audio: %w", err)
	}

	chunks, err := processor.Split(audioPath, tempDir, cfg.ChunkSeconds)
	if err != nil {
		return fmt.Errorf("error splitting audio: %w", err)
	}

	// 3. transcribe to word-level timestamps
	paths := make([]string, len(chunks))
	offsets := make([]float64, len(chunks))
	for i, chunk := range chunks {
		paths[i] = chunk.Path
		offsets[i] = chunk.Offset
	}

	service := asr.NewWhisperService(cfg.OpenAIAPIKey, nil)
	words, err := service.TranscribeChunks(context.Background(), paths, offsets, cfg.Language)
	if err != nil {
		return fmt.Errorf("error transcribing audio: %w", err)
	}
	slog.Info("transcription completed", "words", len(words))

	// 4. segment into display-ready cues
	segments := segmenter.SegmentWords(words, cfg.Limits)
	slog.Info("segmentation completed", "cues", len(segments))

	// 5. write the subtitle file
	outPath := cfg.Output
	if outPath == "" {
		outPath = deriveOutputPath(inputPath, format)
	}
	out, err := os.Create(outPath) // #nosec G304 -- path is derived from user-provided flags
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	if err := export.Render(out, format, segments); err != nil {
		return fmt.Errorf("error writing subtitles: %w", err)
	}
	slog.Info("subtitles written", "file", outPath, "cues", len(segments))

	if cfg.ShowStats {
		printStats(os.Stdout, segments)
	}
	return nil
}

// deriveOutputPath swaps the input extension for the output format one
func deriveOutputPath(input string, format export.Format) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "." + string(format)
}
