// Package asr provides word-level transcription through the OpenAI Whisper
// API. The service returns timestamped words ready for the segmentation
// pipeline; when the API gives only segment-level timing, each segment
// becomes a single pseudo-word that the segmenter expands downstream.
package asr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/radio-t/ai-subtitles/subtitle"
)

//go:generate moq -out mocks/http_client.go -pkg mocks -skip-ensure -fmt goimports . HTTPClient

// HTTPClient defines the interface for HTTP client operations
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// transcription api parameters
const (
	transcriptionURL   = "https://api.openai.com/v1/audio/transcriptions"
	transcriptionModel = "whisper-1"
	whisperHTTPTimeout = 5 * time.Minute
)

// WhisperService implements transcription via the OpenAI Whisper API
type WhisperService struct {
	apiKey     string
	httpClient HTTPClient
}

// NewWhisperService creates a new Whisper transcription service
func NewWhisperService(apiKey string, httpClient HTTPClient) *WhisperService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: whisperHTTPTimeout}
	}
	return &WhisperService{
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// verboseResponse is the verbose_json payload of the transcription API
type verboseResponse struct {
	Text  string `json:"text"`
	Words []struct {
		Word  string  `json:"word"`
		Start float64 `json:"start"`
		End   float64 `json:"end"`
	} `json:"words"`
	Segments []struct {
		Text  string  `json:"text"`
		Start float64 `json:"start"`
		End   float64 `json:"end"`
	} `json:"segments"`
}

// Transcribe uploads the audio file and returns its timestamped words in
// non-decreasing start order. Words with empty trimmed text are dropped.
func (s *WhisperService) Transcribe(ctx context.Context, path, lang string) ([]subtitle.Word, error) {
	body, contentType, err := s.buildRequestBody(path, lang)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, transcriptionURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("transcription request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var result verboseResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode transcription response: %w", err)
	}

	return s.extractWords(result), nil
}

// TranscribeChunks transcribes the chunk files one at a time, shifting each
// chunk's words by its start offset before concatenating them.
func (s *WhisperService) TranscribeChunks(ctx context.Context, paths []string, offsets []float64, lang string) ([]subtitle.Word, error) {
	if len(paths) != len(offsets) {
		return nil, fmt.Errorf("got %d chunks but %d offsets", len(paths), len(offsets))
	}

	var combined []subtitle.Word
	for i, path := range paths {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		slog.Info("transcribing chunk", "chunk", fmt.Sprintf("%d/%d", i+1, len(paths)), "file", filepath.Base(path))

		words, err := s.Transcribe(ctx, path, lang)
		if err != nil {
			return nil, fmt.Errorf("chunk %d/%d failed: %w", i+1, len(paths), err)
		}
		for j := range words {
			words[j].Start += offsets[i]
			words[j].End += offsets[i]
		}
		combined = append(combined, words...)
	}
	return combined, nil
}

// buildRequestBody assembles the multipart upload for the transcription API
func (s *WhisperService) buildRequestBody(path, lang string) (*bytes.Buffer, string, error) {
	file, err := os.Open(path) // #nosec G304 -- path comes from the local pipeline, not remote input
	if err != nil {
		return nil, "", fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("failed to copy audio data: %w", err)
	}

	fields := map[string]string{
		"model":                     transcriptionModel,
		"response_format":           "verbose_json",
		"timestamp_granularities[]": "word",
	}
	if lang != "" && lang != "auto" {
		fields["language"] = lang
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize request body: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}

// extractWords converts the API payload to domain words, falling back to
// one pseudo-word per API segment when word granularity is missing
func (s *WhisperService) extractWords(result verboseResponse) []subtitle.Word {
	if len(result.Words) > 0 {
		words := make([]subtitle.Word, 0, len(result.Words))
		for _, w := range result.Words {
			text := strings.TrimSpace(w.Word)
			if text == "" {
				continue
			}
			words = append(words, subtitle.Word{Text: text, Start: w.Start, End: w.End})
		}
		return words
	}

	words := make([]subtitle.Word, 0, len(result.Segments))
	for _, seg := range result.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		words = append(words, subtitle.Word{Text: text, Start: seg.Start, End: seg.End})
	}
	return words
}
