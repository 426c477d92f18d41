// Package fetch resolves a web page to its embedded audio or video source
// and downloads it to a local file for transcription.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
)

// MediaFetcher implements media resolution using HTTP
type MediaFetcher struct {
	client *http.Client
}

// NewMediaFetcher creates a new HTTP media fetcher
func NewMediaFetcher(client *http.Client) *MediaFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &MediaFetcher{client: client}
}

// Fetch downloads the media behind the given URL. A direct audio/video URL
// is saved as is; an HTML page is parsed and its first audio/video source
// resolved and downloaded. Returns the local file path.
func (f *MediaFetcher) Fetch(pageURL, outputDir string) (string, error) {
	// #nosec G107 -- URL is provided by command-line flag
	resp, err := f.client.Get(pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch %s: status code %d", pageURL, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "audio/") || strings.HasPrefix(contentType, "video/") {
		return f.save(resp.Body, pageURL, outputDir)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	src := f.extractMediaSource(doc)
	if src == "" {
		return "", fmt.Errorf("no audio or video source found at %s", pageURL)
	}

	mediaURL, err := f.resolveURL(resp.Request.URL, src)
	if err != nil {
		return "", err
	}

	media, err := f.client.Get(mediaURL)
	if err != nil {
		return "", fmt.Errorf("failed to download media: %w", err)
	}
	defer media.Body.Close()

	if media.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download %s: status code %d", mediaURL, media.StatusCode)
	}

	return f.save(media.Body, mediaURL, outputDir)
}

// extractMediaSource finds the first usable media src in the document
func (f *MediaFetcher) extractMediaSource(doc *goquery.Document) string {
	var src string
	doc.Find("audio[src], video[src], audio source[src], video source[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if v, ok := s.Attr("src"); ok && strings.TrimSpace(v) != "" {
			src = strings.TrimSpace(v)
			return false
		}
		return true
	})
	return src
}

// resolveURL makes a possibly relative media src absolute against the page URL
func (f *MediaFetcher) resolveURL(base *url.URL, src string) (string, error) {
	ref, err := url.Parse(src)
	if err != nil {
		return "", fmt.Errorf("invalid media source %q: %w", src, err)
	}
	if base == nil {
		return ref.String(), nil
	}
	return base.ResolveReference(ref).String(), nil
}

// save streams the media body into outputDir, naming the file after the URL
// path when possible.
func (f *MediaFetcher) save(body io.Reader, mediaURL, outputDir string) (string, error) {
	name := fmt.Sprintf("media_%s", uuid.NewString())
	if u, err := url.Parse(mediaURL); err == nil {
		if base := path.Base(u.Path); base != "" && base != "." && base != "/" {
			name = base
		}
	}

	outPath := filepath.Join(outputDir, name)
	out, err := os.Create(outPath) // #nosec G304 -- path is built from the configured output dir
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, body); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}
	return outPath, nil
}
