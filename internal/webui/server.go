// Package webui exposes the segmentation engine over HTTP: a JSON API for
// segmenting and exporting word lists plus a minimal index page.
package webui

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/radio-t/ai-subtitles/internal/export"
	"github.com/radio-t/ai-subtitles/internal/segmenter"
	"github.com/radio-t/ai-subtitles/subtitle"
)

// Server wraps an echo instance with the segmentation endpoints
type Server struct {
	limits subtitle.Limits
	echo   *echo.Echo
}

// New creates a server using the given default readability limits.
// Requests may override the limits per call.
func New(limits subtitle.Limits) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{limits: limits, echo: e}
	e.GET("/", s.index)
	e.GET("/ping", s.ping)
	e.POST("/api/segment", s.segment)
	e.POST("/api/export", s.export)
	return s
}

// Run starts the server on the given address and blocks.
func (s *Server) Run(addr string) error {
	slog.Info("starting http server", "addr", addr)
	return s.echo.Start(addr)
}

// Handler returns the underlying http handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

type segmentRequest struct {
	Words  []subtitle.Word  `json:"words"`
	Limits *subtitle.Limits `json:"limits,omitempty"`
}

type segmentResponse struct {
	Segments []subtitle.Segment `json:"segments"`
}

type exportRequest struct {
	Words  []subtitle.Word  `json:"words"`
	Format string           `json:"format"`
	Limits *subtitle.Limits `json:"limits,omitempty"`
}

func (s *Server) ping(c echo.Context) error {
	return c.String(http.StatusOK, "pong")
}

func (s *Server) segment(c echo.Context) error {
	var req segmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	segments := segmenter.SegmentWords(req.Words, s.requestLimits(req.Limits))
	if segments == nil {
		segments = []subtitle.Segment{}
	}
	return c.JSON(http.StatusOK, segmentResponse{Segments: segments})
}

func (s *Server) export(c echo.Context) error {
	var req exportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	format, err := export.ParseFormat(req.Format)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	segments := segmenter.SegmentWords(req.Words, s.requestLimits(req.Limits))
	var buf bytes.Buffer
	if err := export.Render(&buf, format, segments); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}

func (s *Server) requestLimits(override *subtitle.Limits) subtitle.Limits {
	if override != nil {
		return *override
	}
	return s.limits
}

func (s *Server) index(c echo.Context) error {
	return c.HTML(http.StatusOK, indexHTML)
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>ai-subtitles</title>
</head>
<body>
<h1>ai-subtitles</h1>
<p>Readability segmentation for word-level transcripts.</p>
<ul>
<li><code>POST /api/segment</code> — words JSON in, display cues out</li>
<li><code>POST /api/export</code> — words JSON in, rendered srt/vtt/txt/json out</li>
<li><code>GET /ping</code> — health check</li>
</ul>
</body>
</html>
`
