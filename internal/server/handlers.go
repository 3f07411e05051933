package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/titlecard/pkg/buildinfo"
	"github.com/matzehuels/titlecard/pkg/errors"
	"github.com/matzehuels/titlecard/pkg/pipeline"
	"github.com/matzehuels/titlecard/pkg/render"
	"github.com/matzehuels/titlecard/pkg/style"
)

// =============================================================================
// Response Types
// =============================================================================

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type styleResponse struct {
	Key        string  `json:"key"`
	Name       string  `json:"name,omitempty"`
	Default    bool    `json:"default"`
	Mode       string  `json:"mode"`
	Font       string  `json:"font"`
	Background string  `json:"background"`
	Size       int     `json:"size"`
	Wrap       int     `json:"wrap"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Anchor     string  `json:"anchor"`
	Align      string  `json:"align"`
	Color      string  `json:"color,omitempty"`
	TopColor   string  `json:"top_color,omitempty"`
	Bottom     string  `json:"bottom_color,omitempty"`
	Shadow     bool    `json:"shadow"`
	Quote      bool    `json:"quote"`
	Uppercase  bool    `json:"uppercase"`
}

type matchRequest struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func newStyleResponse(d style.Descriptor, defaultKey string) styleResponse {
	resp := styleResponse{
		Key:        d.Key,
		Name:       d.Name,
		Default:    d.Key == defaultKey,
		Mode:       d.Mode.String(),
		Font:       d.Font,
		Background: d.Background,
		Size:       d.Size,
		Wrap:       d.Wrap,
		X:          d.Anchor.X,
		Y:          d.Anchor.Y,
		Anchor:     d.Anchor.Point.String(),
		Align:      d.Anchor.Align.String(),
		Shadow:     d.Shadow.Enabled,
		Quote:      d.Transform.Quote,
		Uppercase:  d.Transform.Uppercase,
	}
	switch d.Fill.Kind {
	case style.FillSolid:
		resp.Color = style.FormatColor(d.Fill.Color)
	case style.FillGradient:
		resp.TopColor = style.FormatColor(d.Fill.Top)
		resp.Bottom = style.FormatColor(d.Fill.Bottom)
	}
	return resp
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleStyles(w http.ResponseWriter, r *http.Request) {
	reg := s.runner.Registry
	descs := reg.Descriptors()
	resp := make([]styleResponse, 0, len(descs))
	for _, d := range descs {
		resp = append(resp, newStyleResponse(d, reg.DefaultKey()))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStyle(w http.ResponseWriter, r *http.Request) {
	reg := s.runner.Registry
	key := chi.URLParam(r, "key")
	d, ok := reg.Lookup(key)
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeResourceNotFound, "style %q not found", key))
		return
	}
	writeJSON(w, http.StatusOK, newStyleResponse(d, reg.DefaultKey()))
}

func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	refresh, _ := strconv.ParseBool(q.Get("refresh"))
	s.serveCard(w, r, pipeline.Options{
		Style:   chi.URLParam(r, "style"),
		Title:   q.Get("title"),
		Format:  q.Get("format"),
		Refresh: refresh,
	})
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	found, ok := s.matcher.Match(req.Text)
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "no card request found in text"))
		return
	}
	s.serveCard(w, r, pipeline.Options{
		Style:  found.Style,
		Title:  found.Title,
		Format: r.URL.Query().Get("format"),
	})
}

func (s *Server) serveCard(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	opts.Logger = s.logger.With("request_id", RequestIDFrom(r.Context()))
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	card := res.Card
	cacheStatus := "MISS"
	if res.CacheHit {
		cacheStatus = "HIT"
	}
	h := w.Header()
	h.Set("Content-Type", render.Format(card.Format).ContentType())
	h.Set("Content-Length", strconv.Itoa(len(card.Data)))
	h.Set("Cache-Control", "public, max-age=86400")
	h.Set("X-Alt-Text", card.AltText)
	h.Set("X-Style", card.Style)
	h.Set("X-Cache", cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(card.Data)
}

// =============================================================================
// Helpers
// =============================================================================

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidTitle, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeResourceNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err, "request_id", RequestIDFrom(r.Context()))
	}
	writeJSON(w, status, errorResponse{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
