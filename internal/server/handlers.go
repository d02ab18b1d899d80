package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/wbrown/glyphcheck/imageutil"
)

// uploadField is the multipart field carrying the drawing.
const uploadField = "image"

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Templates int    `json:"templates"`
}

type skippedTemplate struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

type templatesResponse struct {
	Count      int               `json:"count"`
	Resolution int               `json:"resolution"`
	Characters []string          `json:"characters"`
	Skipped    []skippedTemplate `json:"skipped"`
}

// handleHealth reports 503 when no templates are loaded, since every
// analysis would fail.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	n := s.lib.Len()
	if n == 0 {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "no templates", Templates: 0})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Templates: n})
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	entries := s.lib.Entries()
	resp := templatesResponse{
		Count:      len(entries),
		Resolution: s.lib.Resolution(),
		Characters: make([]string, 0, len(entries)),
		Skipped:    []skippedTemplate{},
	}
	for _, t := range entries {
		resp.Characters = append(resp.Characters, t.ID.String())
	}
	for _, d := range s.lib.Skipped() {
		resp.Skipped = append(resp.Skipped, skippedTemplate{Path: d.Path, Error: d.Err.Error()})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	raw, err := s.readDrawing(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge, "image exceeds upload limit")
			return
		}
		if errors.Is(err, imageutil.ErrTooManyPixels) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		s.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	verdict := s.engine.Analyze(raw, s.lib)
	s.logger.Debug("analyzed drawing",
		"request_id", RequestIDFromContext(r.Context()),
		"character", verdict.ID,
		"score", verdict.Score,
		"pass", verdict.Pass,
	)
	writeJSON(w, http.StatusOK, verdict)
}

// readDrawing accepts either a multipart form with an "image" file or a
// raw image body. The body is read in full first so an oversized upload
// always surfaces as *http.MaxBytesError. Images declaring more than
// maxPixels pixels are refused from their header alone.
func (s *Server) readDrawing(r *http.Request) (*imageutil.GrayImage, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	mediaType, params, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return imageutil.DecodeGrayLimited(body, s.maxPixels)
	}

	mr := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return nil, errors.New("missing multipart field \"image\"")
		}
		if err != nil {
			return nil, fmt.Errorf("read multipart body: %w", err)
		}
		if part.FormName() == uploadField {
			data, err := io.ReadAll(part)
			part.Close()
			if err != nil {
				return nil, fmt.Errorf("read multipart body: %w", err)
			}
			return imageutil.DecodeGrayLimited(data, s.maxPixels)
		}
		part.Close()
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	s.logger.Warn("request failed",
		"request_id", RequestIDFromContext(r.Context()),
		"status", status,
		"error", msg,
	)
	writeJSON(w, status, errorResponse{Error: msg, RequestID: RequestIDFromContext(r.Context())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
