package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"fairapi/internal/assess"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

type assessRequest struct {
	Repository string `json:"repository"`
	Branch     string `json:"branch"`
}

type checkRequest struct {
	URL    string `json:"url"`
	Branch string `json:"branch"`
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeBody decodes a single JSON object from r into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// writeAssessError maps err to its status and client-safe message. Internal
// causes are logged and replaced by the generic message.
func (s *Server) writeAssessError(w http.ResponseWriter, r *http.Request, reference string, err error) {
	c := assess.Classify(err)
	attrs := []any{"request_id", requestIDFrom(r), "reference", reference, "kind", c.Kind}
	switch c.Kind {
	case assess.KindInternal:
		s.logger.Error("assessment failed", append(attrs, "error", err)...)
	case assess.KindUnavailable:
		s.logger.Warn("assessment unavailable", append(attrs, "error", err)...)
	case assess.KindCanceled:
		s.logger.Info("assessment canceled", attrs...)
	default:
		s.logger.Info("assessment rejected", append(attrs, "reason", c.Message)...)
	}
	writeError(w, c.StatusCode, c.Message)
}

// --- HTTP handlers ---

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the FAIR software assessment API",
		"docs":    "/docs",
		"openapi": "/openapi.json",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.build)
}

func (s *Server) handleCriteria(w http.ResponseWriter, r *http.Request) {
	criteria := s.criteria
	if criteria == nil {
		criteria = []Criterion{}
	}
	writeJSON(w, http.StatusOK, criteria)
}

func handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openAPIDocument)
}

// Assessments

func (s *Server) handleAssessQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.assess(w, r, q.Get("repository"), q.Get("branch"))
}

func (s *Server) handleAssessBody(w http.ResponseWriter, r *http.Request) {
	var body assessRequest
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	s.assess(w, r, body.Repository, body.Branch)
}

func (s *Server) assess(w http.ResponseWriter, r *http.Request, reference, branch string) {
	res, err := s.assessor.Assess(r.Context(), reference, branch)
	if err != nil {
		s.writeAssessError(w, r, reference, err)
		return
	}
	writeJSON(w, http.StatusOK, assess.NewResponse(res))
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var body checkRequest
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	res, err := s.assessor.Assess(r.Context(), body.URL, body.Branch)
	if err != nil {
		s.writeAssessError(w, r, body.URL, err)
		return
	}
	writeJSON(w, http.StatusOK, assess.NewCheckResponse(res, body.URL))
}
