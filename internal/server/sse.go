package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-parser/internal/pipeline"
)

// SSE event names emitted by /parse/stream
const (
	eventProgress = "progress"
	eventComplete = "complete"
	eventError    = "error"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError sends an error event carrying the status the error would get as a plain response
func (s *SSEWriter) WriteError(err error) {
	s.WriteEvent(eventError, map[string]any{ //nolint:errcheck
		"error":  err.Error(),
		"status": HTTPStatus(err),
	})
}

// WriteComplete sends the final parse result
func (s *SSEWriter) WriteComplete(resp *ParseResponse) {
	s.WriteEvent(eventComplete, resp) //nolint:errcheck
}

// handleParseStream parses an upload and streams pipeline progress as SSE.
// Upload errors are answered before the stream opens; later failures arrive as an error event.
func (s *Server) handleParseStream(w http.ResponseWriter, r *http.Request) {
	doc, err := s.readUpload(w, r)
	if err != nil {
		s.failure(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	p := s.pipeline.WithProgress(func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent(eventProgress, event); err != nil {
			s.logger.Debug().Err(err).Msg("failed to write progress event")
		}
	})

	result, err := p.ParseDocument(r.Context(), doc)
	if err != nil {
		sse.WriteError(err)
		return
	}

	resp, err := s.storeResult(r, doc, result)
	if err != nil {
		s.logger.Error().Err(err).Str("file", doc.FileName).Msg("failed to store parse result")
		sse.WriteError(err)
		return
	}
	if includeSections(r) {
		resp.Sections = result.Sections
	}
	sse.WriteComplete(resp)
}
