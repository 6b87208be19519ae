package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-parser/internal/db"
	"github.com/jonathan/resume-parser/internal/ingestion"
	"github.com/jonathan/resume-parser/internal/pipeline"
	"github.com/jonathan/resume-parser/internal/schemas"
	"github.com/jonathan/resume-parser/internal/types"
)

// ParseResponse represents the response for /parse
type ParseResponse struct {
	ID       string                    `json:"id,omitempty"`
	Metadata *ingestion.Metadata       `json:"metadata"`
	Record   *types.ParsedResumeRecord `json:"record"`
	Sections *types.SectionMap         `json:"sections,omitempty"`
}

// ParseTextRequest represents the request body for /parse/text
type ParseTextRequest struct {
	Text string `json:"text"`
}

// ParseTextResponse represents the response for /parse/text
type ParseTextResponse struct {
	Record   *types.ParsedResumeRecord `json:"record"`
	Sections *types.SectionMap         `json:"sections"`
}

// RenderRequest represents the request body for /render
type RenderRequest struct {
	Record   *types.ParsedResumeRecord `json:"record" validate:"required"`
	Template types.Template            `json:"template"`
	Format   string                    `json:"format" validate:"required,oneof=pdf docx html PDF DOCX HTML"`
}

// readUpload reads the multipart "file" field of a size-limited request
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (types.RawDocument, error) {
	if r.ContentLength > s.maxUploadBytes {
		return types.RawDocument{}, &http.MaxBytesError{Limit: s.maxUploadBytes}
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return types.RawDocument{}, err
		}
		return types.RawDocument{}, &ErrValidation{Field: "file", Message: "expected a multipart/form-data upload"}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return types.RawDocument{}, &ErrValidation{Field: "file", Message: "file is required"}
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	data, err := io.ReadAll(file)
	if err != nil {
		return types.RawDocument{}, fmt.Errorf("failed to read upload: %w", err)
	}

	return types.RawDocument{
		FileName: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Data:     data,
	}, nil
}

// handleParse extracts and parses an uploaded document
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	doc, err := s.readUpload(w, r)
	if err != nil {
		s.failure(w, err)
		return
	}

	result, err := s.pipeline.ParseDocument(r.Context(), doc)
	if err != nil {
		s.failure(w, err)
		return
	}

	resp, err := s.storeResult(r, doc, result)
	if err != nil {
		s.failure(w, err)
		return
	}
	if includeSections(r) {
		resp.Sections = result.Sections
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// storeResult saves result when storage is configured and builds the response
func (s *Server) storeResult(r *http.Request, doc types.RawDocument, result *pipeline.Result) (*ParseResponse, error) {
	resp := &ParseResponse{Metadata: result.Metadata, Record: result.Record}
	if s.store == nil {
		return resp, nil
	}

	stored, err := s.store.SaveParsedResume(r.Context(), &db.ParsedResumeInput{
		FileName: doc.FileName,
		MimeType: result.Metadata.MimeType,
		RawText:  result.Text,
		Sections: result.Sections,
		Record:   result.Record,
	})
	if err != nil {
		return nil, err
	}
	resp.ID = stored.ID.String()
	return resp, nil
}

func includeSections(r *http.Request) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get("sections"))
	return err == nil && v
}

// handleParseText parses plain text supplied as JSON
func (s *Server) handleParseText(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	var req ParseTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.decodeFailure(w, err)
		return
	}

	result, err := s.pipeline.ParseText(req.Text)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ParseTextResponse{Record: result.Record, Sections: result.Sections})
}

// handleRender generates a document from a record and optional template
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	var req RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.decodeFailure(w, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.failure(w, requestValidationError(err))
		return
	}

	req.Record.Normalize()
	if err := schemas.ValidateRecord(req.Record); err != nil {
		s.failure(w, err)
		return
	}

	format, err := types.ParseFormat(req.Format)
	if err != nil {
		s.failure(w, &ErrValidation{Field: "format", Message: err.Error()})
		return
	}

	out, err := s.renderer.GenerateDocument(r.Context(), req.Record, req.Template, format)
	if err != nil {
		s.failure(w, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, documentFileName(req.Record, format)))
	w.Header().Set("Content-Length", strconv.Itoa(len(out)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out); err != nil {
		s.logger.Warn().Err(err).Msg("failed to write rendered document")
	}
}

func (s *Server) decodeFailure(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		s.failure(w, err)
		return
	}
	s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
}

// requestValidationError converts validator output into an ErrValidation for the first failing field
func requestValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := map[string]string{"Record": "record", "Format": "format"}[fe.Field()]
		if field == "" {
			field = fe.Field()
		}
		return &ErrValidation{Field: field, Message: fmt.Sprintf("failed '%s' check", fe.Tag())}
	}
	return &ErrValidation{Field: "(request)", Message: err.Error()}
}
