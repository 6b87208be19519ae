package server

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-parser/internal/db"
	"github.com/jonathan/resume-parser/internal/export"
	"github.com/jonathan/resume-parser/internal/types"
)

// ResumeSummary is a list entry for /resumes
type ResumeSummary struct {
	ID          string `json:"id"`
	FileName    string `json:"file_name"`
	MimeType    string `json:"mime_type"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Experiences int    `json:"experience_count"`
	Education   int    `json:"education_count"`
	CreatedAt   string `json:"created_at"`
}

// ListResumesResponse represents the response for GET /resumes
type ListResumesResponse struct {
	Resumes []ResumeSummary `json:"resumes"`
	Count   int             `json:"count"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

// handleListResumes lists stored parse results, newest first
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.failure(w, &ErrStoreUnavailable{})
		return
	}

	limit, err := queryInt(r, "limit", db.DefaultListLimit)
	if err != nil {
		s.failure(w, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		s.failure(w, err)
		return
	}

	resumes, err := s.store.ListParsedResumes(r.Context(), limit, offset)
	if err != nil {
		s.failure(w, err)
		return
	}

	resp := ListResumesResponse{Resumes: make([]ResumeSummary, 0, len(resumes)), Limit: limit, Offset: offset}
	for _, pr := range resumes {
		summary := ResumeSummary{
			ID:        pr.ID.String(),
			FileName:  pr.FileName,
			MimeType:  pr.MimeType,
			CreatedAt: pr.CreatedAt.Format(time.RFC3339),
		}
		if pr.Record != nil {
			summary.Name = pr.Record.Name
			summary.Email = pr.Record.Email
			summary.Experiences = len(pr.Record.Experiences)
			summary.Education = len(pr.Record.Education)
		}
		resp.Resumes = append(resp.Resumes, summary)
	}
	resp.Count = len(resp.Resumes)
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleGetResume returns one stored parse result
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.failure(w, &ErrStoreUnavailable{})
		return
	}

	id, err := pathID(r)
	if err != nil {
		s.failure(w, err)
		return
	}

	pr, err := s.store.GetParsedResume(r.Context(), id)
	if err != nil {
		s.failure(w, err)
		return
	}
	if pr == nil {
		s.failure(w, &ErrNotFound{Resource: "resume", ID: id.String()})
		return
	}
	s.jsonResponse(w, http.StatusOK, pr)
}

// handleDeleteResume removes one stored parse result
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.failure(w, &ErrStoreUnavailable{})
		return
	}

	id, err := pathID(r)
	if err != nil {
		s.failure(w, err)
		return
	}

	found, err := s.store.DeleteParsedResume(r.Context(), id)
	if err != nil {
		s.failure(w, err)
		return
	}
	if !found {
		s.failure(w, &ErrNotFound{Resource: "resume", ID: id.String()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExportResumes writes stored parse results as an XLSX workbook
func (s *Server) handleExportResumes(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.failure(w, &ErrStoreUnavailable{})
		return
	}

	resumes, err := s.store.ListParsedResumes(r.Context(), db.MaxListLimit, 0)
	if err != nil {
		s.failure(w, err)
		return
	}

	rows := make([]export.Row, 0, len(resumes))
	for _, pr := range resumes {
		rows = append(rows, export.Row{FileName: pr.FileName, Record: pr.Record})
	}

	data, err := export.WriteXLSX(rows)
	if err != nil {
		s.failure(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="resumes.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Warn().Err(err).Msg("failed to write export")
	}
}

func pathID(r *http.Request) (uuid.UUID, error) {
	raw := r.PathValue("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "must be a UUID"}
	}
	return id, nil
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &ErrValidation{Field: key, Message: "must be a non-negative integer"}
	}
	return n, nil
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// documentFileName derives a download name such as "Jane_Doe_resume.pdf"
func documentFileName(record *types.ParsedResumeRecord, format types.Format) string {
	base := "resume"
	if record != nil && strings.TrimSpace(record.Name) != "" {
		name := strings.Trim(unsafeFileChars.ReplaceAllString(strings.TrimSpace(record.Name), "_"), "_")
		if name != "" {
			base = name + "_resume"
		}
	}
	return fmt.Sprintf("%s.%s", base, format.Extension())
}
