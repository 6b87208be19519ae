// Package db provides PostgreSQL storage for parsed resumes.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/resume-parser/internal/ingestion"
	"github.com/jonathan/resume-parser/internal/types"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// schemaStatements create the storage table. Each statement is idempotent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS parsed_resumes (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		file_name TEXT NOT NULL DEFAULT '',
		mime_type TEXT NOT NULL DEFAULT '',
		text_hash TEXT NOT NULL,
		raw_text TEXT NOT NULL,
		sections JSONB NOT NULL,
		record JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_parsed_resumes_created_at ON parsed_resumes (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_parsed_resumes_text_hash ON parsed_resumes (text_hash)`,
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the parsed_resumes table and its indexes if they do not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// SaveParsedResume stores a parse result and returns the stored row
func (db *DB) SaveParsedResume(ctx context.Context, input *ParsedResumeInput) (*ParsedResume, error) {
	sectionsJSON, recordJSON, err := encodeResume(input)
	if err != nil {
		return nil, err
	}

	stored := &ParsedResume{
		FileName: input.FileName,
		MimeType: input.MimeType,
		TextHash: ingestion.ComputeHash(input.RawText),
		RawText:  input.RawText,
		Sections: input.Sections,
		Record:   input.Record,
	}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO parsed_resumes (file_name, mime_type, text_hash, raw_text, sections, record)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		stored.FileName, stored.MimeType, stored.TextHash, stored.RawText, sectionsJSON, recordJSON,
	).Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save parsed resume: %w", err)
	}
	return stored, nil
}

// GetParsedResume retrieves a parse result by ID. Returns nil, nil when no row exists.
func (db *DB) GetParsedResume(ctx context.Context, id uuid.UUID) (*ParsedResume, error) {
	var (
		pr           ParsedResume
		sectionsJSON []byte
		recordJSON   []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, file_name, mime_type, text_hash, raw_text, sections, record, created_at
		 FROM parsed_resumes WHERE id = $1`,
		id,
	).Scan(&pr.ID, &pr.FileName, &pr.MimeType, &pr.TextHash, &pr.RawText, &sectionsJSON, &recordJSON, &pr.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get parsed resume: %w", err)
	}

	if err := decodeResume(&pr, sectionsJSON, recordJSON); err != nil {
		return nil, err
	}
	return &pr, nil
}

// ListParsedResumes retrieves stored records newest first. Sections and raw text are not loaded.
func (db *DB) ListParsedResumes(ctx context.Context, limit, offset int) ([]ParsedResume, error) {
	limit, offset = clampPage(limit, offset)

	rows, err := db.pool.Query(ctx,
		`SELECT id, file_name, mime_type, text_hash, record, created_at
		 FROM parsed_resumes ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list parsed resumes: %w", err)
	}
	defer rows.Close()

	resumes := []ParsedResume{}
	for rows.Next() {
		var (
			pr         ParsedResume
			recordJSON []byte
		)
		if err := rows.Scan(&pr.ID, &pr.FileName, &pr.MimeType, &pr.TextHash, &recordJSON, &pr.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan parsed resume: %w", err)
		}
		if err := decodeResume(&pr, nil, recordJSON); err != nil {
			return nil, err
		}
		resumes = append(resumes, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list parsed resumes: %w", err)
	}
	return resumes, nil
}

// DeleteParsedResume removes a stored record and reports whether it existed
func (db *DB) DeleteParsedResume(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := db.pool.Exec(ctx, `DELETE FROM parsed_resumes WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete parsed resume: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func encodeResume(input *ParsedResumeInput) (sectionsJSON, recordJSON []byte, err error) {
	if input == nil || input.Record == nil {
		return nil, nil, fmt.Errorf("parsed resume record is required")
	}

	sections := input.Sections
	if sections == nil {
		sections = types.NewSectionMap()
	}
	sectionsJSON, err = json.Marshal(sections)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal sections: %w", err)
	}
	recordJSON, err = json.Marshal(input.Record)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal record: %w", err)
	}
	return sectionsJSON, recordJSON, nil
}

func decodeResume(pr *ParsedResume, sectionsJSON, recordJSON []byte) error {
	record := types.NewParsedResumeRecord()
	if err := json.Unmarshal(recordJSON, record); err != nil {
		return fmt.Errorf("failed to unmarshal record: %w", err)
	}
	record.Normalize()
	pr.Record = record

	if len(sectionsJSON) > 0 {
		sections := types.NewSectionMap()
		if err := json.Unmarshal(sectionsJSON, sections); err != nil {
			return fmt.Errorf("failed to unmarshal sections: %w", err)
		}
		pr.Sections = sections
	}
	return nil
}
