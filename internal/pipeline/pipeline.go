// Package pipeline orchestrates text extraction, parsing and validation of resume documents.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-parser/internal/ingestion"
	"github.com/jonathan/resume-parser/internal/parsing"
	"github.com/jonathan/resume-parser/internal/schemas"
	"github.com/jonathan/resume-parser/internal/types"
)

// Pipeline step names reported in progress events
const (
	StepExtract  = "extract"
	StepParse    = "parse"
	StepValidate = "validate"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	FileName string `json:"file_name,omitempty"`
	Message  string `json:"message"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// ExtractFunc turns document bytes into plain text
type ExtractFunc func(ctx context.Context, data []byte, mimeType string) (string, error)

// Options configures a Pipeline
type Options struct {
	Logger         zerolog.Logger
	Extract        ExtractFunc
	OnProgress     ProgressCallback
	SkipValidation bool
}

// Pipeline runs documents through extract, parse and validate
type Pipeline struct {
	extract    ExtractFunc
	parser     *parsing.Parser
	logger     zerolog.Logger
	onProgress ProgressCallback
	validate   bool
}

// Result is the outcome of parsing one document
type Result struct {
	Metadata *ingestion.Metadata       `json:"metadata"`
	Text     string                    `json:"text"`
	Sections *types.SectionMap         `json:"sections"`
	Record   *types.ParsedResumeRecord `json:"record"`
}

// New creates a Pipeline. A nil Extract uses ingestion.ExtractText.
func New(opts Options) *Pipeline {
	extract := opts.Extract
	if extract == nil {
		extract = ingestion.ExtractText
	}
	return &Pipeline{
		extract:    extract,
		parser:     parsing.NewParser(),
		logger:     opts.Logger,
		onProgress: opts.OnProgress,
		validate:   !opts.SkipValidation,
	}
}

// WithProgress returns a copy of the pipeline that reports to onProgress instead
func (p *Pipeline) WithProgress(onProgress ProgressCallback) *Pipeline {
	clone := *p
	clone.onProgress = onProgress
	return &clone
}

func (p *Pipeline) emit(step, fileName, message string) {
	if p.onProgress != nil {
		p.onProgress(ProgressEvent{Step: step, FileName: fileName, Message: message})
	}
}

// ParseDocument extracts text from doc and parses it. Extraction failures abort and are returned
// wrapped, so callers can still match *ingestion.UnsupportedFileTypeError and
// *ingestion.ExtractionError with errors.As.
func (p *Pipeline) ParseDocument(ctx context.Context, doc types.RawDocument) (*Result, error) {
	start := time.Now()
	mimeType := doc.MimeType
	if ingestion.IsGenericMimeType(mimeType) {
		mimeType = ingestion.DetectMimeType(doc.Data)
	}

	p.emit(StepExtract, doc.FileName, fmt.Sprintf("Extracting text (%s, %d bytes)", ingestion.NormalizeMimeType(mimeType), len(doc.Data)))
	text, err := p.extract(ctx, doc.Data, mimeType)
	if err != nil {
		p.logger.Warn().Err(err).Str("file", doc.FileName).Str("mime_type", mimeType).Msg("text extraction failed")
		return nil, fmt.Errorf("failed to extract text from %s: %w", displayName(doc.FileName), err)
	}

	result, err := p.parse(doc.FileName, text)
	if err != nil {
		return nil, err
	}
	result.Metadata = ingestion.NewMetadata(doc.FileName, mimeType, text)

	p.logger.Info().
		Str("file", doc.FileName).
		Int("sections", result.Sections.Len()).
		Int("experiences", len(result.Record.Experiences)).
		Int("education", len(result.Record.Education)).
		Bool("empty", result.Record.IsEmpty()).
		Dur("elapsed", time.Since(start)).
		Msg("resume parsed")
	return result, nil
}

// ParseText parses already-extracted plain text
func (p *Pipeline) ParseText(text string) (*Result, error) {
	text = ingestion.CleanText(text)
	result, err := p.parse("", text)
	if err != nil {
		return nil, err
	}
	result.Metadata = ingestion.NewMetadata("", "text/plain", text)
	return result, nil
}

func (p *Pipeline) parse(fileName, text string) (*Result, error) {
	p.emit(StepParse, fileName, fmt.Sprintf("Parsing %d characters", len(text)))
	parsed := p.parser.Parse(text)

	if p.validate {
		p.emit(StepValidate, fileName, "Validating parsed record")
		if err := schemas.ValidateRecord(parsed.Record); err != nil {
			p.logger.Error().Err(err).Str("file", fileName).Msg("parsed record failed schema validation")
			return nil, fmt.Errorf("parsed record failed schema validation: %w", err)
		}
	}

	return &Result{
		Text:     text,
		Sections: parsed.Sections,
		Record:   parsed.Record,
	}, nil
}

// ParseFile reads a document from disk, detects its type from content and parses it
func (p *Pipeline) ParseFile(ctx context.Context, path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	mimeType := ingestion.DetectMimeType(data)
	if ingestion.IsGenericMimeType(mimeType) {
		if byExt := MimeTypeForExtension(path); byExt != "" {
			mimeType = byExt
		}
	}

	return p.ParseDocument(ctx, types.RawDocument{
		FileName: filepath.Base(path),
		MimeType: mimeType,
		Data:     data,
	})
}

// MimeTypeForExtension maps supported document extensions to MIME types
func MimeTypeForExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return types.MimeTypePDF
	case ".docx":
		return types.MimeTypeDOCX
	default:
		return ""
	}
}

func displayName(fileName string) string {
	if fileName == "" {
		return "document"
	}
	return fileName
}
