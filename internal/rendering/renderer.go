package rendering

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-parser/internal/types"
)

// Renderer generates documents from parsed resume records
type Renderer struct {
	printer PDFPrinter
	logger  zerolog.Logger
}

// Option configures a Renderer
type Option func(*Renderer)

// WithPDFPrinter replaces the default headless Chrome printer
func WithPDFPrinter(p PDFPrinter) Option {
	return func(r *Renderer) {
		r.printer = p
	}
}

// WithLogger sets the logger used for render diagnostics
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// NewRenderer creates a Renderer. Without options it prints PDFs through headless Chrome and
// does not log.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		printer: NewChromePrinter("", DefaultPrintTimeout),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GenerateDocument renders record through tmpl into the requested format.
// DOCX output uses a fixed layout; the template applies to HTML and PDF.
// Every failure is returned as a *RenderError carrying the attempted format.
func (r *Renderer) GenerateDocument(ctx context.Context, record *types.ParsedResumeRecord, tmpl types.Template, format types.Format) ([]byte, error) {
	start := time.Now()

	var (
		out []byte
		err error
	)
	switch format {
	case types.FormatHTML:
		out, err = r.renderHTML(record, tmpl)
	case types.FormatPDF:
		out, err = r.renderPDF(ctx, record, tmpl)
	case types.FormatDOCX:
		out, err = RenderDOCX(BuildView(record))
		if err != nil {
			err = &RenderError{Format: format, Message: "failed to write DOCX package", Cause: err}
		}
	default:
		err = &RenderError{Format: format, Message: "unsupported format"}
	}
	if err == nil && len(out) == 0 {
		err = &RenderError{Format: format, Message: "renderer produced an empty document"}
	}
	if err != nil {
		r.logger.Warn().Err(err).Str("format", string(format)).Msg("document generation failed")
		return nil, err
	}

	r.logger.Debug().
		Str("format", string(format)).
		Int("bytes", len(out)).
		Bool("custom_template", !tmpl.IsDefault()).
		Dur("elapsed", time.Since(start)).
		Msg("document generated")
	return out, nil
}

func (r *Renderer) renderHTML(record *types.ParsedResumeRecord, tmpl types.Template) ([]byte, error) {
	out, err := RenderHTML(record, tmpl)
	if err != nil {
		return nil, &RenderError{Format: types.FormatHTML, Message: "failed to render HTML", Cause: err}
	}
	return out, nil
}

func (r *Renderer) renderPDF(ctx context.Context, record *types.ParsedResumeRecord, tmpl types.Template) ([]byte, error) {
	html, err := RenderHTML(record, tmpl)
	if err != nil {
		return nil, &RenderError{Format: types.FormatPDF, Message: "failed to render HTML", Cause: err}
	}
	if r.printer == nil {
		return nil, &RenderError{Format: types.FormatPDF, Message: "no PDF printer configured"}
	}
	out, err := r.printer.PrintPDF(ctx, html)
	if err != nil {
		return nil, &RenderError{Format: types.FormatPDF, Message: "failed to print PDF", Cause: err}
	}
	return out, nil
}
