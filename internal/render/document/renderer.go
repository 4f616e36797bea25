package document

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"

	"github.com/noah-isme/iqac-report-api/internal/report"
)

// ContentType is the MIME type of rendered documents.
const ContentType = "application/pdf"

// Options tunes the PDF output.
type Options struct {
	// Compress deflates page streams. Tests disable it to inspect page text.
	Compress bool
	// RegularFont and BoldFont are TrueType files replacing the embedded DejaVu faces.
	// A regular face without a bold one is used for both.
	RegularFont string
	BoldFont    string
}

// Renderer lays out reports as paginated PDF tables.
type Renderer struct {
	opts   Options
	fonts  fontSet
	logger zerolog.Logger
}

// NewRenderer constructs the PDF renderer and loads its fonts.
func NewRenderer(opts Options, logger zerolog.Logger) (*Renderer, error) {
	fonts, err := loadFonts(opts.RegularFont, opts.BoldFont)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		opts:   opts,
		fonts:  fonts,
		logger: logger.With().Str("component", "document_renderer").Logger(),
	}, nil
}

// Format implements report.Renderer.
func (r *Renderer) Format() report.Format {
	return report.FormatPDF
}

// ContentType implements report.Renderer.
func (r *Renderer) ContentType() string {
	return ContentType
}

// Layout computes the page plan without drawing. Render uses the same plan.
func (r *Renderer) Layout(doc report.Document) Plan {
	return layout(measurer{pdf: r.newPDF()}, doc)
}

// Render draws the document. Any failure aborts the whole output; no partial bytes are returned.
func (r *Renderer) Render(ctx context.Context, doc report.Document) ([]byte, error) {
	if len(doc.Sections) == 0 {
		return nil, fmt.Errorf("%w: %s", report.ErrNotFound, doc.ActivityType)
	}

	pdf := r.newPDF()
	m := measurer{pdf: pdf}
	plan := layout(m, doc)

	d := &drawer{pdf: pdf, m: m, doc: doc, plan: plan}
	if err := d.draw(ctx); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		r.logger.Error().Err(err).Str("activity_type", string(doc.ActivityType)).Msg("failed to write pdf")
		return nil, fmt.Errorf("%w: %v", report.ErrRenderFailure, err)
	}

	r.logger.Debug().
		Str("activity_type", string(doc.ActivityType)).
		Int("pages", plan.TotalPages()).
		Int("bytes", buf.Len()).
		Msg("pdf rendered")
	return buf.Bytes(), nil
}

func (r *Renderer) newPDF() *gofpdf.Fpdf {
	pdf := gofpdf.New("L", "mm", "A4", "")
	r.fonts.register(pdf)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.SetCompression(r.opts.Compress)
	pdf.AliasNbPages("")
	return pdf
}
