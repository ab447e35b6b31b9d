// Package render lays normalized resume data out as a styled HTML page and
// prints it to PDF.
package render

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/base64"
	"html/template"
	"time"

	"github.com/sirupsen/logrus"

	"resume-formatter/internal/domain"
	"resume-formatter/internal/logging"
	"resume-formatter/internal/model"
)

//go:embed template.html
var pageTemplate string

//go:embed logo.svg
var logoSVG []byte

// HTMLToPDF prints an HTML document to PDF bytes.
type HTMLToPDF interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// Renderer turns ResumeData into a PDF. It holds no per-request state and is
// safe for concurrent use.
type Renderer struct {
	converter HTMLToPDF
	styles    *StyleSheet
	css       template.CSS
	logo      template.URL
	tpl       *template.Template
	logger    *logrus.Logger
}

// Option customizes a Renderer.
type Option func(*Renderer)

// WithStyleSheet replaces the embedded style table.
func WithStyleSheet(s *StyleSheet) Option {
	return func(r *Renderer) { r.styles = s }
}

// WithLogger sets the logger.
func WithLogger(l *logrus.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

func New(converter HTMLToPDF, opts ...Option) *Renderer {
	r := &Renderer{
		converter: converter,
		tpl:       template.Must(template.New("resume").Parse(pageTemplate)),
		logo:      template.URL("data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(logoSVG)),
	}
	for _, o := range opts {
		o(r)
	}
	if r.styles == nil {
		r.styles = DefaultStyleSheet()
	}
	r.logger = logging.OrDefault(r.logger)
	r.css = template.CSS(r.styles.CSS())
	return r
}

type pageData struct {
	Doc    *Document
	Glyphs Glyphs
	CSS    template.CSS
	Logo   template.URL
}

// HTML renders the intermediate page. The output depends only on data and
// the style table.
func (r *Renderer) HTML(data *model.ResumeData) (string, error) {
	doc, err := Layout(data, r.styles.Glyphs)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	err = r.tpl.Execute(&buf, pageData{Doc: doc, Glyphs: r.styles.Glyphs, CSS: r.css, Logo: r.logo})
	if err != nil {
		return "", domain.NewRenderError("render.html", "execute template", err)
	}
	return buf.String(), nil
}

// Render produces the PDF for data.
func (r *Renderer) Render(ctx context.Context, data *model.ResumeData) ([]byte, error) {
	html, err := r.HTML(data)
	if err != nil {
		return nil, err
	}
	if r.converter == nil {
		return nil, domain.NewRenderError("render.pdf", "no pdf converter configured", nil)
	}

	start := time.Now()
	pdf, err := r.converter.RenderHTMLToPDF(ctx, html)
	if err != nil {
		return nil, domain.NewRenderError("render.pdf", "print to pdf", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		return nil, domain.NewRenderError("render.pdf", "converter returned a non-pdf payload", nil)
	}

	r.logger.WithFields(logrus.Fields{
		logging.FieldBytes:    len(pdf),
		logging.FieldDuration: time.Since(start).Milliseconds(),
	}).Debug("Rendered resume PDF")
	return pdf, nil
}

// checkNormalized enforces the shape Normalize guarantees.
func checkNormalized(data *model.ResumeData) error {
	switch {
	case data == nil:
		return domain.NewRenderError("render.layout", "resume data is missing", nil)
	case data.Contact == nil:
		return domain.NewRenderError("render.layout", "contact is missing", nil)
	case data.Experience == nil:
		return domain.NewRenderError("render.layout", "experience is missing", nil)
	case data.Education == nil:
		return domain.NewRenderError("render.layout", "education is missing", nil)
	case data.Skills == nil:
		return domain.NewRenderError("render.layout", "skills is missing", nil)
	}
	return nil
}
