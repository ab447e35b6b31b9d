package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"

	"resume-formatter/internal/domain"
	"resume-formatter/internal/logging"
)

// PageSeparator joins the text of consecutive pages.
const PageSeparator = "\n\n"

// Extraction is the text pulled from a PDF.
type Extraction struct {
	Text  string
	Pages int
}

// PDFTextExtractor extracts plain text with the pure-Go ledongthuc/pdf
// reader, so it needs no browser, cgo or system libraries.
type PDFTextExtractor struct {
	logger *logrus.Logger
}

func NewPDFTextExtractor(logger *logrus.Logger) *PDFTextExtractor {
	return &PDFTextExtractor{logger: logging.OrDefault(logger)}
}

// ExtractText returns the text of every page joined with PageSeparator; a
// page without extractable text contributes an empty string. A document the
// reader cannot open, including an encrypted one, fails with a content fault.
// Cancellation fails with an environment fault wrapping the context error.
func (e *PDFTextExtractor) ExtractText(ctx context.Context, data []byte) (ext *Extraction, err error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewEnvironmentFault("extract.pdf", err)
	}

	// The reader panics on some malformed object graphs.
	defer func() {
		if r := recover(); r != nil {
			ext = nil
			err = domain.NewContentFault("extract.pdf", fmt.Errorf("pdf reader panic: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, domain.NewContentFault("extract.pdf", err)
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, domain.NewEnvironmentFault("extract.pdf", err)
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.WithFields(logrus.Fields{
				logging.FieldPages: i,
				logging.FieldError: err.Error(),
			}).Debug("Page has no extractable text")
			text = ""
		}
		pages = append(pages, text)
	}

	e.logger.WithFields(logrus.Fields{
		logging.FieldPages: numPages,
		logging.FieldBytes: len(data),
	}).Debug("Extracted PDF text")

	return &Extraction{Text: strings.Join(pages, PageSeparator), Pages: numPages}, nil
}
