package usecase

import (
	"context"
	"mime"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"resume-formatter/internal/domain"
	"resume-formatter/internal/logging"
	"resume-formatter/internal/model"
	ai "resume-formatter/pkg/ai"
)

const pdfMediaType = "application/pdf"

// checkPDF accepts an upload declared as application/pdf or whose bytes sniff
// as a PDF.
func checkPDF(up Upload) error {
	if len(up.Data) == 0 {
		return domain.NewInvalidFormatError("parse.check", "empty upload")
	}
	if mt, _, err := mime.ParseMediaType(up.ContentType); err == nil && mt == pdfMediaType {
		return nil
	}
	if http.DetectContentType(up.Data) == pdfMediaType {
		return nil
	}
	detail := up.ContentType
	if detail == "" {
		detail = "unknown content type"
	}
	return domain.NewInvalidFormatError("parse.check", detail)
}

// extractLocal runs the text extractor and applies the size threshold to the
// trimmed text.
func (p *Processor) extractLocal(ctx context.Context, log *logrus.Entry, data []byte) (string, error) {
	if p.extractor == nil {
		return "", domain.NewEnvironmentFault("parse.extract", errNoExtractor)
	}
	ext, err := p.extractor.ExtractText(ctx, data)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(ext.Text)
	log.WithFields(logrus.Fields{
		logging.FieldPages: ext.Pages,
		logging.FieldBytes: len(text),
	}).Debug("Local extraction finished")

	if len(text) < p.cfg.MinBytes {
		return "", domain.NewInsufficientContentError("parse.extract", len(text))
	}
	return text, nil
}

// checkNative validates a document headed for the oracle unchanged.
func (p *Processor) checkNative(data []byte) error {
	if p.oracle == nil || !p.oracle.SupportsDocuments() {
		return domain.NewEnvironmentFault("parse.native", errNoDocumentOracle)
	}
	if len(data) < p.cfg.MinBytes {
		return domain.NewInsufficientContentError("parse.native", len(data))
	}
	return nil
}

// structure calls the oracle and normalizes its answer.
func (p *Processor) structure(ctx context.Context, in ai.Input) (*model.ResumeData, error) {
	if p.oracle == nil {
		return nil, domain.NewOracleError("parse.structure", "no oracle configured", ai.ErrMissingCredential)
	}
	data, err := p.oracle.ExtractAndStructure(ctx, in)
	if err != nil {
		return nil, err
	}
	return model.Normalize(data), nil
}
