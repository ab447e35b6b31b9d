// Package usecase sequences the resume pipeline: extraction, structuring by
// the oracle, normalization and rendering. Each step finishes before the next
// starts and any failure ends the request.
package usecase

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"resume-formatter/internal/domain"
	"resume-formatter/internal/logging"
	"resume-formatter/internal/model"
	ai "resume-formatter/pkg/ai"
)

var (
	errNoExtractor      = errors.New("no text extractor configured")
	errNoDocumentOracle = errors.New("oracle does not accept documents")
)

// Processor holds only read-only collaborators, so one instance serves
// concurrent requests.
type Processor struct {
	extractor TextExtractor
	oracle    Oracle
	renderer  DocumentRenderer
	cfg       Config
	logger    *logrus.Logger
}

func NewProcessor(ex TextExtractor, o Oracle, r DocumentRenderer, cfg Config, logger *logrus.Logger) *Processor {
	if cfg.Strategy == "" {
		cfg.Strategy = StrategyLocal
	}
	if cfg.MinBytes <= 0 {
		cfg.MinBytes = DefaultMinBytes
	}
	return &Processor{extractor: ex, oracle: o, renderer: r, cfg: cfg, logger: logging.OrDefault(logger)}
}

// Parse turns an uploaded PDF into normalized resume data.
func (p *Processor) Parse(ctx context.Context, up Upload) (*model.ResumeData, error) {
	job := domain.NewFormatJob(up.Filename)
	job.Strategy = p.cfg.Strategy
	log := p.logger.WithFields(logrus.Fields{
		logging.FieldJobID:    job.ID.String(),
		logging.FieldFile:     up.Filename,
		logging.FieldStrategy: p.cfg.Strategy,
	})

	data, err := p.parse(ctx, job, log, up)
	if err != nil {
		stage := job.Status
		job.Fail(err)
		log.WithFields(logrus.Fields{
			logging.FieldStage:    string(stage),
			logging.FieldError:    err.Error(),
			logging.FieldDuration: job.Elapsed().Milliseconds(),
		}).Warn("Parse failed")
		return nil, err
	}
	job.Advance(domain.JobDone)
	log.WithField(logging.FieldDuration, job.Elapsed().Milliseconds()).Info("Parsed resume")
	return data, nil
}

func (p *Processor) parse(ctx context.Context, job *domain.FormatJob, log *logrus.Entry, up Upload) (*model.ResumeData, error) {
	if err := checkPDF(up); err != nil {
		return nil, err
	}

	job.Advance(domain.JobExtracting)
	var in ai.Input
	switch p.cfg.Strategy {
	case StrategyNative:
		if err := p.checkNative(up.Data); err != nil {
			return nil, err
		}
		in.Document = up.Data
	default:
		text, err := p.extractLocal(ctx, log, up.Data)
		if err != nil {
			if !p.useFallback(err) {
				return nil, err
			}
			log.WithError(err).Info("Falling back to native extraction")
			job.Strategy = StrategyNative
			if err := p.checkNative(up.Data); err != nil {
				return nil, err
			}
			in.Document = up.Data
		} else {
			in.Text = text
		}
	}

	job.Advance(domain.JobStructuring)
	return p.structure(ctx, in)
}

func (p *Processor) useFallback(err error) bool {
	return p.cfg.NativeFallback &&
		errors.Is(err, domain.ErrInsufficientContent) &&
		p.oracle != nil && p.oracle.SupportsDocuments()
}

// Generate normalizes data and renders it.
func (p *Processor) Generate(ctx context.Context, data *model.ResumeData) (*Generated, error) {
	data = model.Normalize(data)
	filename := model.SuggestedFilename(data)

	job := domain.NewFormatJob(filename)
	log := p.logger.WithFields(logrus.Fields{
		logging.FieldJobID: job.ID.String(),
		logging.FieldFile:  filename,
	})

	job.Advance(domain.JobRendering)
	pdf, err := p.render(ctx, data)
	if err != nil {
		job.Fail(err)
		log.WithFields(logrus.Fields{
			logging.FieldStage:    string(domain.JobRendering),
			logging.FieldError:    err.Error(),
			logging.FieldDuration: job.Elapsed().Milliseconds(),
		}).Warn("Generate failed")
		return nil, err
	}
	job.Advance(domain.JobDone)
	log.WithFields(logrus.Fields{
		logging.FieldBytes:    len(pdf),
		logging.FieldDuration: job.Elapsed().Milliseconds(),
	}).Info("Generated resume")
	return &Generated{PDF: pdf, Filename: filename}, nil
}

func (p *Processor) render(ctx context.Context, data *model.ResumeData) ([]byte, error) {
	if p.renderer == nil {
		return nil, domain.NewRenderError("generate", "no renderer configured", nil)
	}
	return p.renderer.Render(ctx, data)
}

// Process runs Parse then Generate.
func (p *Processor) Process(ctx context.Context, up Upload) (*model.ResumeData, *Generated, error) {
	data, err := p.Parse(ctx, up)
	if err != nil {
		return nil, nil, err
	}
	out, err := p.Generate(ctx, data)
	if err != nil {
		return data, nil, err
	}
	return data, out, nil
}
