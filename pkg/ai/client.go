// Package ai is the boundary to the language model that turns resume text or
// a resume PDF into structured ResumeData.
package ai

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"resume-formatter/internal/domain"
	"resume-formatter/internal/logging"
	"resume-formatter/internal/model"
)

// Request is one completion call.
type Request struct {
	System      string
	Prompt      string
	Document    []byte // optional PDF sent alongside Prompt
	Temperature float64
	MaxTokens   int
}

// Provider is a model backend that answers a Request with raw text.
type Provider interface {
	Name() string
	// SupportsDocuments reports whether Request.Document is accepted.
	SupportsDocuments() bool
	Complete(ctx context.Context, req Request) (string, error)
}

// ErrMissingCredential is returned by providers built without an API key.
var ErrMissingCredential = errors.New("missing credential")

// ErrDocumentsUnsupported is returned when a document is sent to a provider
// that only takes text.
var ErrDocumentsUnsupported = errors.New("provider does not accept documents")

// Input is either extracted resume text or the raw PDF bytes.
type Input struct {
	Text     string
	Document []byte
}

// Client asks a Provider for a resume and turns the answer into normalized
// ResumeData. Every failure is an oracle error; nothing is retried here.
type Client struct {
	provider    Provider
	temperature float64
	maxTokens   int
	logger      *logrus.Logger
}

type Option func(*Client)

func WithTemperature(t float64) Option { return func(c *Client) { c.temperature = t } }

func WithMaxTokens(n int) Option { return func(c *Client) { c.maxTokens = n } }

func WithLogger(l *logrus.Logger) Option { return func(c *Client) { c.logger = l } }

func NewClient(p Provider, opts ...Option) *Client {
	c := &Client{provider: p, temperature: 0.1, maxTokens: 8192}
	for _, o := range opts {
		o(c)
	}
	c.logger = logging.OrDefault(c.logger)
	return c
}

// Provider returns the backend name.
func (c *Client) Provider() string {
	if c.provider == nil {
		return ""
	}
	return c.provider.Name()
}

// SupportsDocuments reports whether raw PDFs can be sent.
func (c *Client) SupportsDocuments() bool {
	return c.provider != nil && c.provider.SupportsDocuments()
}

// ExtractAndStructure sends in to the model and returns the normalized
// resume it describes.
func (c *Client) ExtractAndStructure(ctx context.Context, in Input) (*model.ResumeData, error) {
	const op = "oracle.structure"
	if c.provider == nil {
		return nil, domain.NewOracleError(op, "no provider configured", ErrMissingCredential)
	}
	if len(in.Document) > 0 && !c.provider.SupportsDocuments() {
		return nil, domain.NewOracleError(op, c.provider.Name(), ErrDocumentsUnsupported)
	}

	req := Request{
		System:      SystemPrompt(),
		Prompt:      UserPrompt(in.Text),
		Document:    in.Document,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}
	if len(in.Document) == 0 {
		req.Document = nil
	}

	log := c.logger.WithFields(logrus.Fields{
		logging.FieldProvider: c.provider.Name(),
		logging.FieldBytes:    len(in.Text) + len(in.Document),
	})
	start := time.Now()

	out, err := c.provider.Complete(ctx, req)
	if err != nil {
		log.WithError(err).Warn("Model call failed")
		return nil, domain.NewOracleError(op, "model call failed", err)
	}

	raw, err := extractJSONObject(out)
	if err != nil {
		log.WithField("response_length", len(out)).Warn("Model returned no JSON object")
		return nil, domain.NewOracleError(op, "response is not a json object", err)
	}

	resume, err := model.DecodeResume(raw)
	if err != nil {
		log.WithError(err).Warn("Model response does not match the resume schema")
		return nil, domain.NewOracleError(op, "response does not match the resume schema", err)
	}

	log.WithField(logging.FieldDuration, time.Since(start).Milliseconds()).Info("Structured resume")
	return resume, nil
}
