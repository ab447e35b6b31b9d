package usecase

import (
	"context"

	"resume-formatter/internal/model"
	ai "resume-formatter/pkg/ai"
	"resume-formatter/pkg/infrastructure"
)

// Extraction strategies.
const (
	StrategyLocal  = "local"
	StrategyNative = "native"
)

// DefaultMinBytes is the smallest amount of text (local strategy) or raw
// document (native strategy) worth sending to the oracle.
const DefaultMinBytes = 50

// TextExtractor pulls plain text out of PDF bytes.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte) (*infrastructure.Extraction, error)
}

// Oracle turns resume text or a resume document into structured data.
type Oracle interface {
	ExtractAndStructure(ctx context.Context, in ai.Input) (*model.ResumeData, error)
	SupportsDocuments() bool
}

// DocumentRenderer renders normalized resume data to PDF bytes.
type DocumentRenderer interface {
	Render(ctx context.Context, data *model.ResumeData) ([]byte, error)
}

// Upload is one uploaded file.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Generated is a rendered resume and the name it should be downloaded as.
type Generated struct {
	PDF      []byte
	Filename string
}

// Config selects the extraction strategy. Local extraction is the primary
// route; with NativeFallback set, a PDF with too little extractable text is
// sent to the oracle as a document instead.
type Config struct {
	Strategy       string
	NativeFallback bool
	MinBytes       int
}
