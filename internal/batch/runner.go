package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"resume-formatter/internal/logging"
)

// FormattedSuffix marks files written by the runner; inputs carrying it are
// skipped so reruns over the same directory do not reformat output.
const FormattedSuffix = "_formatted"

// Service is the server API the runner drives.
type Service interface {
	Parse(ctx context.Context, filename string, pdf []byte) (json.RawMessage, error)
	Generate(ctx context.Context, resume json.RawMessage) ([]byte, error)
}

type Runner struct {
	svc       Service
	inputDir  string
	outputDir string
	logger    *logrus.Logger
}

// NewRunner creates a runner over inputDir. An empty outputDir writes to
// inputDir/formatted.
func NewRunner(svc Service, inputDir, outputDir string, logger *logrus.Logger) *Runner {
	if outputDir == "" {
		outputDir = filepath.Join(inputDir, "formatted")
	}
	return &Runner{svc: svc, inputDir: inputDir, outputDir: outputDir, logger: logging.OrDefault(logger)}
}

func (r *Runner) OutputDir() string { return r.outputDir }

// Inputs lists the PDFs to format, sorted by name.
func (r *Runner) Inputs() ([]string, error) {
	entries, err := os.ReadDir(r.inputDir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), ".pdf") || strings.Contains(name, FormattedSuffix) {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

// OutputName maps resume.pdf to resume_formatted.pdf.
func OutputName(file string) string {
	ext := filepath.Ext(file)
	return strings.TrimSuffix(file, ext) + FormattedSuffix + ".pdf"
}

// Run formats every input in sequence. A failing file is recorded and the
// run continues; only setup errors and cancellation end it early.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	files, err := r.Inputs()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	r.logger.WithField("count", len(files)).Info("Found PDF files to process")

	results := make([]Result, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res := r.formatOne(ctx, file)
		entry := r.logger.WithFields(logrus.Fields{
			logging.FieldFile:     file,
			logging.FieldDuration: res.DurationMS,
		})
		if res.Success {
			entry.WithField("output", res.Output).Info("Formatted resume")
		} else {
			entry.WithField(logging.FieldError, res.Error).Warn("Failed to format resume")
		}
		results = append(results, res)
	}
	return results, nil
}

func (r *Runner) formatOne(ctx context.Context, file string) Result {
	start := time.Now()
	res := Result{File: file}
	finish := func(err error) Result {
		res.DurationMS = time.Since(start).Milliseconds()
		if err != nil {
			res.Error = err.Error()
			return res
		}
		res.Success = true
		return res
	}

	pdf, err := os.ReadFile(filepath.Join(r.inputDir, file))
	if err != nil {
		return finish(fmt.Errorf("read input: %w", err))
	}
	resume, err := r.svc.Parse(ctx, file, pdf)
	if err != nil {
		return finish(err)
	}
	var named struct {
		Name string `json:"name"`
	}
	if json.Unmarshal(resume, &named) == nil {
		res.Name = named.Name
	}
	out, err := r.svc.Generate(ctx, resume)
	if err != nil {
		return finish(err)
	}
	res.Output = OutputName(file)
	if err := os.WriteFile(filepath.Join(r.outputDir, res.Output), out, 0o644); err != nil {
		res.Output = ""
		return finish(fmt.Errorf("write output: %w", err))
	}
	return finish(nil)
}
