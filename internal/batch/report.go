package batch

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// Result is the outcome for one input file.
type Result struct {
	File       string `csv:"file"`
	Name       string `csv:"name"`
	Output     string `csv:"output"`
	Success    bool   `csv:"success"`
	Error      string `csv:"error"`
	DurationMS int64  `csv:"duration_ms"`
}

// Summary counts successes and failures.
type Summary struct {
	Successful int
	Failed     int
}

func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		if r.Success {
			s.Successful++
		} else {
			s.Failed++
		}
	}
	return s
}

// WriteReport writes results as CSV with a header row.
func WriteReport(path string, results []Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&results, f); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
