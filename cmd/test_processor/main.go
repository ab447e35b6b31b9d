package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"time"

	"resume-formatter/internal/logging"
	"resume-formatter/internal/render"
	"resume-formatter/internal/usecase"
	"resume-formatter/pkg/ai"
	"resume-formatter/pkg/infrastructure"
)

// Runs the whole pipeline on a PDF against a canned ai-service so the
// extraction, normalization and print path can be checked without an API key.
//
//	go run ./cmd/test_processor resume.pdf [out.pdf]

var cannedResume = map[string]interface{}{
	"name": "Test User",
	"contact": map[string]interface{}{
		"email":    "t@example.com",
		"location": "Austin, TX",
	},
	"summary": "Backend engineer focused on data pipelines and reliable services.",
	"experience": []map[string]interface{}{{
		"company":   "Acme",
		"title":     "Engineer",
		"startDate": "Jan 2022",
		"endDate":   nil,
		"bullets":   []string{"Built X", "Reduced incident rate with retries and alerts"},
	}},
	"education": []map[string]interface{}{{
		"institution":    "State University",
		"degree":         "B.S.",
		"field":          "Computer Science",
		"graduationDate": "2019",
	}},
	"skills":         []string{"Go", "PostgreSQL", "Kubernetes"},
	"certifications": []string{},
}

func startMockAI() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Input == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if !strings.Contains(req.Input, "JSON-SCHEMA:") {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		out, _ := json.Marshal(cannedResume)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"agent": "mock", "output": "```json\n" + string(out) + "\n```"})
	})
	return httptest.NewServer(mux)
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: test_processor <resume.pdf> [out.pdf]")
		os.Exit(2)
	}
	in := os.Args[1]
	out := strings.TrimSuffix(in, filepath.Ext(in)) + "_formatted.pdf"
	if len(os.Args) > 2 {
		out = os.Args[2]
	}

	log := logging.New("debug", "text", os.Stderr)

	srv := startMockAI()
	defer srv.Close()

	data, err := os.ReadFile(in)
	if err != nil {
		log.WithError(err).Fatal("Read input")
	}

	oracle := ai.NewClient(ai.NewService(srv.URL, 10*time.Second), ai.WithLogger(log))
	renderer := render.New(infrastructure.NewChromedpRenderer(os.Getenv("CHROME_PATH"), time.Minute, log), render.WithLogger(log))
	processor := usecase.NewProcessor(infrastructure.NewPDFTextExtractor(log), oracle, renderer, usecase.Config{
		Strategy: usecase.StrategyLocal,
	}, log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	resume, gen, err := processor.Process(ctx, usecase.Upload{
		Filename:    filepath.Base(in),
		ContentType: "application/pdf",
		Data:        data,
	})
	if err != nil {
		log.WithError(err).Fatal("Process failed")
	}
	if err := os.WriteFile(out, gen.PDF, 0o644); err != nil {
		log.WithError(err).Fatal("Write output")
	}
	log.WithField(logging.FieldFile, out).WithField("name", resume.Name).Infof("Process completed; suggested filename %s", gen.Filename)
}
