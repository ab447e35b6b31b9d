package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultServiceURL = "http://ai-service:8000"

// Service calls the internal ai-service chat endpoint. The endpoint takes a
// single input string, so the system rules are prepended to the prompt and
// documents are not supported.
type Service struct {
	BaseURL string
	HTTP    *http.Client
}

func NewService(baseURL string, timeout time.Duration) *Service {
	if baseURL == "" {
		baseURL = defaultServiceURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Service{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: &http.Client{Timeout: timeout}}
}

func (s *Service) Name() string { return "service" }

func (s *Service) SupportsDocuments() bool { return false }

type chatRequest struct {
	Agent string `json:"agent"`
	Input string `json:"input"`
}

type chatResponse struct {
	Agent  string `json:"agent"`
	Output string `json:"output"`
}

func (s *Service) Complete(ctx context.Context, req Request) (string, error) {
	if len(req.Document) > 0 {
		return "", ErrDocumentsUnsupported
	}
	body, err := json.Marshal(chatRequest{Agent: "auto", Input: req.System + "\n\n" + req.Prompt})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/v1/chat", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTP.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ai-service request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ai-service read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai-service returned non-200 status: %d", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBytes, &chatResp); err != nil {
		return "", fmt.Errorf("ai-service returned malformed envelope: %w", err)
	}
	if strings.TrimSpace(chatResp.Output) == "" {
		return "", errors.New("ai-service returned empty output")
	}
	return chatResp.Output, nil
}
