package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/textproto"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

// Client talks to a running resume-formatter server. The session cookie set
// by Login is kept in the client's jar and sent with every later call.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status    int
	Message   string
	Retryable bool
}

func (e *APIError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Status, e.Message)
}

type apiResponse struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	Retryable bool            `json:"retryable"`
}

func (c *Client) Login(ctx context.Context, password string) error {
	body, _ := json.Marshal(map[string]string{"password": password})
	resp, err := c.post(ctx, "/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login: %w", readAPIError(resp))
	}
	return nil
}

// Parse uploads a PDF and returns the structured resume JSON exactly as the
// server sent it, ready to be posted back to Generate.
func (c *Client) Parse(ctx context.Context, filename string, pdf []byte) (json.RawMessage, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	hdr.Set("Content-Type", "application/pdf")
	part, err := w.CreatePart(hdr)
	if err != nil {
		return nil, fmt.Errorf("parse: build form: %w", err)
	}
	if _, err := part.Write(pdf); err != nil {
		return nil, fmt.Errorf("parse: build form: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("parse: build form: %w", err)
	}

	resp, err := c.post(ctx, "/api/parse", w.FormDataContentType(), &buf)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("parse failed: %w", readAPIError(resp))
	}
	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("parse: decode response: %w", err)
	}
	if !out.Success || len(out.Data) == 0 {
		return nil, fmt.Errorf("parse failed: %s", out.Error)
	}
	return out.Data, nil
}

// Generate posts resume JSON and returns the rendered PDF.
func (c *Client) Generate(ctx context.Context, resume json.RawMessage) ([]byte, error) {
	resp, err := c.post(ctx, "/api/generate", "application/json", bytes.NewReader(resume))
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generate failed: %w", readAPIError(resp))
	}
	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("generate: read body: %w", err)
	}
	return pdf, nil
}

func (c *Client) post(ctx context.Context, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return c.http.Do(req)
}

func readAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: "Unknown error"}
	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err == nil && out.Error != "" {
		apiErr.Message = out.Error
		apiErr.Retryable = out.Retryable
	}
	return apiErr
}
