package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-formatter/internal/domain"
	"resume-formatter/internal/model"
	"resume-formatter/internal/usecase"
)

type fakePipeline struct {
	parseErr    error
	generateErr error
	upload      usecase.Upload
	generated   *model.ResumeData
}

func (f *fakePipeline) Parse(_ context.Context, up usecase.Upload) (*model.ResumeData, error) {
	f.upload = up
	if f.parseErr != nil {
		return nil, f.parseErr
	}
	return model.Normalize(&model.ResumeData{Name: "Jane Doe", Skills: []string{"Go"}}), nil
}

func (f *fakePipeline) Generate(_ context.Context, data *model.ResumeData) (*usecase.Generated, error) {
	f.generated = data
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	return &usecase.Generated{PDF: []byte("%PDF-1.7 test"), Filename: model.SuggestedFilename(data)}, nil
}

func newTestApp(p Pipeline, password string) (*Handler, *Sessions) {
	logger, _ := test.NewNullLogger()
	s := NewSessions(password, "")
	h := NewHandler(p, s, HandlerConfig{SessionAge: 7 * 24 * time.Hour, ParseTimeout: time.Minute}, logger)
	return h, s
}

func do(t *testing.T, h *Handler, req *http.Request) (*http.Response, map[string]interface{}) {
	t.Helper()
	app := NewApp(h, AppConfig{BodyLimit: 4 * 1024 * 1024})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(body, &out))
	}
	return resp, out
}

func loginRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func uploadRequest(t *testing.T, contentType string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="resume.pdf"`)
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/parse", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func withSession(req *http.Request, s *Sessions) *http.Request {
	req.AddCookie(&http.Cookie{Name: CookieName, Value: s.Marker()})
	return req
}

func TestLogin(t *testing.T) {
	h, s := newTestApp(&fakePipeline{}, "hunter2")

	resp, body := do(t, h, loginRequest(`{"password":"hunter2"}`))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == CookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, s.Marker(), cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 7*24*60*60, cookie.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

func TestLogin_Failures(t *testing.T) {
	h, _ := newTestApp(&fakePipeline{}, "hunter2")

	resp, body := do(t, h, loginRequest(`{}`))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Password is required", body["error"])

	resp, body = do(t, h, loginRequest(`{"password":"wrong"}`))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid password", body["error"])
	assert.Empty(t, resp.Cookies())

	unconfigured, _ := newTestApp(&fakePipeline{}, "")
	resp, body = do(t, unconfigured, loginRequest(`{"password":"anything"}`))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Server configuration error", body["error"])
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	h, _ := newTestApp(&fakePipeline{}, "hunter2")

	for _, path := range []string{"/api/parse", "/api/generate"} {
		resp, body := do(t, h, httptest.NewRequest(http.MethodPost, path, nil))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		assert.Equal(t, "Unauthorized", body["error"])

		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "forged"})
		resp, _ = do(t, h, req)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}

	resp, body := do(t, h, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestParse(t *testing.T) {
	p := &fakePipeline{}
	h, s := newTestApp(p, "hunter2")

	resp, body := do(t, h, withSession(uploadRequest(t, "application/pdf", []byte("%PDF-1.4 data")), s))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Jane Doe", data["name"])
	assert.NotNil(t, data["contact"])

	assert.Equal(t, "resume.pdf", p.upload.Filename)
	assert.Equal(t, "application/pdf", p.upload.ContentType)
	assert.Equal(t, []byte("%PDF-1.4 data"), p.upload.Data)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestParse_NoFile(t *testing.T) {
	h, s := newTestApp(&fakePipeline{}, "hunter2")
	req := httptest.NewRequest(http.MethodPost, "/api/parse", strings.NewReader(""))
	resp, body := do(t, h, withSession(req, s))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "No file provided", body["error"])
}

func TestParse_ErrorMapping(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		status    int
		retryable bool
	}{
		{"invalid format", domain.NewInvalidFormatError("parse.check", "text/plain"), http.StatusBadRequest, false},
		{"insufficient", domain.NewInsufficientContentError("parse.extract", 10), http.StatusBadRequest, false},
		{"content fault", domain.NewContentFault("extract.pdf", nil), http.StatusBadRequest, false},
		{"environment fault", domain.NewEnvironmentFault("extract.pdf", nil), http.StatusInternalServerError, false},
		{"oracle", domain.NewOracleError("oracle.structure", "empty", nil), http.StatusBadGateway, true},
		{"timeout", domain.NewEnvironmentFault("extract.pdf", context.DeadlineExceeded), http.StatusGatewayTimeout, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, s := newTestApp(&fakePipeline{parseErr: tc.err}, "hunter2")
			resp, body := do(t, h, withSession(uploadRequest(t, "application/pdf", []byte("%PDF")), s))
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, domain.UserMessage(tc.err), body["error"])
			assert.Equal(t, tc.retryable, body["retryable"])
		})
	}
}

func TestGenerate(t *testing.T) {
	p := &fakePipeline{}
	h, s := newTestApp(p, "hunter2")

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"name":"Jane Doe","skills":["Go"]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := do(t, h, withSession(req, s))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Jane_Doe_Resume.pdf"`, resp.Header.Get("Content-Disposition"))
	assert.NotNil(t, p.generated.Contact)
}

func TestGenerate_Rejects(t *testing.T) {
	h, s := newTestApp(&fakePipeline{}, "hunter2")

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"skills":"Go"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, body := do(t, h, withSession(req, s))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "Invalid resume data")

	h, s = newTestApp(&fakePipeline{generateErr: domain.NewRenderError("render.pdf", "print", nil)}, "hunter2")
	req = httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, body = do(t, h, withSession(req, s))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to generate PDF", body["error"])
}

func TestSessions(t *testing.T) {
	s := NewSessions("hunter2", "")
	assert.True(t, s.CheckPassword("hunter2"))
	assert.False(t, s.CheckPassword("hunter"))
	assert.True(t, s.Valid(s.Marker()))
	assert.False(t, s.Valid(""))

	rotated := NewSessions("hunter2", "new-secret")
	assert.False(t, rotated.Valid(s.Marker()))

	empty := NewSessions("", "")
	assert.False(t, empty.Configured())
	assert.False(t, empty.CheckPassword(""))
	assert.False(t, empty.Valid(empty.Marker()))
}
