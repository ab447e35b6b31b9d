package http

import (
	"context"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"resume-formatter/internal/domain"
	"resume-formatter/internal/logging"
	"resume-formatter/internal/model"
	"resume-formatter/internal/usecase"
)

// Pipeline is the resume pipeline the handlers drive.
type Pipeline interface {
	Parse(ctx context.Context, up usecase.Upload) (*model.ResumeData, error)
	Generate(ctx context.Context, data *model.ResumeData) (*usecase.Generated, error)
}

type Handler struct {
	pipeline     Pipeline
	sessions     *Sessions
	cookieSecure bool
	sessionAge   time.Duration
	parseTimeout time.Duration
	logger       *logrus.Logger
}

// HandlerConfig carries the settings the handlers need.
type HandlerConfig struct {
	CookieSecure bool
	SessionAge   time.Duration
	// ParseTimeout bounds one parse request; zero means no deadline.
	ParseTimeout time.Duration
}

func NewHandler(p Pipeline, s *Sessions, cfg HandlerConfig, logger *logrus.Logger) *Handler {
	if cfg.SessionAge <= 0 {
		cfg.SessionAge = 7 * 24 * time.Hour
	}
	return &Handler{
		pipeline:     p,
		sessions:     s,
		cookieSecure: cfg.CookieSecure,
		sessionAge:   cfg.SessionAge,
		parseTimeout: cfg.ParseTimeout,
		logger:       logging.OrDefault(logger),
	}
}

type loginReq struct {
	Password string `json:"password"`
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Password is required"})
	}
	if !h.sessions.Configured() {
		h.log(c).Error("Login attempted but APP_PASSWORD is not configured")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server configuration error"})
	}
	if !h.sessions.CheckPassword(req.Password) {
		h.log(c).Warn("Login rejected")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid password"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    h.sessions.Marker(),
		Path:     "/",
		MaxAge:   int(h.sessionAge.Seconds()),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) Parse(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "No file provided"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Could not read uploaded file"})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Could not read uploaded file"})
	}

	ctx := c.UserContext()
	if h.parseTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.parseTimeout)
		defer cancel()
	}

	resume, err := h.pipeline.Parse(ctx, usecase.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Data:        data,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": resume})
}

func (h *Handler) Generate(c *fiber.Ctx) error {
	resume, err := model.DecodeResume(c.Body())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid resume data: " + err.Error()})
	}
	out, err := h.pipeline.Generate(c.UserContext(), resume)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(out.Filename)
	return c.Send(out.PDF)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// fail answers with the category's status and user message.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := domain.HTTPStatus(err)
	entry := h.log(c).WithError(err).WithField(logging.FieldStatus, status)
	if status >= fiber.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Warn("Request rejected")
	}
	return c.Status(status).JSON(fiber.Map{
		"success":   false,
		"error":     domain.UserMessage(err),
		"retryable": domain.UserRetryable(err),
	})
}

func (h *Handler) log(c *fiber.Ctx) *logrus.Entry {
	return h.logger.WithField(logging.FieldRequestID, requestID(c))
}
