package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/keyauth"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"

	"resume-formatter/internal/logging"
)

// AppConfig carries server-level settings.
type AppConfig struct {
	BodyLimit int
}

// NewApp wires middleware and routes. Parse and generate require a valid
// session cookie; /api/auth/* and /api/health do not.
func NewApp(h *Handler, cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "resume-formatter",
		BodyLimit:             cfg.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(h.logger),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(requestLogger(h.logger))

	api := app.Group("/api")
	api.Get("/health", h.Health)

	auth := api.Group("/auth")
	auth.Post("/login", h.Login)
	auth.Post("/logout", h.Logout)

	requireSession := keyauth.New(keyauth.Config{
		KeyLookup: "cookie:" + CookieName,
		Validator: func(_ *fiber.Ctx, key string) (bool, error) {
			if h.sessions.Valid(key) {
				return true, nil
			}
			return false, keyauth.ErrMissingOrMalformedAPIKey
		},
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		},
	})
	api.Post("/parse", requireSession, h.Parse)
	api.Post("/generate", requireSession, h.Generate)

	return app
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}

func requestLogger(logger *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.WithFields(logrus.Fields{
			logging.FieldRequestID: requestID(c),
			logging.FieldStatus:    c.Response().StatusCode(),
			logging.FieldDuration:  time.Since(start).Milliseconds(),
			"method":               c.Method(),
			"path":                 c.Path(),
		}).Debug("Handled request")
		return err
	}
}

func errorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			logger.WithError(err).WithField(logging.FieldRequestID, requestID(c)).Error("Unhandled error")
		}
		msg := "An unexpected error occurred"
		if fe != nil && code < fiber.StatusInternalServerError {
			msg = fe.Message
		}
		return c.Status(code).JSON(fiber.Map{"success": false, "error": msg})
	}
}
