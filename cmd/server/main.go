package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	httpadapter "resume-formatter/internal/adapter/http"
	"resume-formatter/internal/config"
	"resume-formatter/internal/logging"
	"resume-formatter/internal/render"
	"resume-formatter/internal/usecase"
	"resume-formatter/pkg/ai"
	infra "resume-formatter/pkg/infrastructure"
)

func main() {
	var port string
	cmd := &cobra.Command{
		Use:          "server",
		Short:        "Serve the resume formatter HTTP API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Server.Port = port
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)

	processor, err := buildProcessor(ctx, cfg, log)
	if err != nil {
		return err
	}

	sessions := httpadapter.NewSessions(cfg.Auth.Password, cfg.Auth.SessionSecret)
	if !sessions.Configured() {
		log.Warn("APP_PASSWORD is not set; every login will be rejected")
	}
	h := httpadapter.NewHandler(processor, sessions, httpadapter.HandlerConfig{
		CookieSecure: cfg.Auth.CookieSecure,
		SessionAge:   cfg.SessionMaxAge(),
		ParseTimeout: cfg.AITimeout(),
	}, log)
	app := httpadapter.NewApp(h, httpadapter.AppConfig{BodyLimit: cfg.BodyLimit()})

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Server.Port).Info("Server listening")
		errCh <- app.Listen(":" + cfg.Server.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout()); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func buildProcessor(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*usecase.Processor, error) {
	provider, err := ai.NewProvider(ctx, ai.Settings{
		Provider:        cfg.AI.Provider,
		GeminiAPIKey:    cfg.AI.Gemini.APIKey,
		GeminiModel:     cfg.AI.Gemini.Model,
		AnthropicAPIKey: cfg.AI.Anthropic.APIKey,
		AnthropicModel:  cfg.AI.Anthropic.Model,
		ServiceURL:      cfg.AI.Service.URL,
		ServiceTimeout:  cfg.AITimeout(),
	})
	if err != nil {
		return nil, err
	}
	if _, ok := provider.(ai.Unconfigured); ok {
		log.WithField(logging.FieldProvider, provider.Name()).Warn("AI provider credential is not set; parse requests will fail")
	}
	oracle := ai.NewClient(provider,
		ai.WithTemperature(cfg.AI.Temperature),
		ai.WithMaxTokens(cfg.AI.MaxTokens),
		ai.WithLogger(log),
	)

	extractor := infra.NewPDFTextExtractor(log)
	converter := infra.NewChromedpRenderer(cfg.Render.ChromePath, cfg.RenderTimeout(), log)
	renderer := render.New(converter, render.WithLogger(log))

	return usecase.NewProcessor(extractor, oracle, renderer, usecase.Config{
		Strategy:       cfg.Extraction.Strategy,
		NativeFallback: cfg.Extraction.NativeFallback,
		MinBytes:       cfg.Extraction.MinBytes,
	}, log), nil
}
