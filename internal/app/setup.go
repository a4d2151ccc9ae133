package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/supabase-community/supabase-go"

	"github.com/eduforge/eduforge/internal/auth"
	"github.com/eduforge/eduforge/internal/config"
	"github.com/eduforge/eduforge/internal/content"
	"github.com/eduforge/eduforge/internal/generate"
	"github.com/eduforge/eduforge/internal/llm"
	"github.com/eduforge/eduforge/internal/observability"
)

// Setup creates and initializes the application.
//
// authProvider chooses how persistence operations resolve the current user:
// nil selects token validation against Supabase auth (serve mode); the CLI
// passes a static identity instead.
func Setup(ctx context.Context, cfg *config.Config, authProvider auth.Provider) (*App, error) {
	if cfg == nil {
		return nil, config.ErrConfigNil
	}

	a := &App{Config: cfg}

	// Tracing must be registered before Genkit initialization so generation
	// calls land on the instrumented TracerProvider.
	a.otelCleanup = provideOtelShutdown(ctx, cfg)

	g, err := provideGenkit(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.Genkit = g

	sb, err := provideSupabase(cfg)
	if err != nil {
		return nil, err
	}
	a.Supabase = sb

	client, err := llm.New(llm.Config{
		Genkit:    g,
		ModelName: cfg.FullModelName(),
		Logger:    slog.Default(),
		Defaults: llm.CallOptions{
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating generation client: %w", err)
	}
	a.Client = client

	gen, err := generate.New(generate.Config{Client: client, Logger: slog.Default()})
	if err != nil {
		return nil, fmt.Errorf("creating generator: %w", err)
	}
	a.Generator = gen

	if authProvider == nil {
		authProvider = auth.NewSupabaseProvider(sb)
	}
	a.Auth = authProvider

	store, err := content.NewStore(content.Config{
		Table:  content.NewSupabaseTable(sb),
		Auth:   authProvider,
		Logger: slog.Default(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating content store: %w", err)
	}
	a.Store = store

	return a, nil
}

// provideOtelShutdown sets up OTLP tracing before Genkit initialization.
func provideOtelShutdown(ctx context.Context, cfg *config.Config) func() {
	shutdown, err := observability.Setup(ctx, observability.Config{
		Endpoint:    cfg.Tracing.Endpoint,
		Environment: cfg.Tracing.Environment,
		ServiceName: cfg.Tracing.ServiceName,
	})
	if err != nil {
		slog.Warn("setting up tracing", "error", err)
		return func() {}
	}

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Warn("shutting down tracer provider", "error", err)
		}
	}
}

// provideGenkit initializes Genkit with the Google AI plugin. The plugin
// reads GEMINI_API_KEY from the environment.
func provideGenkit(ctx context.Context, cfg *config.Config) (*genkit.Genkit, error) {
	g := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))
	if g == nil {
		return nil, errors.New("initializing genkit with gemini provider")
	}
	slog.Info("initialized Genkit with gemini provider", "model", cfg.ModelName)
	return g, nil
}

// provideSupabase creates the Supabase client backing content persistence
// and token validation.
func provideSupabase(cfg *config.Config) (*supabase.Client, error) {
	sb, err := supabase.NewClient(cfg.SupabaseURL, cfg.ServiceKey(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating supabase client: %w", err)
	}
	return sb, nil
}
