// Package app provides application initialization and dependency wiring.
//
// App is the container that holds every long-lived component: the Genkit
// runtime, the Supabase client, the generation client, the document
// generator, and the content store. Setup builds them in dependency order;
// Close releases them.
package app

import (
	"log/slog"

	"github.com/firebase/genkit/go/genkit"
	"github.com/supabase-community/supabase-go"

	"github.com/eduforge/eduforge/internal/auth"
	"github.com/eduforge/eduforge/internal/config"
	"github.com/eduforge/eduforge/internal/content"
	"github.com/eduforge/eduforge/internal/creation"
	"github.com/eduforge/eduforge/internal/generate"
	"github.com/eduforge/eduforge/internal/llm"
)

// App is the core application container.
type App struct {
	Config *config.Config

	Genkit    *genkit.Genkit
	Supabase  *supabase.Client
	Client    llm.Client
	Generator *generate.Generator
	Store     *content.Store
	Auth      auth.Provider

	otelCleanup func()
}

// Close gracefully shuts down all resources.
func (a *App) Close() error {
	slog.Info("shutting down application")
	if a.otelCleanup != nil {
		a.otelCleanup()
	}
	return nil
}

// NewFlow creates a creation flow backed by the app's generator and store.
// Each interactive session gets its own flow; the underlying components are
// shared.
func (a *App) NewFlow() (*creation.Flow, error) {
	return creation.NewFlow(creation.Config{
		Generator: a.Generator,
		Store:     a.Store,
		Logger:    slog.Default(),
	})
}

