package cmd

import (
	"context"
	"fmt"

	"github.com/eduforge/eduforge/internal/app"
	"github.com/eduforge/eduforge/internal/config"
)

// runContents lists the recent saved documents for the configured user.
func runContents() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx := context.Background()
	a, err := app.Setup(ctx, cfg, cliAuthProvider())
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() { _ = a.Close() }()

	records, err := a.Store.FetchRecent(ctx)
	if err != nil {
		return fmt.Errorf("fetching contents: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No saved documents.")
		return nil
	}

	for _, rec := range records {
		fmt.Printf("%s  %-13s %s / %s / %s\n",
			rec.CreatedAt.Format("2006-01-02 15:04"),
			rec.Type, rec.Subject, rec.Grade, rec.Chapter)
	}
	return nil
}
