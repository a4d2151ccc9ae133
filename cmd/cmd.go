// Package cmd provides CLI commands for EduForge.
//
// Commands:
//   - serve: HTTP API server for document generation and content storage
//   - generate: one-shot document generation from the terminal
//   - contents: list the recent saved documents
//
// Signal handling and graceful shutdown are implemented for serve via
// context cancellation.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
)

// Execute is the main entry point for the EduForge CLI application.
func Execute() error {
	// Initialize logger once at entry point
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if len(os.Args) < 2 {
		runHelp()
		return nil
	}

	switch os.Args[1] {
	case "serve":
		return runServe()
	case "generate":
		return runGenerate()
	case "contents":
		return runContents()
	case "version", "--version", "-v":
		runVersion()
		return nil
	case "help", "--help", "-h":
		runHelp()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

// runHelp displays the help message.
func runHelp() {
	fmt.Println("EduForge - curriculum-aligned teaching document generation")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  eduforge serve [addr]      Start HTTP API server (default: 127.0.0.1:8080)")
	fmt.Println("  eduforge generate <type>   Generate one document and print it")
	fmt.Println("  eduforge contents          List your recent saved documents")
	fmt.Println("  eduforge --version         Show version information")
	fmt.Println("  eduforge --help            Show this help")
	fmt.Println()
	fmt.Println("Document types:")
	fmt.Println("  lesson-plan, quiz, worksheet, presentation, assessment")
	fmt.Println()
	fmt.Println("Generate flags:")
	fmt.Println("  --subject, --grade, --topic         Curriculum context (required)")
	fmt.Println("  --duration, --styles                Lesson plan options")
	fmt.Println("  --questions, --difficulty           Quiz, worksheet and assessment options")
	fmt.Println("  --slides, --visual                  Presentation options")
	fmt.Println("  --save                              Persist the document after generating")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  GEMINI_API_KEY         Required: Gemini API key")
	fmt.Println("  SUPABASE_URL           Required: Supabase project URL")
	fmt.Println("  SUPABASE_SERVICE_KEY   Required for CLI saves: Supabase service key")
	fmt.Println("  EDUFORGE_USER_ID       Owner UUID for CLI saves and listings")
	fmt.Println("  DEBUG                  Optional: Enable debug logging")
}
