// Package main is the entry point for the book API server.
// It wires together configuration, the in-memory store, and the HTTP router.
package main

import (
	"flag"
	"log/slog"
	"os"

	"bookapi/internal/data"
)

// appVersion is the current version of the API, shown in logs and the root endpoint.
const appVersion = "1.0.0"

// serverConfig holds all the values that can be tweaked at startup via command-line flags.
type serverConfig struct {
	port        int    // TCP port the HTTP server listens on (default 4000)
	environment string // Runtime environment: development, staging, or production
}

// applicationDependencies bundles every shared resource that HTTP handlers need.
// A pointer to this struct is passed as the receiver on all handler and route methods.
type applicationDependencies struct {
	config serverConfig    // Server configuration loaded from flags
	logger *slog.Logger    // Structured logger that writes to stdout
	store  *data.BookStore // In-memory book collection and id sequence
}

// main is the application entry point.
// It parses flags, creates the store, wires up dependencies, and starts the HTTP server.
func main() {
	var settings serverConfig

	// Register command-line flags so operators can override defaults at runtime.
	flag.IntVar(&settings.port, "port", 4000, "Server port")
	flag.StringVar(&settings.environment, "env", "development", "Environment(development|staging|production)")

	flag.Parse()

	// Create a structured logger that writes human-readable text to stdout.
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Bundle all shared dependencies into a single struct. The store is
	// explicitly instantiated here rather than being a package-level
	// singleton, so tests can create isolated instances.
	appInstance := &applicationDependencies{
		config: settings,
		logger: logger,
		store:  data.NewBookStore(),
	}

	// serve blocks until the server shuts down or encounters a fatal error.
	err := appInstance.serve()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
