// Package main implements the entry point for the verb dojo server, which
// hosts adaptive conjugation drill sessions over HTTP.
package main

import (
	"context"
	"log"
)

// main initializes configuration, logging, and the drill engine's
// dependencies, then runs the HTTP server until shutdown.
func main() {
	app, err := newApplication(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
