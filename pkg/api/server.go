/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

// Package api wires the admission server together: logging, engine
// configuration, and the HTTP server lifecycle.
package api

import (
	"context"
	"log/slog"

	"github.com/openbatch/batchadmit/pkg/config"
	"github.com/openbatch/batchadmit/pkg/logging"
	"github.com/openbatch/batchadmit/pkg/server"
	"github.com/openbatch/batchadmit/pkg/verifier"
)

const (
	name           = "batchadmit-server"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/openbatch/batchadmit/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the admission server and blocks until shutdown. It
// configures logging, builds the verification registry from the engine
// config, and handles graceful shutdown.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	engine := config.DefaultEngine()
	registry, err := verifier.New(engine.RegistryOptions()...)
	if err != nil {
		slog.Error("building verification registry", "error", err)
		return err
	}

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithRegistry(registry),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
