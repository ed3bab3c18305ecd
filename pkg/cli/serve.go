/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/openbatch/batchadmit/pkg/api"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the admission HTTP server",
		Description: `Runs the admission server: POST /v1/verify plus health, readiness,
and metrics endpoints. Listens on PORT (default 8080) and shuts down
gracefully on SIGINT/SIGTERM.`,
		Action: func(_ context.Context, _ *cli.Command) error {
			return api.Serve()
		},
	}
}
