/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/openbatch/batchadmit/pkg/logging"
)

const appName = "admitctl"

// overridden during build with ldflags to reflect actual version info
var version = "dev"

var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}
	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   "json",
		Usage:   "output format (json, yaml, table)",
	}
)

// Run executes the admitctl command line and returns its error.
func Run(ctx context.Context, args []string) error {
	root := &cli.Command{
		Name:                  appName,
		Usage:                 "Verify batch request attributes before admission",
		Version:               version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				os.Setenv("LOG_LEVEL", "debug")
			}
			logging.SetDefaultStructuredLogger(appName, version)
			return ctx, nil
		},
		Commands: []*cli.Command{
			verifyCmd(),
			serveCmd(),
		},
	}
	return root.Run(ctx, args)
}
