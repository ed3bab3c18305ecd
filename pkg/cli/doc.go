/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the command-line interface for the admitctl tool.
//
// # Overview
//
// admitctl verifies batch request attributes against the admission rules
// before they reach a workload-management server, and can run the
// admission HTTP service itself.
//
// # Commands
//
// verify - Verify attribute sets from files:
//
//	admitctl verify --file request.yaml
//	admitctl verify -f submit.yaml -f modify.json --format table
//	admitctl verify -f request.yaml --fail-on-reject   # CI-friendly exit code
//
// Each input file holds one verification request: the request kind plus
// the attribute list. Files are verified concurrently; results can be
// written as JSON, YAML, or a table, to stdout or a file.
//
// serve - Run the admission HTTP server:
//
//	admitctl serve
//
// # Input File Format
//
// YAML or JSON:
//
//	requestKind: submit-job
//	objectKind: job
//	attributes:
//	  - name: Priority
//	    value: "10"
//	  - name: Resource_List
//	    resource: ncpus
//	    value: "4"
//
// # Global Flags
//
//	--output, -o   Output file path (default: stdout)
//	--format, -t   Output format: yaml, json, table (default: json)
//	--debug        Enable debug logging
//
// # Environment Variables
//
//	LOG_LEVEL             Logging verbosity (debug, info, warn, error)
//	PORT                  Server listen port
//	ADMIT_MAX_LICENSES    License attribute upper bound
//	ADMIT_RESOLVE_TIMEOUT ACL host resolution timeout
//
// # Exit Codes
//
//	0  Success
//	1  General error, or rejections with --fail-on-reject
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/openbatch/batchadmit/pkg/cli.version=1.0.0'"
package cli
