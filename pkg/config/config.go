/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

// Package config holds the verification engine configuration sourced at
// process start.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/openbatch/batchadmit/pkg/verifier"
)

// Engine configures the verification registry.
type Engine struct {
	// MaxLicenses bounds the license_min and license_max attributes.
	MaxLicenses int64

	// ResolveTimeout bounds ACL host resolution per attribute.
	ResolveTimeout time.Duration
}

// DefaultEngine returns engine defaults, with ADMIT_MAX_LICENSES and
// ADMIT_RESOLVE_TIMEOUT overridable from the environment.
func DefaultEngine() *Engine {
	cfg := &Engine{
		MaxLicenses:    verifier.DefaultMaxLicenses,
		ResolveTimeout: 5 * time.Second,
	}

	if s := os.Getenv("ADMIT_MAX_LICENSES"); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 {
			cfg.MaxLicenses = n
		}
	}

	if s := os.Getenv("ADMIT_RESOLVE_TIMEOUT"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			cfg.ResolveTimeout = d
		}
	}

	return cfg
}

// RegistryOptions expands the engine config into registry options.
func (e *Engine) RegistryOptions() []verifier.Option {
	return []verifier.Option{
		verifier.WithMaxLicenses(e.MaxLicenses),
		verifier.WithResolveTimeout(e.ResolveTimeout),
	}
}
