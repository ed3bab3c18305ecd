/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

// Package server implements the HTTP admission service: attribute
// verification over POST /v1/verify plus health, readiness, and metrics
// endpoints.
package server

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/openbatch/batchadmit/pkg/attribute"
)

// ErrorResponse is the wire shape of all error responses.
type ErrorResponse struct {
	Code      string         `json:"code" yaml:"code"`
	Message   string         `json:"message" yaml:"message"`
	Details   map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
	RequestID string         `json:"requestId" yaml:"requestId"`
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
	Retryable bool           `json:"retryable" yaml:"retryable"`
}

// HealthResponse is the wire shape of health and readiness responses.
type HealthResponse struct {
	Status    string    `json:"status" yaml:"status"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Reason    string    `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// VerifyRequest is one admission check: the request context plus the
// attribute set to verify.
type VerifyRequest struct {
	RequestKind attribute.RequestKind  `json:"requestKind" yaml:"requestKind"`
	ObjectKind  attribute.ObjectKind   `json:"objectKind,omitempty" yaml:"objectKind,omitempty"`
	Command     attribute.Command      `json:"command,omitempty" yaml:"command,omitempty"`
	Attributes  []*attribute.Attribute `json:"attributes" yaml:"attributes"`
}

// AttributeResult reports the outcome for a single attribute. Value
// carries the possibly rewritten form when the attribute is accepted.
type AttributeResult struct {
	Attribute string `json:"attribute" yaml:"attribute"`
	Resource  string `json:"resource,omitempty" yaml:"resource,omitempty"`
	Status    string `json:"status" yaml:"status"`
	Code      string `json:"code,omitempty" yaml:"code,omitempty"`
	Message   string `json:"message,omitempty" yaml:"message,omitempty"`
	Value     string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Result status values.
const (
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// VerifyResponse is the wire shape of a successful verification call.
type VerifyResponse struct {
	RequestID string            `json:"requestId" yaml:"requestId"`
	Accepted  int               `json:"accepted" yaml:"accepted"`
	Rejected  int               `json:"rejected" yaml:"rejected"`
	Results   []AttributeResult `json:"results" yaml:"results"`
	Timestamp time.Time         `json:"timestamp" yaml:"timestamp"`
}

// Config holds server configuration.
type Config struct {
	Address string
	Port    int

	// Rate limiting
	RateLimit      rate.Limit
	RateLimitBurst int

	// Request limits
	MaxBulkAttributes int

	// Timeouts
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Logging
	LogLevel string
}
