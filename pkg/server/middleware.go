/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/openbatch/batchadmit/pkg/errors"
)

type contextKey string

const (
	contextKeyRequestID  contextKey = "requestID"
	contextKeyAPIVersion contextKey = "apiVersion"
)

// withMiddleware wraps an API handler with request identification, rate
// limiting, API version negotiation, and request logging. System
// endpoints bypass it.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		ctx := context.WithValue(r.Context(), contextKeyRequestID, requestID)
		ctx = context.WithValue(ctx, contextKeyAPIVersion, negotiateAPIVersion(r))
		r = r.WithContext(ctx)

		w.Header().Set("X-Request-ID", requestID)

		if !s.limiter.Allow() {
			WriteError(w, r, http.StatusTooManyRequests,
				apperrors.ErrCodeRateLimitExceeded, "rate limit exceeded", true, nil)
			return
		}

		start := time.Now()
		next(w, r)

		slog.Debug("request handled",
			"request_id", requestID,
			"path", r.URL.Path,
			"method", r.Method,
			"remote_addr", r.RemoteAddr,
			"duration", time.Since(start),
		)
	}
}
