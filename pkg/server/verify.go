/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/openbatch/batchadmit/pkg/errors"
	"github.com/openbatch/batchadmit/pkg/serializer"
	"github.com/openbatch/batchadmit/pkg/verifier"
)

const (
	maxRequestBody = 1 << 20 // 1 MiB

	// verifyConcurrency bounds the attribute fan-out per request. The
	// engine is CPU-bound except for ACL host resolution, which blocks.
	verifyConcurrency = 8
)

// handleVerify handles POST /v1/verify: it verifies each attribute in
// the request body and reports a per-attribute outcome. Rejections are
// part of a successful response; only local failures produce an error
// status.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, r, http.StatusMethodNotAllowed,
			apperrors.ErrCodeMethodNotAllowed, "method not allowed", false, nil)
		return
	}

	var req VerifyRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest,
			apperrors.ErrCodeInvalidRequest, "malformed request body", false,
			map[string]any{"error": err.Error()})
		return
	}

	if !req.RequestKind.IsValid() {
		WriteError(w, r, http.StatusBadRequest,
			apperrors.ErrCodeInvalidRequest, "unknown request kind", false,
			map[string]any{"requestKind": string(req.RequestKind)})
		return
	}
	if len(req.Attributes) == 0 {
		WriteError(w, r, http.StatusBadRequest,
			apperrors.ErrCodeInvalidRequest, "no attributes to verify", false, nil)
		return
	}
	if len(req.Attributes) > s.cfg.MaxBulkAttributes {
		WriteError(w, r, http.StatusBadRequest,
			apperrors.ErrCodeInvalidRequest, "too many attributes", false,
			map[string]any{"limit": s.cfg.MaxBulkAttributes, "got": len(req.Attributes)})
		return
	}

	for i, attr := range req.Attributes {
		if attr == nil {
			WriteError(w, r, http.StatusBadRequest,
				apperrors.ErrCodeInvalidRequest, "null attribute in request", false,
				map[string]any{"index": i})
			return
		}
	}

	vreq := verifier.Request{
		Kind:    req.RequestKind,
		Object:  req.ObjectKind,
		Command: req.Command,
	}

	results := make([]AttributeResult, len(req.Attributes))
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(verifyConcurrency)
	for i, attr := range req.Attributes {
		g.Go(func() error {
			err := s.registry.Verify(ctx, vreq, attr)
			if apperrors.IsSystem(err) {
				return err
			}
			res := AttributeResult{
				Attribute: attr.Name,
				Resource:  attr.Resource,
			}
			if err != nil {
				res.Status = StatusRejected
				res.Code = string(apperrors.CodeOf(err))
				res.Message = apperrors.MessageOf(err)
			} else {
				res.Status = StatusAccepted
				res.Value = attr.Value
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		WriteErrorFromErr(w, r, err, "verification failed", nil)
		return
	}

	resp := VerifyResponse{
		Results:   results,
		Timestamp: time.Now().UTC(),
	}
	resp.RequestID, _ = r.Context().Value(contextKeyRequestID).(string)
	for _, res := range results {
		if res.Status == StatusAccepted {
			resp.Accepted++
		} else {
			resp.Rejected++
		}
	}

	serializer.RespondJSON(w, http.StatusOK, resp)
}
