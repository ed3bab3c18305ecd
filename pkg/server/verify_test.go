package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/openbatch/batchadmit/pkg/errors"
	"github.com/openbatch/batchadmit/pkg/verifier"
)

func newTestServer(t *testing.T, opts ...verifier.Option) *Server {
	t.Helper()
	reg, err := verifier.New(opts...)
	require.NoError(t, err)
	return New(WithName("batchadmit-test"), WithRegistry(reg))
}

func postVerify(t *testing.T, s *Server, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/v1/verify", bytes.NewReader(raw))
	w := httptest.NewRecorder()
	s.withMiddleware(s.handleVerify)(w, req)
	return w
}

func TestHandleVerifyMixedResults(t *testing.T) {
	s := newTestServer(t)

	w := postVerify(t, s, map[string]any{
		"requestKind": "submit-job",
		"objectKind":  "job",
		"attributes": []map[string]any{
			{"name": "Priority", "value": "10"},
			{"name": "Hold_Types", "value": "pn"},
			{"name": "Resource_List", "resource": "ncpus", "value": "4"},
			{"name": "depend", "value": "AfterOK:12"},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp VerifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 3, resp.Accepted)
	assert.Equal(t, 1, resp.Rejected)
	assert.NotEmpty(t, resp.RequestID)
	require.Len(t, resp.Results, 4)

	assert.Equal(t, StatusAccepted, resp.Results[0].Status)
	assert.Equal(t, StatusRejected, resp.Results[1].Status)
	assert.Equal(t, string(apperrors.ErrCodeBadValue), resp.Results[1].Code)
	assert.Equal(t, "ncpus", resp.Results[2].Resource)
	// Accepted values reflect any rewrite.
	assert.Equal(t, "afterok:12", resp.Results[3].Value)
}

func TestHandleVerifyMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/verify", nil)
	w := httptest.NewRecorder()
	s.withMiddleware(s.handleVerify)(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(apperrors.ErrCodeMethodNotAllowed), resp.Code)
}

func TestHandleVerifyBadRequests(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"unknown kind", map[string]any{
			"requestKind": "launch-rocket",
			"attributes":  []map[string]any{{"name": "Priority", "value": "1"}},
		}},
		{"no attributes", map[string]any{
			"requestKind": "submit-job",
		}},
		{"null attribute", map[string]any{
			"requestKind": "submit-job",
			"attributes":  []any{nil},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postVerify(t, s, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, string(apperrors.ErrCodeInvalidRequest), resp.Code)
		})
	}
}

func TestHandleVerifyMalformedBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/verify", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	s.withMiddleware(s.handleVerify)(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleVerifyBulkLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxBulkAttributes = 2
	reg, err := verifier.New()
	require.NoError(t, err)
	s := New(WithConfig(cfg), WithRegistry(reg))

	w := postVerify(t, s, map[string]any{
		"requestKind": "submit-job",
		"attributes": []map[string]any{
			{"name": "Priority", "value": "1"},
			{"name": "Priority", "value": "2"},
			{"name": "Priority", "value": "3"},
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// brokenReporter forces a fatal failure while composing rejection text.
type brokenReporter struct{}

func (brokenReporter) Text(apperrors.ErrorCode) (string, error) {
	return "", apperrors.New(apperrors.ErrCodeSystem, "error catalog unavailable")
}

func TestHandleVerifySystemFailure(t *testing.T) {
	s := newTestServer(t, verifier.WithReporter(brokenReporter{}))

	w := postVerify(t, s, map[string]any{
		"requestKind": "submit-job",
		"attributes": []map[string]any{
			{"name": "Resource_List", "resource": "ncpus", "value": "-1"},
		},
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(apperrors.ErrCodeSystem), resp.Code)
	assert.True(t, resp.Retryable)
}

func TestRateLimitExceeded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimit = 0
	cfg.RateLimitBurst = 0
	reg, err := verifier.New()
	require.NoError(t, err)
	s := New(WithConfig(cfg), WithRegistry(reg))

	w := postVerify(t, s, map[string]any{
		"requestKind": "submit-job",
		"attributes":  []map[string]any{{"name": "Priority", "value": "1"}},
	})

	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(apperrors.ErrCodeRateLimitExceeded), resp.Code)
	assert.True(t, resp.Retryable)
}

func TestHealthAndReady(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.handleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// Not ready until Run flips it.
	w = httptest.NewRecorder()
	s.handleReady(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	s.setReady(true)
	w = httptest.NewRecorder()
	s.handleReady(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
