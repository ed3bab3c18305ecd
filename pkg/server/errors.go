/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/openbatch/batchadmit/pkg/errors"
	"github.com/openbatch/batchadmit/pkg/serializer"
)

// HTTPStatusFromCode maps an error code to its HTTP status. Unknown
// codes are treated as internal errors.
func HTTPStatusFromCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeInvalidRequest,
		apperrors.ErrCodeBadValue,
		apperrors.ErrCodeBadHost,
		apperrors.ErrCodeJobNameTooLong,
		apperrors.ErrCodeValueOutOfRange,
		apperrors.ErrCodeLicenseMinBadValue,
		apperrors.ErrCodeLicenseMaxBadValue,
		apperrors.ErrCodeLicenseLingerBadValue:
		return http.StatusBadRequest
	case apperrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case apperrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case apperrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// retryableFromCode reports whether a client may usefully retry the
// same request for the given code.
func retryableFromCode(code apperrors.ErrorCode) bool {
	switch code {
	case apperrors.ErrCodeTimeout,
		apperrors.ErrCodeUnavailable,
		apperrors.ErrCodeRateLimitExceeded,
		apperrors.ErrCodeSystem,
		apperrors.ErrCodeInternal:
		return true
	}
	return false
}

// mergeDetails combines two detail maps, the second winning on shared
// keys. Both empty yields nil so the field is omitted from responses.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// WriteError writes an ErrorResponse with the given status and code.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code apperrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr writes an ErrorResponse derived from err. Structured
// errors contribute their code, message, and details; anything else maps
// to an internal error with the fallback message. The cause, when
// present, is surfaced under the "error" detail key.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error,
	fallbackMessage string, details map[string]any) {

	code := apperrors.CodeOf(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}

	message := apperrors.MessageOf(err)
	if message == "" {
		message = fallbackMessage
	}

	merged := details
	var structured *apperrors.Error
	if errors.As(err, &structured) {
		merged = mergeDetails(structured.Details, details)
		if cause := structured.Unwrap(); cause != nil {
			merged = mergeDetails(merged, map[string]any{"error": cause.Error()})
		}
	} else if err != nil {
		merged = mergeDetails(details, map[string]any{"error": err.Error()})
	}

	WriteError(w, r, HTTPStatusFromCode(code), code, message, retryableFromCode(code), merged)
}
