/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

package verifier

import (
	"context"
	"strings"

	apperrors "github.com/openbatch/batchadmit/pkg/errors"
)

// verifyManagerACL validates manager/operator access lists: comma-
// separated user@host entries with surrounding spaces ignored. A host
// part of "*" is accepted as-is; any other host is resolved to its
// fully-qualified form and must match it case-insensitively. This is the
// only verifier that blocks; resolution is bounded by ctx.
func (r *Registry) verifyManagerACL(ctx context.Context, value string) error {
	if value == "" {
		return badValue()
	}

	for _, entry := range strings.Split(value, ",") {
		entry = strings.TrimSpace(entry)

		at := strings.IndexByte(entry, '@')
		if at < 0 {
			return apperrors.New(apperrors.ErrCodeBadHost, "")
		}
		host := entry[at+1:]
		if strings.HasPrefix(host, "*") {
			// Wildcard hosts cannot be checked further.
			continue
		}

		full, err := r.resolver.FullHostName(ctx, host)
		if err != nil || !strings.EqualFold(host, full) {
			return apperrors.New(apperrors.ErrCodeBadHost, "")
		}
	}
	return nil
}
