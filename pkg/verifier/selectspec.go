/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

package verifier

import (
	"github.com/openbatch/batchadmit/pkg/grammar"
)

// verifySelect validates a resource-selection specification: one or more
// '+'-joined chunks, each an optional multiplier and colon-joined
// resource=value pairs. Every decoded pair is checked against the server
// resource table; the first rejection or fatal result wins, chunks in
// left-to-right order and pairs in decoded order. A chunk the decoder
// cannot parse at all is rejected outright.
func (r *Registry) verifySelect(req Request, attrName, value string) error {
	if value == "" {
		return badValue()
	}

	chunks, err := grammar.SplitPlusSpec(value)
	if err != nil {
		return badValue()
	}

	for _, chunk := range chunks {
		_, pairs, err := grammar.ParseChunk(chunk)
		if err != nil {
			return badValue()
		}
		for _, kv := range pairs {
			if err := r.verifyResource(req, attrName, kv.Key, kv.Value); err != nil {
				return err
			}
		}
	}
	return nil
}
