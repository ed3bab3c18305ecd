/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

package grammar

import (
	"fmt"
	"strconv"
	"strings"
)

// KV is one resource=value pair decoded from a selection chunk.
type KV struct {
	Key   string
	Value string
}

// SplitPlusSpec decomposes a selection specification into its
// '+'-separated chunk substrings, in order. Empty chunks are malformed.
func SplitPlusSpec(spec string) ([]string, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, fmt.Errorf("empty selection specification")
	}
	chunks := strings.Split(spec, "+")
	for _, c := range chunks {
		if strings.TrimSpace(c) == "" {
			return nil, fmt.Errorf("empty chunk in specification %q", spec)
		}
	}
	return chunks, nil
}

// ParseChunk decodes one chunk of the form "[N:]resource=value[:resource=value...]"
// into its multiplier and ordered key/value pairs. The multiplier defaults
// to 1 when absent and must be positive when present.
func ParseChunk(chunk string) (int, []KV, error) {
	count := 1
	rest := chunk

	// Leading token with no '=' is the chunk multiplier.
	if first, tail, ok := strings.Cut(chunk, ":"); ok && !strings.Contains(first, "=") {
		n, err := strconv.Atoi(strings.TrimSpace(first))
		if err != nil || n <= 0 {
			return 0, nil, fmt.Errorf("bad chunk multiplier %q in %q", first, chunk)
		}
		count = n
		rest = tail
	} else if !ok && !strings.Contains(chunk, "=") {
		// A bare multiplier with no resources, e.g. "4".
		n, err := strconv.Atoi(strings.TrimSpace(chunk))
		if err != nil || n <= 0 {
			return 0, nil, fmt.Errorf("bad chunk %q", chunk)
		}
		return n, nil, nil
	}

	var pairs []KV
	for _, tok := range strings.Split(rest, ":") {
		key, val, ok := strings.Cut(tok, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return 0, nil, fmt.Errorf("bad resource assignment %q in chunk %q", tok, chunk)
		}
		for i := 0; i < len(key); i++ {
			if !isNameByte(key[i]) {
				return 0, nil, fmt.Errorf("illegal character %q in resource name %q", key[i], key)
			}
		}
		pairs = append(pairs, KV{Key: key, Value: val})
	}
	return count, pairs, nil
}
