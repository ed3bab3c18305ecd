/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

package grammar

import (
	"math"
	"strconv"
	"strings"
)

// RangeResult classifies an array-range string check.
type RangeResult int

// Range check outcomes.
const (
	RangeOK RangeResult = iota
	RangeMalformed
	RangeOutOfBounds
)

// CheckRange verifies an array subjob range of the form "X-Y[:Z]".
// Malformed syntax and bound violations are reported separately so the
// caller can attach the range-specific error code to the latter.
func CheckRange(value string) RangeResult {
	spec := value
	step := int64(1)
	if i := strings.IndexByte(spec, ':'); i >= 0 {
		s, err := parseBound(spec[i+1:])
		if err != nil {
			return RangeMalformed
		}
		step = s
		spec = spec[:i]
	}

	lo, rest, ok := strings.Cut(spec, "-")
	if !ok {
		return RangeMalformed
	}
	start, err := parseBound(lo)
	if err != nil {
		return RangeMalformed
	}
	end, err := parseBound(rest)
	if err != nil {
		return RangeMalformed
	}

	if start < 0 || end > math.MaxInt32 || start > end || step < 1 {
		return RangeOutOfBounds
	}
	return RangeOK
}

func parseBound(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}
