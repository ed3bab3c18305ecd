/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

package rescdef

import (
	"fmt"
	"strconv"
	"strings"
)

// VerifyDatatype checks that value parses as the definition's datatype.
// It is always run before any value policy, so policy checks may assume a
// well-typed input.
func VerifyDatatype(def *Definition, value string) error {
	if def == nil {
		return nil
	}
	switch def.Type {
	case TypeLong:
		_, err := ParseLong(value)
		return err
	case TypeFloat:
		if _, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err != nil {
			return fmt.Errorf("value %q is not a number", value)
		}
		return nil
	case TypeBool:
		_, err := ParseBool(value)
		return err
	case TypeSize:
		_, err := ParseSize(value)
		return err
	case TypeDuration:
		_, err := ParseDuration(value)
		return err
	case TypeString:
		return checkPrintable(value)
	case TypeStringArray:
		for _, item := range strings.Split(value, ",") {
			if err := checkPrintable(item); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown datatype %q for %q", def.Type, def.Name)
}

// NumericValue returns the numeric magnitude of a well-typed value for
// datatypes that have one, for use by ordering policies. The second
// result is false for non-numeric datatypes.
func NumericValue(t DataType, value string) (int64, bool) {
	switch t {
	case TypeLong:
		n, err := ParseLong(value)
		return n, err == nil
	case TypeSize:
		n, err := ParseSize(value)
		return n, err == nil
	case TypeDuration:
		n, err := ParseDuration(value)
		return n, err == nil
	}
	return 0, false
}

// ParseLong parses a decimal integer with optional sign.
func ParseLong(value string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("value %q is not an integer", value)
	}
	return n, nil
}

// ParseBool accepts the batch wire forms of a boolean.
func ParseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "t", "y", "yes", "1":
		return true, nil
	case "false", "f", "n", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("value %q is not a boolean", value)
}

// sizeMultipliers maps size suffix letters to byte multipliers.
var sizeMultipliers = map[byte]int64{
	'k': 1 << 10,
	'm': 1 << 20,
	'g': 1 << 30,
	't': 1 << 40,
	'p': 1 << 50,
}

// ParseSize parses a size literal: an integer followed by an optional
// multiplier suffix kb/mb/gb/tb/pb (or the bare letter), or b for bytes,
// or w for words. Returns the magnitude in bytes.
func ParseSize(value string) (int64, error) {
	s := strings.ToLower(strings.TrimSpace(value))
	if s == "" {
		return 0, fmt.Errorf("empty size value")
	}

	i := 0
	for i < len(s) && (s[i] >= '0' && s[i] <= '9') {
		i++
	}
	if i == 0 {
		return 0, fmt.Errorf("size %q does not begin with a number", value)
	}
	n, err := strconv.ParseInt(s[:i], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("size %q is out of range", value)
	}

	suffix := s[i:]
	switch suffix {
	case "", "b", "w":
		return n, nil
	}
	mult, ok := sizeMultipliers[suffix[0]]
	if !ok {
		return 0, fmt.Errorf("size %q has an unknown suffix %q", value, suffix)
	}
	switch suffix[1:] {
	case "", "b", "w":
		return n * mult, nil
	}
	return 0, fmt.Errorf("size %q has an unknown suffix %q", value, suffix)
}

// ParseDuration parses a time literal in seconds or [[HH:]MM:]SS form.
// Returns the magnitude in seconds.
func ParseDuration(value string) (int64, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("duration %q has too many ':' fields", value)
	}
	var total int64
	for _, part := range parts {
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("duration %q is malformed", value)
		}
		total = total*60 + n
	}
	return total, nil
}

func checkPrintable(value string) error {
	for i := 0; i < len(value); i++ {
		if value[i] < 0x20 || value[i] == 0x7f {
			return fmt.Errorf("value contains a non-printable byte at offset %d", i)
		}
	}
	return nil
}
