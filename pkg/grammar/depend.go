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

// dependTypes are the legal dependency kinds and whether their arguments
// are job identifiers (true) or a numeric count (false).
var dependTypes = map[string]bool{
	"after":       true,
	"afterok":     true,
	"afterany":    true,
	"afternotok":  true,
	"before":      true,
	"beforeok":    true,
	"beforeany":   true,
	"beforenotok": true,
	"on":          false,
	"runone":      false,
}

// ParseDependList parses a job dependency specification of the form
//
//	type:arg[:arg...][,type:arg...]
//
// and returns the expanded canonical form: dependency types lowercased and
// redundant whitespace removed. Re-parsing the expanded form yields the
// same string, so the caller may store the result in place of the input.
func ParseDependList(spec string) (string, error) {
	if strings.TrimSpace(spec) == "" {
		return "", fmt.Errorf("empty dependency list")
	}

	var out []string
	for _, clause := range strings.Split(spec, ",") {
		clause = strings.TrimSpace(clause)
		parts := strings.Split(clause, ":")
		dtype := strings.ToLower(strings.TrimSpace(parts[0]))
		wantsJobs, ok := dependTypes[dtype]
		if !ok {
			return "", fmt.Errorf("unknown dependency type %q", parts[0])
		}

		args := parts[1:]
		switch {
		case dtype == "runone":
			if len(args) != 0 {
				return "", fmt.Errorf("dependency type %q takes no argument", dtype)
			}
			out = append(out, dtype)
			continue
		case len(args) == 0:
			return "", fmt.Errorf("dependency type %q requires an argument", dtype)
		}

		expanded := []string{dtype}
		for _, arg := range args {
			arg = strings.TrimSpace(arg)
			if arg == "" {
				return "", fmt.Errorf("empty argument in dependency clause %q", clause)
			}
			if wantsJobs {
				if err := checkJobID(arg); err != nil {
					return "", err
				}
			} else {
				if _, err := strconv.ParseInt(arg, 10, 64); err != nil {
					return "", fmt.Errorf("dependency count %q is not a number", arg)
				}
			}
			expanded = append(expanded, arg)
		}
		out = append(out, strings.Join(expanded, ":"))
	}
	return strings.Join(out, ","), nil
}

// checkJobID accepts job identifiers of the form "seq[.server]" with an
// optional array subscript, e.g. "123", "123.svr", "123[].svr".
func checkJobID(id string) error {
	seq := id
	if dot := strings.IndexByte(id, '.'); dot >= 0 {
		seq = id[:dot]
		if dot == len(id)-1 {
			return fmt.Errorf("job id %q has an empty server part", id)
		}
	}
	seq = strings.TrimSuffix(seq, "[]")
	if seq == "" {
		return fmt.Errorf("job id %q has an empty sequence number", id)
	}
	for i := 0; i < len(seq); i++ {
		if !isDigit(seq[i]) {
			return fmt.Errorf("job id %q is not numeric", id)
		}
	}
	return nil
}
