/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

package grammar

import (
	"fmt"
	"path"
	"strings"
)

// PreparePath normalizes an output or error path specification of the form
// "[host:]path". The host part, when present, is validated as a host name;
// the path part is lexically cleaned. The result is stable: preparing an
// already prepared path returns it unchanged.
func PreparePath(value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("empty path")
	}

	host := ""
	p := value
	// A colon separates host from path unless it begins the path itself
	// (a colon-leading path has no host part).
	if i := strings.IndexByte(value, ':'); i > 0 {
		host = value[:i]
		p = value[i+1:]
		if err := checkHostPart(host); err != nil {
			return "", err
		}
		if p == "" {
			return "", fmt.Errorf("path %q has an empty path part", value)
		}
	}

	if strings.ContainsRune(p, ':') {
		return "", fmt.Errorf("path %q contains a stray ':'", value)
	}

	cleaned := path.Clean(p)
	if host != "" {
		return host + ":" + cleaned, nil
	}
	return cleaned, nil
}
