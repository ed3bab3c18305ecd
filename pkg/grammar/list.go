/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

package grammar

import (
	"fmt"
	"strings"
)

// MaxNameLen is the maximum length of a job or reservation name.
const MaxNameLen = 236

// NameResult classifies a name-legality check.
type NameResult int

// Name check outcomes.
const (
	NameOK NameResult = iota
	NameMalformed
	NameTooLong
)

// CheckName verifies a job or reservation name: at most MaxNameLen bytes,
// composed of alphanumerics and "-_+.", and, unless allowNumericLeading is
// set, not beginning with a digit.
func CheckName(name string, allowNumericLeading bool) NameResult {
	if name == "" {
		return NameMalformed
	}
	if len(name) > MaxNameLen {
		return NameTooLong
	}
	if !allowNumericLeading && isDigit(name[0]) {
		return NameMalformed
	}
	for i := 0; i < len(name); i++ {
		if !isNameByte(name[i]) {
			return NameMalformed
		}
	}
	return NameOK
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isNameByte(b byte) bool {
	return isAlpha(b) || isDigit(b) || b == '-' || b == '_' || b == '+' || b == '.'
}

func isHostByte(b byte) bool {
	return isAlpha(b) || isDigit(b) || b == '-' || b == '.' || b == '*'
}

// ParseUserHostList validates a comma-separated list of "name[@host]"
// entries. allowNumericName permits names with a leading digit;
// allowPath additionally permits '/' in the name part, for shell path
// lists of the form "path[@host]".
func ParseUserHostList(list string, allowNumericName, allowPath bool) error {
	if strings.TrimSpace(list) == "" {
		return fmt.Errorf("empty list")
	}
	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			return fmt.Errorf("empty entry in list %q", list)
		}
		name, host, hasHost := strings.Cut(entry, "@")
		if name == "" {
			return fmt.Errorf("missing name in entry %q", entry)
		}
		if !allowNumericName && isDigit(name[0]) {
			return fmt.Errorf("name %q may not begin with a digit", name)
		}
		for i := 0; i < len(name); i++ {
			if isNameByte(name[i]) {
				continue
			}
			if allowPath && name[i] == '/' {
				continue
			}
			return fmt.Errorf("illegal character %q in name %q", name[i], name)
		}
		if hasHost {
			if err := checkHostPart(host); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkHostPart(host string) error {
	if host == "" {
		return fmt.Errorf("missing host after '@'")
	}
	for i := 0; i < len(host); i++ {
		if !isHostByte(host[i]) {
			return fmt.Errorf("illegal character %q in host %q", host[i], host)
		}
	}
	return nil
}

// ParseStageList validates a comma-separated list of file staging entries
// of the form "local@host:remote". Both the '@' separator and the ':'
// after the host are required; empty components are rejected.
func ParseStageList(list string) error {
	if strings.TrimSpace(list) == "" {
		return fmt.Errorf("empty stage list")
	}
	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		local, rest, ok := strings.Cut(entry, "@")
		if !ok || local == "" {
			return fmt.Errorf("stage entry %q missing local@host form", entry)
		}
		host, remote, ok := strings.Cut(rest, ":")
		if !ok || host == "" || remote == "" {
			return fmt.Errorf("stage entry %q missing host:remote form", entry)
		}
		if err := checkHostPart(host); err != nil {
			return err
		}
	}
	return nil
}
