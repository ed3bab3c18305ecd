/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

package verifier

import (
	goerrors "errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/openbatch/batchadmit/pkg/attribute"
	apperrors "github.com/openbatch/batchadmit/pkg/errors"
	"github.com/openbatch/batchadmit/pkg/rescdef"
)

// targetNone disables preemption targeting when given as the whole value.
const targetNone = "NONE"

var foldLower = cases.Lower(language.Und)

// namespaceScan describes one preemption-target namespace pass: the
// keyword to scan for, whether a '.' must follow it (separating the
// resource name), and the definition table its names resolve against.
type namespaceScan struct {
	keyword    string
	dotted     bool
	table      *rescdef.Table
	caseFolded bool
}

// verifyPreemptTargets validates a preemption-target list: either the
// literal "NONE" (case-insensitive, exact) or entries of the forms
// "Resource_List.<name>=<value>" and "queue=<value>", comma-separated in
// any order and repetition. The Resource_List keyword is matched
// case-sensitively against the original value; the queue keyword is
// matched against a case-folded copy. Scanning never mutates the input;
// both passes slice the same immutable strings.
func (r *Registry) verifyPreemptTargets(req Request, value string) error {
	if value == "" {
		return badValue()
	}
	val := strings.TrimLeft(value, " \t")

	// "NONE" must stand alone: a case-insensitive prefix match that is
	// not an exact match rejects the whole value.
	if len(val) >= len(targetNone) && strings.EqualFold(val[:len(targetNone)], targetNone) {
		if strings.EqualFold(val, targetNone) {
			return nil
		}
		return badValue()
	}

	scans := []namespaceScan{
		{keyword: attribute.AttrResourceList, dotted: true, table: r.resc},
		{keyword: attribute.AttrQueue, dotted: false, table: r.resv, caseFolded: true},
	}

	targetFound := false
	for _, scan := range scans {
		hay := val
		if scan.caseFolded {
			hay = foldLower.String(val)
		}

		pos := 0
		for {
			idx := strings.Index(hay[pos:], scan.keyword)
			if idx < 0 {
				break
			}
			idx += pos
			targetFound = true

			nameStart := idx
			if scan.dotted {
				after := idx + len(scan.keyword)
				if after >= len(hay) || hay[after] != '.' {
					return badValue()
				}
				nameStart = after + 1
			}

			eq := strings.IndexByte(hay[nameStart:], '=')
			if eq < 0 {
				return badValue()
			}
			name := hay[nameStart : nameStart+eq]

			def := scan.table.Find(name)
			if def == nil {
				// An opaque custom resource: no datatype to verify.
				// Resume just past this keyword occurrence so a name that
				// merely embeds the keyword cannot match twice.
				pos = idx + len(scan.keyword)
				continue
			}

			valStart := nameStart + eq + 1
			valEnd := len(hay)
			if comma := strings.IndexByte(hay[valStart:], ','); comma >= 0 {
				valEnd = valStart + comma
			}

			if err := r.runDefinitionChecks(req, def, hay[valStart:valEnd]); err != nil {
				if apperrors.IsSystem(err) {
					return err
				}
				var e *apperrors.Error
				if goerrors.As(err, &e) && e.Message == "" {
					text, terr := r.reporter.Text(e.Code)
					if terr != nil {
						return apperrors.Wrap(apperrors.ErrCodeSystem, "composing error message", terr)
					}
					return apperrors.New(e.Code, text)
				}
				return err
			}

			// Resume from the '=' of the entry just validated.
			pos = nameStart + eq
		}
	}

	if !targetFound {
		return badValue()
	}
	return nil
}
