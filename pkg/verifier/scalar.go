/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

package verifier

import (
	"strings"

	"github.com/openbatch/batchadmit/pkg/attribute"
	apperrors "github.com/openbatch/batchadmit/pkg/errors"
	"github.com/openbatch/batchadmit/pkg/grammar"
)

func badValue() error {
	return apperrors.New(apperrors.ErrCodeBadValue, "")
}

// leadingInt parses the leading integer of a value the way the wire
// decoders do: optional sign and digits, trailing text ignored, zero when
// no digits are present.
func leadingInt(s string) int64 {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	var n int64
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + int64(s[i]-'0')
		i++
	}
	if neg {
		return -n
	}
	return n
}

// verifyUserList checks user/group list attributes. Select-type requests
// may name users with a leading digit disallowed elsewhere.
func (r *Registry) verifyUserList(req Request, value string) error {
	if value == "" {
		return badValue()
	}
	allowNumeric := req.Kind != attribute.SelectJobs
	if err := grammar.ParseUserHostList(value, allowNumeric, false); err != nil {
		return badValue()
	}
	return nil
}

func (r *Registry) verifyAuthorizedUsers(value string) error {
	if value == "" {
		return badValue()
	}
	if err := grammar.ParseUserHostList(value, false, false); err != nil {
		return badValue()
	}
	return nil
}

func (r *Registry) verifyMailUsers(value string) error {
	if value == "" {
		return badValue()
	}
	if err := grammar.ParseUserHostList(value, false, false); err != nil {
		return badValue()
	}
	return nil
}

func (r *Registry) verifyShellPathList(value string) error {
	if value == "" {
		return badValue()
	}
	if err := grammar.ParseUserHostList(value, true, true); err != nil {
		return badValue()
	}
	return nil
}

// verifyDependList validates a dependency chain and returns its expanded
// form for the caller to store in place of the original.
func (r *Registry) verifyDependList(value string) (string, error) {
	if value == "" {
		return "", badValue()
	}
	expanded, err := grammar.ParseDependList(value)
	if err != nil {
		return "", badValue()
	}
	return expanded, nil
}

// verifyPath validates an output/error path and returns its normalized
// form for the caller to store in place of the original.
func (r *Registry) verifyPath(value string) (string, error) {
	if value == "" {
		return "", badValue()
	}
	prepared, err := grammar.PreparePath(value)
	if err != nil {
		return "", badValue()
	}
	return prepared, nil
}

func (r *Registry) verifyArrayRange(value string) error {
	if value == "" {
		return badValue()
	}
	switch grammar.CheckRange(value) {
	case grammar.RangeMalformed:
		return badValue()
	case grammar.RangeOutOfBounds:
		return apperrors.New(apperrors.ErrCodeValueOutOfRange, "")
	}
	return nil
}

// verifyJobName checks a job or reservation name. Empty names are legal
// only for status and select requests; names with a leading digit are
// legal only for submit, modify, and select requests.
func (r *Registry) verifyJobName(req Request, value string) error {
	if value == "" {
		if req.Kind == attribute.StatusJob || req.Kind == attribute.SelectJobs {
			return nil
		}
		return badValue()
	}

	allowNumeric := false
	switch req.Kind {
	case attribute.SubmitJob, attribute.ModifyJob, attribute.SubmitResv, attribute.SelectJobs:
		allowNumeric = true
	}

	switch grammar.CheckName(value, allowNumeric) {
	case grammar.NameMalformed:
		return badValue()
	case grammar.NameTooLong:
		return apperrors.New(apperrors.ErrCodeJobNameTooLong, "")
	}
	return nil
}

// verifyCheckpoint checks the checkpoint specification: one of the single
// letters n, s, c, w, u, or the interval forms c=<seconds> and
// w=<seconds>. On a select request the unset sentinel "u" is legal only
// under equality or inequality comparison.
func (r *Registry) verifyCheckpoint(req Request, attr *attribute.Attribute) error {
	value := attr.Value
	if value == "" {
		return badValue()
	}

	if len(value) == 1 {
		switch value[0] {
		case 'n', 's', 'c', 'w', 'u':
		default:
			return badValue()
		}
	} else {
		if (value[0] != 'c' && value[0] != 'w') || value[1] != '=' {
			return badValue()
		}
		digits := value[2:]
		if digits == "" {
			return badValue()
		}
		for i := 0; i < len(digits); i++ {
			if digits[i] < '0' || digits[i] > '9' {
				return badValue()
			}
		}
	}

	if req.Kind == attribute.SelectJobs && value == "u" {
		if attr.Op != attribute.OpEQ && attr.Op != attribute.OpNE {
			return badValue()
		}
	}
	return nil
}

// verifyHold checks hold flags: any combination of u, o, s, with n and p
// each standing alone. n conflicts with every other flag; p conflicts
// with u, o, s, and n.
func (r *Registry) verifyHold(value string) error {
	if value == "" {
		return badValue()
	}
	var uCnt, oCnt, sCnt, pCnt, nCnt int
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case 'u':
			uCnt++
		case 'o':
			oCnt++
		case 's':
			sCnt++
		case 'p':
			pCnt++
		case 'n':
			nCnt++
		default:
			return badValue()
		}
	}
	if nCnt > 0 && uCnt+oCnt+sCnt+pCnt > 0 {
		return badValue()
	}
	if pCnt > 0 && uCnt+oCnt+sCnt+nCnt > 0 {
		return badValue()
	}
	return nil
}

func (r *Registry) verifyJoinPath(value string) error {
	switch value {
	case "oe", "eo", "n":
		return nil
	}
	return badValue()
}

func (r *Registry) verifyKeepFiles(value string) error {
	switch value {
	case "o", "e", "oe", "eo", "n":
		return nil
	}
	return badValue()
}

// verifyMailPoints checks mail delivery points: the single letter n, or a
// combination of a, b, e (and c for reservation submission). Leading
// whitespace is trimmed and the trimmed value returned as a rewrite.
func (r *Registry) verifyMailPoints(req Request, value string) (string, error) {
	if value == "" {
		return "", badValue()
	}
	trimmed := strings.TrimLeft(value, " \t")
	if trimmed == "" {
		return "", badValue()
	}

	if trimmed != "n" {
		for i := 0; i < len(trimmed); i++ {
			switch trimmed[i] {
			case 'a', 'b', 'e':
			case 'c':
				if req.Kind != attribute.SubmitResv {
					return "", badValue()
				}
			default:
				return "", badValue()
			}
		}
	}
	return trimmed, nil
}

// verifyPriority checks the job priority range [-1024, 1023]. An
// out-of-range value is accepted for a select request, where it is a
// comparison operand rather than a priority to assign.
func (r *Registry) verifyPriority(req Request, value string) error {
	if value == "" {
		return badValue()
	}
	i := leadingInt(value)
	if i < -1024 || i > 1023 {
		if req.Kind == attribute.SelectJobs {
			return nil
		}
		return badValue()
	}
	return nil
}

func (r *Registry) verifySandbox(value string) error {
	if value == "" {
		return badValue()
	}
	if !strings.EqualFold(value, "HOME") &&
		!strings.EqualFold(value, "O_WORKDIR") &&
		!strings.EqualFold(value, "PRIVATE") {
		return badValue()
	}
	return nil
}

func (r *Registry) verifyStageList(value string) error {
	if value == "" {
		return badValue()
	}
	if err := grammar.ParseStageList(value); err != nil {
		return badValue()
	}
	return nil
}

// credNames are the accepted credential system names.
var credNames = []string{"aes", "dce-krb5", "krb5", "gridproxy"}

func (r *Registry) verifyCredName(value string) error {
	if value == "" {
		return badValue()
	}
	for _, name := range credNames {
		if value == name {
			return nil
		}
	}
	return badValue()
}

func (r *Registry) verifyZeroOrPositive(value string) error {
	if value == "" {
		return badValue()
	}
	if leadingInt(value) < 0 {
		return badValue()
	}
	return nil
}

func (r *Registry) verifyNonZeroPositive(value string) error {
	if value == "" {
		return badValue()
	}
	if leadingInt(value) <= 0 {
		return badValue()
	}
	return nil
}

// verifyLicenseBound checks license_min and license_max against the
// configured process-wide license maximum, returning the attribute's own
// code so callers can tell which bound was violated.
func (r *Registry) verifyLicenseBound(value string, code apperrors.ErrorCode) error {
	if value == "" {
		return badValue()
	}
	l := leadingInt(value)
	if l < 0 || l > r.maxLicenses {
		return apperrors.New(code, "")
	}
	return nil
}

func (r *Registry) verifyLicenseLinger(value string) error {
	if value == "" {
		return badValue()
	}
	if leadingInt(value) <= 0 {
		return apperrors.New(apperrors.ErrCodeLicenseLingerBadValue, "")
	}
	return nil
}

// queueTypeNames are matched by case-insensitive prefix: any leading
// fragment of "Execution" or "Route" is accepted.
var queueTypeNames = []string{"Execution", "Route"}

func (r *Registry) verifyQueueType(value string) error {
	if value == "" {
		return badValue()
	}
	for _, name := range queueTypeNames {
		if len(value) <= len(name) && strings.EqualFold(name[:len(value)], value) {
			return nil
		}
	}
	return badValue()
}

// jobStateCodes is the fixed alphabet of one-letter job states.
const jobStateCodes = "EHQRTWSUBXFM"

// verifyJobState checks that every character is a job state code. An
// empty value is legal only for a status request.
func (r *Registry) verifyJobState(req Request, value string) error {
	if value == "" {
		if req.Kind != attribute.StatusJob {
			return badValue()
		}
		return nil
	}
	for i := 0; i < len(value); i++ {
		if !strings.ContainsRune(jobStateCodes, rune(value[i])) {
			return badValue()
		}
	}
	return nil
}
