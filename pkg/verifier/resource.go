/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

package verifier

import (
	goerrors "errors"

	apperrors "github.com/openbatch/batchadmit/pkg/errors"
	"github.com/openbatch/batchadmit/pkg/rescdef"
)

// verifyResource checks one resource of a resource-valued attribute
// against the server resource table: datatype first, then the value
// policy. Resources absent from the table are accepted; custom resources
// are known only to the server and verified there. A rejection without a
// message gets one of the form "<error text> <attribute>.<resource>".
func (r *Registry) verifyResource(req Request, attrName, rescName, value string) error {
	if rescName == "" {
		return nil
	}
	def := r.resc.Find(rescName)
	if def == nil {
		return nil
	}

	err := r.runDefinitionChecks(req, def, value)
	if err == nil {
		return nil
	}
	if apperrors.IsSystem(err) {
		return err
	}

	var e *apperrors.Error
	if goerrors.As(err, &e) && e.Message == "" {
		text, terr := r.reporter.Text(e.Code)
		if terr != nil {
			return apperrors.Wrap(apperrors.ErrCodeSystem, "composing error message", terr)
		}
		if text != "" {
			return apperrors.New(e.Code, text+" "+attrName+"."+rescName)
		}
	}
	return err
}

// runDefinitionChecks runs a definition's datatype check and, only when
// it succeeds, its value policy. Policy checks may assume a well-typed
// input. The returned rejection carries no message; callers qualify it.
func (r *Registry) runDefinitionChecks(req Request, def *rescdef.Definition, value string) error {
	if err := rescdef.VerifyDatatype(def, value); err != nil {
		return badValue()
	}

	switch def.Policy {
	case rescdef.PolicyNone:
		return nil
	case rescdef.PolicyNonNegative:
		if n, ok := rescdef.NumericValue(def.Type, value); ok && n < 0 {
			return badValue()
		}
		return nil
	case rescdef.PolicyPositive:
		if n, ok := rescdef.NumericValue(def.Type, value); ok && n <= 0 {
			return badValue()
		}
		return nil
	case rescdef.PolicySelectSpec:
		return r.verifySelect(req, def.Name, value)
	case rescdef.PolicyPreemptTargets:
		return r.verifyPreemptTargets(req, value)
	}
	return apperrors.Newf(apperrors.ErrCodeInternal, "unknown value policy %q for %q", def.Policy, def.Name)
}
