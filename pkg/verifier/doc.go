/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

// Package verifier implements the attribute verification engine: the last
// line of defense ensuring malformed, out-of-range, or semantically
// inconsistent attribute values never reach scheduling or persistent
// state.
//
// # Overview
//
// A Registry dispatches each attribute to its verifier by an explicit
// switch over the attribute's kind tag. Scalar verifiers check
// fixed-grammar and enumerated values; resource-valued attributes are
// checked against the immutable definition tables in rescdef; the
// selection-spec and preemption-target verifiers decompose composite
// grammars and cross-reference the definition tables.
//
// # Usage
//
//	reg, err := verifier.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	attr := &attribute.Attribute{Name: "Priority", Value: "500"}
//	err = reg.Verify(ctx, verifier.Request{Kind: attribute.SubmitJob, Object: attribute.ObjectJob}, attr)
//
// A nil return means the attribute was accepted; attr.Value may have been
// replaced with an equivalent expanded or normalized form. A non-nil
// return is a structured error whose code distinguishes validation
// rejections from fatal local failures.
//
// # Concurrency
//
// All verifiers are synchronous functions over their inputs. The
// definition tables and the configured license maximum are read-only
// after construction, so a single Registry may be shared by any number of
// request-handling goroutines. The only blocking call is host resolution
// in the manager/operator ACL verifier, bounded by the caller's context.
package verifier
