/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

package verifier

import (
	"context"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/openbatch/batchadmit/pkg/attribute"
	apperrors "github.com/openbatch/batchadmit/pkg/errors"
	"github.com/openbatch/batchadmit/pkg/rescdef"
)

// DefaultMaxLicenses bounds the license_min and license_max attributes
// when no limit is configured.
const DefaultMaxLicenses = 10000000

// Request carries the admission context for one verification call.
type Request struct {
	Kind    attribute.RequestKind
	Object  attribute.ObjectKind
	Command attribute.Command
}

// Resolver resolves a host name to its fully-qualified form. The ACL
// verifier is the only caller; implementations should honor the context
// deadline since resolution may block on name service lookup.
type Resolver interface {
	FullHostName(ctx context.Context, host string) (string, error)
}

// netResolver resolves through the standard name service.
type netResolver struct{}

func (netResolver) FullHostName(ctx context.Context, host string) (string, error) {
	cname, err := net.DefaultResolver.LookupCNAME(ctx, host)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(cname, "."), nil
}

// timeoutResolver bounds each lookup of the wrapped resolver.
type timeoutResolver struct {
	inner   Resolver
	timeout time.Duration
}

func (t timeoutResolver) FullHostName(ctx context.Context, host string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.FullHostName(ctx, host)
}

// ErrorReporter translates an error code into descriptive text for
// messages attached to rejections. A reporter failure is a fatal local
// error, distinct from the rejection being reported.
type ErrorReporter interface {
	Text(code apperrors.ErrorCode) (string, error)
}

type textReporter struct{}

func (textReporter) Text(code apperrors.ErrorCode) (string, error) {
	return apperrors.Text(code), nil
}

// Registry dispatches attributes to their verifiers. It is immutable
// after construction and safe for concurrent use.
type Registry struct {
	resc           *rescdef.Table
	resv           *rescdef.Table
	maxLicenses    int64
	resolver       Resolver
	resolveTimeout time.Duration
	reporter       ErrorReporter
}

// Option is a functional option for configuring Registry instances.
type Option func(*Registry)

// WithTables overrides the resource and reservation definition tables.
func WithTables(resources, resvAttrs *rescdef.Table) Option {
	return func(r *Registry) {
		r.resc = resources
		r.resv = resvAttrs
	}
}

// WithMaxLicenses sets the configured license maximum. It is sourced once
// at process start and treated as read-only thereafter.
func WithMaxLicenses(n int64) Option {
	return func(r *Registry) {
		r.maxLicenses = n
	}
}

// WithResolver overrides the host resolver used by the ACL verifier.
func WithResolver(res Resolver) Option {
	return func(r *Registry) {
		r.resolver = res
	}
}

// WithResolveTimeout bounds each host resolution performed by the ACL
// verifier. Zero means no bound beyond the caller's context.
func WithResolveTimeout(d time.Duration) Option {
	return func(r *Registry) {
		r.resolveTimeout = d
	}
}

// WithReporter overrides the error text reporter.
func WithReporter(rep ErrorReporter) Option {
	return func(r *Registry) {
		r.reporter = rep
	}
}

// New creates a Registry backed by the process-wide definition tables
// unless overridden by options.
func New(opts ...Option) (*Registry, error) {
	r := &Registry{
		maxLicenses: DefaultMaxLicenses,
		resolver:    netResolver{},
		reporter:    textReporter{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.resolveTimeout > 0 {
		r.resolver = timeoutResolver{inner: r.resolver, timeout: r.resolveTimeout}
	}
	if r.resc == nil || r.resv == nil {
		resc, err := rescdef.ServerResources()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeSystem, "loading resource definitions", err)
		}
		resv, err := rescdef.ResvAttributes()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeSystem, "loading reservation attribute definitions", err)
		}
		if r.resc == nil {
			r.resc = resc
		}
		if r.resv == nil {
			r.resv = resv
		}
	}
	return r, nil
}

// Verify validates one attribute of a batch request. A nil return means
// the attribute is acceptable; attr.Value may have been replaced with an
// equivalent expanded or normalized form. Attributes the registry does
// not recognize are accepted unchanged; the broader server-side validator
// owns them.
func (r *Registry) Verify(ctx context.Context, req Request, attr *attribute.Attribute) error {
	if attr == nil {
		return apperrors.New(apperrors.ErrCodeInternal, "nil attribute")
	}

	kind := attribute.KindOf(attr)
	start := time.Now()

	var (
		rewritten string
		err       error
	)
	switch kind {
	case attribute.KindUnknown:
		// Default policy: unknown attributes are deferred to the server.
	case attribute.KindResource:
		err = r.verifyResource(req, attr.Name, attr.Resource, attr.Value)
	case attribute.KindUserList:
		err = r.verifyUserList(req, attr.Value)
	case attribute.KindAuthorizedUsers:
		err = r.verifyAuthorizedUsers(attr.Value)
	case attribute.KindDependList:
		rewritten, err = r.verifyDependList(attr.Value)
	case attribute.KindPath:
		rewritten, err = r.verifyPath(attr.Value)
	case attribute.KindArrayRange:
		err = r.verifyArrayRange(attr.Value)
	case attribute.KindJobName:
		err = r.verifyJobName(req, attr.Value)
	case attribute.KindCheckpoint:
		err = r.verifyCheckpoint(req, attr)
	case attribute.KindHold:
		err = r.verifyHold(attr.Value)
	case attribute.KindJoinPath:
		err = r.verifyJoinPath(attr.Value)
	case attribute.KindKeepFiles:
		err = r.verifyKeepFiles(attr.Value)
	case attribute.KindMailPoints:
		rewritten, err = r.verifyMailPoints(req, attr.Value)
	case attribute.KindMailUsers:
		err = r.verifyMailUsers(attr.Value)
	case attribute.KindShellPathList:
		err = r.verifyShellPathList(attr.Value)
	case attribute.KindPriority:
		err = r.verifyPriority(req, attr.Value)
	case attribute.KindSandbox:
		err = r.verifySandbox(attr.Value)
	case attribute.KindStageList:
		err = r.verifyStageList(attr.Value)
	case attribute.KindCredName:
		err = r.verifyCredName(attr.Value)
	case attribute.KindZeroOrPositive:
		err = r.verifyZeroOrPositive(attr.Value)
	case attribute.KindNonZeroPositive:
		err = r.verifyNonZeroPositive(attr.Value)
	case attribute.KindMinLicenses:
		err = r.verifyLicenseBound(attr.Value, apperrors.ErrCodeLicenseMinBadValue)
	case attribute.KindMaxLicenses:
		err = r.verifyLicenseBound(attr.Value, apperrors.ErrCodeLicenseMaxBadValue)
	case attribute.KindLicenseLinger:
		err = r.verifyLicenseLinger(attr.Value)
	case attribute.KindManagerACL:
		err = r.verifyManagerACL(ctx, attr.Value)
	case attribute.KindQueueType:
		err = r.verifyQueueType(attr.Value)
	case attribute.KindJobState:
		err = r.verifyJobState(req, attr.Value)
	case attribute.KindSelectSpec:
		err = r.verifySelect(req, attr.Name, attr.Value)
	case attribute.KindPreemptTargets:
		err = r.verifyPreemptTargets(req, attr.Value)
	}

	observeVerification(attr.Name, err, time.Since(start))

	if err != nil {
		slog.Debug("attribute rejected",
			"attribute", attr.Name,
			"resource", attr.Resource,
			"request", string(req.Kind),
			"code", string(apperrors.CodeOf(err)))
		return err
	}

	// The swap is the last step so a failed verifier never leaves a
	// partially rewritten value behind.
	if rewritten != "" && rewritten != attr.Value {
		attr.Value = rewritten
	}
	return nil
}
