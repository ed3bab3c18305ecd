package verifier

import (
	"context"
	"fmt"
	"testing"

	"github.com/openbatch/batchadmit/pkg/attribute"
	apperrors "github.com/openbatch/batchadmit/pkg/errors"
)

// mapResolver resolves hosts from a fixed table.
type mapResolver map[string]string

func (m mapResolver) FullHostName(_ context.Context, host string) (string, error) {
	full, ok := m[host]
	if !ok {
		return "", fmt.Errorf("host %q not found", host)
	}
	return full, nil
}

func TestVerifyManagerACL(t *testing.T) {
	resolver := mapResolver{
		"fe1.cluster.example.com": "fe1.cluster.example.com",
		"FE2.cluster.example.com": "fe2.cluster.example.com",
		"fe3":                     "fe3.cluster.example.com",
	}
	r := newTestRegistry(t, WithResolver(resolver))

	tests := []struct {
		name     string
		value    string
		wantCode apperrors.ErrorCode
	}{
		{"fully qualified", "root@fe1.cluster.example.com", ""},
		{"case differs from canonical", "admin@FE2.cluster.example.com", ""},
		{"wildcard host", "admin@*", ""},
		{"wildcard domain", "admin@*.cluster.example.com", ""},
		{"several entries", "root@fe1.cluster.example.com, admin@*", ""},
		{"short name", "root@fe3", apperrors.ErrCodeBadHost},
		{"unknown host", "root@nowhere.example.com", apperrors.ErrCodeBadHost},
		{"missing host part", "root", apperrors.ErrCodeBadHost},
		{"bad entry after good", "admin@*,root@nowhere.example.com", apperrors.ErrCodeBadHost},
		{"empty", "", apperrors.ErrCodeBadValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr := &attribute.Attribute{Name: "managers", Value: tt.value}
			err := r.Verify(context.Background(), Request{Kind: attribute.Manager, Object: attribute.ObjectServer}, attr)
			if apperrors.CodeOf(err) != tt.wantCode {
				t.Fatalf("managers %q: code = %v, want %v", tt.value, apperrors.CodeOf(err), tt.wantCode)
			}
		})
	}
}

func TestVerifyManagerACLResolverSeesContext(t *testing.T) {
	done := make(chan struct{}, 1)
	resolver := contextCheckResolver{done: done}
	r := newTestRegistry(t, WithResolver(resolver))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	attr := &attribute.Attribute{Name: "operators", Value: "ops@fe1.cluster.example.com"}
	if err := r.Verify(ctx, Request{Kind: attribute.Manager}, attr); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	select {
	case <-done:
	default:
		t.Fatal("resolver was not invoked")
	}
}

type contextCheckResolver struct {
	done chan struct{}
}

func (c contextCheckResolver) FullHostName(ctx context.Context, host string) (string, error) {
	if ctx == nil {
		return "", fmt.Errorf("nil context")
	}
	c.done <- struct{}{}
	return host, nil
}
