package verifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbatch/batchadmit/pkg/attribute"
	apperrors "github.com/openbatch/batchadmit/pkg/errors"
)

// failingReporter simulates an unreadable error text catalog.
type failingReporter struct{}

func (failingReporter) Text(apperrors.ErrorCode) (string, error) {
	return "", apperrors.New(apperrors.ErrCodeSystem, "error catalog unavailable")
}

func resourceAttr(resc, value string) *attribute.Attribute {
	return &attribute.Attribute{Name: attribute.AttrResourceList, Resource: resc, Value: value}
}

func TestVerifyResourceDatatypes(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()
	req := Request{Kind: attribute.SubmitJob, Object: attribute.ObjectJob}

	tests := []struct {
		name   string
		attr   *attribute.Attribute
		wantOK bool
	}{
		{"long ok", resourceAttr("ncpus", "8"), true},
		{"long malformed", resourceAttr("ncpus", "eight"), false},
		{"long negative", resourceAttr("ncpus", "-2"), false},
		{"nodect zero", resourceAttr("nodect", "0"), false},
		{"nodect positive", resourceAttr("nodect", "4"), true},
		{"size suffix", resourceAttr("mem", "2gb"), true},
		{"size bare letter", resourceAttr("mem", "512m"), true},
		{"size malformed", resourceAttr("mem", "2xb"), false},
		{"duration", resourceAttr("walltime", "01:30:00"), true},
		{"duration too many fields", resourceAttr("walltime", "1:2:3:4"), false},
		{"boolean", resourceAttr("exclusive", "true"), true},
		{"boolean malformed", resourceAttr("exclusive", "maybe"), false},
		{"string", resourceAttr("arch", "linux"), true},
		{"nice may be negative", resourceAttr("nice", "-10"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Verify(ctx, req, tt.attr)
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, apperrors.ErrCodeBadValue, apperrors.CodeOf(err))
			}
		})
	}
}

func TestVerifyResourceUnknownAccepted(t *testing.T) {
	r := newTestRegistry(t)
	attr := resourceAttr("site_gres", "whatever")
	err := r.Verify(context.Background(), Request{Kind: attribute.SubmitJob}, attr)
	assert.NoError(t, err)
}

func TestVerifyResourceComposesMessage(t *testing.T) {
	r := newTestRegistry(t)
	attr := resourceAttr("ncpus", "-1")
	err := r.Verify(context.Background(), Request{Kind: attribute.SubmitJob}, attr)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeBadValue, apperrors.CodeOf(err))
	assert.Equal(t, "Illegal attribute or resource value Resource_List.ncpus", apperrors.MessageOf(err))
}

func TestVerifyResourceReporterFailureIsFatal(t *testing.T) {
	r := newTestRegistry(t, WithReporter(failingReporter{}))
	attr := resourceAttr("ncpus", "-1")
	err := r.Verify(context.Background(), Request{Kind: attribute.SubmitJob}, attr)
	require.Error(t, err)
	assert.True(t, apperrors.IsSystem(err), "a broken reporter must surface as a system failure, not a rejection")
	assert.Equal(t, apperrors.ErrCodeSystem, apperrors.CodeOf(err))
}
