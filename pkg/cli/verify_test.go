package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/openbatch/batchadmit/pkg/attribute"
	apperrors "github.com/openbatch/batchadmit/pkg/errors"
	"github.com/openbatch/batchadmit/pkg/rescdef"
	"github.com/openbatch/batchadmit/pkg/verifier"
)

func testAttr(resource string) *attribute.Attribute {
	return &attribute.Attribute{Name: attribute.AttrResourceList, Resource: resource, Value: "1"}
}

func writeRequestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func testTables(t *testing.T) (*verifier.Registry, *rescdef.Table) {
	t.Helper()
	registry, err := verifier.New()
	if err != nil {
		t.Fatalf("verifier.New failed: %v", err)
	}
	resources, err := rescdef.ServerResources()
	if err != nil {
		t.Fatalf("loading resources failed: %v", err)
	}
	return registry, resources
}

func TestVerifyFile(t *testing.T) {
	registry, resources := testTables(t)

	path := writeRequestFile(t, "submit.yaml", `
requestKind: submit-job
objectKind: job
attributes:
  - name: Priority
    value: "10"
  - name: Hold_Types
    value: "pn"
  - name: Resource_List
    resource: ncpus
    value: "4"
`)

	report, err := verifyFile(context.Background(), registry, resources, path)
	if err != nil {
		t.Fatalf("verifyFile failed: %v", err)
	}

	if report.Accepted != 2 || report.Rejected != 1 {
		t.Fatalf("accepted/rejected = %d/%d, want 2/1", report.Accepted, report.Rejected)
	}
	if report.Results[1].Code != string(apperrors.ErrCodeBadValue) {
		t.Fatalf("rejection code = %q, want %q", report.Results[1].Code, apperrors.ErrCodeBadValue)
	}
}

func TestVerifyFileJSONInput(t *testing.T) {
	registry, resources := testTables(t)

	path := writeRequestFile(t, "submit.json",
		`{"requestKind": "submit-job", "attributes": [{"name": "depend", "value": "AfterOK:12"}]}`)

	report, err := verifyFile(context.Background(), registry, resources, path)
	if err != nil {
		t.Fatalf("verifyFile failed: %v", err)
	}
	if report.Accepted != 1 {
		t.Fatalf("accepted = %d, want 1", report.Accepted)
	}
	if report.Results[0].Value != "afterok:12" {
		t.Fatalf("value = %q, want rewritten form", report.Results[0].Value)
	}
}

func TestVerifyFileErrors(t *testing.T) {
	registry, resources := testTables(t)

	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"unknown kind", "requestKind: fly\nattributes: []\n", "unknown request kind"},
		{"not yaml", ":\n  - {", "decoding"},
		{"null attribute", "requestKind: submit-job\nattributes:\n  - ~\n", "null attribute"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeRequestFile(t, "bad.yaml", tt.content)
			_, err := verifyFile(context.Background(), registry, resources, path)
			if err == nil || !strings.Contains(err.Error(), tt.errPart) {
				t.Fatalf("error = %v, want containing %q", err, tt.errPart)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := verifyFile(context.Background(), registry, resources, "/no/such/file.yaml")
		if err == nil {
			t.Fatal("expected error for missing file")
		}
	})
}

func TestResourceHint(t *testing.T) {
	_, resources := testTables(t)

	tests := []struct {
		name     string
		resource string
		wantPart string
	}{
		{"known resource", "ncpus", ""},
		{"no resource", "", ""},
		{"typo suggests closest", "ncpu", `closest known resource is "ncpus"`},
		{"far off", "quantum_flux_capacitors", "unknown resource"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr := testAttr(tt.resource)
			got := resourceHint(resources, attr)
			if tt.wantPart == "" {
				if got != "" {
					t.Fatalf("hint = %q, want none", got)
				}
				return
			}
			if !strings.Contains(got, tt.wantPart) {
				t.Fatalf("hint = %q, want containing %q", got, tt.wantPart)
			}
		})
	}
}

func TestVerifyCommandFailOnReject(t *testing.T) {
	path := writeRequestFile(t, "submit.yaml", `
requestKind: submit-job
attributes:
  - name: Hold_Types
    value: "pn"
`)
	out := filepath.Join(t.TempDir(), "results.json")

	root := &cli.Command{
		Name:     "test",
		Commands: []*cli.Command{verifyCmd()},
	}
	err := root.Run(context.Background(),
		[]string{"test", "verify", "-f", path, "-o", out, "--fail-on-reject"})
	if err == nil || !strings.Contains(err.Error(), "rejected") {
		t.Fatalf("error = %v, want rejection failure", err)
	}

	// Without the flag the same input succeeds.
	out2 := filepath.Join(t.TempDir(), "results2.json")
	err = root.Run(context.Background(),
		[]string{"test", "verify", "-f", path, "-o", out2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(out2); err != nil {
		t.Fatalf("expected results file: %v", err)
	}
}

func TestVerifyCommandUnknownFormat(t *testing.T) {
	root := &cli.Command{
		Name:     "test",
		Commands: []*cli.Command{verifyCmd()},
	}
	err := root.Run(context.Background(),
		[]string{"test", "verify", "-f", "whatever.yaml", "--format", "xml"})
	if err == nil || !strings.Contains(err.Error(), "unknown output format") {
		t.Fatalf("error = %v, want unknown format", err)
	}
}
