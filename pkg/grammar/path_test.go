package grammar

import "testing"

func TestPreparePath(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{"plain path", "/home/user/out.log", "/home/user/out.log", false},
		{"cleaned", "/home/user/../user/./out.log", "/home/user/out.log", false},
		{"host qualified", "fe1:/scratch/out", "fe1:/scratch/out", false},
		{"host with dots", "fe1.cluster.example:/out", "fe1.cluster.example:/out", false},
		{"relative", "out/../err.log", "err.log", false},
		{"empty", "", "", true},
		{"blank", "   ", "", true},
		{"empty path part", "fe1:", "", true},
		{"stray colon", "fe1:/a:/b", "", true},
		{"bad host", "f e1:/out", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PreparePath(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("PreparePath(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("PreparePath(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestPreparePathIdempotent(t *testing.T) {
	prepared, err := PreparePath("fe1:/scratch/a/../b/./out")
	if err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	again, err := PreparePath(prepared)
	if err != nil {
		t.Fatalf("re-prepare failed: %v", err)
	}
	if again != prepared {
		t.Fatalf("preparation is not idempotent: %q -> %q", prepared, again)
	}
}
