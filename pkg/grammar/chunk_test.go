package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPlusSpec(t *testing.T) {
	chunks, err := SplitPlusSpec("1:ncpus=2+2:ncpus=1:mem=4gb")
	assert.NoError(t, err)
	assert.Equal(t, []string{"1:ncpus=2", "2:ncpus=1:mem=4gb"}, chunks)

	_, err = SplitPlusSpec("1:ncpus=2++mem=1gb")
	assert.Error(t, err)

	_, err = SplitPlusSpec("")
	assert.Error(t, err)
}

func TestParseChunk(t *testing.T) {
	tests := []struct {
		name      string
		chunk     string
		wantCount int
		wantPairs []KV
		wantErr   bool
	}{
		{
			name:      "count and pairs",
			chunk:     "2:ncpus=4:mem=8gb",
			wantCount: 2,
			wantPairs: []KV{{Key: "ncpus", Value: "4"}, {Key: "mem", Value: "8gb"}},
		},
		{
			name:      "implicit count",
			chunk:     "ncpus=1",
			wantCount: 1,
			wantPairs: []KV{{Key: "ncpus", Value: "1"}},
		},
		{
			name:      "bare count",
			chunk:     "4",
			wantCount: 4,
		},
		{name: "zero count", chunk: "0:ncpus=1", wantErr: true},
		{name: "missing equals", chunk: "2:ncpus", wantErr: true},
		{name: "empty key", chunk: "=4", wantErr: true},
		{name: "bad key char", chunk: "nc pus=4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, pairs, err := ParseChunk(tt.chunk)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantCount, count)
			assert.Equal(t, tt.wantPairs, pairs)
		})
	}
}
