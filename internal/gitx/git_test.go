package gitx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChangesCombined(t *testing.T) {
	tests := []struct {
		name    string
		changes Changes
		want    string
	}{
		{"no changes", Changes{}, ""},
		{"whitespace only", Changes{Staged: "\n", Working: "  "}, ""},
		{"staged only", Changes{Staged: "diff --git a/x b/x\n+x\n"}, "diff --git a/x b/x\n+x"},
		{"working first", Changes{Staged: "+staged\n", Working: "+working\n"}, "+working\n+staged"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.changes.Combined())
		})
	}
}

func TestSplitNonEmptyLines(t *testing.T) {
	assert.Equal(t, []string{"a.go", "dir/b.go"}, splitNonEmptyLines("a.go\r\n\n  dir/b.go  \n"))
	assert.Empty(t, splitNonEmptyLines(""))
}
