package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func TestPrintStats(t *testing.T) {
	tests := []struct {
		name  string
		stats runStats
		want  []string
		not   []string
	}{
		{
			name:  "fresh",
			stats: runStats{Tiles: 3, Drawn: 2},
			want:  []string{"3 tiles", "2 connections", "fresh"},
			not:   []string{"skipped", "cached"},
		},
		{
			name:  "cached with skips",
			stats: runStats{Tiles: 4, Drawn: 1, Skipped: 2, Cached: true},
			want:  []string{"4 tiles", "1 connections", "2 skipped", "cached"},
			not:   []string{"fresh"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureStdout(t)
			printStats(tt.stats)

			line := out.String()
			assert.Equal(t, 1, strings.Count(line, "\n"))
			for _, w := range tt.want {
				assert.Contains(t, line, w)
			}
			for _, n := range tt.not {
				assert.NotContains(t, line, n)
			}
		})
	}
}

func TestStatusLines(t *testing.T) {
	out := captureStdout(t)

	printSuccess("Routing complete")
	printWarning("%d connections skipped", 2)
	printFile("board.routes.json")
	printNextStep("Render", "tilewire render board.json")

	got := out.String()
	assert.Contains(t, got, "✓ Routing complete")
	assert.Contains(t, got, "2 connections skipped")
	assert.Contains(t, got, "board.routes.json")
	assert.Contains(t, got, "tilewire render board.json")
}
