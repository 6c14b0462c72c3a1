package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/swiftlint-go/internal/ui/pretty"
	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "clean",
			stats: runner.Stats{FilesProcessed: 4},
			want:  "Done linting! Found 0 violations (4 files checked)\n",
		},
		{
			name:  "clean after corrections",
			stats: runner.Stats{FilesProcessed: 1, CorrectionsApplied: 3, FilesModified: 1},
			want:  "Done linting! Found 0 violations (1 file checked), 3 corrected in 1 file\n",
		},
		{
			name: "mixed severities",
			stats: runner.Stats{
				Violations:           12,
				FilesWithViolations:  3,
				ViolationsBySeverity: map[config.Severity]int{config.SeverityError: 4, config.SeverityWarning: 8},
			},
			want: "Done linting! Found 12 violations (4 serious, 8 warnings) in 3 files\n",
		},
		{
			name: "single warning with fix cap",
			stats: runner.Stats{
				Violations:           1,
				FilesWithViolations:  1,
				FilesAtFixCap:        1,
				ViolationsBySeverity: map[config.Severity]int{config.SeverityWarning: 1},
			},
			want: "Done linting! Found 1 violation (1 warning) in 1 file, 1 file did not settle\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()
	styles := pretty.NewStyles(false)

	tests := []struct {
		name    string
		stats   runner.Stats
		want    []string
		notWant []string
	}{
		{
			name: "errors",
			stats: runner.Stats{
				FilesProcessed:       10,
				FilesWithViolations:  3,
				Violations:           5,
				ViolationsBySeverity: map[config.Severity]int{config.SeverityError: 2, config.SeverityWarning: 3},
			},
			want: []string{"Summary", "Files linted:", "10", "With violations:", "Errors:", "Warnings:", "Lint failed with errors"},
		},
		{
			name: "warnings only",
			stats: runner.Stats{
				FilesProcessed:       2,
				Violations:           5,
				ViolationsBySeverity: map[config.Severity]int{config.SeverityWarning: 5},
			},
			want:    []string{"Lint completed with warnings"},
			notWant: []string{"Errors:"},
		},
		{
			name:    "clean with corrections",
			stats:   runner.Stats{FilesProcessed: 2, FilesModified: 1, FilesCached: 1},
			want:    []string{"Files corrected:", "From cache:", "Lint passed"},
			notWant: []string{"With violations:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := styles.FormatSummary(tt.stats)
			for _, want := range tt.want {
				assert.Contains(t, got, want)
			}
			for _, notWant := range tt.notWant {
				assert.NotContains(t, got, notWant)
			}
		})
	}
}
