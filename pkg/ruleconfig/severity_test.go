package ruleconfig_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/ruleconfig"
)

func intPtr(v int) *int { return &v }

func TestSeverityLevels_Apply(t *testing.T) {
	tests := []struct {
		name        string
		start       ruleconfig.SeverityLevels
		raw         any
		want        ruleconfig.SeverityLevels
		wantNothing bool
		wantErr     bool
	}{
		{
			name:  "warning key clears error",
			start: ruleconfig.Levels(12),
			raw:   map[string]any{"warning": 15},
			want:  ruleconfig.SeverityLevels{Warning: 15},
		},
		{
			name:  "warning key clears existing error",
			start: ruleconfig.Levels(12, 20),
			raw:   map[string]any{"warning": 15},
			want:  ruleconfig.SeverityLevels{Warning: 15},
		},
		{
			name:  "both keys",
			start: ruleconfig.Levels(12),
			raw:   map[string]any{"warning": 15, "error": 30},
			want:  ruleconfig.SeverityLevels{Warning: 15, Error: intPtr(30)},
		},
		{
			name:  "error only keeps warning",
			start: ruleconfig.Levels(12),
			raw:   map[string]any{"error": 30},
			want:  ruleconfig.SeverityLevels{Warning: 12, Error: intPtr(30)},
		},
		{
			name:  "null error clears it",
			start: ruleconfig.Levels(12, 20),
			raw:   map[string]any{"error": nil},
			want:  ruleconfig.SeverityLevels{Warning: 12},
		},
		{
			name:  "bare integer",
			start: ruleconfig.Levels(12, 20),
			raw:   7,
			want:  ruleconfig.SeverityLevels{Warning: 7},
		},
		{
			name:  "single element array",
			start: ruleconfig.Levels(12, 20),
			raw:   []any{8},
			want:  ruleconfig.SeverityLevels{Warning: 8},
		},
		{
			name:  "two element array",
			start: ruleconfig.Levels(12),
			raw:   []any{8, 9},
			want:  ruleconfig.SeverityLevels{Warning: 8, Error: intPtr(9)},
		},
		{
			name:        "empty array",
			start:       ruleconfig.Levels(12),
			raw:         []any{},
			want:        ruleconfig.Levels(12),
			wantErr:     true,
			wantNothing: true,
		},
		{
			name:        "unrelated string",
			start:       ruleconfig.Levels(12),
			raw:         "big",
			want:        ruleconfig.Levels(12),
			wantErr:     true,
			wantNothing: true,
		},
		{
			name:    "invalid warning type is atomic",
			start:   ruleconfig.Levels(12, 20),
			raw:     map[string]any{"warning": "x", "error": 40},
			want:    ruleconfig.Levels(12, 20),
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			levels := tt.start
			err := levels.Apply("rule", tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantNothing, ruleconfig.IsNothingApplied(err))
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, levels)
		})
	}
}

func TestSeverityLevels_Exceeded(t *testing.T) {
	levels := ruleconfig.Levels(10, 20)

	_, _, hit := levels.Exceeded(10)
	assert.False(t, hit)

	sev, threshold, hit := levels.Exceeded(11)
	assert.True(t, hit)
	assert.Equal(t, config.SeverityWarning, sev)
	assert.Equal(t, 10, threshold)

	sev, threshold, hit = levels.Exceeded(21)
	assert.True(t, hit)
	assert.Equal(t, config.SeverityError, sev)
	assert.Equal(t, 20, threshold)

	sev, _, _ = ruleconfig.Levels(10).Exceeded(500)
	assert.Equal(t, config.SeverityWarning, sev)
}

func TestSeverityOption_Apply(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    config.Severity
		wantErr bool
	}{
		{"string", "error", config.SeverityError, false},
		{"mixed case", "Error", config.SeverityError, false},
		{"map", map[string]any{"severity": "error"}, config.SeverityError, false},
		{"unknown word", "fatal", config.SeverityWarning, true},
		{"map without key", map[string]any{"other": 1}, config.SeverityWarning, true},
		{"number", 3, config.SeverityWarning, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt := ruleconfig.SeverityOption{Severity: config.SeverityWarning}
			err := opt.Apply("rule", tt.raw)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, opt.Severity)
		})
	}
}
