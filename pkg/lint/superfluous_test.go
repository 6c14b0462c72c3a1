package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftlint-go/pkg/config"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
)

func TestSuperfluousDisableCommand(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantMsg string
	}{
		{
			name:    "nothing to suppress",
			input:   "// swiftlint:disable:next force_cast\nlet x = 1\n",
			want:    []string{lint.SuperfluousDisableCommandID},
			wantMsg: "SwiftLint rule 'force_cast' did not trigger a violation in the disabled region; remove the disable command",
		},
		{
			name:  "suppresses a violation",
			input: "let x = y as! Int // swiftlint:disable:this force_cast\n",
		},
		{
			name:  "region form suppresses a violation",
			input: "// swiftlint:disable force_cast\nlet x = y as! Int\n// swiftlint:enable force_cast\n",
		},
		{
			name:    "unknown rule",
			input:   "// swiftlint:disable:next not_a_rule\nlet x = 1\n",
			want:    []string{lint.SuperfluousDisableCommandID},
			wantMsg: "'not_a_rule' is not a valid SwiftLint rule; remove it from the disable command",
		},
		{
			name:  "all is never superfluous",
			input: "// swiftlint:disable all\nlet x = 1\n",
		},
		{
			name:  "check itself disabled",
			input: "// swiftlint:disable:next force_cast superfluous_disable_command\nlet x = 1\n",
		},
		{
			name:  "enable only",
			input: "// swiftlint:enable force_cast\nlet x = 1\n",
		},
		{
			name:  "renamed identifier suppresses a violation",
			input: "if true {} // swiftlint:disable:this no-constant-condition\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := lintContent(t, newEngine(t, builtinRegistry(), nil), tt.input)
			var got []lint.Violation
			for _, v := range result.Violations {
				if v.RuleID == lint.SuperfluousDisableCommandID {
					got = append(got, v)
				}
			}
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, ruleIDs(got))
			if tt.wantMsg != "" {
				require.NotEmpty(t, got)
				assert.Equal(t, tt.wantMsg, got[0].Reason)
				assert.Equal(t, 1, got[0].Location.Line)
			}
		})
	}
}

func TestSuperfluousDisableCommand_RuleDisabled(t *testing.T) {
	cfg := config.NewConfig()
	cfg.DisabledRules = []string{lint.SuperfluousDisableCommandID}
	result := lintContent(t, newEngine(t, builtinRegistry(), cfg), "// swiftlint:disable:next force_cast\nlet x = 1\n")
	assert.Empty(t, result.Violations)
}
