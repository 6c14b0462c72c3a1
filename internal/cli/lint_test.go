package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/swiftlint-go/internal/cli"
)

func TestLintCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	lintCmd, _, err := cmd.Find([]string{"lint"})
	require.NoError(t, err)

	tests := []struct {
		flag    string
		wantDef string
	}{
		{flag: "fix", wantDef: "false"},
		{flag: "dry-run", wantDef: "false"},
		{flag: "strict", wantDef: "false"},
		{flag: "lenient", wantDef: "false"},
		{flag: "reporter", wantDef: ""},
		{flag: "jobs", wantDef: "0"},
		{flag: "no-cache", wantDef: "false"},
		{flag: "cache-path", wantDef: ""},
		{flag: "enable", wantDef: "[]"},
		{flag: "disable", wantDef: "[]"},
		{flag: "fix-rules", wantDef: "[]"},
		{flag: "rule-format", wantDef: "id"},
		{flag: "metrics-file", wantDef: ""},
		{flag: "watch", wantDef: "false"},
		{flag: "debounce", wantDef: "300ms"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			t.Parallel()
			flag := lintCmd.Flags().Lookup(tt.flag)
			require.NotNil(t, flag)
			assert.Equal(t, tt.wantDef, flag.DefValue)
		})
	}
}

func TestLintReporterFlagListsFormats(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	lintCmd, _, err := cmd.Find([]string{"lint"})
	require.NoError(t, err)

	usage := lintCmd.Flags().Lookup("reporter").Usage
	for _, name := range []string{"xcode", "json", "checkstyle", "sarif", "summary", "github-actions-logging", "diff"} {
		assert.Contains(t, usage, name)
	}
}

func TestLintCommandAcceptsArbitraryArgs(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	lintCmd, _, err := cmd.Find([]string{"lint"})
	require.NoError(t, err)

	assert.NoError(t, lintCmd.Args(lintCmd, []string{"Sources", "Tests/AppTests.swift"}))
}
