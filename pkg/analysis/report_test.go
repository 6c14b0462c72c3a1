package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/swiftlint-go/pkg/config"
)

func TestTotalsHasIssues(t *testing.T) {
	t.Parallel()

	assert.False(t, Totals{Files: 12}.HasIssues())
	assert.True(t, Totals{Issues: 1, Warnings: 1}.HasIssues())
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Options{
		IncludeViolations: true,
		IncludeByFile:     true,
		IncludeByRule:     true,
		SortBy:            SortByCount,
		SortDesc:          true,
		RuleFormat:        config.RuleFormatID,
	}, DefaultOptions())
}

func TestSortFieldIsValid(t *testing.T) {
	t.Parallel()

	for _, f := range []SortField{SortByCount, SortByAlpha, SortBySeverity} {
		assert.True(t, f.IsValid(), f)
	}
	assert.False(t, SortField("line").IsValid())
	assert.False(t, SortField("").IsValid())
}
