package lint

import (
	"context"

	"github.com/yaklabco/swiftlint-go/pkg/source"
	"github.com/yaklabco/swiftlint-go/pkg/syntax"
)

// Parser parses Swift source into a syntax tree.
//
// The lint package defines this interface in the consumer package.
// Implementations (e.g., parser/swift) provide the concrete parsing logic.
//
// Implementations must be:
//   - deterministic for a given text,
//   - safe for concurrent use by multiple goroutines,
//   - side-effect free (no I/O, no global state mutation).
type Parser interface {
	// Parse builds a tree over text. A lenient parser returns a tree for any
	// input; an error means the parse was abandoned, e.g. on cancellation.
	// The returned tree must satisfy tree.Text() == text.
	Parse(ctx context.Context, text *source.Text) (*syntax.Tree, error)
}
