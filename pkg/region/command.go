// Package region builds the table of rule suppression regions declared by
// `swiftlint:disable` and `swiftlint:enable` comments.
package region

import (
	"math"
	"strings"

	"github.com/yaklabco/swiftlint-go/pkg/source"
)

// All is the identifier that matches every rule.
const All = "all"

// Prefix starts every directive.
const Prefix = "swiftlint:"

// commentDelimiter separates rule identifiers from a free-form explanation.
const commentDelimiter = " - "

// Action is the verb of a directive.
type Action uint8

const (
	ActionInvalid Action = iota
	ActionEnable
	ActionDisable
)

// String returns the directive spelling of the action.
func (a Action) String() string {
	switch a {
	case ActionEnable:
		return "enable"
	case ActionDisable:
		return "disable"
	default:
		return "invalid"
	}
}

// Inverse returns the action that cancels a.
func (a Action) Inverse() Action {
	switch a {
	case ActionEnable:
		return ActionDisable
	case ActionDisable:
		return ActionEnable
	default:
		return ActionInvalid
	}
}

// Modifier narrows the scope of a directive to a single line.
type Modifier uint8

const (
	ModifierNone Modifier = iota
	ModifierPrevious
	ModifierThis
	ModifierNext
	ModifierInvalid
)

// String returns the directive spelling of the modifier.
func (m Modifier) String() string {
	switch m {
	case ModifierNone:
		return ""
	case ModifierPrevious:
		return "previous"
	case ModifierThis:
		return "this"
	case ModifierNext:
		return "next"
	default:
		return "invalid"
	}
}

func parseModifier(s string) Modifier {
	switch s {
	case "previous":
		return ModifierPrevious
	case "this":
		return ModifierThis
	case "next":
		return ModifierNext
	default:
		return ModifierInvalid
	}
}

// Location is a (line, column) pair used to order directives and regions.
// Lines are 1-based; columns are 1-based byte columns. Column 0 is the start of
// a line and MaxColumn is past its end.
type Location struct {
	Line   int
	Column int
}

// MaxColumn is past the end of any line.
const MaxColumn = math.MaxInt

// EndOfFile is past every location in a file.
//
//nolint:gochecknoglobals // Sentinel value.
var EndOfFile = Location{Line: math.MaxInt, Column: MaxColumn}

// LocationOf converts a source location to a region location.
func LocationOf(loc source.Location) Location {
	return Location{Line: loc.Line, Column: loc.Column}
}

// Compare orders locations by line, then column.
func (l Location) Compare(other Location) int {
	switch {
	case l.Line < other.Line:
		return -1
	case l.Line > other.Line:
		return 1
	case l.Column < other.Column:
		return -1
	case l.Column > other.Column:
		return 1
	default:
		return 0
	}
}

// Less reports whether l sorts before other.
func (l Location) Less(other Location) bool {
	return l.Compare(other) < 0
}

// Command is one parsed directive.
type Command struct {
	Action   Action
	Modifier Modifier
	// IDs are the rule identifiers in the order written, duplicates removed.
	IDs []string
	// Location is where the directive takes effect. For a parsed directive
	// it is the end of the directive text.
	Location Location
	// Range is the byte range of the directive text in the source, if known.
	Range source.Range
	// TrailingComment is the text after " - ", if any.
	TrailingComment string
}

// ParseCommand parses directive text such as
// "swiftlint:disable:next force_cast - reason". The leading prefix is optional.
func ParseCommand(text string, loc Location) Command {
	cmd := Command{Location: loc}

	text = strings.TrimPrefix(strings.TrimSpace(text), Prefix)
	head, rest, _ := strings.Cut(text, " ")

	actionText, modifierText, hasModifier := strings.Cut(head, ":")
	switch actionText {
	case "enable":
		cmd.Action = ActionEnable
	case "disable":
		cmd.Action = ActionDisable
	default:
		return cmd
	}
	if hasModifier {
		cmd.Modifier = parseModifier(modifierText)
	}

	// The delimiter is searched with its leading space restored so that
	// "disable foo - why" splits even though Cut consumed one space.
	rest = " " + rest
	if idx := strings.Index(rest, commentDelimiter); idx >= 0 {
		cmd.TrailingComment = rest[idx+len(commentDelimiter):]
		rest = rest[:idx]
	}

	seen := make(map[string]bool)
	for _, field := range strings.Fields(rest) {
		if field == "*/" || seen[field] {
			continue
		}
		seen[field] = true
		cmd.IDs = append(cmd.IDs, field)
	}
	return cmd
}

// IsValid reports whether the command has a known action and modifier and names at least one rule.
func (c Command) IsValid() bool {
	return c.Action != ActionInvalid && c.Modifier != ModifierInvalid && len(c.IDs) > 0
}

// Names reports whether the command lists id.
func (c Command) Names(id string) bool {
	for _, got := range c.IDs {
		if got == id {
			return true
		}
	}
	return false
}

// Expand rewrites a line-scoped command into a pair of unmodified commands:
// the action at the start of the target line and its inverse past the end.
// Commands without a modifier expand to themselves; invalid ones to nothing.
func (c Command) Expand() []Command {
	if !c.IsValid() {
		return nil
	}

	line := c.Location.Line
	switch c.Modifier {
	case ModifierNone:
		return []Command{c}
	case ModifierPrevious:
		line--
	case ModifierNext:
		line++
	case ModifierThis:
	default:
		return nil
	}

	start := c
	start.Modifier = ModifierNone
	start.Location = Location{Line: line, Column: 0}

	end := start
	end.Action = c.Action.Inverse()
	end.Location = Location{Line: line, Column: MaxColumn}

	return []Command{start, end}
}

// String renders the command in directive form.
func (c Command) String() string {
	var sb strings.Builder
	sb.WriteString(Prefix)
	sb.WriteString(c.Action.String())
	if c.Modifier != ModifierNone {
		sb.WriteByte(':')
		sb.WriteString(c.Modifier.String())
	}
	for _, id := range c.IDs {
		sb.WriteByte(' ')
		sb.WriteString(id)
	}
	return sb.String()
}
