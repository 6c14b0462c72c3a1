package rules

import (
	"strings"

	"github.com/yaklabco/swiftlint-go/pkg/fix"
	"github.com/yaklabco/swiftlint-go/pkg/lint"
	"github.com/yaklabco/swiftlint-go/pkg/source"
	"github.com/yaklabco/swiftlint-go/pkg/syntax"
)

// sugaredType is a standard library generic with shorthand syntax.
type sugaredType struct {
	name      string
	arity     int
	sugared   string
	desugared string
}

//nolint:gochecknoglobals // Read-only table.
var sugaredTypes = map[string]sugaredType{
	"Array":      {name: "Array", arity: 1, sugared: "[Int]", desugared: "Array<Int>"},
	"Dictionary": {name: "Dictionary", arity: 2, sugared: "[String: Int]", desugared: "Dictionary<String, Int>"},
	"Optional":   {name: "Optional", arity: 1, sugared: "Int?", desugared: "Optional<Int>"},
}

// SyntacticSugarRule flags Array<T>, Dictionary<K, V> and Optional<T> and
// rewrites them to [T], [K: V] and T?.
type SyntacticSugarRule struct {
	lint.BaseRule
}

// NewSyntacticSugarRule creates the rule.
func NewSyntacticSugarRule() lint.Rule {
	return &SyntacticSugarRule{
		BaseRule: lint.NewBaseRule(
			"syntactic_sugar",
			"Syntactic Sugar",
			"Shorthand syntactic sugar should be used, i.e. [Int] instead of Array<Int>",
			lint.KindIdiomatic,
		),
	}
}

// Kinds implements lint.VisitorRule.
func (r *SyntacticSugarRule) Kinds() []syntax.Kind {
	return []syntax.Kind{syntax.KindIdentifierType, syntax.KindMemberType, syntax.KindGenericSpecializationExpr}
}

// NewVisitor implements lint.VisitorRule.
func (r *SyntacticSugarRule) NewVisitor(_ *lint.RuleContext, report *lint.Report) lint.Visitor {
	return syntax.VisitorFuncs{Pre: func(n syntax.Node) syntax.Action {
		if st, ok := desugared(n); ok {
			report.AtNode(n, "Shorthand syntactic sugar should be used, i.e. "+st.sugared+" instead of "+st.desugared)
		}
		return syntax.VisitChildren
	}}
}

// Correct implements lint.CorrectableRule. Only the outermost sugared type
// of a nest is rewritten; its replacement already sugars the inner ones.
func (r *SyntacticSugarRule) Correct(rc *lint.RuleContext, b *fix.Builder) error {
	for _, kind := range r.Kinds() {
		for _, n := range rc.NodesOfKind(kind) {
			if _, ok := desugared(n); !ok || hasSugaredAncestor(n) {
				continue
			}
			b.ReplaceNode(n, sugar(n))
		}
	}
	return nil
}

// desugared reports whether n spells a sugared type in long form.
func desugared(n syntax.Node) (sugaredType, bool) {
	name, args, ok := genericParts(n)
	if !ok {
		return sugaredType{}, false
	}
	st, known := sugaredTypes[name]
	if !known || len(args) != st.arity {
		return sugaredType{}, false
	}
	if n.Kind() == syntax.KindGenericSpecializationExpr && isMetatypeAccess(n) {
		return sugaredType{}, false
	}
	return st, true
}

// genericParts splits a generic type into its base name and arguments.
// "Swift.Array<Int>" yields "Array".
func genericParts(n syntax.Node) (string, []syntax.Node, bool) {
	clause := n.FirstChildOfKind(syntax.KindGenericArgumentClause)
	if !clause.IsValid() {
		return "", nil, false
	}

	var name string
	switch n.Kind() {
	case syntax.KindIdentifierType:
		name = n.Child(0).Text()
	case syntax.KindMemberType:
		base := n.Child(0)
		if base.Kind() != syntax.KindIdentifierType || base.Text() != "Swift" {
			return "", nil, false
		}
		name = n.Child(2).Text()
	case syntax.KindGenericSpecializationExpr:
		name = strings.TrimPrefix(n.Child(0).Text(), "Swift.")
	default:
		return "", nil, false
	}
	return name, clause.ChildrenOfKind(syntax.KindGenericArgument), true
}

// isMetatypeAccess reports uses like Array<Int>.self where the long form is required.
func isMetatypeAccess(n syntax.Node) bool {
	parent := n.Parent()
	if parent.Kind() != syntax.KindMemberAccessExpr {
		return false
	}
	last, ok := parent.LastToken()
	if !ok {
		return false
	}
	switch string(n.Tree().Text().Slice(last.Range)) {
	case "self", "Type", "none", "Index":
		return true
	}
	return false
}

func hasSugaredAncestor(n syntax.Node) bool {
	for cur := n.Parent(); cur.IsValid(); cur = cur.Parent() {
		if _, ok := desugared(cur); ok {
			return true
		}
	}
	return false
}

// sugar renders n in shorthand, recursing into generic arguments.
func sugar(n syntax.Node) string {
	st, ok := desugared(n)
	if !ok {
		return sugarInner(n)
	}
	_, args, _ := genericParts(n)
	inner := make([]string, len(args))
	for i, arg := range args {
		inner[i] = sugarArgument(arg)
	}

	switch st.name {
	case "Array":
		return "[" + inner[0] + "]"
	case "Dictionary":
		return "[" + inner[0] + ": " + inner[1] + "]"
	default:
		if needsParens(args[0]) {
			return "(" + inner[0] + ")?"
		}
		return inner[0] + "?"
	}
}

// sugarArgument renders a generic argument without its trailing comma.
func sugarArgument(arg syntax.Node) string {
	types := arg.NonTokenChildren()
	if len(types) == 0 {
		return strings.TrimSuffix(strings.TrimSpace(arg.Text()), ",")
	}
	return sugar(types[0])
}

// sugarInner rewrites sugared types nested inside a type that is not itself sugared.
func sugarInner(n syntax.Node) string {
	text := n.Tree().Text()
	var sb strings.Builder
	pos := n.Start()
	var walk func(c syntax.Node)
	walk = func(c syntax.Node) {
		if _, ok := desugared(c); ok {
			sb.Write(text.Slice(source.Range{Start: pos, End: c.Start()}))
			sb.WriteString(sugar(c))
			pos = c.End()
			return
		}
		for _, child := range c.Children() {
			walk(child)
		}
	}
	for _, child := range n.Children() {
		walk(child)
	}
	sb.Write(text.Slice(source.Range{Start: pos, End: n.End()}))
	return sb.String()
}

// needsParens reports whether an optional's wrapped type must be parenthesized.
func needsParens(arg syntax.Node) bool {
	types := arg.NonTokenChildren()
	return len(types) > 0 && types[0].Is(syntax.KindFunctionType, syntax.KindSomeOrAnyType)
}

// Examples implements lint.ExampleProvider.
func (r *SyntacticSugarRule) Examples() lint.Examples {
	return lint.Examples{
		NonTriggering: []string{
			"let x: [Int]",
			"let x: [Int: String]",
			"let x: Int?",
			"func x(a: [Int], b: Int) -> [Int: Any]",
			"let x: Int!",
			"let x = Dictionary<Int, String>.self",
			"let x: Box<[Int]>",
		},
		Triggering: []string{
			"let x: ↓Array<String>",
			"let x: ↓Dictionary<Int, String>",
			"let x: ↓Optional<Int>",
			"let x: ↓Swift.Optional<String>",
			"func x(a: ↓Array<Int>, b: Int) -> [Int: Any]",
			"let x = ↓Array<String>()",
			"let x = ↓Array<String>.array(of: object)",
			"let x: ↓Array<↓Array<Int>>",
			"let x: Box<↓Array<Int>>",
		},
		Corrections: []lint.CorrectionExample{
			{Before: "let x: ↓Array<String>", After: "let x: [String]"},
			{Before: "let x: ↓Dictionary<Int, String>", After: "let x: [Int: String]"},
			{Before: "let x: ↓Optional<Int>", After: "let x: Int?"},
			{Before: "let x: ↓Array<↓Optional<Int>>", After: "let x: [Int?]"},
			{Before: "let x: ↓Dictionary<String, ↓Array<Int>>", After: "let x: [String: [Int]]"},
			{Before: "let x = ↓Array<String>()", After: "let x = [String]()"},
			{Before: "let x: ↓Optional<() -> Void>", After: "let x: (() -> Void)?"},
			{Before: "let x: Box<↓Array<Int>>", After: "let x: Box<[Int]>"},
		},
	}
}
