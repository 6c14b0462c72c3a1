package lint

import (
	"bytes"
	"sort"
	"strings"
	"unicode"

	"github.com/yaklabco/swiftlint-go/pkg/source"
	"github.com/yaklabco/swiftlint-go/pkg/syntax"
)

// Class is the lexical class of a span of source, as used by
// custom_rules match_kinds.
type Class string

// Lexical classes.
const (
	ClassComment        Class = "comment"
	ClassDocComment     Class = "doccomment"
	ClassString         Class = "string"
	ClassNumber         Class = "number"
	ClassKeyword        Class = "keyword"
	ClassIdentifier     Class = "identifier"
	ClassTypeIdentifier Class = "typeidentifier"
	ClassAttribute      Class = "attribute.builtin"
	ClassPound          Class = "pounddirective"
)

// Classes lists every class name accepted in configuration.
func Classes() []Class {
	return []Class{
		ClassComment, ClassDocComment, ClassString, ClassNumber, ClassKeyword,
		ClassIdentifier, ClassTypeIdentifier, ClassAttribute, ClassPound,
	}
}

// ClassSpan is a classified byte range.
type ClassSpan struct {
	Range source.Range
	Class Class
}

// classify assigns a class to every comment and to every token that has one.
// Punctuation and operators are left unclassified.
func classify(tree *syntax.Tree) []ClassSpan {
	text := tree.Text()
	var spans []ClassSpan
	tokens := tree.Tokens()
	for i, tok := range tokens {
		for _, tr := range tok.Leading {
			if c, ok := triviaClass(tr.Kind); ok {
				spans = append(spans, ClassSpan{Range: tr.Range, Class: c})
			}
		}
		if c, ok := tokenClass(text, tokens, i); ok {
			spans = append(spans, ClassSpan{Range: tok.Range, Class: c})
		}
		for _, tr := range tok.Trailing {
			if c, ok := triviaClass(tr.Kind); ok {
				spans = append(spans, ClassSpan{Range: tr.Range, Class: c})
			}
		}
	}
	return spans
}

func triviaClass(k syntax.TriviaKind) (Class, bool) {
	switch k {
	case syntax.TriviaLineComment, syntax.TriviaBlockComment:
		return ClassComment, true
	case syntax.TriviaDocLineComment, syntax.TriviaDocBlockComment:
		return ClassDocComment, true
	case syntax.TriviaPoundDirective:
		return ClassPound, true
	default:
		return "", false
	}
}

func tokenClass(text *source.Text, tokens []syntax.Token, i int) (Class, bool) {
	tok := tokens[i]
	switch tok.Kind {
	case syntax.TokenStringLiteral:
		return ClassString, true
	case syntax.TokenIntegerLiteral, syntax.TokenFloatLiteral:
		return ClassNumber, true
	case syntax.TokenKeyword:
		return ClassKeyword, true
	case syntax.TokenIdentifier:
		if i > 0 && tokens[i-1].Kind == syntax.TokenAt {
			return ClassAttribute, true
		}
		word := text.Slice(tok.Range)
		if len(word) > 0 && unicode.IsUpper(rune(bytes.TrimLeft(word, "`")[0])) {
			return ClassTypeIdentifier, true
		}
		return ClassIdentifier, true
	case syntax.TokenPound:
		return ClassPound, true
	default:
		return "", false
	}
}

// ClassesIn returns the classes of spans overlapping r, in source order,
// without duplicates.
func (rc *RuleContext) ClassesIn(r source.Range) []Class {
	spans := rc.Classes()
	i := sort.Search(len(spans), func(i int) bool { return spans[i].Range.End > r.Start })

	var out []Class
	seen := make(map[Class]bool)
	for ; i < len(spans) && spans[i].Range.Start < max(r.End, r.Start+1); i++ {
		c := spans[i].Class
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// ClassAt returns the class of the span containing offset, if any.
func (rc *RuleContext) ClassAt(offset int) (Class, bool) {
	spans := rc.Classes()
	i := sort.Search(len(spans), func(i int) bool { return spans[i].Range.End > offset })
	if i < len(spans) && spans[i].Range.Contains(offset) {
		return spans[i].Class, true
	}
	return "", false
}

// InComment reports whether offset lies inside a comment.
func (rc *RuleContext) InComment(offset int) bool {
	c, ok := rc.ClassAt(offset)
	return ok && (c == ClassComment || c == ClassDocComment)
}

// InString reports whether offset lies inside a string literal.
func (rc *RuleContext) InString(offset int) bool {
	c, ok := rc.ClassAt(offset)
	return ok && c == ClassString
}

// LineIsComment reports whether every non-blank byte of line belongs to a comment.
func (rc *RuleContext) LineIsComment(line int) bool {
	r, ok := rc.Text.LineRange(line)
	if !ok {
		return false
	}
	content := rc.Text.Slice(r)
	found := false
	for i, b := range content {
		if b == ' ' || b == '\t' || b == '\r' {
			continue
		}
		if !rc.InComment(r.Start + i) {
			return false
		}
		found = true
	}
	return found
}

// TrailingWhitespace returns the range of trailing spaces and tabs on line,
// excluding the line terminator.
func (rc *RuleContext) TrailingWhitespace(line int) (source.Range, bool) {
	r, ok := rc.Text.LineRange(line)
	if !ok {
		return source.Range{}, false
	}
	content := rc.Text.Slice(r)
	content = bytes.TrimRight(content, "\r")
	trimmed := bytes.TrimRight(content, " \t")
	if len(trimmed) == len(content) {
		return source.Range{}, false
	}
	return source.Range{Start: r.Start + len(trimmed), End: r.Start + len(content)}, true
}

// IsBlankLine reports whether line contains only whitespace.
func (rc *RuleContext) IsBlankLine(line int) bool {
	r, ok := rc.Text.LineRange(line)
	if !ok {
		return false
	}
	return len(bytes.TrimSpace(rc.Text.Slice(r))) == 0
}

// LineContainsURL reports whether line contains an http or https URL.
func (rc *RuleContext) LineContainsURL(line int) bool {
	r, ok := rc.Text.LineRange(line)
	if !ok {
		return false
	}
	content := string(rc.Text.Slice(r))
	return strings.Contains(content, "http://") || strings.Contains(content, "https://")
}
