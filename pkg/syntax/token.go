package syntax

import "github.com/yaklabco/swiftlint-go/pkg/source"

// TokenKind classifies a lexical token.
type TokenKind uint8

// Token kinds.
const (
	TokenEOF TokenKind = iota
	TokenIdentifier
	TokenKeyword
	TokenIntegerLiteral
	TokenFloatLiteral
	TokenStringLiteral
	TokenOperator
	TokenPrefixOperator
	TokenPostfixOperator
	TokenLeftParen
	TokenRightParen
	TokenLeftBrace
	TokenRightBrace
	TokenLeftSquare
	TokenRightSquare
	TokenComma
	TokenColon
	TokenSemicolon
	TokenPeriod
	TokenArrow
	TokenEqual
	TokenAt
	TokenPound
	TokenBackslash
	TokenPostfixQuestion
	TokenExclamation
	TokenUnknown
)

//nolint:gochecknoglobals // Read-only name table.
var tokenKindNames = map[TokenKind]string{
	TokenEOF:             "EOF",
	TokenIdentifier:      "Identifier",
	TokenKeyword:         "Keyword",
	TokenIntegerLiteral:  "IntegerLiteral",
	TokenFloatLiteral:    "FloatLiteral",
	TokenStringLiteral:   "StringLiteral",
	TokenOperator:        "Operator",
	TokenPrefixOperator:  "PrefixOperator",
	TokenPostfixOperator: "PostfixOperator",
	TokenLeftParen:       "LeftParen",
	TokenRightParen:      "RightParen",
	TokenLeftBrace:       "LeftBrace",
	TokenRightBrace:      "RightBrace",
	TokenLeftSquare:      "LeftSquare",
	TokenRightSquare:     "RightSquare",
	TokenComma:           "Comma",
	TokenColon:           "Colon",
	TokenSemicolon:       "Semicolon",
	TokenPeriod:          "Period",
	TokenArrow:           "Arrow",
	TokenEqual:           "Equal",
	TokenAt:              "At",
	TokenPound:           "Pound",
	TokenBackslash:       "Backslash",
	TokenPostfixQuestion: "PostfixQuestion",
	TokenExclamation:     "Exclamation",
	TokenUnknown:         "Unknown",
}

// String returns the token kind name.
func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "TokenKind(?)"
}

// TriviaKind classifies a piece of trivia.
type TriviaKind uint8

// Trivia kinds.
const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaDocLineComment
	TriviaDocBlockComment
	TriviaShebang
	TriviaPoundDirective // #if, #else, #endif and friends
)

// IsComment reports whether the trivia is a comment of any form.
func (k TriviaKind) IsComment() bool {
	switch k {
	case TriviaLineComment, TriviaBlockComment, TriviaDocLineComment, TriviaDocBlockComment:
		return true
	default:
		return false
	}
}

// Trivia is non-semantic text attached to a token.
type Trivia struct {
	Kind  TriviaKind
	Range source.Range
}

// Token is a lexical token with its attached trivia.
// Trailing trivia runs up to, but not including, the next newline;
// everything else before a token is leading trivia.
type Token struct {
	Kind     TokenKind
	Range    source.Range
	Leading  []Trivia
	Trailing []Trivia
}

// FullRange returns the token range extended over its trivia.
func (t Token) FullRange() source.Range {
	r := t.Range
	if len(t.Leading) > 0 {
		r.Start = t.Leading[0].Range.Start
	}
	if len(t.Trailing) > 0 {
		r.End = t.Trailing[len(t.Trailing)-1].Range.End
	}
	return r
}

// StartsLine reports whether a newline precedes the token in its leading trivia.
func (t Token) StartsLine() bool {
	for _, tr := range t.Leading {
		if tr.Kind == TriviaNewline {
			return true
		}
	}
	return false
}

// HasLeadingSpace reports whether any trivia precedes the token.
func (t Token) HasLeadingSpace() bool {
	return len(t.Leading) > 0
}
