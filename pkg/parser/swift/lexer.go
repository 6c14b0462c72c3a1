package swift

import (
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/swiftlint-go/pkg/source"
	"github.com/yaklabco/swiftlint-go/pkg/syntax"
)

//nolint:gochecknoglobals // Read-only keyword table.
var keywords = map[string]bool{
	"associatedtype": true, "class": true, "deinit": true, "enum": true, "extension": true,
	"fileprivate": true, "func": true, "import": true, "init": true, "inout": true,
	"internal": true, "let": true, "open": true, "operator": true, "private": true,
	"precedencegroup": true, "protocol": true, "public": true, "rethrows": true,
	"static": true, "struct": true, "subscript": true, "typealias": true, "var": true,
	"break": true, "case": true, "catch": true, "continue": true, "default": true,
	"defer": true, "do": true, "else": true, "fallthrough": true, "for": true,
	"guard": true, "if": true, "in": true, "repeat": true, "return": true, "throw": true,
	"switch": true, "where": true, "while": true, "as": true, "Any": true, "false": true,
	"is": true, "nil": true, "self": true, "Self": true, "super": true, "throws": true,
	"true": true, "try": true, "await": true,
}

//nolint:gochecknoglobals // Read-only directive table.
var poundDirectives = map[string]bool{
	"if": true, "elseif": true, "else": true, "endif": true,
	"warning": true, "error": true, "sourceLocation": true,
}

// lexer splits Swift source into tokens with attached trivia.
type lexer struct {
	src    []byte
	pos    int
	tokens []syntax.Token
}

// Lex tokenizes content. The result always ends with an EOF token that
// carries any trailing comments as leading trivia.
func Lex(content []byte) []syntax.Token {
	const bytesPerToken = 4
	lx := &lexer{
		src:    content,
		tokens: make([]syntax.Token, 0, len(content)/bytesPerToken+1),
	}
	lx.run()
	return lx.tokens
}

func (lx *lexer) run() {
	for {
		leading := lx.collectTrivia(true)
		if lx.pos >= len(lx.src) {
			lx.tokens = append(lx.tokens, syntax.Token{
				Kind:    syntax.TokenEOF,
				Range:   source.Range{Start: lx.pos, End: lx.pos},
				Leading: leading,
			})
			return
		}

		start := lx.pos
		kind := lx.scanToken()
		if lx.pos == start {
			// Always make progress on bytes nothing else claims.
			_, size := utf8.DecodeRune(lx.src[lx.pos:])
			lx.pos += size
			kind = syntax.TokenUnknown
		}

		tok := syntax.Token{
			Kind:    kind,
			Range:   source.Range{Start: start, End: lx.pos},
			Leading: leading,
		}
		tok.Trailing = lx.collectTrivia(false)
		lx.tokens = append(lx.tokens, tok)
	}
}

// collectTrivia gathers whitespace and comments. Without newlines it stops
// before the first line break, which is how trailing trivia is bounded.
func (lx *lexer) collectTrivia(newlines bool) []syntax.Trivia {
	var out []syntax.Trivia
	emit := func(kind syntax.TriviaKind, start int) {
		out = append(out, syntax.Trivia{Kind: kind, Range: source.Range{Start: start, End: lx.pos}})
	}

	for lx.pos < len(lx.src) {
		start := lx.pos
		ch := lx.src[lx.pos]

		switch {
		case ch == ' ' || ch == '\t' || ch == '\f' || ch == '\v':
			for lx.pos < len(lx.src) && isSpace(lx.src[lx.pos]) {
				lx.pos++
			}
			emit(syntax.TriviaSpace, start)

		case ch == '\n' || ch == '\r':
			if !newlines {
				return out
			}
			for lx.pos < len(lx.src) && (lx.src[lx.pos] == '\n' || lx.src[lx.pos] == '\r') {
				lx.pos++
			}
			emit(syntax.TriviaNewline, start)

		case ch == '/' && lx.peekAt(1) == '/':
			kind := syntax.TriviaLineComment
			if lx.peekAt(2) == '/' {
				kind = syntax.TriviaDocLineComment
			}
			lx.skipToLineEnd()
			emit(kind, start)

		case ch == '/' && lx.peekAt(1) == '*':
			kind := syntax.TriviaBlockComment
			if lx.peekAt(2) == '*' && lx.peekAt(3) != '/' {
				kind = syntax.TriviaDocBlockComment
			}
			lx.skipBlockComment()
			emit(kind, start)

		case ch == '#' && start == 0 && lx.peekAt(1) == '!':
			lx.skipToLineEnd()
			emit(syntax.TriviaShebang, start)

		case ch == '#' && newlines && lx.atLineStart() && poundDirectives[lx.identAt(start+1)]:
			lx.skipToLineEnd()
			emit(syntax.TriviaPoundDirective, start)

		default:
			return out
		}
	}
	return out
}

func (lx *lexer) scanToken() syntax.TokenKind {
	ch := lx.src[lx.pos]

	switch {
	case ch == '"':
		lx.scanString(0)
		return syntax.TokenStringLiteral
	case ch == '#':
		if hashes := lx.countRun(lx.pos, '#'); lx.peekAt(hashes) == '"' {
			lx.pos += hashes
			lx.scanString(hashes)
			return syntax.TokenStringLiteral
		}
		lx.pos++
		return syntax.TokenPound
	case ch == '`':
		lx.pos++
		for lx.pos < len(lx.src) && lx.src[lx.pos] != '`' && lx.src[lx.pos] != '\n' {
			lx.pos++
		}
		if lx.pos < len(lx.src) && lx.src[lx.pos] == '`' {
			lx.pos++
		}
		return syntax.TokenIdentifier
	case isDigit(ch):
		return lx.scanNumber()
	case isIdentStart(lx.runeAt(lx.pos)) || ch == '$':
		start := lx.pos
		lx.pos += utf8.RuneLen(lx.runeAt(lx.pos))
		for lx.pos < len(lx.src) && isIdentContinue(lx.runeAt(lx.pos)) {
			lx.pos += utf8.RuneLen(lx.runeAt(lx.pos))
		}
		if keywords[string(lx.src[start:lx.pos])] {
			return syntax.TokenKeyword
		}
		return syntax.TokenIdentifier
	}

	lx.pos++
	switch ch {
	case '(':
		return syntax.TokenLeftParen
	case ')':
		return syntax.TokenRightParen
	case '{':
		return syntax.TokenLeftBrace
	case '}':
		return syntax.TokenRightBrace
	case '[':
		return syntax.TokenLeftSquare
	case ']':
		return syntax.TokenRightSquare
	case ',':
		return syntax.TokenComma
	case ':':
		return syntax.TokenColon
	case ';':
		return syntax.TokenSemicolon
	case '@':
		return syntax.TokenAt
	case '\\':
		return syntax.TokenBackslash
	}
	lx.pos--

	if isOperatorChar(ch) || (ch == '.') {
		return lx.scanOperator()
	}
	return syntax.TokenUnknown
}

func (lx *lexer) scanOperator() syntax.TokenKind {
	start := lx.pos
	leftBound := lx.isLeftBound(start)

	if ch := lx.src[start]; leftBound && (ch == '?' || (ch == '!' && lx.peekAt(1) != '=')) {
		lx.pos++
		if ch == '?' {
			return syntax.TokenPostfixQuestion
		}
		return syntax.TokenExclamation
	}

	if lx.src[start] == '.' {
		if lx.peekAt(1) != '.' {
			lx.pos++
			return syntax.TokenPeriod
		}
		for lx.pos < len(lx.src) && (lx.src[lx.pos] == '.' || isOperatorChar(lx.src[lx.pos])) && !lx.commentStart() {
			lx.pos++
		}
	} else {
		for lx.pos < len(lx.src) && isOperatorChar(lx.src[lx.pos]) && !lx.commentStart() {
			lx.pos++
		}
	}

	text := string(lx.src[start:lx.pos])
	switch text {
	case "->":
		return syntax.TokenArrow
	case "=":
		return syntax.TokenEqual
	}

	rightBound := lx.isRightBound(lx.pos)
	switch {
	case leftBound == rightBound:
		return syntax.TokenOperator
	case rightBound:
		return syntax.TokenPrefixOperator
	default:
		return syntax.TokenPostfixOperator
	}
}

func (lx *lexer) commentStart() bool {
	return lx.src[lx.pos] == '/' && (lx.peekAt(1) == '/' || lx.peekAt(1) == '*')
}

func (lx *lexer) isLeftBound(pos int) bool {
	if pos == 0 {
		return false
	}
	switch lx.src[pos-1] {
	case ' ', '\t', '\n', '\r', '(', '[', '{', ',', ';', ':':
		return false
	case '/':
		// The end of a block comment counts as whitespace.
		return !(pos >= 2 && lx.src[pos-2] == '*')
	}
	return true
}

func (lx *lexer) isRightBound(pos int) bool {
	if pos >= len(lx.src) {
		return false
	}
	switch lx.src[pos] {
	case ' ', '\t', '\n', '\r', ')', ']', '}', ',', ';', ':':
		return false
	case '/':
		return !(lx.peekAtAbs(pos+1) == '/' || lx.peekAtAbs(pos+1) == '*')
	}
	return true
}

func (lx *lexer) scanNumber() syntax.TokenKind {
	kind := syntax.TokenIntegerLiteral
	if lx.src[lx.pos] == '0' && (lx.peekAt(1) == 'x' || lx.peekAt(1) == 'o' || lx.peekAt(1) == 'b') {
		lx.pos += 2
		for lx.pos < len(lx.src) && (isHex(lx.src[lx.pos]) || lx.src[lx.pos] == '_') {
			lx.pos++
		}
		return kind
	}

	lx.skipDigits()
	if lx.pos < len(lx.src) && lx.src[lx.pos] == '.' && isDigit(lx.peekAt(1)) {
		kind = syntax.TokenFloatLiteral
		lx.pos++
		lx.skipDigits()
	}
	if lx.pos < len(lx.src) && (lx.src[lx.pos] == 'e' || lx.src[lx.pos] == 'E') {
		next := lx.peekAt(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(lx.peekAt(2))) {
			kind = syntax.TokenFloatLiteral
			lx.pos += 2
			lx.skipDigits()
		}
	}
	return kind
}

func (lx *lexer) skipDigits() {
	for lx.pos < len(lx.src) && (isDigit(lx.src[lx.pos]) || lx.src[lx.pos] == '_') {
		lx.pos++
	}
}

// scanString consumes a string literal starting at the opening quote.
// hashes is the raw-string delimiter count already consumed.
func (lx *lexer) scanString(hashes int) {
	multiline := lx.peekAt(1) == '"' && lx.peekAt(2) == '"'
	if multiline {
		lx.pos += 3
	} else {
		lx.pos++
	}

	for lx.pos < len(lx.src) {
		ch := lx.src[lx.pos]
		switch {
		case ch == '\n' && !multiline:
			return
		case ch == '\\' && lx.countRun(lx.pos+1, '#') == hashes:
			lx.pos += 1 + hashes
			if lx.pos < len(lx.src) && lx.src[lx.pos] == '(' {
				lx.skipInterpolation()
			} else if lx.pos < len(lx.src) {
				lx.pos++
			}
		case ch == '"':
			quotes := 1
			if multiline {
				if lx.peekAt(1) != '"' || lx.peekAt(2) != '"' {
					lx.pos++
					continue
				}
				quotes = 3
			}
			if lx.countRun(lx.pos+quotes, '#') >= hashes {
				lx.pos += quotes + hashes
				return
			}
			lx.pos += quotes
		default:
			lx.pos++
		}
	}
}

// skipInterpolation consumes a balanced \( ... ) segment, including nested strings.
func (lx *lexer) skipInterpolation() {
	depth := 0
	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				lx.pos++
				return
			}
		case '"':
			lx.scanString(0)
			continue
		case '\n':
			return
		}
		lx.pos++
	}
}

func (lx *lexer) skipToLineEnd() {
	for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' && lx.src[lx.pos] != '\r' {
		lx.pos++
	}
}

// skipBlockComment consumes a possibly nested /* */ comment.
func (lx *lexer) skipBlockComment() {
	depth := 0
	for lx.pos < len(lx.src) {
		switch {
		case lx.src[lx.pos] == '/' && lx.peekAt(1) == '*':
			depth++
			lx.pos += 2
		case lx.src[lx.pos] == '*' && lx.peekAt(1) == '/':
			depth--
			lx.pos += 2
			if depth == 0 {
				return
			}
		default:
			lx.pos++
		}
	}
}

func (lx *lexer) atLineStart() bool {
	for i := lx.pos - 1; i >= 0; i-- {
		switch lx.src[i] {
		case ' ', '\t':
			continue
		case '\n', '\r':
			return true
		default:
			return false
		}
	}
	return true
}

func (lx *lexer) identAt(pos int) string {
	end := pos
	for end < len(lx.src) && isIdentContinue(rune(lx.src[end])) && lx.src[end] < utf8.RuneSelf {
		end++
	}
	return string(lx.src[pos:end])
}

func (lx *lexer) countRun(pos int, ch byte) int {
	n := 0
	for pos+n < len(lx.src) && lx.src[pos+n] == ch {
		n++
	}
	return n
}

func (lx *lexer) peekAt(delta int) byte {
	return lx.peekAtAbs(lx.pos + delta)
}

func (lx *lexer) peekAtAbs(pos int) byte {
	if pos < 0 || pos >= len(lx.src) {
		return 0
	}
	return lx.src[pos]
}

func (lx *lexer) runeAt(pos int) rune {
	r, _ := utf8.DecodeRune(lx.src[pos:])
	return r
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\f' || ch == '\v'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHex(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || (r >= utf8.RuneSelf && !unicode.IsSpace(r) && !unicode.IsPunct(r) && !unicode.IsSymbol(r))
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || r == '$'
}

func isOperatorChar(ch byte) bool {
	switch ch {
	case '/', '=', '-', '+', '!', '*', '%', '<', '>', '&', '|', '^', '~', '?':
		return true
	default:
		return false
	}
}
