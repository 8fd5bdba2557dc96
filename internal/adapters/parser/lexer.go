package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind uint8

const (
	tokenIdent tokenKind = iota
	tokenString
	tokenTemplate
	tokenNumber
	tokenRegexp
	tokenPunct
)

type token struct {
	kind  tokenKind
	text  string // identifier name, punctuation or decoded string value
	line  int
	col   int
	first bool // first token on its line
}

func (t token) is(kind tokenKind, text string) bool {
	return t.kind == kind && t.text == text
}

// keywordsBeforeExpression are the identifiers after which a slash starts a
// regular expression literal instead of a division.
var keywordsBeforeExpression = map[string]struct{}{
	"return": {}, "typeof": {}, "instanceof": {}, "in": {}, "of": {}, "new": {},
	"delete": {}, "void": {}, "throw": {}, "case": {}, "do": {}, "else": {},
	"yield": {}, "await": {},
}

// lexer splits TypeScript source into the tokens the import parser needs.
// Comments are dropped; string, template and regular expression literals are
// kept whole so their contents never look like code.
type lexer struct {
	src  string
	pos  int
	line int
	col  int

	lastLine int
	prev     token
	hasPrev  bool
	// templates holds the open brace depth of each enclosing template substitution.
	templates []int
}

func newLexer(src string) *lexer {
	l := &lexer{src: src, line: 1, col: 1}
	l.skipPrefix()
	return l
}

// skipPrefix drops a byte order mark and a hashbang line.
func (l *lexer) skipPrefix() {
	l.src = strings.TrimPrefix(l.src, "\ufeff")
	if strings.HasPrefix(l.src, "#!") {
		for l.pos < len(l.src) && l.src[l.pos] != '\n' {
			l.pos++
		}
	}
}

func (l *lexer) peekRune(offset int) rune {
	i := l.pos
	for range offset {
		if i >= len(l.src) {
			return 0
		}
		_, size := utf8.DecodeRuneInString(l.src[i:])
		i += size
	}
	if i >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[i:])
	return r
}

func (l *lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

// tokens returns every token of the source.
func (l *lexer) tokens() []token {
	var out []token
	for {
		tok, ok := l.next()
		if !ok {
			return out
		}
		tok.first = tok.line != l.lastLine
		l.lastLine = tok.line
		out = append(out, tok)
		l.prev, l.hasPrev = tok, true
	}
}

func (l *lexer) next() (token, bool) {
	for l.pos < len(l.src) {
		r := l.peekRune(0)
		switch {
		case unicode.IsSpace(r):
			l.advance()
		case r == '/' && l.peekRune(1) == '/':
			for l.pos < len(l.src) && l.peekRune(0) != '\n' {
				l.advance()
			}
		case r == '/' && l.peekRune(1) == '*':
			l.advance()
			l.advance()
			for l.pos < len(l.src) && (l.peekRune(0) != '*' || l.peekRune(1) != '/') {
				l.advance()
			}
			if l.pos < len(l.src) {
				l.advance()
				l.advance()
			}
		default:
			return l.scanToken(), true
		}
	}
	return token{}, false
}

func (l *lexer) scanToken() token {
	tok := token{line: l.line, col: l.col}
	r := l.peekRune(0)

	switch {
	case r == '\'' || r == '"':
		tok.kind = tokenString
		tok.text = l.scanString(r)
	case r == '`':
		l.advance()
		tok.kind = tokenTemplate
		l.scanTemplate()
	case r == '}' && len(l.templates) > 0 && l.templates[len(l.templates)-1] == 0:
		l.templates = l.templates[:len(l.templates)-1]
		l.advance()
		tok.kind = tokenTemplate
		l.scanTemplate()
	case r == '/' && l.regexpAllowed():
		tok.kind = tokenRegexp
		l.scanRegexp()
	case isIdentStart(r):
		tok.kind = tokenIdent
		tok.text = l.scanWhile(isIdentPart)
	case unicode.IsDigit(r):
		tok.kind = tokenNumber
		tok.text = l.scanWhile(func(r rune) bool { return isIdentPart(r) || r == '.' })
	default:
		l.advance()
		tok.kind = tokenPunct
		tok.text = string(r)
		l.trackBraces(r)
	}

	return tok
}

func (l *lexer) trackBraces(r rune) {
	if len(l.templates) == 0 {
		return
	}
	top := len(l.templates) - 1
	switch r {
	case '{':
		l.templates[top]++
	case '}':
		l.templates[top]--
	}
}

func (l *lexer) scanWhile(accept func(rune) bool) string {
	start := l.pos
	for l.pos < len(l.src) && accept(l.peekRune(0)) {
		l.advance()
	}
	return l.src[start:l.pos]
}

// scanString consumes a quoted string and returns its decoded value.
// An unterminated string ends at the end of the line.
func (l *lexer) scanString(quote rune) string {
	l.advance()

	var sb strings.Builder
	for l.pos < len(l.src) {
		r := l.peekRune(0)
		switch {
		case r == quote:
			l.advance()
			return sb.String()
		case r == '\n':
			return sb.String()
		case r == '\\':
			l.advance()
			if l.pos >= len(l.src) {
				return sb.String()
			}
			sb.WriteRune(unescape(l.advance()))
		default:
			sb.WriteRune(l.advance())
		}
	}
	return sb.String()
}

// scanTemplate consumes template text up to the closing backtick or the start
// of a substitution.
func (l *lexer) scanTemplate() {
	for l.pos < len(l.src) {
		r := l.advance()
		switch {
		case r == '\\':
			if l.pos < len(l.src) {
				l.advance()
			}
		case r == '`':
			return
		case r == '$' && l.peekRune(0) == '{':
			l.advance()
			l.templates = append(l.templates, 0)
			return
		}
	}
}

func (l *lexer) scanRegexp() {
	l.advance()

	inClass := false
	for l.pos < len(l.src) {
		r := l.peekRune(0)
		if r == '\n' {
			return
		}
		l.advance()
		switch {
		case r == '\\':
			if l.pos < len(l.src) && l.peekRune(0) != '\n' {
				l.advance()
			}
		case r == '[':
			inClass = true
		case r == ']':
			inClass = false
		case r == '/' && !inClass:
			l.scanWhile(isIdentPart)
			return
		}
	}
}

// regexpAllowed reports whether a slash at the current position starts a
// regular expression literal, judged by the previous token.
func (l *lexer) regexpAllowed() bool {
	if !l.hasPrev {
		return true
	}
	switch l.prev.kind {
	case tokenNumber, tokenString, tokenTemplate, tokenRegexp:
		return false
	case tokenIdent:
		_, ok := keywordsBeforeExpression[l.prev.text]
		return ok
	default:
		return l.prev.text != ")" && l.prev.text != "]" && l.prev.text != "}"
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || r == '\u200c' || r == '\u200d'
}

func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	default:
		return r
	}
}
