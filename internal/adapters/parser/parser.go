// Package parser extracts static import declarations from TypeScript and
// JavaScript source files.
package parser

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.trai.ch/cjsguard/internal/core/domain"
	"go.trai.ch/cjsguard/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceParser = (*Parser)(nil)

// Parser implements ports.SourceParser with a lightweight tokenizer. It only
// understands the import statement grammar; everything else is skipped.
type Parser struct{}

// New creates a new Parser.
func New() *Parser {
	return &Parser{}
}

// Parse returns the static import declarations of src in source order.
// Dynamic import(), import.meta, re-exports and TypeScript import-equals
// declarations are not import declarations and are ignored.
//
// A malformed statement is skipped and parsing resumes after its import
// keyword. The declarations found are returned together with one
// domain.ErrSourceParse error per skipped statement. In JSX files text content
// may start with the word import, so malformed statements are skipped there
// without an error.
func (p *Parser) Parse(path string, src []byte) ([]domain.ImportDeclaration, error) {
	toks := newLexer(string(src)).tokens()
	jsx := allowsJSX(path)

	var decls []domain.ImportDeclaration
	var errs []error
	for i := 0; i < len(toks); i++ {
		if !startsImport(toks, i) {
			continue
		}

		st := &statement{toks: toks, pos: i + 1, path: path}
		decl, ok, err := st.parse(toks[i])
		if err != nil {
			if !jsx {
				errs = append(errs, err)
			}
			continue
		}
		if ok {
			decls = append(decls, decl)
			i = st.pos - 1
		}
	}

	return decls, errors.Join(errs...)
}

func allowsJSX(path string) bool {
	switch filepath.Ext(path) {
	case ".tsx", ".jsx":
		return true
	default:
		return false
	}
}

// startsImport reports whether toks[i] is the import keyword of a static
// import declaration.
func startsImport(toks []token, i int) bool {
	if !toks[i].is(tokenIdent, "import") {
		return false
	}

	if i > 0 && !toks[i].first {
		prev := toks[i-1]
		if prev.kind != tokenPunct || (prev.text != ";" && prev.text != "}" && prev.text != "{") {
			return false
		}
	}

	if i+1 >= len(toks) {
		return false
	}
	next := toks[i+1]
	return next.kind == tokenString || next.kind == tokenIdent ||
		next.is(tokenPunct, "{") || next.is(tokenPunct, "*")
}

type statement struct {
	toks []token
	pos  int
	path string
}

func (s *statement) peek(offset int) token {
	if i := s.pos + offset; i < len(s.toks) {
		return s.toks[i]
	}
	return token{kind: tokenPunct}
}

func (s *statement) done() bool {
	return s.pos >= len(s.toks)
}

func (s *statement) parse(keyword token) (domain.ImportDeclaration, bool, error) {
	decl := domain.ImportDeclaration{
		Kind:     domain.ImportKindValue,
		Location: location(keyword),
	}

	if tok := s.peek(0); tok.kind == tokenString {
		decl.Source = tok.text
		s.pos++
		return decl, true, nil
	}

	if s.peek(0).is(tokenIdent, "type") && s.isTypeModifier() {
		decl.Kind = domain.ImportKindType
		s.pos++
	}

	if tok := s.peek(0); tok.kind == tokenIdent && s.peek(1).is(tokenPunct, "=") {
		return decl, false, nil
	}

	specs, err := s.parseClause()
	if err != nil {
		return decl, false, err
	}
	decl.Specifiers = specs

	if err := s.expectIdent("from"); err != nil {
		return decl, false, err
	}

	tok := s.peek(0)
	if tok.kind != tokenString {
		return decl, false, s.unexpected(tok)
	}
	decl.Source = tok.text
	s.pos++

	return decl, true, nil
}

// isTypeModifier reports whether the `type` at the current position marks an
// `import type` declaration rather than a default import named type.
func (s *statement) isTypeModifier() bool {
	next := s.peek(1)
	switch {
	case next.is(tokenPunct, "{"), next.is(tokenPunct, "*"):
		return true
	case next.is(tokenIdent, "from"):
		return s.peek(2).is(tokenIdent, "from")
	default:
		return next.kind == tokenIdent
	}
}

func (s *statement) parseClause() ([]domain.Specifier, error) {
	var specs []domain.Specifier

	if tok := s.peek(0); tok.kind == tokenIdent {
		specs = append(specs, domain.Specifier{
			Kind:     domain.SpecifierDefault,
			Local:    tok.text,
			Location: location(tok),
		})
		s.pos++

		if !s.peek(0).is(tokenPunct, ",") {
			return specs, nil
		}
		s.pos++
	}

	tok := s.peek(0)
	switch {
	case tok.is(tokenPunct, "*"):
		s.pos++
		if err := s.expectIdent("as"); err != nil {
			return nil, err
		}
		local := s.peek(0)
		if local.kind != tokenIdent {
			return nil, s.unexpected(local)
		}
		s.pos++
		specs = append(specs, domain.Specifier{
			Kind:     domain.SpecifierNamespace,
			Local:    local.text,
			Location: location(tok),
		})
	case tok.is(tokenPunct, "{"):
		s.pos++
		named, err := s.parseNamed()
		if err != nil {
			return nil, err
		}
		specs = append(specs, named...)
	default:
		return nil, s.unexpected(tok)
	}

	return specs, nil
}

func (s *statement) parseNamed() ([]domain.Specifier, error) {
	var specs []domain.Specifier

	for {
		if s.done() {
			return nil, s.unexpected(s.peek(0))
		}

		tok := s.peek(0)
		if tok.is(tokenPunct, "}") {
			s.pos++
			return specs, nil
		}

		spec := domain.Specifier{Kind: domain.SpecifierNamed, Location: location(tok)}
		if tok.is(tokenIdent, "type") && s.isInlineTypeModifier() {
			spec.TypeOnly = true
			s.pos++
			tok = s.peek(0)
		}

		if tok.kind != tokenIdent && tok.kind != tokenString {
			return nil, s.unexpected(tok)
		}
		spec.Imported = tok.text
		spec.Local = tok.text
		s.pos++

		if s.peek(0).is(tokenIdent, "as") {
			s.pos++
			local := s.peek(0)
			if local.kind != tokenIdent {
				return nil, s.unexpected(local)
			}
			spec.Local = local.text
			s.pos++
		}
		specs = append(specs, spec)

		switch next := s.peek(0); {
		case next.is(tokenPunct, ","):
			s.pos++
		case next.is(tokenPunct, "}"):
		default:
			return nil, s.unexpected(next)
		}
	}
}

// isInlineTypeModifier reports whether the `type` at the current position
// modifies the following named specifier.
func (s *statement) isInlineTypeModifier() bool {
	next := s.peek(1)
	switch {
	case next.is(tokenPunct, ","), next.is(tokenPunct, "}"):
		return false
	case next.is(tokenIdent, "as"):
		return s.peek(2).is(tokenIdent, "as")
	default:
		return next.kind == tokenIdent || next.kind == tokenString
	}
}

func (s *statement) expectIdent(name string) error {
	tok := s.peek(0)
	if !tok.is(tokenIdent, name) {
		return s.unexpected(tok)
	}
	s.pos++
	return nil
}

func (s *statement) unexpected(tok token) error {
	detail := "unexpected end of input"
	if !s.done() {
		detail = fmt.Sprintf("unexpected token %q", tok.text)
	}

	err := zerr.Wrap(domain.ErrSourceParse, detail)
	err = zerr.With(err, "path", s.path)
	if !s.done() {
		err = zerr.With(err, "line", tok.line)
		err = zerr.With(err, "column", tok.col)
	}
	return err
}

func location(tok token) domain.Location {
	return domain.Location{Line: tok.line, Column: tok.col}
}
