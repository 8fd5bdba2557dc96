package domain

import "fmt"

// ImportKind distinguishes value imports from `import type` declarations.
type ImportKind uint8

const (
	// ImportKindValue is a regular import that exists at runtime.
	ImportKindValue ImportKind = iota
	// ImportKindType is an `import type` declaration erased at compile time.
	ImportKindType
)

// SpecifierKind is the grammatical shape of an import specifier.
type SpecifierKind uint8

const (
	// SpecifierUnknown is any shape the analyzer does not recognise.
	SpecifierUnknown SpecifierKind = iota
	// SpecifierDefault is `import x from '...'`.
	SpecifierDefault
	// SpecifierNamed is `import {x} from '...'` or `import {x as y} from '...'`.
	SpecifierNamed
	// SpecifierNamespace is `import * as ns from '...'`.
	SpecifierNamespace
)

// String returns the ESTree node type name of the specifier kind.
func (k SpecifierKind) String() string {
	switch k {
	case SpecifierDefault:
		return "ImportDefaultSpecifier"
	case SpecifierNamed:
		return "ImportSpecifier"
	case SpecifierNamespace:
		return "ImportNamespaceSpecifier"
	default:
		return fmt.Sprintf("SpecifierKind(%d)", uint8(k))
	}
}

// Location is a 1-based position in a source file.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// String formats the location as line:column.
func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Specifier is one binding introduced by an import declaration.
type Specifier struct {
	Kind SpecifierKind
	// TypeOnly is set for inline `type` modifiers, e.g. `import {type x}`.
	TypeOnly bool
	// Imported is the exported name for named specifiers.
	Imported string
	// Local is the binding name in the importing file.
	Local    string
	Location Location
}

// ImportDeclaration is a single static import statement.
type ImportDeclaration struct {
	// Source is the raw module specifier string.
	Source     string
	Kind       ImportKind
	Specifiers []Specifier
	Location   Location
}

// IsTypeOnly reports whether the whole declaration is `import type`.
func (d ImportDeclaration) IsTypeOnly() bool {
	return d.Kind == ImportKindType
}
