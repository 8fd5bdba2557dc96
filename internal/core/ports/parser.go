package ports

import "go.trai.ch/cjsguard/internal/core/domain"

// SourceParser extracts static import declarations from a source file.
//
//go:generate go run go.uber.org/mock/mockgen -source=parser.go -destination=mocks/mock_parser.go -package=mocks
type SourceParser interface {
	// Parse returns the import declarations of src in source order.
	// Malformed statements are skipped; the error then describes them while
	// the declarations that did parse are still returned.
	// path names the file in errors and selects JSX handling.
	Parse(path string, src []byte) ([]domain.ImportDeclaration, error)
}
