package interop

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"go.trai.ch/cjsguard/internal/core/domain"
	"go.trai.ch/zerr"
)

// Analyze checks a single import declaration of importer.
func (s *Session) Analyze(decl domain.ImportDeclaration, importer string) ([]domain.Violation, error) {
	ok, err := s.importerIsESM(importer)
	if err != nil || !ok {
		return nil, err
	}
	return s.analyzeDeclaration(decl, importer)
}

// AnalyzeFile checks every import declaration of path. The importing file is
// classified once. A failing declaration does not stop the remaining ones; all
// failures are joined into the returned error.
func (s *Session) AnalyzeFile(path string, decls []domain.ImportDeclaration) ([]domain.Violation, error) {
	ok, err := s.importerIsESM(path)
	if err != nil || !ok {
		return nil, err
	}

	var violations []domain.Violation
	var errs []error
	for _, decl := range decls {
		found, err := s.analyzeDeclaration(decl, path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		violations = append(violations, found...)
	}

	return violations, errors.Join(errs...)
}

// importerIsESM classifies the importing file and emits an advisory when its
// package cannot be determined.
func (s *Session) importerIsESM(importer string) (bool, error) {
	kind, err := s.Classify(importer)
	if err != nil {
		return false, zerr.With(err, "importer", importer)
	}

	if kind == domain.ModuleKindUnknown {
		s.logger.Warn(fmt.Sprintf(
			"Cannot execute rule '%s' on file '%s' because it has no parent %s file.",
			domain.RuleName, s.displayPath(importer), domain.ManifestFileName,
		))
		return false, nil
	}

	return kind == domain.ModuleKindESM, nil
}

// analyzeDeclaration runs the checks that follow importer classification.
func (s *Session) analyzeDeclaration(decl domain.ImportDeclaration, importer string) ([]domain.Violation, error) {
	if s.IsBuiltin(decl.Source) {
		return nil, nil
	}

	target, err := s.Resolve(importer, decl.Source)
	if err != nil {
		return nil, zerr.With(zerr.With(err, "specifier", decl.Source), "importer", importer)
	}

	if !s.isTypedSource(target) {
		return nil, nil
	}

	kind, err := s.Classify(target)
	if err != nil {
		return nil, zerr.With(err, "specifier", decl.Source)
	}

	switch kind {
	case domain.ModuleKindUnknown:
		s.logger.Warn(fmt.Sprintf(
			"Cannot execute rule '%s' on file '%s' on import '%s' because the imported file has no parent %s file.",
			domain.RuleName, s.displayPath(importer), decl.Source, domain.ManifestFileName,
		))
		return nil, nil
	case domain.ModuleKindESM:
		return nil, nil
	}

	if decl.IsTypeOnly() {
		return nil, nil
	}

	var violations []domain.Violation
	for _, spec := range decl.Specifiers {
		if spec.Kind == domain.SpecifierDefault || spec.TypeOnly {
			continue
		}

		switch spec.Kind {
		case domain.SpecifierNamed:
			violations = append(violations, domain.NewViolation(domain.MsgBadDestructure, importer, decl, spec))
		case domain.SpecifierNamespace:
			violations = append(violations, domain.NewViolation(domain.MsgBadNamespace, importer, decl, spec))
		default:
			return nil, fail(domain.ErrUnexpectedSpecifier, nil,
				"kind", spec.Kind.String(), "importer", importer, "location", spec.Location.String())
		}
	}

	return violations, nil
}

// isTypedSource reports whether target has one of the analyzed extensions.
func (s *Session) isTypedSource(target string) bool {
	ext := filepath.Ext(target)
	return ext != "" && slices.Contains(s.typedExtensions, ext)
}
