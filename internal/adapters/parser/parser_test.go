package parser_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cjsguard/internal/adapters/parser"
	"go.trai.ch/cjsguard/internal/core/domain"
	"go.trai.ch/zerr"
)

func loc(line, col int) domain.Location {
	return domain.Location{Line: line, Column: col}
}

func TestParse_DeclarationShapes(t *testing.T) {
	src := `import doThing from '../cjs-package/cjs.js';
import * as ns from "./ns";
import {a, b as c} from './named.js';
import def, {type T, d} from './mixed.js';
import type {X} from './types.js';
import type * as Types from './types.js';
import './side-effect.css';
`

	decls, err := parser.New().Parse("/repo/src/index.ts", []byte(src))
	require.NoError(t, err)

	want := []domain.ImportDeclaration{
		{
			Source:   "../cjs-package/cjs.js",
			Kind:     domain.ImportKindValue,
			Location: loc(1, 1),
			Specifiers: []domain.Specifier{
				{Kind: domain.SpecifierDefault, Local: "doThing", Location: loc(1, 8)},
			},
		},
		{
			Source:   "./ns",
			Kind:     domain.ImportKindValue,
			Location: loc(2, 1),
			Specifiers: []domain.Specifier{
				{Kind: domain.SpecifierNamespace, Local: "ns", Location: loc(2, 8)},
			},
		},
		{
			Source:   "./named.js",
			Kind:     domain.ImportKindValue,
			Location: loc(3, 1),
			Specifiers: []domain.Specifier{
				{Kind: domain.SpecifierNamed, Imported: "a", Local: "a", Location: loc(3, 9)},
				{Kind: domain.SpecifierNamed, Imported: "b", Local: "c", Location: loc(3, 12)},
			},
		},
		{
			Source:   "./mixed.js",
			Kind:     domain.ImportKindValue,
			Location: loc(4, 1),
			Specifiers: []domain.Specifier{
				{Kind: domain.SpecifierDefault, Local: "def", Location: loc(4, 8)},
				{Kind: domain.SpecifierNamed, TypeOnly: true, Imported: "T", Local: "T", Location: loc(4, 14)},
				{Kind: domain.SpecifierNamed, Imported: "d", Local: "d", Location: loc(4, 22)},
			},
		},
		{
			Source:   "./types.js",
			Kind:     domain.ImportKindType,
			Location: loc(5, 1),
			Specifiers: []domain.Specifier{
				{Kind: domain.SpecifierNamed, Imported: "X", Local: "X", Location: loc(5, 14)},
			},
		},
		{
			Source:   "./types.js",
			Kind:     domain.ImportKindType,
			Location: loc(6, 1),
			Specifiers: []domain.Specifier{
				{Kind: domain.SpecifierNamespace, Local: "Types", Location: loc(6, 13)},
			},
		},
		{
			Source:   "./side-effect.css",
			Kind:     domain.ImportKindValue,
			Location: loc(7, 1),
		},
	}

	assert.Equal(t, want, decls)
}

func TestParse_IgnoresNonDeclarations(t *testing.T) {
	src := "// import {commented} from './a';\n" +
		"/* import * as block from './b'; */\n" +
		"const s = \"import {str} from './c'\";\n" +
		"const t = `import {tpl} from './d' ${import.meta.url} done`;\n" +
		"const lazy = await import('./e');\n" +
		"const meta = import.meta.dirname;\n" +
		"export {x} from './f';\n" +
		"import fs = require('fs');\n" +
		"const re = /import {r} from '.\\/g'/;\n" +
		"obj.import;\n" +
		"const cfg = { import: true };\n" +
		"import real from './real';\n"

	decls, err := parser.New().Parse("/repo/src/index.ts", []byte(src))
	require.NoError(t, err)

	require.Len(t, decls, 1)
	assert.Equal(t, "./real", decls[0].Source)
	assert.Equal(t, loc(12, 1), decls[0].Location)
}

func TestParse_MultilineWithComments(t *testing.T) {
	src := "import {\n" +
		"  one, // first\n" +
		"  /* second */ two as three,\n" +
		"} from 'pkg';\n"

	decls, err := parser.New().Parse("index.ts", []byte(src))
	require.NoError(t, err)
	require.Len(t, decls, 1)

	assert.Equal(t, "pkg", decls[0].Source)
	assert.Equal(t, []domain.Specifier{
		{Kind: domain.SpecifierNamed, Imported: "one", Local: "one", Location: loc(2, 3)},
		{Kind: domain.SpecifierNamed, Imported: "two", Local: "three", Location: loc(3, 16)},
	}, decls[0].Specifiers)
}

func TestParse_TypeKeywordAmbiguity(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantKind  domain.ImportKind
		wantSpecs []domain.Specifier
	}{
		{
			name:     "default import named type",
			src:      "import type from './x';",
			wantKind: domain.ImportKindValue,
			wantSpecs: []domain.Specifier{
				{Kind: domain.SpecifierDefault, Local: "type", Location: loc(1, 8)},
			},
		},
		{
			name:     "type-only default import named from",
			src:      "import type from from './x';",
			wantKind: domain.ImportKindType,
			wantSpecs: []domain.Specifier{
				{Kind: domain.SpecifierDefault, Local: "from", Location: loc(1, 13)},
			},
		},
		{
			name:     "default named type with named list",
			src:      "import type, {a} from './x';",
			wantKind: domain.ImportKindValue,
			wantSpecs: []domain.Specifier{
				{Kind: domain.SpecifierDefault, Local: "type", Location: loc(1, 8)},
				{Kind: domain.SpecifierNamed, Imported: "a", Local: "a", Location: loc(1, 15)},
			},
		},
		{
			name:     "named export called type",
			src:      "import {type} from './x';",
			wantKind: domain.ImportKindValue,
			wantSpecs: []domain.Specifier{
				{Kind: domain.SpecifierNamed, Imported: "type", Local: "type", Location: loc(1, 9)},
			},
		},
		{
			name:     "named export called type with alias",
			src:      "import {type as t} from './x';",
			wantKind: domain.ImportKindValue,
			wantSpecs: []domain.Specifier{
				{Kind: domain.SpecifierNamed, Imported: "type", Local: "t", Location: loc(1, 9)},
			},
		},
		{
			name:     "inline type with alias",
			src:      "import {type default as d} from './x';",
			wantKind: domain.ImportKindValue,
			wantSpecs: []domain.Specifier{
				{Kind: domain.SpecifierNamed, TypeOnly: true, Imported: "default", Local: "d", Location: loc(1, 9)},
			},
		},
		{
			name:     "string export name",
			src:      `import {"a-b" as ab} from './x';`,
			wantKind: domain.ImportKindValue,
			wantSpecs: []domain.Specifier{
				{Kind: domain.SpecifierNamed, Imported: "a-b", Local: "ab", Location: loc(1, 9)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decls, err := parser.New().Parse("index.ts", []byte(tt.src))
			require.NoError(t, err)
			require.Len(t, decls, 1)

			assert.Equal(t, "./x", decls[0].Source)
			assert.Equal(t, tt.wantKind, decls[0].Kind)
			assert.Equal(t, tt.wantSpecs, decls[0].Specifiers)
		})
	}
}

func TestParse_Positions(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantDecl domain.Location
		wantSpec domain.Location
	}{
		{
			name:     "byte order mark and hashbang",
			src:      "\ufeff#!/usr/bin/env node\nimport a from 'b';",
			wantDecl: loc(2, 1),
			wantSpec: loc(2, 8),
		},
		{
			name:     "columns count characters",
			src:      "const café = 1; import {é} from 'b';",
			wantDecl: loc(1, 17),
			wantSpec: loc(1, 25),
		},
		{
			name:     "ambient module block",
			src:      "declare module 'x' {\n  import {a} from 'b';\n}",
			wantDecl: loc(2, 3),
			wantSpec: loc(2, 11),
		},
		{
			name:     "division before import",
			src:      "const half = total / 2; import a from 'b';",
			wantDecl: loc(1, 25),
			wantSpec: loc(1, 32),
		},
		{
			name:     "unterminated string ends at newline",
			src:      "const el = <p>Don't</p>;\nimport a from 'b';",
			wantDecl: loc(2, 1),
			wantSpec: loc(2, 8),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decls, err := parser.New().Parse("index.ts", []byte(tt.src))
			require.NoError(t, err)
			require.Len(t, decls, 1)

			assert.Equal(t, "b", decls[0].Source)
			assert.Equal(t, tt.wantDecl, decls[0].Location)
			require.Len(t, decls[0].Specifiers, 1)
			assert.Equal(t, tt.wantSpec, decls[0].Specifiers[0].Location)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantLine any
		wantMsg  string
	}{
		{name: "missing closing brace", src: "import {a from './x';", wantLine: 1, wantMsg: `unexpected token "from"`},
		{name: "namespace without alias", src: "\nimport * from './x';", wantLine: 2, wantMsg: `unexpected token "from"`},
		{name: "missing from", src: "import {a} './x';", wantLine: 1, wantMsg: `unexpected token "./x"`},
		{name: "end of input", src: "import {a", wantMsg: "unexpected end of input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decls, err := parser.New().Parse("/repo/bad.ts", []byte(tt.src))

			require.ErrorIs(t, err, domain.ErrSourceParse)
			assert.ErrorContains(t, err, tt.wantMsg)
			assert.Nil(t, decls)

			var zErr *zerr.Error
			require.True(t, errors.As(err, &zErr))
			meta := zErr.Metadata()
			assert.Equal(t, "/repo/bad.ts", meta["path"])
			assert.Equal(t, tt.wantLine, meta["line"])
		})
	}
}

func TestParse_MalformedStatementIsSkipped(t *testing.T) {
	src := "import {a from './x';\nimport { b } from './b.js';\n"

	decls, err := parser.New().Parse("/repo/bad.ts", []byte(src))

	require.ErrorIs(t, err, domain.ErrSourceParse)
	require.Len(t, decls, 1)
	assert.Equal(t, "./b.js", decls[0].Source)
	assert.Equal(t, loc(2, 1), decls[0].Location)
}

func TestParse_JSXTextStartingWithImport(t *testing.T) {
	src := "import { h } from './h.js';\n" +
		"const el = <div>\nimport the thing\n</div>;\n" +
		"import def from './d.js';\n"

	decls, err := parser.New().Parse("/repo/view.tsx", []byte(src))

	require.NoError(t, err)
	require.Len(t, decls, 2)
	assert.Equal(t, "./h.js", decls[0].Source)
	assert.Equal(t, "./d.js", decls[1].Source)
	assert.Equal(t, 5, decls[1].Location.Line)
}
