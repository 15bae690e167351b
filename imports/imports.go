// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package imports finds named imports from an aggregate module
// and plans their rewrite into one default import per member.
//
// Given
//
//	import { map, filter as keep } from 'lodash';
//
// the planned replacement is
//
//	import map from 'lodash/map';
//	import keep from 'lodash/keep';
//
// Each member is imported from the submodule named by its local binding.
package imports

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"rsc.io/lodashsplit/edit"
)

// DefaultModule is the aggregate module rewritten when none is configured.
const DefaultModule = "lodash"

// A Group is the set of bindings made by one aggregate import statement.
type Group struct {
	Default    string   // default binding, if any
	Members    []string // local names of the named value members, in source order
	Types      []string // type-only specifiers, as written without their type keyword
	Attributes string   // import attributes, as in "with { type: 'js' }"
}

// A SyntaxError reports a file the parser could not make sense of.
type SyntaxError struct {
	Offset int
	Line   int // 1-based
	Col    int // 1-based, in bytes
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

// Language returns the grammar used for a file with the given name.
func Language(name string) *sitter.Language {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".tsx":
		return tsx.GetLanguage()
	case ".js", ".jsx", ".mjs", ".cjs":
		return javascript.GetLanguage()
	}
	return typescript.GetLanguage()
}

// Parse parses src, a file named name, and returns its syntax tree.
// The caller must Close the tree.
func Parse(ctx context.Context, name string, src []byte) (*sitter.Tree, error) {
	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(Language(name))
	tree, err := p.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, err
	}
	if n := firstError(tree.RootNode()); n != nil {
		tree.Close()
		return nil, syntaxError(n)
	}
	return tree, nil
}

func firstError(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	if n.IsError() || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if e := firstError(n.Child(i)); e != nil {
			return e
		}
	}
	return n
}

func syntaxError(n *sitter.Node) *SyntaxError {
	msg := "syntax error"
	if n.IsMissing() {
		msg = fmt.Sprintf("syntax error: missing %s", n.Type())
	}
	pt := n.StartPoint()
	return &SyntaxError{
		Offset: int(n.StartByte()),
		Line:   int(pt.Row) + 1,
		Col:    int(pt.Column) + 1,
		Msg:    msg,
	}
}

// Rewrite rewrites the aggregate imports of module in src, a file named name.
// It returns nil if there is nothing to rewrite.
func Rewrite(ctx context.Context, name string, src []byte, module string) ([]byte, error) {
	tree, err := Parse(ctx, name, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	out, _ := edit.Apply(src, Match(tree.RootNode(), src, module))
	return out, nil
}

// Match returns one edit for each import of named members from module
// among the top-level statements of root, in source order.
//
// Each edit covers the whole statement together with the whitespace
// between it and the preceding node, and replaces it with a newline
// followed by the per-member imports, one per line.
func Match(root *sitter.Node, src []byte, module string) []edit.Edit {
	var edits []edit.Edit
	for i := 0; i < int(root.NamedChildCount()); i++ {
		n := root.NamedChild(i)
		if n.Type() != "import_statement" {
			continue
		}
		g, ok := match(n, src, module)
		if !ok {
			continue
		}
		pos := fullStart(n)
		edits = append(edits, edit.Edit{
			Pos: pos,
			Len: end(n) - pos,
			New: Replacement(g, module),
		})
	}
	return edits
}

// match reports whether n imports named members from module,
// and if so returns its bindings.
func match(n *sitter.Node, src []byte, module string) (Group, bool) {
	var g Group
	source := n.ChildByFieldName("source")
	if source == nil || stringValue(source, src) != module {
		return g, false
	}

	var clause *sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch {
		case isTypeKeyword(c):
			// import type { X } from 'lodash'
			return g, false
		case c.Type() == "import_clause":
			clause = c
		case c.Type() == "import_attribute", c.Type() == "import_assertion":
			g.Attributes = c.Content(src)
		}
	}
	if clause == nil {
		return g, false
	}

	named := false
	for i := 0; i < int(clause.NamedChildCount()); i++ {
		c := clause.NamedChild(i)
		switch c.Type() {
		case "identifier":
			g.Default = c.Content(src)
		case "named_imports":
			named = true
			g.Members, g.Types = members(c, src)
		}
	}
	return g, named
}

// members returns the local names bound by a named_imports clause.
// Specifiers marked type are returned separately, as written
// after the type keyword.
func members(n *sitter.Node, src []byte) (values, types []string) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		spec := n.NamedChild(i)
		if spec.Type() != "import_specifier" {
			continue
		}
		name := spec.ChildByFieldName("name")
		if name == nil {
			continue
		}
		if isTypeKeyword(spec.Child(0)) {
			types = append(types, string(src[name.StartByte():spec.EndByte()]))
			continue
		}
		local := spec.ChildByFieldName("alias")
		if local == nil {
			local = name
		}
		values = append(values, local.Content(src))
	}
	return values, types
}

func isTypeKeyword(n *sitter.Node) bool {
	return n != nil && !n.IsNamed() && (n.Type() == "type" || n.Type() == "typeof")
}

// stringValue returns the contents of a string literal node.
func stringValue(n *sitter.Node, src []byte) string {
	if n.Type() != "string" {
		return ""
	}
	s := n.Content(src)
	if len(s) < 2 {
		return ""
	}
	return s[1 : len(s)-1]
}

// fullStart returns the offset at which n's leading trivia begins:
// the end of the previous sibling, or 0 for the first node in the file.
func fullStart(n *sitter.Node) int {
	if prev := n.PrevSibling(); prev != nil {
		return int(prev.EndByte())
	}
	return 0
}

// end returns the offset just past the last token of n.
// A trailing comment that the parser attached to a statement
// without a semicolon is not part of the statement.
func end(n *sitter.Node) int {
	for i := int(n.ChildCount()) - 1; i >= 0; i-- {
		c := n.Child(i)
		if c.Type() == "comment" || c.StartByte() == c.EndByte() {
			continue
		}
		return int(c.EndByte())
	}
	return int(n.EndByte())
}

// Replacement returns the text replacing an import with bindings g.
// Type-only specifiers stay behind in one import type statement
// from module. An import with no bindings at all is deleted.
func Replacement(g Group, module string) string {
	var stmts []string
	if g.Default != "" {
		stmts = append(stmts, singleQuote(printImport(g.Default, module, g.Attributes)))
	}
	if len(g.Types) > 0 {
		stmts = append(stmts, singleQuote(printTypeImport(g.Types, module)))
	}
	for _, m := range g.Members {
		stmts = append(stmts, singleQuote(printImport(m, module+"/"+m, g.Attributes)))
	}
	if len(stmts) == 0 {
		return ""
	}
	return "\n" + strings.Join(stmts, "\n")
}

// singleQuote converts the printer's double-quoted strings to single quotes.
func singleQuote(s string) string {
	return strings.ReplaceAll(s, `"`, `'`)
}
