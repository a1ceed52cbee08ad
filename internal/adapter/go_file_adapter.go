package adapter

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"sort"
	"strings"

	m "covagg.dev/pkg/covagg/internal/model"
)

// StructureParser locates the code units of a source file together with its
// token stream so the domain layer can compute ignored lines and per-unit
// statistics without knowing the language grammar.
type StructureParser interface {
	// Parse returns the structure of the file. Invalid input yields a partial
	// structure (line counts only) together with the parse error.
	Parse(ctx context.Context, path m.Path, src []byte) (*m.FileStructure, error)
}

// LocalGoFileAdapter provides a concrete StructureParser backed by go/parser
// and go/scanner. Named non-interface types are reported as classes with the
// methods declared on them, interface types as interfaces, top-level funcs as
// functions and func literals as synthetic units.
type LocalGoFileAdapter struct{}

// NewLocalGoFileAdapter constructs a LocalGoFileAdapter.
func NewLocalGoFileAdapter() *LocalGoFileAdapter {
	return &LocalGoFileAdapter{}
}

// declAnchor describes a declaration token found while walking the AST.
type declAnchor struct {
	kind     m.TokenKind
	endLine  int
	docBlock string
}

type goFileParse struct {
	fset    *token.FileSet
	src     []byte
	anchors map[int]declAnchor
	docs    map[int]bool
	uses    map[int]bool
	classes map[string]*m.CodeUnit
	order   []string
	result  *m.FileStructure
}

// Parse builds the structure of a Go source file.
func (a *LocalGoFileAdapter) Parse(ctx context.Context, path m.Path, src []byte) (*m.FileStructure, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := &goFileParse{
		fset:    token.NewFileSet(),
		src:     src,
		anchors: map[int]declAnchor{},
		docs:    map[int]bool{},
		uses:    map[int]bool{},
		classes: map[string]*m.CodeUnit{},
		result:  &m.FileStructure{},
	}

	file, err := parser.ParseFile(p.fset, string(path), src, parser.ParseComments|parser.SkipObjectResolution)
	p.result.LinesOfCode = p.countLines(file)

	if err != nil {
		return p.result, fmt.Errorf("parse %s: %w", path, err)
	}

	p.collectDecls(file)
	p.result.Tokens = p.scanTokens(file.Name.Name)

	return p.result, nil
}

func (p *goFileParse) line(pos token.Pos) int {
	return p.fset.Position(pos).Line
}

func (p *goFileParse) offset(pos token.Pos) int {
	return p.fset.Position(pos).Offset
}

// countLines computes physical, comment and non-comment line counts.
func (p *goFileParse) countLines(file *ast.File) m.LinesOfCode {
	loc := len(SplitLines(p.src))
	if file == nil {
		return m.LinesOfCode{LOC: loc, NCLOC: loc}
	}

	commentLines := map[int]bool{}

	for _, group := range file.Comments {
		for _, c := range group.List {
			for l := p.line(c.Pos()); l <= p.line(c.End()); l++ {
				commentLines[l] = true
			}
		}
	}

	return m.LinesOfCode{LOC: loc, CLOC: len(commentLines), NCLOC: loc - len(commentLines)}
}

func (p *goFileParse) markDoc(group *ast.CommentGroup) string {
	if group == nil {
		return ""
	}

	texts := make([]string, 0, len(group.List))
	for _, c := range group.List {
		p.docs[p.offset(c.Slash)] = true
		texts = append(texts, c.Text)
	}

	return strings.Join(texts, "\n")
}

func (p *goFileParse) collectDecls(file *ast.File) {
	namespace := file.Name.Name
	p.markDoc(file.Doc)

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			p.collectGenDecl(d, namespace)
		case *ast.FuncDecl:
			p.collectFuncDecl(d, namespace)
		}
	}

	for _, name := range p.order {
		class := p.classes[name]
		sort.SliceStable(class.Methods, func(i, j int) bool {
			return class.Methods[i].StartLine < class.Methods[j].StartLine
		})

		if class.StartLine == 0 && len(class.Methods) > 0 {
			// Receiver type declared in another file of the package.
			class.StartLine = class.Methods[0].StartLine
			class.EndLine = class.Methods[len(class.Methods)-1].EndLine
		}

		p.result.Classes = append(p.result.Classes, *class)
	}

	sortUnits(p.result.Classes)
	sortUnits(p.result.Interfaces)
	sortUnits(p.result.Functions)
}

func (p *goFileParse) collectGenDecl(d *ast.GenDecl, namespace string) {
	switch d.Tok {
	case token.IMPORT:
		for _, spec := range d.Specs {
			if is, ok := spec.(*ast.ImportSpec); ok {
				p.uses[p.offset(is.Path.ValuePos)] = true
			}
		}
	case token.TYPE:
		if d.Lparen.IsValid() {
			p.markDoc(d.Doc)
		}

		for _, spec := range d.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}

			doc := ts.Doc
			if doc == nil && !d.Lparen.IsValid() {
				doc = d.Doc
			}

			start, end := p.line(ts.Pos()), p.line(ts.End())
			if !d.Lparen.IsValid() {
				start = p.line(d.Pos())
			}

			unit := m.CodeUnit{
				Name:       ts.Name.Name,
				Namespace:  namespace,
				Visibility: visibility(ts.Name.Name),
				StartLine:  start,
				EndLine:    end,
			}

			kind := m.TokenClass
			if _, isInterface := ts.Type.(*ast.InterfaceType); isInterface {
				kind = m.TokenInterface
				unit.Kind = m.UnitInterface
				p.result.Interfaces = append(p.result.Interfaces, unit)
			} else {
				unit.Kind = m.UnitClass
				class := p.class(ts.Name.Name, namespace)
				methods := class.Methods
				*class = unit
				class.Methods = methods
			}

			p.anchors[p.offset(ts.Name.Pos())] = declAnchor{kind: kind, endLine: end, docBlock: p.markDoc(doc)}
		}
	case token.CONST, token.VAR:
		p.markDoc(d.Doc)

		for _, spec := range d.Specs {
			if vs, ok := spec.(*ast.ValueSpec); ok {
				p.markDoc(vs.Doc)
			}
		}

		p.result.Functions = append(p.result.Functions, p.funcLits(d, namespace)...)
	}
}

func (p *goFileParse) collectFuncDecl(d *ast.FuncDecl, namespace string) {
	start, end := p.line(d.Pos()), p.line(d.End())

	unit := m.CodeUnit{
		Kind:       m.UnitFunction,
		Name:       d.Name.Name,
		Namespace:  namespace,
		Signature:  p.signature(d.Name.Name, d.Type),
		Visibility: visibility(d.Name.Name),
		StartLine:  start,
		EndLine:    end,
		CCN:        complexity(d.Body),
	}

	p.anchors[p.offset(d.Type.Func)] = declAnchor{kind: m.TokenFunction, endLine: end, docBlock: p.markDoc(d.Doc)}

	var lits []m.CodeUnit
	if d.Body != nil {
		lits = p.funcLits(d.Body, namespace)
	}

	if d.Recv == nil || len(d.Recv.List) == 0 {
		p.result.Functions = append(p.result.Functions, unit)
		p.result.Functions = append(p.result.Functions, lits...)

		return
	}

	unit.Kind = m.UnitMethod
	class := p.class(receiverName(d.Recv.List[0].Type), namespace)
	class.Methods = append(class.Methods, unit)
	class.Methods = append(class.Methods, lits...)
}

func (p *goFileParse) class(name, namespace string) *m.CodeUnit {
	if c, ok := p.classes[name]; ok {
		return c
	}

	c := &m.CodeUnit{Kind: m.UnitClass, Name: name, Namespace: namespace, Visibility: visibility(name)}
	p.classes[name] = c
	p.order = append(p.order, name)

	return c
}

// funcLits records the func literals nested in node as synthetic units.
func (p *goFileParse) funcLits(node ast.Node, namespace string) []m.CodeUnit {
	var lits []m.CodeUnit

	ast.Inspect(node, func(n ast.Node) bool {
		lit, ok := n.(*ast.FuncLit)
		if !ok {
			return true
		}

		start, end := p.line(lit.Pos()), p.line(lit.End())
		pos := p.fset.Position(lit.Pos())
		lits = append(lits, m.CodeUnit{
			Kind:       m.UnitFunction,
			Name:       fmt.Sprintf("func:%d#%d", pos.Line, pos.Column),
			Namespace:  namespace,
			Signature:  p.signature("func", lit.Type),
			Visibility: "private",
			StartLine:  start,
			EndLine:    end,
			CCN:        complexity(lit.Body),
			Synthetic:  true,
		})
		p.anchors[p.offset(lit.Type.Func)] = declAnchor{kind: m.TokenFunction, endLine: end}

		return true
	})

	return lits
}

func (p *goFileParse) signature(name string, ft *ast.FuncType) string {
	from, to := p.offset(ft.Params.Pos()), p.offset(ft.End())
	if from < 0 || to > len(p.src) || from > to {
		return name
	}

	return name + string(p.src[from:to])
}

// scanTokens produces the flat token stream of the file.
func (p *goFileParse) scanTokens(namespace string) []m.Token {
	var s scanner.Scanner

	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(p.src))
	s.Init(file, p.src, nil, scanner.ScanComments)

	var tokens []m.Token

	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}

		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}

		position := fset.Position(pos)
		t := m.Token{Kind: m.TokenCode, Line: position.Line, Text: lit}

		switch {
		case tok == token.COMMENT:
			t.Kind = m.TokenComment
			if p.docs[position.Offset] {
				t.Kind = m.TokenDocComment
			}
		case tok == token.PACKAGE:
			t.Kind = m.TokenNamespace
			t.EndLine = position.Line
			t.Text = namespace
		case tok == token.IMPORT, p.uses[position.Offset]:
			t.Kind = m.TokenUse
		default:
			if anchor, ok := p.anchors[position.Offset]; ok {
				t.Kind = anchor.kind
				t.EndLine = anchor.endLine
				t.DocBlock = anchor.docBlock
			}
		}

		if t.Text == "" {
			t.Text = tok.String()
		}

		tokens = append(tokens, t)
	}

	return tokens
}

// complexity returns the cyclomatic complexity of a function body. Nested
// func literals are measured separately.
func complexity(body *ast.BlockStmt) int {
	ccn := 1
	if body == nil {
		return ccn
	}

	ast.Inspect(body, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.FuncLit:
			return false
		case *ast.IfStmt, *ast.ForStmt, *ast.RangeStmt:
			ccn++
		case *ast.CaseClause:
			if x.List != nil {
				ccn++
			}
		case *ast.CommClause:
			if x.Comm != nil {
				ccn++
			}
		case *ast.BinaryExpr:
			if x.Op == token.LAND || x.Op == token.LOR {
				ccn++
			}
		}

		return true
	})

	return ccn
}

func receiverName(expr ast.Expr) string {
	for {
		switch t := expr.(type) {
		case *ast.StarExpr:
			expr = t.X
		case *ast.ParenExpr:
			expr = t.X
		case *ast.IndexExpr:
			expr = t.X
		case *ast.IndexListExpr:
			expr = t.X
		case *ast.Ident:
			return t.Name
		default:
			return fmt.Sprintf("%T", expr)
		}
	}
}

func visibility(name string) string {
	if ast.IsExported(name) {
		return "public"
	}

	return "private"
}

func sortUnits(units []m.CodeUnit) {
	sort.SliceStable(units, func(i, j int) bool {
		return units[i].StartLine < units[j].StartLine
	})
}
