package goast

import "strings"

// Decl is any top-level Go declaration.
type Decl interface {
	declNode()
	String() string
}

// StructDecl renders a struct type declaration, with zero or more anonymous
// embedded base types.
type StructDecl struct {
	Doc    string
	Name   string
	Embeds []string // base type names, embedded anonymously, in order
	Fields []*Field
}

func (*StructDecl) declNode() {}
func (d *StructDecl) String() string {
	var sb strings.Builder
	writeDoc(&sb, d.Doc)
	sb.WriteString("type " + d.Name + " struct {\n")
	for _, e := range d.Embeds {
		sb.WriteString("\t" + e + "\n")
	}
	for _, f := range d.Fields {
		sb.WriteString("\t" + f.Name + " " + f.Type.String() + "\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// TypeDecl renders a named-type declaration: type Name Underlying. Used for
// string-based enum types.
type TypeDecl struct {
	Doc        string
	Name       string
	Underlying *Type
}

func (*TypeDecl) declNode() {}
func (d *TypeDecl) String() string {
	var sb strings.Builder
	writeDoc(&sb, d.Doc)
	sb.WriteString("type " + d.Name + " " + d.Underlying.String())
	return sb.String()
}

// ConstSpec is one named constant within a ConstDecl group.
type ConstSpec struct {
	Name  string
	Type  *Type // nil to let Go infer from Value
	Value Expr
}

// ConstDecl renders a const ( ... ) block (used for enum value lists).
type ConstDecl struct {
	Doc   string
	Specs []*ConstSpec
}

func (*ConstDecl) declNode() {}
func (d *ConstDecl) String() string {
	var sb strings.Builder
	writeDoc(&sb, d.Doc)
	sb.WriteString("const (\n")
	for _, s := range d.Specs {
		sb.WriteString("\t" + s.Name)
		if s.Type != nil {
			sb.WriteString(" " + s.Type.String())
		}
		sb.WriteString(" = " + s.Value.String() + "\n")
	}
	sb.WriteString(")")
	return sb.String()
}

// VarDecl is one package-level variable declaration (used for the
// framework-singleton pointer and hoisted module-level `const m = {...}`
// object literals).
type VarDecl struct {
	Doc   string
	Name  string
	Type  *Type
	Value Expr
}

func (*VarDecl) declNode() {}
func (d *VarDecl) String() string {
	var sb strings.Builder
	writeDoc(&sb, d.Doc)
	sb.WriteString("var " + d.Name)
	if d.Type != nil {
		sb.WriteString(" " + d.Type.String())
	}
	if d.Value != nil {
		sb.WriteString(" = " + d.Value.String())
	}
	return sb.String()
}

// FuncDecl renders a top-level function or, when Recv is set, a
// receiver-bound method.
type FuncDecl struct {
	Doc     string
	Recv    *Field // nil for free functions
	Name    string
	Params  []*Field
	Results []*Field
	Body    *BlockStmt
}

func (*FuncDecl) declNode() {}
func (d *FuncDecl) String() string {
	var sb strings.Builder
	writeDoc(&sb, d.Doc)
	sb.WriteString("func ")
	if d.Recv != nil {
		sb.WriteString("(" + d.Recv.Name + " " + d.Recv.Type.String() + ") ")
	}
	sb.WriteString(d.Name + "(" + joinFields(d.Params) + ")")
	sb.WriteString(resultClause(d.Results))
	sb.WriteString(" " + d.Body.String())
	return sb.String()
}

// RawDecl renders pre-formatted Go source verbatim. Used by the Framework
// Stub Generator (internal/transform/stubs.go) for fixed, normative
// scaffolding text that is the same on every emission rather than built
// from a walked IL tree.
type RawDecl struct{ Text string }

func (*RawDecl) declNode()        {}
func (d *RawDecl) String() string { return d.Text }

func writeDoc(sb *strings.Builder, doc string) {
	if doc == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(doc, "\n"), "\n") {
		sb.WriteString("// " + line + "\n")
	}
}
