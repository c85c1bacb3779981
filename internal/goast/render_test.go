package goast

import (
	"strings"
	"testing"
)

func TestRenderFormatsSource(t *testing.T) {
	f := NewFile("cipher")
	f.AddImport("fmt")
	f.AddDecl(&FuncDecl{
		Name:    "Greet",
		Params:  []*Field{{Name: "name", Type: String}},
		Results: []*Field{{Type: String}},
		Body: &BlockStmt{List: []Stmt{
			&ReturnStmt{Results: []Expr{&CallExpr{Fun: NewIdent("fmt.Sprintf"), Args: []Expr{&StringLit{Value: "hi %s"}, NewIdent("name")}}}},
		}},
	})

	out, err := f.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	src := string(out)
	if !strings.Contains(src, "package cipher") {
		t.Errorf("rendered source missing package clause:\n%s", src)
	}
	if !strings.Contains(src, `"fmt"`) {
		t.Errorf("rendered source missing import:\n%s", src)
	}
	if !strings.Contains(src, "func Greet(name string) string") {
		t.Errorf("rendered source missing function signature:\n%s", src)
	}
}

func TestRenderOmitsEmptyImportClause(t *testing.T) {
	f := NewFile("cipher")
	out, err := f.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(string(out), "import") {
		t.Errorf("empty import set should not emit an import clause: %s", out)
	}
}

func TestAddImportDeduplicates(t *testing.T) {
	f := NewFile("cipher")
	f.AddImport("fmt")
	f.AddImport("fmt")
	if len(f.Imports) != 1 {
		t.Errorf("AddImport should dedupe; got %v", f.Imports)
	}
}
