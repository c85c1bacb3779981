package goast

import "testing"

func TestLiteralStrings(t *testing.T) {
	if got := (&StringLit{Value: `say "hi"` + "\n"}).String(); got != `"say \"hi\"\n"` {
		t.Errorf("StringLit.String() = %q", got)
	}
	if got := (&IntLit{Value: "42"}).String(); got != "42" {
		t.Errorf("IntLit.String() = %q", got)
	}
	if got := (&BoolLit{Value: true}).String(); got != "true" {
		t.Errorf("BoolLit.String() = %q", got)
	}
}

func TestSelectorIndexSlice(t *testing.T) {
	obj := NewIdent("s")
	if got := (&Selector{X: obj, Sel: "Key"}).String(); got != "s.Key" {
		t.Errorf("Selector = %q", got)
	}
	if got := (&IndexExpr{X: obj, Index: &StringLit{Value: "x"}}).String(); got != `s["x"]` {
		t.Errorf("IndexExpr = %q", got)
	}
	sl := &SliceExpr{X: obj, Low: &IntLit{Value: "1"}}
	if got := sl.String(); got != "s[1:]" {
		t.Errorf("SliceExpr = %q", got)
	}
}

func TestCallAndConversion(t *testing.T) {
	call := &CallExpr{Fun: NewIdent("append"), Args: []Expr{NewIdent("a"), NewIdent("b")}, Ellipsis: true}
	if got := call.String(); got != "append(a, b...)" {
		t.Errorf("CallExpr = %q", got)
	}
	conv := &ConversionExpr{Type: Uint32, X: NewIdent("x")}
	if got := conv.String(); got != "uint32(x)" {
		t.Errorf("ConversionExpr = %q", got)
	}
	assert := &TypeAssertExpr{X: NewIdent("v"), Type: Pointer(Named("Foo"))}
	if got := assert.String(); got != "v.(*Foo)" {
		t.Errorf("TypeAssertExpr = %q", got)
	}
}

func TestCompositeLitAndFields(t *testing.T) {
	lit := &CompositeLit{Type: Named("KeySize"), Elts: []Expr{
		&KeyValueExpr{Key: "MinSize", Value: &IntLit{Value: "16"}},
		&KeyValueExpr{Key: "MaxSize", Value: &IntLit{Value: "32"}},
	}}
	if got := lit.String(); got != "KeySize{MinSize: 16, MaxSize: 32}" {
		t.Errorf("CompositeLit = %q", got)
	}

	fn := &FuncLit{
		Params:  []*Field{{Name: "x", Type: Int}},
		Results: []*Field{{Type: Bool}},
		Body:    &BlockStmt{List: []Stmt{&ReturnStmt{Results: []Expr{True}}}},
	}
	if got := fn.String(); got != "func(x int) bool {\nreturn true\n}" {
		t.Errorf("FuncLit = %q", got)
	}
}
