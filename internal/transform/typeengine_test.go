package transform

import (
	"testing"

	"github.com/hawkynt/ilgo/internal/goast"
	"github.com/hawkynt/ilgo/internal/il"
)

func TestInferTypeNumericLiteralDefaultsUint32(t *testing.T) {
	tr := New()
	tr.resetFileState()
	got := tr.inferType(&il.Node{Kind: il.KindNumericLiteral, Value: "5"}, "", nil)
	if !goast.Equal(got, goast.Uint32) {
		t.Errorf("numeric literal default = %s, want uint32", got)
	}
}

func TestInferTypeNameHeuristic(t *testing.T) {
	tr := New()
	tr.resetFileState()
	got := tr.inferType(&il.Node{Kind: il.KindIdentifier, Name: "key"}, "key", nil)
	if !goast.Equal(got, goast.Slice(goast.Uint8)) {
		t.Errorf("name heuristic for %q = %s, want []uint8", "key", got)
	}
	got = tr.inferType(&il.Node{Kind: il.KindIdentifier, Name: "blockSize"}, "blockSize", nil)
	if !goast.Equal(got, goast.Int) {
		t.Errorf("name heuristic for %q = %s, want int", "blockSize", got)
	}
	got = tr.inferType(&il.Node{Kind: il.KindIdentifier, Name: "isValid"}, "isValid", nil)
	if !goast.Equal(got, goast.Bool) {
		t.Errorf("name heuristic for %q = %s, want bool", "isValid", got)
	}
}

func TestInferBinaryTypeArithmeticWidens(t *testing.T) {
	tr := New()
	tr.resetFileState()
	n := &il.Node{
		Kind:     il.KindBinaryExpression,
		Operator: "+",
		Left:     &il.Node{Kind: il.KindIdentifier, Name: "a"},
		Right:    &il.Node{Kind: il.KindIdentifier, Name: "rounds"},
	}
	tr.variableTypes["a"] = goast.Uint64
	got := tr.inferBinaryType(n)
	if !goast.Equal(got, goast.Uint64) {
		t.Errorf("arithmetic widening = %s, want uint64", got)
	}
}

func TestInferBinaryTypeBitwiseUnsignedDominant(t *testing.T) {
	tr := New()
	tr.resetFileState()
	n := &il.Node{
		Kind:     il.KindBinaryExpression,
		Operator: "^",
		Left:     &il.Node{Kind: il.KindIdentifier, Name: "a"},
		Right:    &il.Node{Kind: il.KindIdentifier, Name: "b"},
	}
	tr.variableTypes["a"] = goast.Int32
	tr.variableTypes["b"] = goast.Uint32
	got := tr.inferBinaryType(n)
	if !goast.Equal(got, goast.Uint32) {
		t.Errorf("bitwise unsigned-dominant = %s, want uint32", got)
	}
}

func TestInferBinaryTypeComparisonIsBool(t *testing.T) {
	tr := New()
	tr.resetFileState()
	n := &il.Node{
		Kind:     il.KindBinaryExpression,
		Operator: "==",
		Left:     &il.Node{Kind: il.KindNumericLiteral, Value: "1"},
		Right:    &il.Node{Kind: il.KindNumericLiteral, Value: "2"},
	}
	if got := tr.inferBinaryType(n); !goast.Equal(got, goast.Bool) {
		t.Errorf("comparison type = %s, want bool", got)
	}
}

func TestTruthyExpr(t *testing.T) {
	ident := goast.NewIdent("x")
	tests := []struct {
		typ  *goast.Type
		want string
	}{
		{goast.Bool, "x"},
		{goast.Uint32, "x != 0"},
		{goast.String, `x != ""`},
		{goast.Slice(goast.Uint8), "len(x) > 0"},
		{nil, "x != nil"},
	}
	for _, tt := range tests {
		if got := truthyExpr(ident, tt.typ); got != tt.want {
			t.Errorf("truthyExpr(%s) = %q, want %q", tt.typ, got, tt.want)
		}
	}
}
