package transform

import (
	"testing"

	"github.com/hawkynt/ilgo/internal/goast"
	"github.com/hawkynt/ilgo/internal/il"
)

func newTestTransformer() *Transformer {
	tr := New()
	tr.resetFileState()
	return tr
}

func TestNegativeToUnsigned(t *testing.T) {
	got := negativeToUnsigned("-1", goast.Uint32)
	if got.String() != "^uint32(0)" {
		t.Errorf("negativeToUnsigned(-1) = %s, want ^uint32(0)", got)
	}
	got = negativeToUnsigned("-2", goast.Uint8)
	if got.String() != "^uint8(1)" {
		t.Errorf("negativeToUnsigned(-2) = %s, want ^uint8(1)", got)
	}
	got = negativeToUnsigned("5", goast.Uint32)
	if got.String() != "5" {
		t.Errorf("non-negative value should pass through unchanged, got %s", got)
	}
}

func TestTransformNumericLiteralOverflowsToUint32(t *testing.T) {
	tr := newTestTransformer()
	got := tr.transformExpression(&il.Node{Kind: il.KindNumericLiteral, Value: "4294967295"})
	if got.String() != "uint32(4294967295)" {
		t.Errorf("large literal = %s, want uint32(4294967295)", got)
	}
	got = tr.transformExpression(&il.Node{Kind: il.KindNumericLiteral, Value: "5"})
	if got.String() != "5" {
		t.Errorf("small literal = %s, want bare 5", got)
	}
}

func TestTransformBinaryExpressionWidensOperand(t *testing.T) {
	tr := newTestTransformer()
	tr.variableTypes["a"] = goast.Uint64
	tr.variableTypes["rounds"] = goast.Int
	n := &il.Node{
		Kind:     il.KindBinaryExpression,
		Operator: "+",
		Left:     &il.Node{Kind: il.KindIdentifier, Name: "a"},
		Right:    &il.Node{Kind: il.KindIdentifier, Name: "rounds"},
	}
	got := tr.transformExpression(n)
	if got.String() != "a + uint64(rounds)" {
		t.Errorf("transformBinaryExpression = %s, want a + uint64(rounds)", got)
	}
}

func TestTransformTemplateLiteral(t *testing.T) {
	tr := newTestTransformer()
	n := &il.Node{Kind: il.KindTemplateLiteral, Children: []*il.Node{
		{Kind: il.KindStringLiteral, Value: "round "},
		{Kind: il.KindIdentifier, Name: "i"},
	}}
	got := tr.transformExpression(n)
	if got.String() != `fmt.Sprintf("round %v", i)` {
		t.Errorf("transformTemplateLiteral = %s", got)
	}
	if !tr.imports["fmt"] {
		t.Errorf("template literal should require fmt import")
	}
}

func TestTransformOpCodesCallRotateAndCatchAll(t *testing.T) {
	tr := newTestTransformer()
	got := tr.transformOpCodesCall("RotL32", []*il.Node{
		{Kind: il.KindIdentifier, Name: "x"},
		{Kind: il.KindNumericLiteral, Value: "7"},
	})
	if got.String() != "bits.RotateLeft32(x, 7)" {
		t.Errorf("RotL32 = %s", got)
	}
	got = tr.transformOpCodesCall("RotR32", []*il.Node{
		{Kind: il.KindIdentifier, Name: "x"},
		{Kind: il.KindNumericLiteral, Value: "7"},
	})
	if got.String() != "bits.RotateLeft32(x, -(7))" {
		t.Errorf("RotR32 = %s", got)
	}
	got = tr.transformOpCodesCall("GF256Mul", []*il.Node{
		{Kind: il.KindIdentifier, Name: "a"},
		{Kind: il.KindIdentifier, Name: "b"},
	})
	if got.String() != `opCodesHelper("GF256Mul", a, b)` {
		t.Errorf("catch-all dispatch = %s", got)
	}
	if !tr.frameworkFunctions["opCodesHelper"] {
		t.Errorf("catch-all should select opCodesHelper")
	}
}

func TestTransformEnumReferenceNormalization(t *testing.T) {
	tr := newTestTransformer()
	got := tr.transformEnumReference(&il.Node{Kind: il.KindEnumReference, Name: "SECURE", ResultType: "SecurityStatus"})
	if got.String() != "SecurityStatusSecure" {
		t.Errorf("enum normalization = %s, want SecurityStatusSecure", got)
	}
	if !tr.enumsUsed["SecurityStatus"] {
		t.Errorf("transformEnumReference should select its enum family")
	}
}

func TestTransformEnumReferenceRenamedConstants(t *testing.T) {
	cases := []struct {
		name, family, want string
	}{
		{"INSECURE", "SecurityStatus", "SecurityStatusBroken"},
		{"MAC", "CategoryType", "CategoryTypeMAC"},
		{"BASIC", "ComplexityType", "ComplexityTypeBeginner"},
		{"SIMPLE", "ComplexityType", "ComplexityTypeBeginner"},
		{"LOW", "ComplexityType", "ComplexityTypeBeginner"},
		{"SINGAPORE", "CountryCode", "CountryCodeSG"},
	}
	for _, c := range cases {
		tr := newTestTransformer()
		got := tr.transformEnumReference(&il.Node{Kind: il.KindEnumReference, Name: c.name, ResultType: c.family})
		if got.String() != c.want {
			t.Errorf("enum normalization(%s) = %s, want %s", c.name, got, c.want)
		}
	}
}

func TestNegativeIndexAwareRewritesToLenMinusN(t *testing.T) {
	tr := newTestTransformer()
	obj := goast.NewIdent("arr")
	key := &il.Node{Kind: il.KindUnaryExpression, Operator: "-", Left: &il.Node{Kind: il.KindNumericLiteral, Value: "1"}}
	got := tr.negativeIndexAware(key, obj)
	if got.String() != "len(arr) - 1" {
		t.Errorf("negativeIndexAware = %s, want len(arr) - 1", got)
	}
}

func TestFlippedComparison(t *testing.T) {
	n := &il.Node{Kind: il.KindBinaryExpression, Operator: "<"}
	flipped, ok := flippedComparison(n)
	if !ok || flipped.Operator != ">=" {
		t.Errorf("flippedComparison(<) should yield >=, got %v, %v", flipped, ok)
	}
	if n.Operator != "<" {
		t.Errorf("flippedComparison must not mutate its input")
	}
}
