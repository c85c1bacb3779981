package iltransform

import (
	"strings"
	"testing"

	"github.com/hawkynt/ilgo/internal/il"
)

// program builds a minimal class with one method that exercises the binary
// numeric-coercion path end to end, from IL through to rendered Go source.
func program() *il.Program {
	method := &il.Node{
		Kind: il.KindMethodDecl,
		Name: "Mix",
		Params: []*il.Node{
			{Kind: il.KindIdentifier, Name: "a"},
		},
		Body: &il.Node{
			Kind: il.KindBlockStatement,
			Children: []*il.Node{
				{
					Kind: il.KindReturnStatement,
					Body: &il.Node{
						Kind:     il.KindBinaryExpression,
						Operator: "+",
						Left:     &il.Node{Kind: il.KindIdentifier, Name: "a"},
						Right:    &il.Node{Kind: il.KindNumericLiteral, Value: "1"},
					},
				},
			},
		},
	}
	class := &il.Node{
		Kind:       il.KindClassDecl,
		Name:       "Mixer",
		SuperClass: "Algorithm",
		Children:   []*il.Node{method},
	}
	return &il.Program{Kind: il.KindProgram, Children: []*il.Node{class}}
}

func TestTransformEndToEnd(t *testing.T) {
	tr := New(WithPackageName("cipher"))
	file, err := tr.Transform(program())
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	src := file.MustRender()
	if !strings.Contains(src, "package cipher") {
		t.Errorf("rendered source missing package clause:\n%s", src)
	}
	if !strings.Contains(src, "type Mixer struct") {
		t.Errorf("rendered source missing Mixer struct:\n%s", src)
	}
	if !strings.Contains(src, "func (") || !strings.Contains(src, "Mix(") {
		t.Errorf("rendered source missing Mix method:\n%s", src)
	}
	if len(tr.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", tr.Warnings())
	}
}

func TestStubsFileFacade(t *testing.T) {
	tr := New()
	src := tr.StubsFile().MustRender()
	if !strings.Contains(src, "type AlgorithmFramework struct") {
		t.Errorf("StubsFile facade should emit the framework singleton:\n%s", src)
	}
}
