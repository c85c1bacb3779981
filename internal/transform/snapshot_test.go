package transform

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/hawkynt/ilgo/internal/il"
)

// rotorProgram builds a small class exercising struct/constructor/method
// lowering, a framework base embed, and an op-code call, all in one
// rendered file, so the snapshot covers a realistic cross-section of the
// dispatcher rather than one isolated node kind.
func rotorProgram() *il.Program {
	ctor := &il.Node{
		Kind: il.KindConstructorDecl,
		Name: "constructor",
		Params: []*il.Node{
			{Kind: il.KindIdentifier, Name: "seed"},
		},
		Body: &il.Node{
			Kind: il.KindBlockStatement,
			Children: []*il.Node{
				{
					Kind: il.KindExpressionStatement,
					Body: &il.Node{
						Kind: il.KindAssignmentExpression,
						Left: &il.Node{
							Kind:     il.KindMemberExpression,
							Object:   &il.Node{Kind: il.KindThisExpression},
							Property: &il.Node{Kind: il.KindIdentifier, Name: "seed"},
						},
						Right: &il.Node{Kind: il.KindIdentifier, Name: "seed"},
					},
				},
			},
		},
	}
	mix := &il.Node{
		Kind: il.KindMethodDecl,
		Name: "mix",
		Params: []*il.Node{
			{Kind: il.KindIdentifier, Name: "x"},
		},
		Body: &il.Node{
			Kind: il.KindBlockStatement,
			Children: []*il.Node{
				{
					Kind: il.KindReturnStatement,
					Body: &il.Node{
						Kind: il.KindCallExpression,
						Callee: &il.Node{
							Kind:   il.KindMemberExpression,
							Object: &il.Node{Kind: il.KindIdentifier, Name: "OpCodes"},
							Property: &il.Node{Kind: il.KindIdentifier, Name: "RotL32"},
						},
						Args: []*il.Node{
							{Kind: il.KindIdentifier, Name: "x"},
							{Kind: il.KindNumericLiteral, Value: "13"},
						},
					},
				},
			},
		},
	}
	class := &il.Node{
		Kind:       il.KindClassDecl,
		Name:       "Rotor",
		SuperClass: "StreamCipherAlgorithm",
		Children:   []*il.Node{ctor, mix},
	}
	return &il.Program{Kind: il.KindProgram, Children: []*il.Node{class}}
}

func TestTransformRendersRotorSnapshot(t *testing.T) {
	tr := New(WithPackageName("cipher"))
	file, err := tr.Transform(rotorProgram())
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	snaps.MatchSnapshot(t, file.MustRender())
}

func TestStubsFileSnapshot(t *testing.T) {
	tr := New(WithPackageName("cipher"))
	snaps.MatchSnapshot(t, tr.StubsFile().MustRender())
}
