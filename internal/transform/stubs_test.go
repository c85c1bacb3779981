package transform

import (
	"strings"
	"testing"

	"github.com/hawkynt/ilgo/internal/goast"
)

func TestStubsFileEmitsFullCatalog(t *testing.T) {
	tr := New()
	file := tr.StubsFile()
	src := file.MustRender()

	for _, want := range []string{
		"type BaseAlgorithm struct",
		"type BlockCipherAlgorithm struct",
		"type IBlockCipherInstance struct",
		"type CategoryType string",
		"type KeySize struct",
		"type AlgorithmFramework struct",
		"func mustHexDecode",
		"func opCodesHelper",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("stub catalog missing %q\n--- source ---\n%s", want, src)
		}
	}
}

func TestSelectFrameworkBaseTransitivelyClosesEnumsAndHelpers(t *testing.T) {
	tr := newTestTransformer()
	tr.selectFrameworkBase("MacAlgorithm")
	if !tr.frameworkClasses["BaseAlgorithm"] {
		t.Errorf("selecting a concrete algorithm base must pull in BaseAlgorithm")
	}
	for _, e := range []string{"CategoryType", "SecurityStatus", "ComplexityType", "CountryCode"} {
		if !tr.enumsUsed[e] {
			t.Errorf("selecting MacAlgorithm must select enum family %s", e)
		}
	}
	for _, h := range []string{"KeySize", "LinkItem", "TestCase", "Vulnerability", "TestCategory"} {
		if !tr.helperClasses[h] {
			t.Errorf("selecting MacAlgorithm must select helper record %s", h)
		}
	}
}

func TestEmitFrameworkStubsIsEmptyWhenNothingSelected(t *testing.T) {
	tr := newTestTransformer()
	file := goast.NewFile("cipher")
	tr.emitFrameworkStubs(file)
	if len(file.Declarations) != 0 {
		t.Errorf("expected no stub declarations when nothing was selected, got %d", len(file.Declarations))
	}
}
