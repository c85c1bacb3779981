// Package transform implements the IL-to-Go transformer core: the Type
// Engine, Pre-Scanner, Node Dispatcher and Framework Stub Generator,
// wired together by Transformer (this file) and its entry point Transform
// (dispatch_decl.go). It follows the same shape as a pass-based analysis over
// a mutable symbol table feeding a switch-dispatched recursive tree walk
// that produces a target representation.
package transform

import (
	"github.com/hawkynt/ilgo/internal/diagnostics"
	"github.com/hawkynt/ilgo/internal/goast"
	"github.com/hawkynt/ilgo/internal/il"
)

// OpCodesTypeInfo describes one OpCodes helper's declared return type, as
// supplied by the caller's typeKnowledge.opCodesTypes map.
type OpCodesTypeInfo struct {
	Returns string
}

// Transformer holds all per-input-file state.
// It is created fresh for each Transform call via New and is not safe to
// share across concurrent invocations: every field below is
// mutated in place during a single-threaded walk.
type Transformer struct {
	options Options

	// opCodesTypes is the optional typeKnowledge.opCodesTypes map.
	opCodesTypes map[string]OpCodesTypeInfo

	// variableTypes is scoped to the current function/constructor body; it
	// is reset (not merely shadowed) at the start of each function/method/
	// constructor transformation.
	variableTypes map[string]*goast.Type

	// structFieldTypes maps both the original and Pascal-cased field name to
	// its Go type; reset between independent classes.
	structFieldTypes map[string]*goast.Type

	// methodReturnTypes maps method name -> Go type, populated by the
	// pre-scanner's return-type pass. Persists across classes within one
	// file, like a compiler's persistent function table.
	methodReturnTypes map[string]*goast.Type

	// methodParamTypes maps "methodName:index" -> call-site-inferred Go
	// type.
	methodParamTypes map[string]*goast.Type

	// methodDeclaredParams maps "methodName:index" -> declared parameter
	// type, used to assert interface{} call-site arguments.
	methodDeclaredParams map[string]*goast.Type

	// renamedFields maps "Struct.Name" -> renamed identifier when a
	// Pascal-cased field collides with a method name.
	renamedFields map[string]string

	// declaredMethodNames is a per-struct set of already-emitted method
	// names, used to uniquify duplicate method names with a numeric suffix.
	declaredMethodNames map[string]map[string]bool

	// imports is the set of external packages the emission so far requires.
	imports map[string]bool

	// Framework stub accumulators. Each maps a referenced
	// name to whether it has been selected for emission; selection is
	// transitively closed by stubs.go.
	frameworkClasses   map[string]bool
	helperClasses      map[string]bool
	enumsUsed          map[string]bool
	frameworkFunctions map[string]bool

	// Positional context, valid only during the transformation of the
	// construct that established it; must be reset to its zero value once
	// Transform returns.
	currentStruct             string
	currentFunc               string
	currentFunctionReturnType *goast.Type
	receiverName              string
	algorithmStructName       string

	// inMapSelfRefContext is true while lowering an object-literal-with-
	// self-referencing-closures IIFE.
	inMapSelfRefContext bool

	// prescanEmptyArrays tags variables whose element type came from the
	// empty-array look-ahead pass, so a later-known
	// declared return type can override a uint32 inference with []byte.
	prescanEmptyArrays map[string]bool

	// classBases maps a class name to its IL-declared superclass name, kept
	// so method/field resolution can walk the inheritance chain during
	// dispatch.
	classBases map[string]string

	// methodBodies lets pre-scan passes re-enter a method body by name
	// (e.g. the typeof-polymorphism check in inferParameterType); populated
	// per-class by preScanClass before the passes that need it.
	methodBodies map[string]*il.Node

	warnings diagnostics.Sink
}

// New constructs a Transformer. opts are applied over DefaultOptions in
// order.
func New(opts ...Option) *Transformer {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Transformer{options: o}
}

// WithOpCodesTypes registers typeKnowledge.opCodesTypes for
// precise OpCodes return-type resolution. Returns the receiver for chaining
// at construction time.
func (t *Transformer) WithOpCodesTypes(m map[string]OpCodesTypeInfo) *Transformer {
	t.opCodesTypes = m
	return t
}

// resetFileState (re)initializes every table owned by a single Transform
// call. Called once at the top of Transform, never mid-walk.
func (t *Transformer) resetFileState() {
	t.variableTypes = map[string]*goast.Type{}
	t.structFieldTypes = map[string]*goast.Type{}
	t.methodReturnTypes = map[string]*goast.Type{}
	t.methodParamTypes = map[string]*goast.Type{}
	t.methodDeclaredParams = map[string]*goast.Type{}
	t.renamedFields = map[string]string{}
	t.declaredMethodNames = map[string]map[string]bool{}
	t.imports = map[string]bool{}
	t.frameworkClasses = map[string]bool{}
	t.helperClasses = map[string]bool{}
	t.enumsUsed = map[string]bool{}
	t.frameworkFunctions = map[string]bool{}
	t.prescanEmptyArrays = map[string]bool{}
	t.classBases = map[string]string{}
	t.warnings = diagnostics.Sink{}
	t.clearPositionalContext()
}

// resetClassState clears the tables scoped to a single class body.
func (t *Transformer) resetClassState(className string) {
	t.structFieldTypes = map[string]*goast.Type{}
	t.declaredMethodNames[className] = map[string]bool{}
	t.prescanEmptyArrays = map[string]bool{}
}

// clearPositionalContext resets all positional context fields to zero.
func (t *Transformer) clearPositionalContext() {
	t.currentStruct = ""
	t.currentFunc = ""
	t.currentFunctionReturnType = nil
	t.receiverName = ""
	t.algorithmStructName = ""
}

// Warnings exposes the diagnostics collected by the most recent Transform
// call.
func (t *Transformer) Warnings() []diagnostics.Warning {
	return t.warnings.Warnings()
}

// Imports exposes the accumulated import set from the most recent Transform
// call, in the fixed importOrder sequence.
func (t *Transformer) Imports() []string {
	out := make([]string, 0, len(t.imports))
	for _, p := range importOrder {
		if t.imports[p] {
			out = append(out, p)
		}
	}
	return out
}

func (t *Transformer) requireImport(path string) {
	t.imports[path] = true
}

// importOrder fixes a deterministic emission order for the closed set of
// packages this transformer ever requires.
var importOrder = []string{
	"fmt",
	"strconv",
	"strings",
	"math",
	"math/bits",
	"math/rand",
	"errors",
	"encoding/hex",
	"encoding/binary",
	"sort",
	"reflect",
	"context",
	"crypto/subtle",
}

// warnUnsupported records an unsupported-node-kind diagnostic and returns a
// nil placeholder identifier.
func (t *Transformer) warnUnsupported(n *il.Node) goast.Expr {
	pos := il.Pos{}
	kind := il.Kind("<nil>")
	if n != nil {
		pos = n.Pos
		kind = n.Kind
	}
	t.warnings.Warn(diagnostics.KindUnsupportedNode, pos, "unhandled IL node kind %q", kind)
	return goast.Nil
}
