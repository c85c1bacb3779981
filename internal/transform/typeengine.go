package transform

import (
	"strings"

	"github.com/hawkynt/ilgo/internal/goast"
	"github.com/hawkynt/ilgo/internal/il"
)

// inferType is the Type Engine's single contract: given any IL
// expression node, optionally a variable name for name-based heuristics and
// a target-type hint, return a single Go type. It never fails — unknown
// cases widen to interface{}/any.
//
// Signal order (first match wins):
//  1. registered declared type of the caller-supplied name (variable, then
//     struct field)
//  2. node-kind-specific rule; for an identifier this is its own registered
//     variable type, then the target-type hint, then the name heuristic;
//     for a numeric literal the hint, then the name heuristic, then uint32
//  3. IL resultType annotation for non-scalar kinds (slice, string, bool);
//     scalar resultType annotations are not used
//  4. target-type hint
//  5. generic fallback (interface{}/any)
func (t *Transformer) inferType(n *il.Node, name string, hint *goast.Type) *goast.Type {
	if n == nil {
		return t.emptyInterface()
	}

	// A registered declared type for the caller-supplied name takes
	// precedence over every other signal.
	if name != "" {
		if typ, ok := t.variableTypes[name]; ok && typ != nil {
			return typ
		}
		if typ, ok := t.structFieldTypes[name]; ok && typ != nil {
			return typ
		}
	}

	switch n.Kind {
	case il.KindStringLiteral, il.KindTemplateLiteral:
		return goast.String
	case il.KindBooleanLiteral:
		return goast.Bool
	case il.KindNullLiteral:
		return t.emptyInterface()
	case il.KindBigIntLiteral:
		return goast.Uint64
	case il.KindArrayLiteral:
		return t.inferArrayLiteralType(n, hint)
	case il.KindObjectLiteral:
		return t.inferObjectLiteralType(n, hint)
	case il.KindBinaryExpression:
		return t.inferBinaryType(n)
	case il.KindLogicalExpression:
		return goast.Bool
	case il.KindUnaryExpression:
		return t.inferUnaryType(n)
	case il.KindConditionalExpression:
		return t.inferType(n.Consequent, "", hint)
	case il.KindCallExpression:
		return t.inferCallType(n, hint)
	case il.KindTypeofExpression:
		return goast.String
	case il.KindThisExpression:
		return goast.Named(t.currentStruct)
	case il.KindNumericLiteral:
		// Numeric IL resultTypes are not trusted as fallback for scalars
		//: prefer a hint/name heuristic over the IL's signed
		// annotation, since the IL uses signed widths where crypto code
		// wants unsigned.
		if hint != nil {
			return hint
		}
		if name != "" {
			if h := nameHeuristic(name); h != nil {
				return h
			}
		}
		return goast.Uint32
	case il.KindIdentifier:
		if typ, ok := t.variableTypes[n.Name]; ok && typ != nil {
			return typ
		}
		if hint != nil {
			return hint
		}
		if h := nameHeuristic(n.Name); h != nil {
			return h
		}
		return t.resultTypeFallback(n, hint)
	}

	return t.resultTypeFallback(n, hint)
}

// resultTypeFallback applies the IL resultType annotation for non-scalar
// kinds (slice/string/bool), then the generic fallback.
func (t *Transformer) resultTypeFallback(n *il.Node, hint *goast.Type) *goast.Type {
	switch n.ResultType {
	case "boolean", "bool":
		return goast.Bool
	case "string":
		return goast.String
	case "uint8[]", "byte[]":
		return goast.Slice(goast.Uint8)
	case "uint32[]":
		return goast.Slice(goast.Uint32)
	case "":
		// fall through
	default:
		if strings.HasSuffix(n.ResultType, "[]") {
			elemName := strings.TrimSuffix(n.ResultType, "[]")
			return goast.Slice(scalarNamed(elemName))
		}
	}
	if hint != nil {
		return hint
	}
	return t.emptyInterface()
}

func scalarNamed(name string) *goast.Type {
	switch name {
	case "uint8", "byte":
		return goast.Uint8
	case "uint16":
		return goast.Uint16
	case "uint32":
		return goast.Uint32
	case "uint64":
		return goast.Uint64
	case "int8":
		return goast.Int8
	case "int16":
		return goast.Int16
	case "int32":
		return goast.Int32
	case "int64":
		return goast.Int64
	case "int":
		return goast.Int
	case "float32":
		return goast.Float32
	case "float64":
		return goast.Float64
	case "boolean", "bool":
		return goast.Bool
	case "string":
		return goast.String
	default:
		return goast.Named(name)
	}
}

func (t *Transformer) emptyInterface() *goast.Type {
	if t.options.UseGenerics {
		return goast.Any
	}
	return goast.EmptyIface
}

func (t *Transformer) inferArrayLiteralType(n *il.Node, hint *goast.Type) *goast.Type {
	if n.ElementType != "" {
		return goast.Slice(scalarNamed(n.ElementType))
	}
	if hint != nil && hint.IsSlice {
		return hint
	}
	if len(n.Children) > 0 {
		elem := t.inferType(n.Children[0], "", nil)
		return goast.Slice(elem)
	}
	if hint != nil {
		return hint
	}
	return goast.Slice(t.emptyInterface())
}

// knownFrameworkStructFields lists the helper-record types whose object
// literal values the dispatcher recognizes.
var knownFrameworkStructFields = map[string]bool{
	"TestCase":     true,
	"KeySize":      true,
	"LinkItem":     true,
	"Vulnerability": true,
	"TestCategory": true,
}

func (t *Transformer) inferObjectLiteralType(_ *il.Node, hint *goast.Type) *goast.Type {
	if hint != nil && knownFrameworkStructFields[hint.Name] {
		return hint
	}
	return goast.Map(goast.String, t.emptyInterface())
}

// inferUnaryType handles `!x` (always bool after truthiness normalization)
// and arithmetic negation / bitwise complement (operand type preserved).
func (t *Transformer) inferUnaryType(n *il.Node) *goast.Type {
	switch n.Operator {
	case "!":
		return goast.Bool
	case "typeof":
		return goast.String
	default:
		if n.Left != nil {
			return t.inferType(n.Left, "", nil)
		}
		return goast.Int
	}
}

// inferCallType resolves a call expression's type from the registered
// method-return-type table (populated by the pre-scanner), falling back to
// widen-to-interface.
func (t *Transformer) inferCallType(n *il.Node, hint *goast.Type) *goast.Type {
	if n.Callee != nil {
		name := calleeName(n.Callee)
		if typ, ok := t.methodReturnTypes[name]; ok && typ != nil {
			return typ
		}
		if info, ok := t.opCodesTypes[name]; ok {
			return scalarNamed(info.Returns)
		}
	}
	if hint != nil {
		return hint
	}
	return t.emptyInterface()
}

func calleeName(callee *il.Node) string {
	switch callee.Kind {
	case il.KindIdentifier:
		return callee.Name
	case il.KindMemberExpression:
		if callee.Property != nil {
			return callee.Property.Name
		}
	}
	return callee.Name
}

// inferBinaryType applies the numeric coercion table.
func (t *Transformer) inferBinaryType(n *il.Node) *goast.Type {
	lt := t.inferType(n.Left, "", nil)
	rt := t.inferType(n.Right, "", nil)

	if isComparisonOp(n.Operator) {
		return goast.Bool
	}

	if goast.IsInterface(lt) && !goast.IsInterface(rt) {
		return rt
	}
	if goast.IsInterface(rt) && !goast.IsInterface(lt) {
		return lt
	}
	if !goast.IsNumeric(lt) || !goast.IsNumeric(rt) {
		return lt
	}
	if goast.Equal(lt, rt) {
		return lt
	}

	if isBitwiseOp(n.Operator) {
		// Bitwise: unsigned-dominant. Any signed operand mixed with an
		// unsigned one is cast to the unsigned counterpart.
		if goast.IsUnsignedInt(lt) && goast.IsSignedInt(rt) {
			return lt
		}
		if goast.IsUnsignedInt(rt) && goast.IsSignedInt(lt) {
			return rt
		}
		if goast.IsWiderInt(lt, rt) {
			return lt
		}
		return rt
	}

	// Arithmetic: the wider operand's type wins.
	if goast.IsWiderInt(lt, rt) {
		return lt
	}
	return rt
}

func isBitwiseOp(op string) bool {
	switch op {
	case "&", "|", "^", "<<", ">>", "&^", ">>>":
		return true
	default:
		return false
	}
}

func isComparisonOp(op string) bool {
	switch op {
	case "==", "!=", "<", "<=", ">", ">=", "===", "!==":
		return true
	default:
		return false
	}
}

// truthyExpr wraps expr (already rendered to a goast.Expr by the dispatcher)
// with the comparison its Go-type requires to be used as a boolean
// condition.
func truthyExpr(expr interface{ String() string }, typ *goast.Type) string {
	s := expr.String()
	switch {
	case typ == nil:
		return s + " != nil"
	case typ.Name == "bool":
		return s
	case goast.IsNumeric(typ):
		return s + " != 0"
	case typ.Name == "string":
		return s + ` != ""`
	case typ.IsSlice || typ.IsMap:
		return "len(" + s + ") > 0"
	case typ.IsPointer || goast.IsInterface(typ):
		return s + " != nil"
	default:
		return s + " != nil"
	}
}

// nameHeuristic implements the name-based fallback rules, consulted only when no stronger signal exists.
func nameHeuristic(name string) *goast.Type {
	if name == "" {
		return nil
	}
	lower := strings.ToLower(name)

	byteSliceExact := []string{
		"key", "data", "input", "output", "block", "buffer", "plaintext",
		"ciphertext", "message", "digest", "tag", "aad", "iv", "nonce",
		"sbox", "permutation", "lfsr", "keystream", "cell", "register",
	}
	for _, suf := range byteSliceExact {
		if lower == suf || strings.HasSuffix(lower, suf) {
			return goast.Slice(goast.Uint8)
		}
	}
	if lower == "state" && name != strings.ToUpper(name) {
		return goast.Slice(goast.Uint8)
	}

	intSuffixes := []string{
		"size", "count", "length", "len", "offset", "index", "bits",
		"rounds", "steps", "shift", "width", "height", "depth", "idx",
		"pos", "num",
	}
	for _, suf := range intSuffixes {
		if strings.HasSuffix(lower, suf) {
			if lower == "mask" {
				return goast.Uint32
			}
			return goast.Int
		}
	}
	if lower == "mask" {
		return goast.Uint32
	}

	if name == strings.ToUpper(name) && len(name) > 1 {
		for _, pfx := range []string{"MAX_", "MIN_", "NUM_", "TOTAL_"} {
			if strings.HasPrefix(name, pfx) {
				return goast.Uint32
			}
		}
		if isAllCapsIdent(name) {
			return goast.Uint32
		}
	}

	boolPrefixes := []string{"is", "has", "should", "can", "supports", "needs"}
	for _, p := range boolPrefixes {
		if strings.HasPrefix(lower, p) && len(name) > len(p) {
			return goast.Bool
		}
	}
	if lower == "inverse" {
		return goast.Bool
	}
	if midCaseBooleanMarker(name) {
		return goast.Bool
	}

	if strings.HasSuffix(lower, "config") || strings.HasSuffix(lower, "options") || strings.HasSuffix(lower, "settings") {
		return goast.Map(goast.String, goast.Any)
	}

	return nil
}

func isAllCapsIdent(name string) bool {
	hasLetter := false
	for _, r := range name {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

// midCaseBooleanMarker detects an embedded Is/Has/.. followed by an
// uppercase letter, e.g. "userIsAdmin".
func midCaseBooleanMarker(name string) bool {
	markers := []string{"Is", "Has", "Should", "Can"}
	for _, m := range markers {
		idx := strings.Index(name, m)
		if idx <= 0 {
			continue
		}
		end := idx + len(m)
		if end < len(name) && name[end] >= 'A' && name[end] <= 'Z' {
			return true
		}
	}
	return false
}
