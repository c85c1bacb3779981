package transform

import (
	"strconv"
	"strings"

	"github.com/hawkynt/ilgo/internal/goast"
	"github.com/hawkynt/ilgo/internal/il"
)

// preScanClass runs the seven pre-scan passes over one class body before
// any of its members are transformed, so that every subsequent node
// transformation sees a stable symbol table: a two-pass forward-reference
// pattern where method signatures resolve before bodies, backed by a
// mutable symbol registry.
func (t *Transformer) preScanClass(class *il.Node) {
	ctor := findConstructor(class)
	methods := findMethods(class)

	t.methodBodies = map[string]*il.Node{}
	for _, m := range methods {
		t.methodBodies[m.Name] = m.Body
	}

	t.prescanFields(ctor)
	t.prescanMethodReturnTypesPass1(methods)
	t.prescanMethodReturnTypesPass2(methods)
	t.prescanMethodParamsPass1(methods)
	t.prescanMethodParamsPass2(methods)
	t.prescanDeclaredParams(methods)
	t.prescanCollisions(class, ctor, methods)
}

func findConstructor(class *il.Node) *il.Node {
	for _, c := range class.Children {
		if c.Kind == il.KindConstructorDecl {
			return c
		}
	}
	return nil
}

func findMethods(class *il.Node) []*il.Node {
	var out []*il.Node
	for _, c := range class.Children {
		if c.Kind == il.KindMethodDecl {
			out = append(out, c)
		}
	}
	return out
}

// prescanFields is pass 1: walk the constructor, and for each
// `this.field = value` assignment record the field's Go type by
// value-based inference.
func (t *Transformer) prescanFields(ctor *il.Node) {
	if ctor == nil || ctor.Body == nil {
		return
	}
	for _, stmt := range ctor.Body.Children {
		t.prescanFieldsInStmt(stmt)
	}
}

func (t *Transformer) prescanFieldsInStmt(stmt *il.Node) {
	if stmt == nil {
		return
	}
	if stmt.Kind == il.KindExpressionStatement && stmt.Body != nil {
		stmt = stmt.Body
	}
	if stmt.Kind != il.KindAssignmentExpression {
		return
	}
	target := stmt.Left
	if target == nil || target.Kind != il.KindMemberExpression || target.Object == nil {
		return
	}
	if target.Object.Kind != il.KindThisExpression || target.Property == nil {
		return
	}
	fieldName := target.Property.Name
	value := stmt.Right
	if value == nil {
		return
	}

	// Null-literal initializations are skipped.
	if value.Kind == il.KindNullLiteral {
		return
	}

	var typ *goast.Type
	switch value.Kind {
	case il.KindBooleanLiteral:
		typ = goast.Bool
	case il.KindNumericLiteral:
		if strings.Contains(value.Value, ".") {
			typ = goast.Float64
		} else if h := nameHeuristic(fieldName); h != nil {
			typ = h
		} else {
			typ = goast.Uint32
		}
	case il.KindBigIntLiteral:
		typ = goast.Uint64
	case il.KindStringLiteral, il.KindTemplateLiteral:
		typ = goast.String
	case il.KindArrayLiteral:
		typ = t.inferArrayLiteralType(value, nil)
	case il.KindObjectLiteral:
		typ = goast.Map(goast.String, t.emptyInterface())
		if known := frameworkFieldType(fieldName); known != nil {
			typ = known
		}
	default:
		typ = t.inferType(value, fieldName, nil)
	}

	t.registerFieldType(fieldName, typ)
}

// frameworkFieldType returns a known framework field's declared type (e.g.
// `tests` always being []TestCase on BaseAlgorithm), or nil.
func frameworkFieldType(fieldName string) *goast.Type {
	switch strings.ToLower(fieldName) {
	case "tests":
		return goast.Slice(goast.Named("TestCase"))
	case "vulnerabilities":
		return goast.Slice(goast.Named("Vulnerability"))
	case "documentation", "references":
		return goast.Slice(goast.Named("LinkItem"))
	case "keysize", "keysizes":
		return goast.Slice(goast.Named("KeySize"))
	default:
		return nil
	}
}

func (t *Transformer) registerFieldType(name string, typ *goast.Type) {
	t.structFieldTypes[name] = typ
	t.structFieldTypes[pascalCase(name)] = typ
}

// prescanMethodReturnTypesPass1 records a concrete return type inferred
// from each method's first value-carrying return statement. A method with
// no return at all, or whose only returns are bare `return;`, is void:
// its entry is left unset so transformMethod emits no result clause.
func (t *Transformer) prescanMethodReturnTypesPass1(methods []*il.Node) {
	for _, m := range methods {
		ret := firstReturnWithValue(m.Body)
		if ret == nil {
			continue
		}
		t.methodReturnTypes[m.Name] = t.inferType(ret.Body, "", nil)
	}
}

// prescanMethodReturnTypesPass2 resolves forward references: a method
// whose return type was interface{} on pass one because its return value
// called a later-defined method now sees that method's resolved type.
func (t *Transformer) prescanMethodReturnTypesPass2(methods []*il.Node) {
	for _, m := range methods {
		cur, ok := t.methodReturnTypes[m.Name]
		if !ok {
			// No entry at all: a genuinely void method, nothing to resolve.
			continue
		}
		if !goast.IsInterface(cur) {
			continue
		}
		ret := firstReturnWithValue(m.Body)
		if ret == nil || ret.Body.Kind != il.KindCallExpression {
			continue
		}
		calleeN := calleeName(ret.Body.Callee)
		if resolved, ok := t.methodReturnTypes[calleeN]; ok && !goast.IsInterface(resolved) {
			t.methodReturnTypes[m.Name] = resolved
		}
	}
}

// firstReturnWithValue finds the first `return <expr>;` in body, skipping
// over bare `return;` statements, which carry no type information of their
// own (a method that never has a value-carrying return is void).
func firstReturnWithValue(body *il.Node) *il.Node {
	if body == nil {
		return nil
	}
	var walk func(n *il.Node) *il.Node
	walk = func(n *il.Node) *il.Node {
		if n == nil {
			return nil
		}
		if n.Kind == il.KindReturnStatement && n.Body != nil {
			return n
		}
		for _, c := range n.Children {
			if r := walk(c); r != nil {
				return r
			}
		}
		if n.Body != nil && n.Kind != il.KindReturnStatement {
			if r := walk(n.Body); r != nil {
				return r
			}
		}
		if n.Consequent != nil {
			if r := walk(n.Consequent); r != nil {
				return r
			}
		}
		if n.Alternate != nil {
			if r := walk(n.Alternate); r != nil {
				return r
			}
		}
		return nil
	}
	return walk(body)
}

// prescanMethodParamsPass1 visits every call expression in the class and
// records, per argument position, the inferred type of the actual argument.
func (t *Transformer) prescanMethodParamsPass1(methods []*il.Node) {
	for _, m := range methods {
		walkCalls(m.Body, func(call *il.Node) {
			t.recordCallSiteParamTypes(call)
		})
	}
}

// prescanMethodParamsPass2 re-runs pass one with pass-one results
// registered as variable types, so chained calls propagate.
func (t *Transformer) prescanMethodParamsPass2(methods []*il.Node) {
	saved := t.variableTypes
	defer func() { t.variableTypes = saved }()
	for _, m := range methods {
		t.variableTypes = map[string]*goast.Type{}
		for i, p := range m.Params {
			if typ, ok := t.methodParamTypes[m.Name+":"+strconv.Itoa(i)]; ok && typ != nil {
				t.variableTypes[p.Name] = typ
			}
		}
		walkCalls(m.Body, func(call *il.Node) {
			t.recordCallSiteParamTypes(call)
		})
	}
}

func (t *Transformer) recordCallSiteParamTypes(call *il.Node) {
	if call.Callee == nil {
		return
	}
	name := calleeName(call.Callee)
	for i, arg := range call.Args {
		key := name + ":" + strconv.Itoa(i)
		argType := t.inferType(arg, "", nil)
		existing, ok := t.methodParamTypes[key]
		if !ok || goast.IsInterface(existing) {
			t.methodParamTypes[key] = argType
			continue
		}
		if goast.IsInterface(argType) {
			continue
		}
		// Conflicting call-site types: the wider type wins.
		if argType.IsSlice && existing.IsSlice {
			if goast.IsWiderInt(argType.ElementType, existing.ElementType) {
				t.methodParamTypes[key] = argType
			}
			continue
		}
		if goast.IsWiderInt(argType, existing) {
			t.methodParamTypes[key] = argType
		}
	}
}

func walkCalls(n *il.Node, fn func(*il.Node)) {
	if n == nil {
		return
	}
	if n.Kind == il.KindCallExpression {
		fn(n)
	}
	for _, c := range n.Children {
		walkCalls(c, fn)
	}
	for _, c := range n.Args {
		walkCalls(c, fn)
	}
	if n.Left != nil {
		walkCalls(n.Left, fn)
	}
	if n.Right != nil {
		walkCalls(n.Right, fn)
	}
	if n.Body != nil {
		walkCalls(n.Body, fn)
	}
	if n.Consequent != nil {
		walkCalls(n.Consequent, fn)
	}
	if n.Alternate != nil {
		walkCalls(n.Alternate, fn)
	}
}

// prescanDeclaredParams calls inferParameterType once per method parameter
// to record the declared type under "methodName:index", so constructor
// call sites can assert interface{} arguments to the correct concrete type.
func (t *Transformer) prescanDeclaredParams(methods []*il.Node) {
	for _, m := range methods {
		for i, p := range m.Params {
			key := m.Name + ":" + strconv.Itoa(i)
			t.methodDeclaredParams[key] = t.inferParameterType(m.Name, i, p)
		}
	}
}

// inferParameterType infers a method parameter's declared type: a
// parameter tested with `typeof x === "..."` stays interface{}/any; otherwise call-site inference
// (methodParamTypes) wins, then a name heuristic, then the interface
// fallback.
func (t *Transformer) inferParameterType(methodName string, index int, param *il.Node) *goast.Type {
	if param == nil {
		return t.emptyInterface()
	}
	if paramUsedInTypeofCheck(param.Name, t.methodBodyFor(methodName)) {
		return t.emptyInterface()
	}
	key := methodName + ":" + strconv.Itoa(index)
	if typ, ok := t.methodParamTypes[key]; ok && typ != nil {
		return typ
	}
	if h := nameHeuristic(param.Name); h != nil {
		return h
	}
	return t.emptyInterface()
}

// methodBodyFor is a lookup seam the pre-scan passes use to re-enter a
// method body by name during parameter inference; populated by
// preScanClass itself before the passes that need it.
func (t *Transformer) methodBodyFor(name string) *il.Node {
	return t.methodBodies[name]
}

func paramUsedInTypeofCheck(paramName string, body *il.Node) bool {
	if paramName == "" || body == nil {
		return false
	}
	found := false
	var walk func(n *il.Node)
	walk = func(n *il.Node) {
		if n == nil || found {
			return
		}
		if n.Kind == il.KindTypeofExpression && n.Left != nil && n.Left.Kind == il.KindIdentifier && n.Left.Name == paramName {
			found = true
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
		if n.Left != nil {
			walk(n.Left)
		}
		if n.Right != nil {
			walk(n.Right)
		}
		if n.Body != nil {
			walk(n.Body)
		}
	}
	walk(body)
	return found
}

// prescanCollisions walks property definitions and `this.x = ...`
// constructor assignments plus method names; when a Pascal-cased field name
// equals a method name, registers the rename Field -> Field_.
func (t *Transformer) prescanCollisions(class *il.Node, ctor *il.Node, methods []*il.Node) {
	methodNames := map[string]bool{}
	for _, m := range methods {
		methodNames[pascalCase(m.Name)] = true
	}

	fieldNames := map[string]bool{}
	for _, c := range class.Children {
		if c.Kind == il.KindPropertyDecl {
			fieldNames[c.Name] = true
		}
	}
	if ctor != nil && ctor.Body != nil {
		for _, stmt := range ctor.Body.Children {
			s := stmt
			if s.Kind == il.KindExpressionStatement && s.Body != nil {
				s = s.Body
			}
			if s.Kind == il.KindAssignmentExpression && s.Left != nil &&
				s.Left.Kind == il.KindMemberExpression && s.Left.Object != nil &&
				s.Left.Object.Kind == il.KindThisExpression && s.Left.Property != nil {
				fieldNames[s.Left.Property.Name] = true
			}
		}
	}

	for f := range fieldNames {
		pf := pascalCase(f)
		if methodNames[pf] {
			t.renamedFields[class.Name+"."+pf] = pf + "_"
		}
	}
}

// prescanEmptyArrayLookAhead implements step 6: for each `let x = []`, scan
// remaining sibling statements for push operations on x and set x's element
// type from the first push's value (byte literal in [0,255] -> uint8;
// otherwise inferred). So-inferred variables are tagged
// "prescan-empty-array" so a later-known declared return type can override
// a uint32 guess with []byte.
func (t *Transformer) prescanEmptyArrayLookAhead(stmts []*il.Node) {
	for i, stmt := range stmts {
		decl := stmt
		if decl.Kind != il.KindVarDecl {
			continue
		}
		if decl.Init == nil || decl.Init.Kind != il.KindArrayLiteral || len(decl.Init.Children) != 0 {
			continue
		}
		varName := decl.Name
		var elemType *goast.Type
		for _, later := range stmts[i+1:] {
			push := findPushOnto(later, varName)
			if push == nil {
				continue
			}
			elemType = elementTypeFromPushValue(push)
			if len(push.Args) > 0 && push.Args[0].Kind != il.KindNumericLiteral {
				if inferred := t.inferType(push.Args[0], "", nil); !goast.IsInterface(inferred) {
					elemType = inferred
				}
			}
			break
		}
		if elemType == nil {
			continue
		}
		t.variableTypes[varName] = goast.Slice(elemType)
		t.prescanEmptyArrays[varName] = true
	}
}

func findPushOnto(n *il.Node, varName string) *il.Node {
	if n == nil {
		return nil
	}
	target := n
	if target.Kind == il.KindExpressionStatement && target.Body != nil {
		target = target.Body
	}
	if target.Kind == il.KindCallExpression && target.Callee != nil &&
		target.Callee.Kind == il.KindMemberExpression &&
		target.Callee.Object != nil && target.Callee.Object.Kind == il.KindIdentifier &&
		target.Callee.Object.Name == varName &&
		target.Callee.Property != nil && target.Callee.Property.Name == "push" {
		return target
	}
	return nil
}

func elementTypeFromPushValue(push *il.Node) *goast.Type {
	if len(push.Args) == 0 {
		return goast.Uint32
	}
	arg := push.Args[0]
	if arg.Kind == il.KindNumericLiteral {
		if n, err := strconv.Atoi(arg.Value); err == nil && n >= 0 && n <= 255 {
			return goast.Uint8
		}
	}
	return goast.Uint32
}

// prescanHoistedTernary implements step 7: within a block, detect
// "uninitialized declaration of x, immediately followed by
// if (...) { x = A } else { x = B }", infer x's type from the assigned RHS
// and register it so the main pass picks it up.
func (t *Transformer) prescanHoistedTernary(stmts []*il.Node) {
	for i := 0; i < len(stmts)-1; i++ {
		decl := stmts[i]
		if decl.Kind != il.KindVarDecl || decl.Init != nil {
			continue
		}
		next := stmts[i+1]
		if next.Kind != il.KindIfStatement || next.Alternate == nil {
			continue
		}
		thenAssign := firstAssignmentTo(next.Consequent, decl.Name)
		elseAssign := firstAssignmentTo(next.Alternate, decl.Name)
		if thenAssign == nil || elseAssign == nil {
			continue
		}
		typ := t.inferType(thenAssign, "", nil)
		t.variableTypes[decl.Name] = typ
	}
}

func firstAssignmentTo(n *il.Node, name string) *il.Node {
	if n == nil {
		return nil
	}
	body := n
	if body.Kind == il.KindBlockStatement {
		for _, s := range body.Children {
			if a := firstAssignmentTo(s, name); a != nil {
				return a
			}
		}
		return nil
	}
	s := n
	if s.Kind == il.KindExpressionStatement && s.Body != nil {
		s = s.Body
	}
	if s.Kind == il.KindAssignmentExpression && s.Left != nil &&
		s.Left.Kind == il.KindIdentifier && s.Left.Name == name {
		return s.Right
	}
	return nil
}

// pascalCase converts snake_case or camelCase identifiers to PascalCase,
// the export convention every emitted field/method name follows.
func pascalCase(name string) string {
	if name == "" {
		return name
	}
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '_' })
	if len(parts) <= 1 {
		return strings.ToUpper(name[:1]) + name[1:]
	}
	var sb strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(p[:1]))
		if len(p) > 1 {
			sb.WriteString(p[1:])
		}
	}
	return sb.String()
}
