package transform

import (
	"github.com/hawkynt/ilgo/internal/goast"
	"github.com/hawkynt/ilgo/internal/il"
)

// transformBlockBody transforms a function/method body block, running the
// hoisted-ternary and empty-array look-ahead pre-passes over its statement list before the main walk.
func (t *Transformer) transformBlockBody(body *il.Node) *goast.BlockStmt {
	if body == nil {
		return &goast.BlockStmt{}
	}
	stmts := body.Children
	t.prescanEmptyArrayLookAhead(stmts)
	t.prescanHoistedTernary(stmts)

	out := &goast.BlockStmt{}
	for _, s := range stmts {
		out.List = append(out.List, t.transformStatement(s))
	}
	return out
}

// transformStatement is the statement half of the Node Dispatcher.
// Unrecognized kinds produce a diagnostic and a no-op placeholder.
func (t *Transformer) transformStatement(n *il.Node) goast.Stmt {
	if n == nil {
		return &goast.ExprStmt{X: goast.Nil}
	}
	switch n.Kind {
	case il.KindBlockStatement:
		return t.transformBlockBody(n)
	case il.KindVarDecl:
		return t.transformVarDeclStmt(n)
	case il.KindExpressionStatement:
		return t.transformExpressionStatement(n)
	case il.KindIfStatement:
		return t.transformIfStatement(n)
	case il.KindForStatement:
		return t.transformForStatement(n)
	case il.KindForOfStatement:
		return t.transformForOfStatement(n)
	case il.KindForInStatement:
		return t.transformForInStatement(n)
	case il.KindDoWhileStatement:
		return t.transformDoWhileStatement(n)
	case il.KindWhileStatement:
		return t.transformWhileStatement(n)
	case il.KindTryStatement:
		return t.transformTryStatement(n)
	case il.KindThrowStatement:
		return &goast.ExprStmt{X: &goast.CallExpr{Fun: goast.NewIdent("panic"), Args: []goast.Expr{t.transformExpression(n.Body)}}}
	case il.KindReturnStatement:
		return t.transformReturnStatement(n)
	case il.KindBreakStatement:
		return &goast.BranchStmt{Tok: "break"}
	case il.KindContinueStatement:
		return &goast.BranchStmt{Tok: "continue"}
	case il.KindFunctionDecl:
		return &goast.ExprStmt{X: &goast.ParenExpr{X: &goast.Ident{Name: t.transformFunctionDecl(n).String()}}}
	default:
		return &goast.ExprStmt{X: t.warnUnsupported(n)}
	}
}

func (t *Transformer) transformVarDeclStmt(n *il.Node) goast.Stmt {
	name := builtinSafeName(n.Name)
	if n.Init == nil {
		typ := t.inferType(n, name, nil)
		t.variableTypes[name] = typ
		return &goast.DeclStmt{Name: name, Type: typ}
	}
	if isSelfRefObjectLiteral(n.Init) {
		t.variableTypes[name] = t.emptyInterface()
		return &goast.DeclStmt{Name: name, Value: t.transformMapSelfRefIIFE(n.Init)}
	}
	value := t.transformExpression(n.Init)
	typ := t.inferType(n.Init, name, nil)
	if existing, ok := t.variableTypes[name]; ok && t.prescanEmptyArrays[name] {
		typ = existing
		if rt := t.currentFunctionReturnType; rt != nil && rt.IsSlice && rt.ElementType != nil && rt.ElementType.Name == "uint8" &&
			existing.IsSlice && existing.ElementType != nil && existing.ElementType.Name == "uint32" {
			typ = rt
		}
	}
	t.variableTypes[name] = typ
	return &goast.DeclStmt{Name: name, Value: value}
}

func (t *Transformer) transformExpressionStatement(n *il.Node) goast.Stmt {
	expr := n.Body
	if expr == nil {
		return &goast.ExprStmt{X: goast.Nil}
	}
	switch expr.Kind {
	case il.KindAssignmentExpression:
		return t.transformAssignmentStatement(expr)
	case il.KindUpdateExpression:
		return t.transformUpdateStatement(expr)
	case il.KindCallExpression:
		if stmt, ok := t.transformArrayMutationCallStatement(expr); ok {
			return stmt
		}
	}
	return &goast.ExprStmt{X: t.transformExpression(expr)}
}

// transformUpdateStatement lowers `x++`/`x--` in statement position to
// `x += 1`/`x -= 1`.
func (t *Transformer) transformUpdateStatement(n *il.Node) goast.Stmt {
	target := t.transformExpression(n.Left)
	op := "+="
	if n.Operator == "--" {
		op = "-="
	}
	return &goast.AssignStmt{Lhs: []goast.Expr{target}, Tok: op, Rhs: []goast.Expr{&goast.IntLit{Value: "1"}}}
}

// transformArrayMutationCallStatement lowers `arr.push(v)` in statement
// position to `arr = append(arr, v)`.
func (t *Transformer) transformArrayMutationCallStatement(call *il.Node) (goast.Stmt, bool) {
	if call.Callee == nil || call.Callee.Kind != il.KindMemberExpression || call.Callee.Property == nil {
		return nil, false
	}
	if call.Callee.Property.Name != "push" {
		return nil, false
	}
	recv := t.transformExpression(call.Callee.Object)
	var args []goast.Expr
	args = append(args, recv)
	for _, a := range call.Args {
		args = append(args, t.transformExpression(a))
	}
	rhs := &goast.CallExpr{Fun: goast.NewIdent("append"), Args: args}
	return &goast.AssignStmt{Lhs: []goast.Expr{recv}, Tok: "=", Rhs: []goast.Expr{rhs}}, true
}

// transformAssignmentStatement implements the assignment semantics table.
func (t *Transformer) transformAssignmentStatement(n *il.Node) goast.Stmt {
	// Chained assignment a = b = c = v: expand to individual assignments in
	// reverse order.
	if n.Right != nil && n.Right.Kind == il.KindAssignmentExpression {
		chain := flattenChainedAssignment(n)
		block := &goast.BlockStmt{}
		for i := len(chain) - 1; i >= 1; i-- {
			block.List = append(block.List, t.transformAssignmentStatement(&il.Node{
				Kind: il.KindAssignmentExpression, Left: chain[i-1], Right: chain[i],
			}))
		}
		return block
	}

	// Assignment to `.length` becomes `a = a[:n]`.
	if n.Left != nil && n.Left.Kind == il.KindMemberExpression && n.Left.Property != nil && n.Left.Property.Name == "length" {
		arr := t.transformExpression(n.Left.Object)
		n2 := t.transformExpression(n.Right)
		return &goast.AssignStmt{
			Lhs: []goast.Expr{arr},
			Tok: "=",
			Rhs: []goast.Expr{&goast.SliceExpr{X: arr, High: n2}},
		}
	}

	target := t.transformExpression(n.Left)
	targetType := t.inferType(n.Left, leftName(n.Left), nil)

	// Assigning nil (source null) to a non-nilable target replaces it with
	// that type's zero value.
	if n.Right != nil && n.Right.Kind == il.KindNullLiteral && !isNilable(targetType) {
		return &goast.AssignStmt{Lhs: []goast.Expr{target}, Tok: "=", Rhs: []goast.Expr{zeroValue(targetType)}}
	}

	// A negative literal assigned into an unsigned target rewrites to the
	// bit-wise complement preserving its two's-complement pattern.
	if neg, ok := negativeLiteralValue(n.Right); ok && goast.IsUnsignedInt(targetType) {
		return &goast.AssignStmt{Lhs: []goast.Expr{target}, Tok: "=", Rhs: []goast.Expr{negativeToUnsigned(neg, targetType)}}
	}

	value := t.transformExpression(n.Right)
	valueType := t.inferType(n.Right, "", targetType)

	if goast.IsInterface(valueType) && !goast.IsInterface(targetType) && targetType != nil {
		value = &goast.TypeAssertExpr{X: value, Type: targetType}
	} else if goast.IsNumeric(targetType) && goast.IsNumeric(valueType) && !goast.Equal(targetType, valueType) && n.Right.Kind != il.KindNumericLiteral {
		value = &goast.ConversionExpr{Type: targetType, X: value}
	} else if targetType != nil && targetType.IsSlice && targetType.ElementType != nil && targetType.ElementType.Name == "uint8" &&
		valueType != nil && valueType.IsSlice && valueType.ElementType != nil && valueType.ElementType.Name == "uint32" &&
		n.Right.Kind == il.KindCallExpression {
		value = &goast.CallExpr{Fun: goast.NewIdent("uint32SliceToBytes"), Args: []goast.Expr{value}}
		t.selectFrameworkFunction("uint32SliceToBytes")
	}

	op := "="
	if n.Operator != "" && n.Operator != "=" {
		op = n.Operator
		// Compound assignment with numeric-type mismatch converts the RHS to
		// the LHS's type.
		if goast.IsNumeric(targetType) && goast.IsNumeric(valueType) && !goast.Equal(targetType, valueType) {
			value = &goast.ConversionExpr{Type: targetType, X: value}
		}
	}

	if t.variableTypes[leftName(n.Left)] == nil && n.Left != nil && n.Left.Kind == il.KindIdentifier {
		t.variableTypes[n.Left.Name] = targetType
	}

	return &goast.AssignStmt{Lhs: []goast.Expr{target}, Tok: op, Rhs: []goast.Expr{value}}
}

func flattenChainedAssignment(n *il.Node) []*il.Node {
	var targets []*il.Node
	cur := n
	for cur.Kind == il.KindAssignmentExpression {
		targets = append(targets, cur.Left)
		if cur.Right.Kind != il.KindAssignmentExpression {
			targets = append(targets, cur.Right)
			break
		}
		cur = cur.Right
	}
	return targets
}

func leftName(n *il.Node) string {
	if n == nil {
		return ""
	}
	if n.Kind == il.KindIdentifier {
		return n.Name
	}
	if n.Kind == il.KindMemberExpression && n.Property != nil {
		return n.Property.Name
	}
	return ""
}

func isNilable(typ *goast.Type) bool {
	if typ == nil {
		return true
	}
	return typ.IsPointer || typ.IsSlice || typ.IsMap || goast.IsInterface(typ)
}

// negativeLiteralValue recognizes a `-n` unary expression over a numeric
// literal and returns n's decimal text.
func negativeLiteralValue(n *il.Node) (string, bool) {
	if n != nil && n.Kind == il.KindUnaryExpression && n.Operator == "-" && n.Left != nil && n.Left.Kind == il.KindNumericLiteral {
		return "-" + n.Left.Value, true
	}
	return "", false
}

func zeroValue(typ *goast.Type) goast.Expr {
	if typ == nil {
		return goast.Nil
	}
	switch {
	case typ.Name == "string":
		return &goast.StringLit{}
	case typ.Name == "bool":
		return goast.False
	case goast.IsNumeric(typ):
		return &goast.IntLit{Value: "0"}
	default:
		return goast.Nil
	}
}

// transformIfStatement lowers an `if` statement, converting the test via
// truthiness conversion.
func (t *Transformer) transformIfStatement(n *il.Node) goast.Stmt {
	cond := t.transformCondition(n.Test)
	body := t.transformStatement(n.Consequent)
	bodyBlock, ok := body.(*goast.BlockStmt)
	if !ok {
		bodyBlock = &goast.BlockStmt{List: []goast.Stmt{body}}
	}
	stmt := &goast.IfStmt{Cond: cond, Body: bodyBlock}
	if n.Alternate != nil {
		stmt.Else = t.transformStatement(n.Alternate)
	}
	return stmt
}

// transformCondition applies the truthiness conversion to whatever
// expression sits in a boolean-required position.
func (t *Transformer) transformCondition(n *il.Node) goast.Expr {
	expr := t.transformExpression(n)
	typ := t.inferType(n, "", nil)
	if typ != nil && typ.Name == "bool" {
		return expr
	}
	return &goast.Ident{Name: truthyExpr(expr, typ)}
}

// transformForStatement lowers the classic `for (let i=0; ...; i++)` form;
// post-increment becomes `i += 1` and the loop counter defaults to `int`.
func (t *Transformer) transformForStatement(n *il.Node) goast.Stmt {
	var initStmt goast.Stmt
	if n.Init != nil {
		if n.Init.Kind == il.KindVarDecl {
			t.variableTypes[n.Init.Name] = goast.Int
			initStmt = &goast.AssignStmt{
				Lhs: []goast.Expr{goast.NewIdent(n.Init.Name)},
				Tok: ":=",
				Rhs: []goast.Expr{t.transformExpression(n.Init.Init)},
			}
		} else {
			initStmt = t.transformStatement(n.Init)
		}
	}
	cond := t.transformCondition(n.Test)
	var post goast.Stmt
	if n.Update != nil {
		post = t.transformPostClause(n.Update)
	}
	body := t.transformBlockBody(n.Body)
	return &goast.ForStmt{Init: initStmt, Cond: cond, Post: post, Body: body}
}

func (t *Transformer) transformPostClause(n *il.Node) goast.Stmt {
	if n.Kind == il.KindUpdateExpression {
		return t.transformUpdateStatement(n)
	}
	if n.Kind == il.KindAssignmentExpression {
		return t.transformAssignmentStatement(n)
	}
	return &goast.ExprStmt{X: t.transformExpression(n)}
}

// transformForOfStatement lowers `for (const v of xs)` to a range loop
// over values. The body is transformed as it is: no extraction statements
// are prepended, and destructuring marker nodes in it are not recognized
// (they take the dispatcher's unsupported-kind path).
func (t *Transformer) transformForOfStatement(n *il.Node) goast.Stmt {
	source := t.transformExpression(n.Object)
	srcType := t.inferType(n.Object, "", nil)
	var elemType *goast.Type
	if srcType != nil && srcType.IsSlice {
		elemType = srcType.ElementType
	}

	valueName := "v"
	if n.Key != nil {
		valueName = n.Key.Name
	}
	body := t.transformBlockBody(n.Body)

	if elemType != nil {
		t.variableTypes[valueName] = elemType
	}

	return &goast.RangeStmt{Value: valueName, Tok: ":=", X: source, Body: body}
}

// transformForInStatement lowers `for (const k in obj)` to a range loop
// over keys only.
func (t *Transformer) transformForInStatement(n *il.Node) goast.Stmt {
	source := t.transformExpression(n.Object)
	keyName := "k"
	if n.Key != nil {
		keyName = n.Key.Name
	}
	t.variableTypes[keyName] = goast.String
	body := t.transformBlockBody(n.Body)
	return &goast.RangeStmt{Key: keyName, Tok: ":=", X: source, Body: body}
}

// transformDoWhileStatement lowers `do {...} while (c)` to an infinite
// `for` with `if !c { break }` at the end.
func (t *Transformer) transformDoWhileStatement(n *il.Node) goast.Stmt {
	body := t.transformBlockBody(n.Body)
	cond := t.transformCondition(n.Test)
	body.List = append(body.List, &goast.IfStmt{
		Cond: &goast.UnaryExpr{Op: "!", X: &goast.ParenExpr{X: cond}},
		Body: &goast.BlockStmt{List: []goast.Stmt{&goast.BranchStmt{Tok: "break"}}},
	})
	return &goast.ForStmt{Body: body}
}

// transformWhileStatement lowers a `while (c)` loop. When the condition is
// itself an assignment, it is lowered to an infinite `for` with the
// assignment hoisted to the body top and an explicit break when the
// expected condition value is reached.
func (t *Transformer) transformWhileStatement(n *il.Node) goast.Stmt {
	if n.Test != nil && n.Test.Kind == il.KindAssignmentExpression {
		body := &goast.BlockStmt{}
		assign := t.transformAssignmentStatement(n.Test)
		body.List = append(body.List, assign)
		target := t.transformExpression(n.Test.Left)
		targetType := t.inferType(n.Test.Left, leftName(n.Test.Left), nil)
		body.List = append(body.List, &goast.IfStmt{
			Cond: &goast.UnaryExpr{Op: "!", X: &goast.ParenExpr{X: &goast.Ident{Name: truthyExpr(target, targetType)}}},
			Body: &goast.BlockStmt{List: []goast.Stmt{&goast.BranchStmt{Tok: "break"}}},
		})
		inner := t.transformBlockBody(n.Body)
		body.List = append(body.List, inner.List...)
		return &goast.ForStmt{Body: body}
	}
	cond := t.transformCondition(n.Test)
	body := t.transformBlockBody(n.Body)
	return &goast.ForStmt{Cond: cond, Body: body}
}

// transformTryStatement emits a block with a diagnostic comment: target
// language defer/recover is not synthesized.
func (t *Transformer) transformTryStatement(n *il.Node) goast.Stmt {
	block := &goast.BlockStmt{}
	block.List = append(block.List, &goast.CommentStmt{Text: "try/catch lowered without structured recovery; see IL throw sites"})
	body := t.transformBlockBody(n.Body)
	block.List = append(block.List, body.List...)
	return block
}

func (t *Transformer) transformReturnStatement(n *il.Node) goast.Stmt {
	inErrCtor := t.options.ErrorHandling && t.currentStruct != "" && t.currentFunc == "New"+t.currentStruct
	if n.Body == nil {
		if inErrCtor {
			return &goast.ReturnStmt{Results: []goast.Expr{goast.NewIdent("result"), goast.Nil}}
		}
		return &goast.ReturnStmt{}
	}
	var value goast.Expr
	if neg, ok := negativeLiteralValue(n.Body); ok && goast.IsUnsignedInt(t.currentFunctionReturnType) {
		value = negativeToUnsigned(neg, t.currentFunctionReturnType)
	} else {
		value = t.transformExpression(n.Body)
	}
	results := []goast.Expr{value}
	if inErrCtor {
		results = append(results, goast.Nil)
	}
	return &goast.ReturnStmt{Results: results}
}

// builtinSafeName rewrites an identifier that shadows a target-language
// builtin to its spec-mandated safe name.
var builtinRewrites = map[string]string{
	"len": "length", "cap": "capacity", "copy": "copyValue", "make": "makeValue",
	"new": "newValue", "append": "appendValue", "delete": "deleteValue",
	"close": "closeValue", "panic": "panicValue", "recover": "recoverValue",
	"print": "printValue", "println": "printlnValue", "error": "errorValue",
}

func builtinSafeName(name string) string {
	if safe, ok := builtinRewrites[name]; ok {
		return safe
	}
	return name
}
