// Package il defines the Intermediate Language AST node model consumed by
// the transformer. The IL is produced upstream by a type-inferring front end
// (parser + source-AST + IL transformer, all out of this repository's
// scope); this package only gives that externally-produced tree a concrete
// Go shape to walk.
package il

// Pos is a source position carried through from the original input, kept
// only for diagnostic messages.
type Pos struct {
	Line   int
	Column int
	File   string
}

func (p Pos) String() string {
	if p.File != "" {
		return p.File + ":" + itoa(p.Line) + ":" + itoa(p.Column)
	}
	return itoa(p.Line) + ":" + itoa(p.Column)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Kind names an IL node's shape. The core dispatcher (internal/transform)
// switches over this value; unrecognized kinds produce a diagnostic warning
// and a nil placeholder rather than aborting.
type Kind string

// Top-level and declaration kinds.
const (
	KindProgram         Kind = "Program"
	KindClassDecl       Kind = "ClassDecl"
	KindConstructorDecl Kind = "ConstructorDecl"
	KindMethodDecl      Kind = "MethodDecl"
	KindPropertyDecl    Kind = "PropertyDecl"
	KindStaticBlock     Kind = "StaticBlock"
	KindFunctionDecl    Kind = "FunctionDecl"
)

// Statement kinds.
const (
	KindBlockStatement      Kind = "BlockStatement"
	KindVarDecl             Kind = "VarDecl"
	KindExpressionStatement Kind = "ExpressionStatement"
	KindIfStatement         Kind = "IfStatement"
	KindForStatement        Kind = "ForStatement"
	KindForOfStatement      Kind = "ForOfStatement"
	KindForInStatement      Kind = "ForInStatement"
	KindDoWhileStatement    Kind = "DoWhileStatement"
	KindWhileStatement      Kind = "WhileStatement"
	KindTryStatement        Kind = "TryStatement"
	KindThrowStatement      Kind = "ThrowStatement"
	KindReturnStatement     Kind = "ReturnStatement"
	KindBreakStatement      Kind = "BreakStatement"
	KindContinueStatement   Kind = "ContinueStatement"
)

// Expression kinds.
const (
	KindIdentifier            Kind = "Identifier"
	KindThisExpression        Kind = "ThisExpression"
	KindSuperExpression       Kind = "SuperExpression"
	KindNumericLiteral        Kind = "NumericLiteral"
	KindStringLiteral         Kind = "StringLiteral"
	KindBooleanLiteral        Kind = "BooleanLiteral"
	KindNullLiteral           Kind = "NullLiteral"
	KindBigIntLiteral         Kind = "BigIntLiteral"
	KindTemplateLiteral       Kind = "TemplateLiteral"
	KindArrayLiteral          Kind = "ArrayLiteral"
	KindObjectLiteral         Kind = "ObjectLiteral"
	KindSpreadElement         Kind = "SpreadElement"
	KindBinaryExpression      Kind = "BinaryExpression"
	KindLogicalExpression     Kind = "LogicalExpression"
	KindUnaryExpression       Kind = "UnaryExpression"
	KindUpdateExpression      Kind = "UpdateExpression"
	KindAssignmentExpression  Kind = "AssignmentExpression"
	KindConditionalExpression Kind = "ConditionalExpression"
	KindCallExpression        Kind = "CallExpression"
	KindNewExpression         Kind = "NewExpression"
	KindMemberExpression      Kind = "MemberExpression"
	KindIndexExpression       Kind = "IndexExpression"
	KindSliceExpression       Kind = "SliceExpression"
	KindTypeofExpression      Kind = "TypeofExpression"
	KindInExpression          Kind = "InExpression"
	KindSequenceExpression    Kind = "SequenceExpression"
	KindArrowFunction         Kind = "ArrowFunction"
	KindFunctionExpression    Kind = "FunctionExpression"
	KindGlobalExpression      Kind = "GlobalExpression"
	KindEnumReference         Kind = "EnumReference"
	KindOpCodesReference      Kind = "OpCodesReference"
	KindTypedArrayConstructor Kind = "TypedArrayConstructor"
	KindPackBytesCall         Kind = "PackBytesCall"
	KindUnpackBytesCall       Kind = "UnpackBytesCall"
	KindHexDecodeCall         Kind = "HexDecodeCall"
	KindErrorCreation         Kind = "ErrorCreation"
	KindTypeConversion        Kind = "TypeConversion"
)

// Destructuring markers, pre-expanded by the IL producer.
const (
	KindDestructureTemp        Kind = "DestructureTemp"
	KindDestructuredElement    Kind = "DestructuredElement"
	KindDestructuredProperty   Kind = "DestructuredProperty"
)

// Node is a tagged record: every IL node, regardless of kind, is one of
// these. Fields not relevant to a given Kind are left zero. This single
// generic shape (rather than one Go type per IL node kind) matches data
// this component only ever walks, produced and versioned by an external,
// upstream tool.
type Node struct {
	Kind Kind
	Pos  Pos

	// resultType / elementType annotations.
	ResultType  string
	ElementType string

	// Name carries identifier/field/method/enum names.
	Name string

	// Operator carries the source operator text for binary/logical/unary/
	// update/assignment expressions ("+", "&&", "!", "++", "+=", ...).
	Operator string

	// Value carries literal payloads (string/number/bool text, already
	// lexed by the upstream front end).
	Value string

	// Endian / Bits annotate Pack/Unpack and typed-array operations.
	Endian string // "big" | "little"
	Bits   int

	// Children in source order, for nodes with a single homogeneous list
	// (Program.Body, BlockStatement.Body, ArrayLiteral.Elements, call
	// arguments, ...).
	Children []*Node

	// Structural fields used by specific kinds; left nil when unused.
	Left     *Node // BinaryExpression / unary-style operand / AssignmentExpression target
	Right    *Node // BinaryExpression / AssignmentExpression value
	Object   *Node // MemberExpression.Object, IndexExpression.Object
	Property *Node // MemberExpression.Property
	Test     *Node // IfStatement/ConditionalExpression/loop condition
	Consequent *Node
	Alternate  *Node
	Init     *Node // ForStatement init, VarDecl initializer
	Update   *Node // ForStatement update
	Body     *Node // loop/function/if body (single node; blocks use Children)
	Callee   *Node // CallExpression/NewExpression callee
	Args     []*Node
	Params   []*Node // function/method parameters (Identifier nodes)
	Key      *Node   // ObjectLiteral property key / IndexExpression index
	SuperClass string // ClassDecl.SuperClass name

	// Computed is true for `obj[expr]` member access vs `obj.prop`.
	Computed bool

	// Async/Generator flags, carried on the IL. The transformer does not
	// read them: a node with either flag set is lowered like a plain one.
	Async     bool
	Generator bool
}

// Program is the IL root: Kind == KindProgram, Children holds top-level
// declarations.
type Program = Node
