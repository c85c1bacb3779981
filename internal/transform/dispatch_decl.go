package transform

import (
	"github.com/hawkynt/ilgo/internal/goast"
	"github.com/hawkynt/ilgo/internal/il"
)

// baseClassMapping is the fixed, normative base-class table.
var baseClassMapping = map[string]string{
	"BlockCipherAlgorithm":      "BlockCipherAlgorithm",
	"StreamCipherAlgorithm":     "StreamCipherAlgorithm",
	"HashFunctionAlgorithm":     "HashFunctionAlgorithm",
	"AsymmetricAlgorithm":       "AsymmetricAlgorithm",
	"MacAlgorithm":              "MacAlgorithm",
	"KdfAlgorithm":              "KdfAlgorithm",
	"AeadAlgorithm":             "AeadAlgorithm",
	"ChecksumAlgorithm":         "ChecksumAlgorithm",
	"CompressionAlgorithm":      "CompressionAlgorithm",
	"ClassicalCipherAlgorithm":  "ClassicalCipherAlgorithm",
	"EncodingAlgorithm":         "EncodingAlgorithm",

	"Algorithm":                 "BaseAlgorithm",
	"ErrorCorrectionAlgorithm":  "BaseAlgorithm",
	"PaddingAlgorithm":          "BaseAlgorithm",
	"CipherModeAlgorithm":       "BaseAlgorithm",
	"RandomGenerationAlgorithm": "BaseAlgorithm",

	"IBlockCipherInstance": "IBlockCipherInstance",
	"IStreamCipherInstance": "IStreamCipherInstance",
	"IHashFunctionInstance": "IHashFunctionInstance",
	"IAlgorithmInstance":    "IAlgorithmInstance",
	"IMacInstance":              "IAlgorithmInstance",
	"IKdfInstance":              "IAlgorithmInstance",
	"IAeadInstance":             "IAlgorithmInstance",
	"IErrorCorrectionInstance":  "IAlgorithmInstance",
	"IRandomGeneratorInstance":  "IAlgorithmInstance",
}

// concreteAlgorithmBases transitively require BaseAlgorithm.
var concreteAlgorithmBases = map[string]bool{
	"BlockCipherAlgorithm": true, "StreamCipherAlgorithm": true,
	"HashFunctionAlgorithm": true, "AsymmetricAlgorithm": true,
	"MacAlgorithm": true, "KdfAlgorithm": true, "AeadAlgorithm": true,
	"ChecksumAlgorithm": true, "CompressionAlgorithm": true,
	"ClassicalCipherAlgorithm": true, "EncodingAlgorithm": true,
}

var instanceBases = map[string]bool{
	"IBlockCipherInstance": true, "IStreamCipherInstance": true,
	"IHashFunctionInstance": true, "IAlgorithmInstance": true,
}

// Transform is the package's entry point: transform(ilAst) -> goFile.
func (t *Transformer) Transform(program *il.Program) (*goast.File, error) {
	t.resetFileState()
	defer t.clearPositionalContext()

	file := goast.NewFile(t.options.PackageName)

	for _, decl := range program.Children {
		t.transformTopLevel(file, decl)
	}

	t.emitFrameworkStubs(file)
	for _, path := range t.Imports() {
		file.AddImport(path)
	}
	return file, nil
}

func (t *Transformer) transformTopLevel(file *goast.File, decl *il.Node) {
	switch decl.Kind {
	case il.KindClassDecl:
		t.transformClassDecl(file, decl)
	case il.KindFunctionDecl:
		file.AddDecl(t.transformFunctionDecl(decl))
	case il.KindStaticBlock:
		file.AddDecl(t.transformStaticBlockAsInit(decl))
	case il.KindVarDecl:
		file.AddDecl(t.transformTopLevelVarDecl(decl))
	default:
		t.warnUnsupported(decl)
	}
}

// transformClassDecl lowers a class declaration to a Go struct plus
// receiver-bound methods and a New<Struct> constructor function.
func (t *Transformer) transformClassDecl(file *goast.File, class *il.Node) {
	t.currentStruct = class.Name
	t.resetClassState(class.Name)
	t.preScanClass(class)

	t.classBases[class.Name] = class.SuperClass

	embed := ""
	if class.SuperClass != "" {
		if mapped, ok := baseClassMapping[class.SuperClass]; ok {
			embed = mapped
		} else {
			embed = class.SuperClass
		}
		t.selectFrameworkBase(embed)
	}

	ctor := findConstructor(class)
	methods := findMethods(class)
	properties := findProperties(class)

	structDecl := &goast.StructDecl{Name: class.Name}
	if embed != "" {
		structDecl.Embeds = []string{embed}
	}
	if t.options.AddComments {
		structDecl.Doc = class.Name + " is generated from the transformed algorithm declaration."
	}

	// Plain-value constructor assignments and declared properties become
	// struct fields, skipping anything that lives in the embedded base.
	seen := map[string]bool{}
	for _, p := range properties {
		if isBaseField(p.Name) {
			continue
		}
		fieldName := t.resolveFieldName(class.Name, p.Name)
		if seen[fieldName] {
			continue
		}
		seen[fieldName] = true
		structDecl.Fields = append(structDecl.Fields, &goast.Field{
			Name: fieldName,
			Type: t.structFieldTypes[p.Name],
		})
	}
	if ctor != nil && ctor.Body != nil {
		for _, stmt := range ctor.Body.Children {
			name, typ, isMethodValue := plainFieldAssignment(stmt)
			if name == "" || isMethodValue || isBaseField(name) {
				continue
			}
			fieldName := t.resolveFieldName(class.Name, name)
			if seen[fieldName] {
				continue
			}
			seen[fieldName] = true
			if typ == nil {
				typ = t.structFieldTypes[name]
			}
			structDecl.Fields = append(structDecl.Fields, &goast.Field{Name: fieldName, Type: typ})
		}
	}

	file.AddDecl(structDecl)

	file.AddDecl(t.transformConstructorFunc(class, ctor))

	for _, m := range methods {
		file.AddDecl(t.transformMethod(class.Name, m))
	}

	// Method-valued `this.x = function(){...}` assignments are promoted to
	// receiver methods.
	if ctor != nil && ctor.Body != nil {
		for _, stmt := range ctor.Body.Children {
			if name, fn, isMethodValue := methodValueAssignment(stmt); isMethodValue {
				file.AddDecl(t.transformPromotedMethod(class.Name, name, fn))
			}
		}
	}

	t.currentStruct = ""
}

// isBaseField reports whether a field name is understood to live on
// BaseAlgorithm already.
func isBaseField(name string) bool {
	switch name {
	case "name", "Name", "tests", "Tests", "description", "Description":
		return true
	default:
		return false
	}
}

func (t *Transformer) resolveFieldName(className, rawName string) string {
	pc := pascalCase(rawName)
	if renamed, ok := t.renamedFields[className+"."+pc]; ok {
		return renamed
	}
	return pc
}

func findProperties(class *il.Node) []*il.Node {
	var out []*il.Node
	for _, c := range class.Children {
		if c.Kind == il.KindPropertyDecl {
			out = append(out, c)
		}
	}
	return out
}

// plainFieldAssignment recognizes `this.name = <non-function value>` in a
// constructor body statement.
func plainFieldAssignment(stmt *il.Node) (name string, typ *goast.Type, isMethodValue bool) {
	s := stmt
	if s.Kind == il.KindExpressionStatement && s.Body != nil {
		s = s.Body
	}
	if s.Kind != il.KindAssignmentExpression || s.Left == nil || s.Right == nil {
		return "", nil, false
	}
	if s.Left.Kind != il.KindMemberExpression || s.Left.Object == nil ||
		s.Left.Object.Kind != il.KindThisExpression || s.Left.Property == nil {
		return "", nil, false
	}
	if s.Right.Kind == il.KindFunctionExpression || s.Right.Kind == il.KindArrowFunction {
		return s.Left.Property.Name, nil, true
	}
	return s.Left.Property.Name, nil, false
}

func methodValueAssignment(stmt *il.Node) (name string, fn *il.Node, isMethodValue bool) {
	n, _, isMV := plainFieldAssignment(stmt)
	if !isMV {
		return "", nil, false
	}
	s := stmt
	if s.Kind == il.KindExpressionStatement && s.Body != nil {
		s = s.Body
	}
	return n, s.Right, true
}

// transformConstructorFunc lowers the constructor to a free function
// New<Struct>(...) *Struct.
func (t *Transformer) transformConstructorFunc(class *il.Node, ctor *il.Node) *goast.FuncDecl {
	t.currentFunc = "New" + class.Name
	t.variableTypes = map[string]*goast.Type{}
	t.receiverName = "result"

	results := []*goast.Field{{Type: goast.Pointer(goast.Named(class.Name))}}
	if t.options.ErrorHandling {
		results = append(results, &goast.Field{Type: goast.Error})
	}

	body := &goast.BlockStmt{}
	body.List = append(body.List, &goast.AssignStmt{
		Lhs: []goast.Expr{goast.NewIdent("result")},
		Tok: ":=",
		Rhs: []goast.Expr{&goast.UnaryExpr{Op: "&", X: &goast.CompositeLit{Type: goast.Named(class.Name)}}},
	})

	var params []*goast.Field
	if ctor != nil {
		for _, p := range ctor.Params {
			typ := t.inferParameterType(class.Name+"#ctor", len(params), p)
			t.variableTypes[p.Name] = typ
			params = append(params, &goast.Field{Name: p.Name, Type: typ})
		}
		if ctor.Body != nil {
			for _, stmt := range ctor.Body.Children {
				if name, _, isMV := methodValueAssignment(stmt); isMV {
					_ = name
					continue // promoted to a method, not a field init
				}
				if fname, _, isPlain := plainFieldAssignment(stmt); isPlain {
					fieldName := t.resolveFieldName(class.Name, fname)
					if isBaseField(fieldName) || isBaseField(fname) {
						// Base fields still get set on the embedded struct.
					}
					s := stmt
					if s.Kind == il.KindExpressionStatement && s.Body != nil {
						s = s.Body
					}
					valueExpr := t.transformExpression(s.Right)
					body.List = append(body.List, &goast.AssignStmt{
						Lhs: []goast.Expr{&goast.Selector{X: goast.NewIdent("result"), Sel: fieldName}},
						Tok: "=",
						Rhs: []goast.Expr{valueExpr},
					})
					continue
				}
				body.List = append(body.List, t.transformStatement(stmt))
			}
		}
	}

	results0 := []goast.Expr{goast.NewIdent("result")}
	if t.options.ErrorHandling {
		results0 = append(results0, goast.Nil)
	}
	body.List = append(body.List, &goast.ReturnStmt{Results: results0})

	decl := &goast.FuncDecl{
		Name:    "New" + class.Name,
		Params:  params,
		Results: results,
		Body:    body,
	}
	if t.options.AddComments {
		decl.Doc = decl.Name + " allocates and initializes a new " + class.Name + "."
	}
	t.currentFunc = ""
	return decl
}

// receiverLetter picks the receiver name: the first lowercase letter of the
// struct name, or the first two letters when that collides with a common
// loop variable.
func receiverLetter(structName string) string {
	if structName == "" {
		return "r"
	}
	letter := string(toLowerByte(structName[0]))
	switch letter {
	case "i", "j", "k", "n", "x", "y", "v":
		if len(structName) > 1 {
			return letter + string(toLowerByte(structName[1]))
		}
	}
	return letter
}

func toLowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

// transformMethod lowers a method to a receiver-bound function, uniquifying a duplicate method name with a numeric suffix.
func (t *Transformer) transformMethod(structName string, m *il.Node) *goast.FuncDecl {
	recv := receiverLetter(structName)
	t.receiverName = recv
	t.currentFunc = m.Name
	t.currentFunctionReturnType = t.methodReturnTypes[m.Name]
	t.variableTypes = map[string]*goast.Type{}

	name := t.uniquifyMethodName(structName, pascalCase(m.Name))

	var params []*goast.Field
	for i, p := range m.Params {
		typ := t.inferParameterType(m.Name, i, p)
		t.variableTypes[p.Name] = typ
		params = append(params, &goast.Field{Name: p.Name, Type: typ})
	}

	var results []*goast.Field
	if t.currentFunctionReturnType != nil && !(t.currentFunctionReturnType.Name == "" && t.currentFunctionReturnType.ElementType == nil) {
		results = []*goast.Field{{Type: t.currentFunctionReturnType}}
	}

	body := t.transformBlockBody(m.Body)

	decl := &goast.FuncDecl{
		Recv:    &goast.Field{Name: recv, Type: goast.Pointer(goast.Named(structName))},
		Name:    name,
		Params:  params,
		Results: results,
		Body:    body,
	}
	t.currentFunc = ""
	t.currentFunctionReturnType = nil
	t.receiverName = ""
	return decl
}

// transformPromotedMethod lowers a `this.x = function(){...}` constructor
// assignment to a receiver method.
func (t *Transformer) transformPromotedMethod(structName, name string, fn *il.Node) *goast.FuncDecl {
	recv := receiverLetter(structName)
	t.receiverName = recv
	t.currentFunc = name
	t.variableTypes = map[string]*goast.Type{}

	var params []*goast.Field
	for i, p := range fn.Params {
		typ := t.inferParameterType(name, i, p)
		t.variableTypes[p.Name] = typ
		params = append(params, &goast.Field{Name: p.Name, Type: typ})
	}

	body := t.transformBlockBody(fn.Body)
	decl := &goast.FuncDecl{
		Recv:   &goast.Field{Name: recv, Type: goast.Pointer(goast.Named(structName))},
		Name:   t.uniquifyMethodName(structName, pascalCase(name)),
		Params: params,
		Body:   body,
	}
	t.currentFunc = ""
	t.receiverName = ""
	return decl
}

func (t *Transformer) uniquifyMethodName(structName, name string) string {
	set := t.declaredMethodNames[structName]
	if set == nil {
		set = map[string]bool{}
		t.declaredMethodNames[structName] = set
	}
	candidate := name
	suffix := 2
	for set[candidate] {
		candidate = name + itoaSimple(suffix)
		suffix++
	}
	set[candidate] = true
	return candidate
}

func itoaSimple(n int) string {
	if n < 10 {
		return string(rune('0' + n))
	}
	var buf []byte
	for n > 0 {
		buf = append([]byte{byte('0' + n%10)}, buf...)
		n /= 10
	}
	return string(buf)
}

// transformFunctionDecl lowers a top-level function; when useContext is on,
// a context.Context parameter is prepended.
func (t *Transformer) transformFunctionDecl(fn *il.Node) *goast.FuncDecl {
	t.currentFunc = fn.Name
	t.variableTypes = map[string]*goast.Type{}

	var params []*goast.Field
	if t.options.UseContext {
		t.requireImport("context")
		params = append(params, &goast.Field{Name: "ctx", Type: goast.Named("context.Context")})
	}
	for i, p := range fn.Params {
		typ := t.inferParameterType(fn.Name, i, p)
		t.variableTypes[p.Name] = typ
		params = append(params, &goast.Field{Name: p.Name, Type: typ})
	}

	retType := t.methodReturnTypes[fn.Name]
	var results []*goast.Field
	if retType != nil {
		results = []*goast.Field{{Type: retType}}
	}

	body := t.transformBlockBody(fn.Body)
	decl := &goast.FuncDecl{Name: pascalCase(fn.Name), Params: params, Results: results, Body: body}
	t.currentFunc = ""
	return decl
}

// transformStaticBlockAsInit aggregates a static block's statements into a
// package init() function.
func (t *Transformer) transformStaticBlockAsInit(block *il.Node) *goast.FuncDecl {
	t.variableTypes = map[string]*goast.Type{}
	body := &goast.BlockStmt{}
	for _, s := range block.Children {
		body.List = append(body.List, t.transformStatement(s))
	}
	return &goast.FuncDecl{Name: "init", Body: body}
}

func (t *Transformer) transformTopLevelVarDecl(decl *il.Node) goast.Decl {
	if decl.Init != nil && isSelfRefObjectLiteral(decl.Init) {
		return &goast.VarDecl{
			Name:  decl.Name,
			Value: t.transformMapSelfRefIIFE(decl.Init),
		}
	}
	var value goast.Expr
	var typ *goast.Type
	if decl.Init != nil {
		value = t.transformExpression(decl.Init)
		typ = t.inferType(decl.Init, decl.Name, nil)
		t.variableTypes[decl.Name] = typ
	}
	return &goast.VarDecl{Name: decl.Name, Value: value}
}
