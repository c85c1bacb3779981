package transform

import (
	"strings"

	"github.com/hawkynt/ilgo/internal/goast"
)

// selectFrameworkBase records that embed (an already-mapped base name, per
// baseClassMapping) is referenced, transitively closing over BaseAlgorithm
// and the full enum/helper suite for a concrete algorithm base.
func (t *Transformer) selectFrameworkBase(embed string) {
	t.frameworkClasses[embed] = true
	if concreteAlgorithmBases[embed] || embed == "BaseAlgorithm" {
		t.frameworkClasses["BaseAlgorithm"] = true
		for _, e := range []string{"CategoryType", "SecurityStatus", "ComplexityType", "CountryCode"} {
			t.enumsUsed[e] = true
		}
		for _, h := range []string{"KeySize", "LinkItem", "TestCase", "Vulnerability", "TestCategory"} {
			t.helperClasses[h] = true
		}
	}
}

func (t *Transformer) selectHelperClass(name string) {
	t.helperClasses[name] = true
}

func (t *Transformer) selectEnum(family string) {
	t.enumsUsed[family] = true
}

// selectFrameworkFunction marks a helper function for emission and pulls in
// whatever imports it needs.
func (t *Transformer) selectFrameworkFunction(name string) {
	t.frameworkFunctions[name] = true
	switch {
	case name == "mustHexDecode":
		t.requireImport("encoding/hex")
		t.requireImport("fmt")
	case name == "joinOf":
		t.requireImport("fmt")
		t.requireImport("strings")
	case name == "sortOf":
		t.requireImport("sort")
	case name == "doubleToBytes":
		t.requireImport("encoding/binary")
		t.requireImport("math")
	case strings.HasPrefix(name, "packBytes") || strings.HasPrefix(name, "unpackBytes"):
		t.requireImport("encoding/binary")
	case name == "uint32SliceToBytes" || name == "bytesToUint32Slice":
		t.requireImport("encoding/binary")
	case name == "constantTimeCompare":
		t.requireImport("crypto/subtle")
	case name == "popcount":
		t.requireImport("math/bits")
	case name == "isTypeObject" || name == "isTypeFunction" || name == "arrayFrom":
		t.requireImport("reflect")
	case name == "parseIntValue":
		t.requireImport("strconv")
	case name == "joinSlice":
		t.requireImport("strings")
	}
}

// enumConstants is the fixed, normative constant list for each framework
// enum family.
var enumConstants = map[string][]string{
	"CategoryType": {
		"Block", "Stream", "Hash", "MAC", "KDF", "AEAD", "Asymmetric",
		"Checksum", "Compression", "Classical", "Encoding", "ErrorCorrection",
		"Padding", "Mode", "Random",
	},
	"SecurityStatus": {"Secure", "Broken", "Deprecated", "Experimental"},
	"ComplexityType": {"Beginner", "Intermediate", "Advanced"},
	"CountryCode": {
		"US", "UK", "DE", "FR", "JP", "CN", "RU", "KR", "BE", "IL", "SG",
		"International", "Unknown",
	},
}

// enumOrder fixes deterministic emission order across the four families.
var enumOrder = []string{"CategoryType", "SecurityStatus", "ComplexityType", "CountryCode"}

func (t *Transformer) emitEnumDecls(file *goast.File) {
	for _, family := range enumOrder {
		if !t.enumsUsed[family] {
			continue
		}
		file.AddDecl(&goast.TypeDecl{Name: family, Underlying: goast.String})
		specs := make([]*goast.ConstSpec, 0, len(enumConstants[family]))
		for _, c := range enumConstants[family] {
			specs = append(specs, &goast.ConstSpec{
				Name:  family + c,
				Value: &goast.StringLit{Value: c},
			})
		}
		file.AddDecl(&goast.ConstDecl{Specs: specs})
	}
}

// helperRecordOrder fixes deterministic emission order for the value-type
// helper records.
var helperRecordOrder = []string{"KeySize", "LinkItem", "TestCase", "Vulnerability", "TestCategory"}

func (t *Transformer) emitHelperRecordDecls(file *goast.File) {
	for _, name := range helperRecordOrder {
		if !t.helperClasses[name] {
			continue
		}
		var fields []*goast.Field
		for _, fname := range frameworkStructFieldOrder[name] {
			fields = append(fields, &goast.Field{Name: fname, Type: helperRecordFieldType(name, fname)})
		}
		file.AddDecl(&goast.StructDecl{Name: name, Fields: fields})
	}
}

func helperRecordFieldType(record, field string) *goast.Type {
	switch {
	case record == "KeySize":
		return goast.Int
	case field == "Tests":
		return goast.Slice(goast.Named("TestCase"))
	case field == "Input" || field == "Expected" || field == "Key" || field == "IV":
		return goast.Slice(goast.Uint8)
	default:
		return goast.String
	}
}

// baseAlgorithmFields is BaseAlgorithm's field set, shared by every concrete
// algorithm base via embedding.
var baseAlgorithmFields = []*goast.Field{
	{Name: "Name", Type: goast.String},
	{Name: "Description", Type: goast.String},
	{Name: "Category", Type: goast.Named("CategoryType")},
	{Name: "SecurityStatus", Type: goast.Named("SecurityStatus")},
	{Name: "Complexity", Type: goast.Named("ComplexityType")},
	{Name: "Country", Type: goast.Named("CountryCode")},
	{Name: "Year", Type: goast.Int},
	{Name: "Tests", Type: goast.Slice(goast.Named("TestCase"))},
	{Name: "Vulnerabilities", Type: goast.Slice(goast.Named("Vulnerability"))},
	{Name: "References", Type: goast.Slice(goast.Named("LinkItem"))},
}

// concreteAlgorithmBaseOrder fixes deterministic emission order across the
// algorithm-base family.
var concreteAlgorithmBaseOrder = []string{
	"BlockCipherAlgorithm", "StreamCipherAlgorithm", "HashFunctionAlgorithm",
	"AsymmetricAlgorithm", "MacAlgorithm", "KdfAlgorithm", "AeadAlgorithm",
	"ChecksumAlgorithm", "CompressionAlgorithm", "ClassicalCipherAlgorithm",
	"EncodingAlgorithm",
}

// concreteAlgorithmExtraFields lists each concrete base's extra fields
// beyond BaseAlgorithm's.
var concreteAlgorithmExtraFields = map[string][]*goast.Field{
	"BlockCipherAlgorithm":  {{Name: "BlockSize", Type: goast.Int}, {Name: "KeySizes", Type: goast.Slice(goast.Named("KeySize"))}},
	"StreamCipherAlgorithm": {{Name: "KeySizes", Type: goast.Slice(goast.Named("KeySize"))}},
	"HashFunctionAlgorithm": {{Name: "OutputSize", Type: goast.Int}},
	"AsymmetricAlgorithm":   {{Name: "KeySizes", Type: goast.Slice(goast.Named("KeySize"))}},
	"MacAlgorithm":          {{Name: "TagSize", Type: goast.Int}},
	"KdfAlgorithm":          {},
	"AeadAlgorithm":         {{Name: "TagSize", Type: goast.Int}, {Name: "NonceSize", Type: goast.Int}},
	"ChecksumAlgorithm":     {{Name: "OutputSize", Type: goast.Int}},
	"CompressionAlgorithm":  {},
	"ClassicalCipherAlgorithm": {},
	"EncodingAlgorithm":     {},
}

func (t *Transformer) emitBaseAlgorithmDecls(file *goast.File) {
	if !t.frameworkClasses["BaseAlgorithm"] {
		return
	}
	file.AddDecl(&goast.StructDecl{Name: "BaseAlgorithm", Fields: baseAlgorithmFields})
	for _, name := range concreteAlgorithmBaseOrder {
		if !t.frameworkClasses[name] {
			continue
		}
		file.AddDecl(&goast.StructDecl{
			Name:   name,
			Embeds: []string{"BaseAlgorithm"},
			Fields: concreteAlgorithmExtraFields[name],
		})
	}
	// Algorithm / ErrorCorrectionAlgorithm / PaddingAlgorithm /
	// CipherModeAlgorithm / RandomGenerationAlgorithm all map directly onto
	// BaseAlgorithm, so no further
	// struct is needed for them.
}

// instanceBaseOrder fixes deterministic emission order.
var instanceBaseOrder = []string{
	"IBlockCipherInstance", "IStreamCipherInstance", "IHashFunctionInstance", "IAlgorithmInstance",
}

var instanceBaseFields = map[string][]*goast.Field{
	"IAlgorithmInstance":    {{Name: "Algorithm", Type: goast.EmptyIface}},
	"IBlockCipherInstance":  {{Name: "Algorithm", Type: goast.EmptyIface}, {Name: "Key", Type: goast.Slice(goast.Uint8)}},
	"IStreamCipherInstance": {{Name: "Algorithm", Type: goast.EmptyIface}, {Name: "Key", Type: goast.Slice(goast.Uint8)}},
	"IHashFunctionInstance": {{Name: "Algorithm", Type: goast.EmptyIface}},
}

func (t *Transformer) emitInstanceBaseDecls(file *goast.File) {
	for _, name := range instanceBaseOrder {
		if !t.frameworkClasses[name] {
			continue
		}
		file.AddDecl(&goast.StructDecl{Name: name, Fields: instanceBaseFields[name]})
	}
}

// frameworkSingletonSource is the fixed scaffolding text for the registry
// singleton.
const frameworkSingletonSource = `// AlgorithmFramework is a process-wide registry of constructed algorithms,
// standing in for the source runtime's global discovery surface.
type AlgorithmFramework struct {
	algorithms map[string]interface{}
}

// Find looks up a previously registered algorithm by name.
func (f *AlgorithmFramework) Find(name string) interface{} {
	if f == nil {
		return nil
	}
	return f.algorithms[name]
}

var algorithmFramework = &AlgorithmFramework{algorithms: map[string]interface{}{}}

// RegisterAlgorithm adds alg to the framework registry under the name its
// GetName() string method returns; it is a no-op for a value without one.
func RegisterAlgorithm(alg interface{}) {
	named, ok := alg.(interface{ GetName() string })
	if !ok {
		return
	}
	algorithmFramework.algorithms[named.GetName()] = alg
}`

func (t *Transformer) emitFrameworkSingleton(file *goast.File) {
	if !t.frameworkFunctions["registerAlgorithm"] && !t.frameworkClasses["BaseAlgorithm"] {
		return
	}
	file.AddDecl(&goast.RawDecl{Text: frameworkSingletonSource})
}

// helperFunctionOrder fixes deterministic emission order for the block of
// free helper functions.
var helperFunctionOrder = []string{
	"mustHexDecode", "hexVal",
	"maxOf", "minOf",
	"firstNonNil",
	"isTypeString", "isTypeNumber", "isTypeBoolean", "isTypeObject", "isTypeUndefined", "isTypeFunction",
	"arrayFrom",
	"sliceOf", "concatOf", "mapOf", "filterOf", "reduceOf", "findOf", "findIndexOf",
	"everyOf", "someOf", "forEachOf", "indexOfOf", "includesOf", "joinOf",
	"reverseOf", "sortOf", "fillOf", "popOf", "shiftOf", "unshiftOf",
	"mapKeys", "mapValues", "mapEntries",
	"uint32SliceToBytes", "bytesToUint32Slice",
	"powInt", "powUint32",
	"constantTimeCompare",
	"popcount",
	"parseIntValue",
	"joinSlice",
	"spliceSlice",
	"doubleToBytes",
	"opCodesHelper",
}

func (t *Transformer) emitHelperFunctions(file *goast.File) {
	ordered := make([]string, 0, len(helperFunctionOrder))
	for _, name := range helperFunctionOrder {
		if t.frameworkFunctions[name] {
			ordered = append(ordered, name)
		}
	}
	for _, name := range t.selectedPackUnpackNames() {
		ordered = append(ordered, name)
	}
	for _, name := range t.selectedIncDecNames() {
		ordered = append(ordered, name)
	}

	if needsOrdered(ordered) {
		file.AddDecl(&goast.RawDecl{Text: orderedConstraintSource})
	}
	for _, name := range ordered {
		if src, ok := helperFunctionSource(name); ok {
			file.AddDecl(&goast.RawDecl{Text: src})
		}
	}
}

func needsOrdered(names []string) bool {
	for _, n := range names {
		if n == "maxOf" || n == "minOf" || n == "sortOf" {
			return true
		}
	}
	return false
}

// selectedPackUnpackNames returns the pack/unpack helper names selected for
// this run, in a stable order.
func (t *Transformer) selectedPackUnpackNames() []string {
	var out []string
	for _, bits := range []string{"8", "16", "32", "64"} {
		for _, endian := range []string{"BE", "LE"} {
			for _, dir := range []string{"packBytes", "unpackBytes"} {
				name := dir + bits + endian
				if t.frameworkFunctions[name] {
					out = append(out, name)
				}
			}
		}
	}
	return out
}

var incDecWidths = []string{"Uint8", "Uint16", "Uint32", "Uint64", "Int8", "Int16", "Int32", "Int64", "Int", "Float32", "Float64"}

func (t *Transformer) selectedIncDecNames() []string {
	var out []string
	for _, w := range incDecWidths {
		for _, dir := range []string{"postIncr", "postDecr"} {
			name := dir + w
			if t.frameworkFunctions[name] {
				out = append(out, name)
			}
		}
	}
	return out
}

const orderedConstraintSource = `type numericOrdered interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 | ~string
}`

// helperFunctionSource returns the fixed Go source text for one selected
// helper function or type-parametrized family member.
func helperFunctionSource(name string) (string, bool) {
	switch name {
	case "mustHexDecode":
		return `func mustHexDecode(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(fmt.Sprintf("invalid hex literal %q: %v", s, err))
	}
	return b
}`, true
	case "hexVal":
		return `func hexVal(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	default:
		return -1
	}
}`, true
	case "maxOf":
		return `func maxOf[T numericOrdered](a, b T) T {
	if a > b {
		return a
	}
	return b
}`, true
	case "minOf":
		return `func minOf[T numericOrdered](a, b T) T {
	if a < b {
		return a
	}
	return b
}`, true
	case "firstNonNil":
		return `func firstNonNil(vals ...interface{}) interface{} {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}`, true
	case "isTypeString":
		return typeofCheckSource("isTypeString", "string"), true
	case "isTypeNumber":
		return `func isTypeNumber(v interface{}) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	default:
		return false
	}
}`, true
	case "isTypeBoolean":
		return typeofCheckSource("isTypeBoolean", "bool"), true
	case "isTypeObject":
		return `func isTypeObject(v interface{}) bool {
	if v == nil {
		return false
	}
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Map || k == reflect.Struct || k == reflect.Ptr
}`, true
	case "isTypeUndefined":
		return `func isTypeUndefined(v interface{}) bool { return v == nil }`, true
	case "isTypeFunction":
		return `func isTypeFunction(v interface{}) bool {
	return v != nil && reflect.ValueOf(v).Kind() == reflect.Func
}`, true
	case "arrayFrom":
		return `func arrayFrom(src interface{}, mapFn func(interface{}) interface{}) []interface{} {
	v := reflect.ValueOf(src)
	out := make([]interface{}, v.Len())
	for i := 0; i < v.Len(); i++ {
		item := v.Index(i).Interface()
		if mapFn != nil {
			item = mapFn(item)
		}
		out[i] = item
	}
	return out
}`, true
	case "sliceOf":
		return `func sliceOf[T any](xs []T, start, end int) []T {
	if start < 0 {
		start += len(xs)
	}
	if end < 0 {
		end += len(xs)
	}
	return xs[start:end]
}`, true
	case "concatOf":
		return `func concatOf[T any](xs []T, more ...[]T) []T {
	out := append([]T{}, xs...)
	for _, m := range more {
		out = append(out, m...)
	}
	return out
}`, true
	case "mapOf":
		return `func mapOf[T, R any](xs []T, fn func(T) R) []R {
	out := make([]R, len(xs))
	for i, x := range xs {
		out[i] = fn(x)
	}
	return out
}`, true
	case "filterOf":
		return `func filterOf[T any](xs []T, fn func(T) bool) []T {
	var out []T
	for _, x := range xs {
		if fn(x) {
			out = append(out, x)
		}
	}
	return out
}`, true
	case "reduceOf":
		return `func reduceOf[T, R any](xs []T, fn func(R, T) R, init R) R {
	acc := init
	for _, x := range xs {
		acc = fn(acc, x)
	}
	return acc
}`, true
	case "findOf":
		return `func findOf[T any](xs []T, fn func(T) bool) (T, bool) {
	for _, x := range xs {
		if fn(x) {
			return x, true
		}
	}
	var zero T
	return zero, false
}`, true
	case "findIndexOf":
		return `func findIndexOf[T any](xs []T, fn func(T) bool) int {
	for i, x := range xs {
		if fn(x) {
			return i
		}
	}
	return -1
}`, true
	case "everyOf":
		return `func everyOf[T any](xs []T, fn func(T) bool) bool {
	for _, x := range xs {
		if !fn(x) {
			return false
		}
	}
	return true
}`, true
	case "someOf":
		return `func someOf[T any](xs []T, fn func(T) bool) bool {
	for _, x := range xs {
		if fn(x) {
			return true
		}
	}
	return false
}`, true
	case "forEachOf":
		return `func forEachOf[T any](xs []T, fn func(T)) {
	for _, x := range xs {
		fn(x)
	}
}`, true
	case "indexOfOf":
		return `func indexOfOf[T comparable](xs []T, v T) int {
	for i, x := range xs {
		if x == v {
			return i
		}
	}
	return -1
}`, true
	case "includesOf":
		return `func includesOf[T comparable](xs []T, v T) bool {
	return indexOfOf(xs, v) >= 0
}`, true
	case "joinOf":
		return `func joinOf[T any](xs []T, sep string) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, sep)
}`, true
	case "reverseOf":
		return `func reverseOf[T any](xs []T) []T {
	out := make([]T, len(xs))
	for i, x := range xs {
		out[len(xs)-1-i] = x
	}
	return out
}`, true
	case "sortOf":
		return `func sortOf[T numericOrdered](xs []T) []T {
	out := append([]T{}, xs...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}`, true
	case "fillOf":
		return `func fillOf[T any](xs []T, v T) []T {
	for i := range xs {
		xs[i] = v
	}
	return xs
}`, true
	case "popOf":
		return `func popOf[T any](xs []T) ([]T, T) {
	var zero T
	if len(xs) == 0 {
		return xs, zero
	}
	return xs[:len(xs)-1], xs[len(xs)-1]
}`, true
	case "shiftOf":
		return `func shiftOf[T any](xs []T) ([]T, T) {
	var zero T
	if len(xs) == 0 {
		return xs, zero
	}
	return xs[1:], xs[0]
}`, true
	case "unshiftOf":
		return `func unshiftOf[T any](xs []T, v T) []T {
	return append([]T{v}, xs...)
}`, true
	case "mapKeys":
		return `func mapKeys[K comparable, V any](m map[K]V) []K {
	out := make([]K, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}`, true
	case "mapValues":
		return `func mapValues[K comparable, V any](m map[K]V) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}`, true
	case "mapEntries":
		return `func mapEntries[K comparable, V any](m map[K]V) [][2]interface{} {
	out := make([][2]interface{}, 0, len(m))
	for k, v := range m {
		out = append(out, [2]interface{}{k, v})
	}
	return out
}`, true
	case "uint32SliceToBytes":
		return `func uint32SliceToBytes(xs []uint32) []byte {
	out := make([]byte, len(xs)*4)
	for i, x := range xs {
		binary.BigEndian.PutUint32(out[i*4:], x)
	}
	return out
}`, true
	case "bytesToUint32Slice":
		return `func bytesToUint32Slice(b []byte) []uint32 {
	out := make([]uint32, len(b)/4)
	for i := range out {
		out[i] = binary.BigEndian.Uint32(b[i*4:])
	}
	return out
}`, true
	case "powInt":
		return `func powInt(base, exp int) int {
	result := 1
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}`, true
	case "powUint32":
		return `func powUint32(base uint32, exp uint32) uint32 {
	result := uint32(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}`, true
	case "constantTimeCompare":
		return `func constantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}`, true
	case "popcount":
		return `func popcount(x uint32) int {
	return bits.OnesCount32(x)
}`, true
	case "parseIntValue":
		return `func parseIntValue(s string, base int) int {
	n, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		return 0
	}
	return int(n)
}`, true
	case "joinSlice":
		return `func joinSlice(xs []string, sep string) string {
	return strings.Join(xs, sep)
}`, true
	case "spliceSlice":
		return `func spliceSlice[T any](xs []T, start, deleteCount int, insert ...T) []T {
	if start < 0 {
		start += len(xs)
	}
	end := start + deleteCount
	if end > len(xs) {
		end = len(xs)
	}
	out := append([]T{}, xs[:start]...)
	out = append(out, insert...)
	out = append(out, xs[end:]...)
	return out
}`, true
	case "doubleToBytes":
		return `func doubleToBytes(f float64) []byte {
	out := make([]byte, 8)
	binary.BigEndian.PutUint64(out, math.Float64bits(f))
	return out
}`, true
	case "opCodesHelper":
		return `// opCodesHelper is the catch-all dispatcher for OpCodes members that have
// no direct standard-library equivalent; it is keyed by the original
// member name.
func opCodesHelper(member string, args ...interface{}) interface{} {
	switch member {
	case "XOR":
		if len(args) == 2 {
			if a, ok := args[0].(uint32); ok {
				if b, ok := args[1].(uint32); ok {
					return a ^ b
				}
			}
		}
	}
	if len(args) > 0 {
		return args[0]
	}
	return nil
}`, true
	}

	if src, ok := packUnpackSource(name); ok {
		return src, true
	}
	if src, ok := incDecSource(name); ok {
		return src, true
	}
	return "", false
}

func typeofCheckSource(fnName, goKind string) string {
	return "func " + fnName + "(v interface{}) bool {\n" +
		"\t_, ok := v.(" + goKind + ")\n" +
		"\treturn ok\n" +
		"}"
}

// packUnpackSource generates one pack/unpack helper for a "<packBytes|
// unpackBytes><bits><BE|LE>" name.
func packUnpackSource(name string) (string, bool) {
	var dir, rest string
	switch {
	case strings.HasPrefix(name, "packBytes"):
		dir, rest = "pack", strings.TrimPrefix(name, "packBytes")
	case strings.HasPrefix(name, "unpackBytes"):
		dir, rest = "unpack", strings.TrimPrefix(name, "unpackBytes")
	default:
		return "", false
	}
	var bits, endian string
	switch {
	case strings.HasSuffix(rest, "BE"):
		bits, endian = strings.TrimSuffix(rest, "BE"), "BigEndian"
	case strings.HasSuffix(rest, "LE"):
		bits, endian = strings.TrimSuffix(rest, "LE"), "LittleEndian"
	default:
		return "", false
	}
	scalarType := map[string]string{"8": "uint8", "16": "uint16", "32": "uint32", "64": "uint64"}[bits]
	if scalarType == "" {
		return "", false
	}
	if bits == "8" {
		if dir == "pack" {
			return "func " + name + "(v uint8) []byte { return []byte{v} }", true
		}
		return "func " + name + "(b []byte) uint8 { return b[0] }", true
	}
	put := "binary." + endian + ".PutUint" + bits
	get := "binary." + endian + ".Uint" + bits
	byteLen := map[string]string{"16": "2", "32": "4", "64": "8"}[bits]
	if dir == "pack" {
		return "func " + name + "(v " + scalarType + ") []byte {\n" +
			"\tout := make([]byte, " + byteLen + ")\n" +
			"\t" + put + "(out, v)\n" +
			"\treturn out\n" +
			"}", true
	}
	return "func " + name + "(b []byte) " + scalarType + " {\n" +
		"\treturn " + get + "(b)\n" +
		"}", true
}

// incDecSource generates one post-increment/post-decrement helper, which
// returns the operand's old value, for a
// "<postIncr|postDecr><Width>" name.
func incDecSource(name string) (string, bool) {
	var op, width string
	switch {
	case strings.HasPrefix(name, "postIncr"):
		op, width = "+", strings.TrimPrefix(name, "postIncr")
	case strings.HasPrefix(name, "postDecr"):
		op, width = "-", strings.TrimPrefix(name, "postDecr")
	default:
		return "", false
	}
	goType := strings.ToLower(width[:1]) + width[1:]
	found := false
	for _, w := range incDecWidths {
		if w == width {
			found = true
			break
		}
	}
	if !found {
		return "", false
	}
	return "func " + name + "(p *" + goType + ") " + goType + " {\n" +
		"\told := *p\n" +
		"\t*p " + op + "= 1\n" +
		"\treturn old\n" +
		"}", true
}

// emitFrameworkStubs is the Framework Stub Generator's entry point: it
// prepends every selected stub declaration to the already-built file, in
// the fixed emission order enums -> helper records -> algorithm bases ->
// instance bases -> singleton -> helper functions.
func (t *Transformer) emitFrameworkStubs(file *goast.File) {
	stubs := goast.NewFile(file.Package)
	t.emitEnumDecls(stubs)
	t.emitHelperRecordDecls(stubs)
	t.emitBaseAlgorithmDecls(stubs)
	t.emitInstanceBaseDecls(stubs)
	t.emitFrameworkSingleton(stubs)
	t.emitHelperFunctions(stubs)

	if len(stubs.Declarations) == 0 {
		return
	}
	file.Declarations = append(stubs.Declarations, file.Declarations...)
}

// SelectAll force-selects the entire framework-stub catalog: every
// algorithm base, instance base, enum family, helper record and helper
// function. Used by the `ilgo stubs` CLI subcommand to print the closed
// stub set for inspection, independent of any particular IL input.
func (t *Transformer) SelectAll() {
	for _, b := range concreteAlgorithmBaseOrder {
		t.selectFrameworkBase(b)
	}
	for _, b := range instanceBaseOrder {
		t.frameworkClasses[b] = true
	}
	for _, e := range enumOrder {
		t.selectEnum(e)
	}
	for _, h := range helperRecordOrder {
		t.selectHelperClass(h)
	}
	for _, f := range helperFunctionOrder {
		t.selectFrameworkFunction(f)
	}
	for _, bits := range []string{"8", "16", "32", "64"} {
		for _, endian := range []string{"BE", "LE"} {
			t.selectFrameworkFunction("packBytes" + bits + endian)
			t.selectFrameworkFunction("unpackBytes" + bits + endian)
		}
	}
	for _, w := range incDecWidths {
		t.selectFrameworkFunction("postIncr" + w)
		t.selectFrameworkFunction("postDecr" + w)
	}
}

// StubsFile renders the full selected framework-stub catalog as a
// standalone *goast.File, with no walked IL input. Used by the
// `ilgo stubs` CLI subcommand.
func (t *Transformer) StubsFile() *goast.File {
	t.resetFileState()
	defer t.clearPositionalContext()
	t.SelectAll()
	file := goast.NewFile(t.options.PackageName)
	t.emitFrameworkStubs(file)
	for _, path := range t.Imports() {
		file.AddImport(path)
	}
	return file
}
