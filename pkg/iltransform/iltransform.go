// Package iltransform is the public façade over internal/transform: a
// stable, minimal surface external callers can import without reaching
// into internal packages.
package iltransform

import (
	"github.com/hawkynt/ilgo/internal/diagnostics"
	"github.com/hawkynt/ilgo/internal/goast"
	"github.com/hawkynt/ilgo/internal/il"
	"github.com/hawkynt/ilgo/internal/transform"
)

// Option configures a Transformer at construction time. Re-exported so
// callers never need to import internal/transform directly.
type Option = transform.Option

// The functional-option constructors from internal/transform, re-exported
// under their original names (WithPackageName, WithAddComments, ...).
var (
	WithPackageName    = transform.WithPackageName
	WithNamespace      = transform.WithNamespace
	WithAddComments    = transform.WithAddComments
	WithUseStrictTypes = transform.WithUseStrictTypes
	WithUseGenerics    = transform.WithUseGenerics
	WithErrorHandling  = transform.WithErrorHandling
	WithUseContext     = transform.WithUseContext
	WithUseCrypto      = transform.WithUseCrypto
)

// Transformer runs one IL-to-Go transform (transform(ilAst) -> goFile).
// It is not safe for concurrent use; construct one per input file.
type Transformer struct {
	inner *transform.Transformer
}

// New constructs a Transformer, applying opts over the documented defaults.
func New(opts ...Option) *Transformer {
	return &Transformer{inner: transform.New(opts...)}
}

// WithOpCodesTypes registers typeKnowledge.opCodesTypes for
// precise OpCodes return-type resolution.
func (t *Transformer) WithOpCodesTypes(m map[string]transform.OpCodesTypeInfo) *Transformer {
	t.inner.WithOpCodesTypes(m)
	return t
}

// Transform walks program and returns the resulting Go AST file. It never
// returns a non-nil error today (the core transformer never aborts) but
// the error return leaves room for a future validating front end.
func (t *Transformer) Transform(program *il.Program) (*goast.File, error) {
	return t.inner.Transform(program)
}

// Warnings exposes the diagnostics collected by the most recent Transform
// call.
func (t *Transformer) Warnings() []diagnostics.Warning {
	return t.inner.Warnings()
}

// Imports exposes the accumulated import set from the most recent Transform
// call.
func (t *Transformer) Imports() []string {
	return t.inner.Imports()
}

// StubsFile renders the full framework-stub catalog as a
// standalone Go AST file, independent of any IL input. Used by `ilgo stubs`.
func (t *Transformer) StubsFile() *goast.File {
	return t.inner.StubsFile()
}
