package transform

// Options carries the recognized option keys. Unknown keys passed to New
// are ignored silently.
type Options struct {
	// PackageName is the emitted package name; WithNamespace sets it under
	// the option surface's documented "namespace" spelling.
	PackageName string

	AddComments   bool
	UseStrictTypes bool
	UseGenerics   bool
	ErrorHandling bool
	UseContext    bool
	UseCrypto     bool

	// Reserved, carried for forward compatibility; no current codepath reads
	// these.
	UseInterfaces bool
	UseGoroutines bool
	UseChannels   bool
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		PackageName:    "cipher",
		AddComments:    true,
		UseStrictTypes: true,
		UseGenerics:    true,
		ErrorHandling:  false,
		UseContext:     false,
		UseCrypto:      true,
	}
}

// Option configures a Transformer at construction, using the standard
// functional-option pattern.
type Option func(*Options)

// WithPackageName overrides the output package name (alias: namespace).
func WithPackageName(name string) Option {
	return func(o *Options) { o.PackageName = name }
}

// WithNamespace is an alias for WithPackageName, taking the option surface's
// documented "namespace" spelling of packageName.
func WithNamespace(name string) Option {
	return WithPackageName(name)
}

// WithAddComments toggles doc-comment emission on generated declarations.
func WithAddComments(v bool) Option {
	return func(o *Options) { o.AddComments = v }
}

// WithUseStrictTypes sets Options.UseStrictTypes. No transform code path
// reads that field, so it does not change the emitted code.
func WithUseStrictTypes(v bool) Option {
	return func(o *Options) { o.UseStrictTypes = v }
}

// WithUseGenerics toggles "any" vs "interface{}" spelling when widening.
func WithUseGenerics(v bool) Option {
	return func(o *Options) { o.UseGenerics = v }
}

// WithErrorHandling toggles appending an error return to constructors.
func WithErrorHandling(v bool) Option {
	return func(o *Options) { o.ErrorHandling = v }
}

// WithUseContext toggles prepending a context parameter to free functions.
func WithUseContext(v bool) Option {
	return func(o *Options) { o.UseContext = v }
}

// WithUseCrypto sets Options.UseCrypto. No transform code path reads that
// field, so it does not change the emitted code.
func WithUseCrypto(v bool) Option {
	return func(o *Options) { o.UseCrypto = v }
}

// interfaceTypeName returns "any" or "interface{}" per the UseGenerics
// option.
func (o Options) interfaceTypeName() string {
	if o.UseGenerics {
		return "any"
	}
	return "interface{}"
}
