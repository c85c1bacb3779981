package goast

import (
	"fmt"
	"go/format"
	"strings"
)

// Render assembles the file into Go source text and canonicalizes it with
// go/format.Source, exactly the way gofmt would. go/format is the stdlib's
// own formatter — no example repo in the pack ships an alternative Go
// source formatter, and the emitter itself is out of scope, so
// reaching past the standard library here would add a dependency with no
// grounding.
func (f *File) Render() ([]byte, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "package %s\n\n", f.Package)

	if len(f.Imports) == 1 {
		fmt.Fprintf(&sb, "import %q\n\n", f.Imports[0])
	} else if len(f.Imports) > 1 {
		sb.WriteString("import (\n")
		for _, imp := range f.Imports {
			fmt.Fprintf(&sb, "\t%q\n", imp)
		}
		sb.WriteString(")\n\n")
	}

	for _, d := range f.Declarations {
		sb.WriteString(d.String())
		sb.WriteString("\n\n")
	}

	return format.Source([]byte(sb.String()))
}

// MustRender is Render without an error return, for callers (tests,
// snapshot golden files) that treat a malformed emission as a programmer
// error rather than a recoverable condition.
func (f *File) MustRender() string {
	out, err := f.Render()
	if err != nil {
		panic(err)
	}
	return string(out)
}
