// Package printer renders a finished symbol tree. The Scala printer
// emits Scala.js facade source; GoBindings emits a lossy Go-side
// binding stub for tooling. Both render members in strict insertion
// order — the translator's ordering guarantees are load-bearing here.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/declbridge/declbridge/internal/sym"
)

// Printer writes Scala.js facade source for one symbol tree.
type Printer struct {
	w      io.Writer
	pkg    string
	indent int
	err    error
}

// New returns a Printer targeting outputPackage.
func New(w io.Writer, outputPackage string) *Printer {
	return &Printer{w: w, pkg: outputPackage}
}

// Print renders the root package and returns the first write error.
func (p *Printer) Print(root *sym.Package) error {
	p.printf("package %s\n\n", p.pkg)
	p.printf("import scala.scalajs.js\n")
	p.printf("import js.annotation._\n")

	values, containers := splitMembers(root.Members())

	if len(values) > 0 {
		p.printf("\n@js.native\n@JSGlobalScope\nobject GlobalScope extends js.Object {\n")
		p.indent++
		for _, s := range values {
			p.printMember(s)
		}
		p.indent--
		p.printf("}\n")
	}

	for _, s := range containers {
		p.printf("\n")
		p.printContainer(s)
	}

	return p.err
}

// splitMembers partitions members into value members (fields, methods,
// comments) and container members, preserving relative order inside
// each partition.
func splitMembers(members []sym.Symbol) (values, containers []sym.Symbol) {
	for _, s := range members {
		switch s.(type) {
		case *sym.Field, *sym.Method, *sym.Comment:
			values = append(values, s)
		default:
			containers = append(containers, s)
		}
	}
	return values, containers
}

func (p *Printer) printContainer(s sym.Symbol) {
	switch s := s.(type) {
	case *sym.Module:
		p.printf("@js.native\n@JSGlobal\nobject %s extends js.Object {\n", s.SymbolName())
		p.printBody(s.Members())
		p.printf("}\n")

	case *sym.Class:
		kw := "class"
		if s.IsTrait {
			kw = "trait"
		}
		p.printf("@js.native\n%s %s%s extends %s {\n",
			kw, s.SymbolName(), formatTypeParams(s.TypeParams), formatParents(s.Parents))
		p.printBody(s.Members())
		p.printf("}\n")

	case *sym.Package:
		p.printf("package %s {\n", s.SymbolName())
		p.printBody(s.Members())
		p.printf("}\n")

	default:
		p.printMember(s)
	}
}

func (p *Printer) printBody(members []sym.Symbol) {
	p.indent++
	for _, m := range members {
		switch m.(type) {
		case *sym.Module, *sym.Class, *sym.Package:
			p.printContainer(m)
		default:
			p.printMember(m)
		}
	}
	p.indent--
}

func (p *Printer) printMember(s sym.Symbol) {
	switch s := s.(type) {
	case *sym.Field:
		p.printf("var %s: %s = js.native\n", s.Name, formatType(s.Type))

	case *sym.Method:
		if s.IndexAccessor {
			p.printf("@JSBracketAccess\n")
		}
		if s.Name == sym.ConstructorName {
			p.printf("def this%s\n", formatParams(s.Params))
			return
		}
		p.printf("def %s%s%s: %s = js.native\n",
			s.Name, formatTypeParams(s.TypeParams), formatParams(s.Params), formatType(s.Result))

	case *sym.Comment:
		p.printf("// %s\n", strings.ReplaceAll(s.Text, "\n", " "))
	}
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	pad := strings.Repeat("  ", p.indent)
	text := fmt.Sprintf(format, args...)
	// Indent every non-empty line of the fragment.
	lines := strings.SplitAfter(text, "\n")
	for _, line := range lines {
		if line == "" {
			continue
		}
		if line != "\n" {
			if _, err := io.WriteString(p.w, pad); err != nil {
				p.err = err
				return
			}
		}
		if _, err := io.WriteString(p.w, line); err != nil {
			p.err = err
			return
		}
	}
}

// -----------------------------------------------------------------------------
// Formatting helpers
// -----------------------------------------------------------------------------

func formatType(t *sym.TypeRef) string {
	if t == nil {
		return sym.AnyType.String()
	}
	if elem, ok := sym.RepeatedElem(t); ok {
		return formatType(elem) + "*"
	}
	if len(t.Targs) == 0 {
		return t.Name.String()
	}
	parts := make([]string, len(t.Targs))
	for i, a := range t.Targs {
		parts[i] = formatType(a)
	}
	return t.Name.String() + "[" + strings.Join(parts, ", ") + "]"
}

func formatParams(params []*sym.Param) string {
	parts := make([]string, len(params))
	for i, pa := range params {
		part := fmt.Sprintf("%s: %s", pa.Name, formatType(pa.Type))
		if pa.Optional {
			part += " = ???"
		}
		parts[i] = part
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func formatTypeParams(tparams []sym.TypeParam) string {
	if len(tparams) == 0 {
		return ""
	}
	parts := make([]string, len(tparams))
	for i, tp := range tparams {
		if tp.Bound != nil {
			parts[i] = fmt.Sprintf("%s <: %s", tp.Name, formatType(tp.Bound))
		} else {
			parts[i] = string(tp.Name)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatParents(parents []*sym.TypeRef) string {
	if len(parents) == 0 {
		return "js.Object"
	}
	parts := make([]string, len(parents))
	for i, pr := range parents {
		parts[i] = formatType(pr)
	}
	return strings.Join(parts, " with ")
}
