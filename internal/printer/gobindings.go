package printer

import (
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"

	"github.com/declbridge/declbridge/internal/sym"
)

// GoBindings renders a Go-side binding stub for the symbol tree: one
// interface per class/trait and per module, package-level values
// gathered into a GlobalScope interface. The mapping is deliberately
// lossy — only the primitive types survive, everything else becomes
// any — and exists so Go tooling can program against the same surface
// the facade exposes.
func GoBindings(w io.Writer, root *sym.Package, pkgName string) error {
	f := jen.NewFile(pkgName)
	f.HeaderComment("Code generated by declbridge. DO NOT EDIT.")

	values, containers := splitMembers(root.Members())
	if len(values) > 0 {
		f.Type().Id("GlobalScope").Interface(bindingMethods(values)...)
	}

	emitContainers(f, containers)

	return f.Render(w)
}

func emitContainers(f *jen.File, containers []sym.Symbol) {
	for _, s := range containers {
		switch s := s.(type) {
		case *sym.Class:
			f.Type().Id(exported(string(s.SymbolName()))).Interface(bindingMethods(s.Members())...)
		case *sym.Module:
			f.Type().Id(exported(string(s.SymbolName())) + "Module").Interface(bindingMethods(s.Members())...)
		case *sym.Package:
			// Nested packages flatten into the single output file.
			_, nested := splitMembers(s.Members())
			emitContainers(f, nested)
		}
	}
}

// bindingMethods converts value members into interface entries,
// keeping the first occurrence of each name: Go interfaces cannot
// carry overloads, and constructors have no interface rendering.
func bindingMethods(members []sym.Symbol) []jen.Code {
	var out []jen.Code
	seen := make(map[string]bool)

	for _, s := range members {
		switch s := s.(type) {
		case *sym.Field:
			name := exported(string(s.Name))
			if seen[name] || seen["Set"+name] {
				continue
			}
			seen[name], seen["Set"+name] = true, true
			out = append(out,
				jen.Id(name).Params().Add(goType(s.Type)),
				jen.Id("Set"+name).Params(goType(s.Type)),
			)

		case *sym.Method:
			if s.Name == sym.ConstructorName {
				continue
			}
			name := exported(string(s.Name))
			if seen[name] {
				continue
			}
			seen[name] = true

			params := make([]jen.Code, len(s.Params))
			for i, p := range s.Params {
				params[i] = jen.Id(goName(string(p.Name))).Add(goType(p.Type))
			}
			m := jen.Id(name).Params(params...)
			if !s.Result.Equal(sym.UnitType) {
				m = m.Add(goType(s.Result))
			}
			out = append(out, m)

		case *sym.Comment:
			out = append(out, jen.Comment(strings.ReplaceAll(s.Text, "\n", " ")))
		}
	}
	return out
}

func goType(t *sym.TypeRef) *jen.Statement {
	if t == nil {
		return jen.Any()
	}
	if elem, ok := sym.RepeatedElem(t); ok {
		return jen.Op("...").Add(goType(elem))
	}

	switch {
	case t.Equal(sym.NumberType):
		return jen.Float64()
	case t.Equal(sym.BooleanType):
		return jen.Bool()
	case t.Equal(sym.StringType):
		return jen.String()
	case t.Name.Equal(sym.ArrayName) && len(t.Targs) == 1:
		return jen.Index().Add(goType(t.Targs[0]))
	}

	if n, ok := functionArity(t.Name); ok && len(t.Targs) == n+1 {
		params := make([]jen.Code, n)
		for i := 0; i < n; i++ {
			params[i] = goType(t.Targs[i])
		}
		fn := jen.Func().Params(params...)
		if result := t.Targs[n]; !result.Equal(sym.UnitType) {
			fn = fn.Add(goType(result))
		}
		return fn
	}

	return jen.Any()
}

// functionArity recognizes the arity-indexed function base names.
func functionArity(name sym.QualName) (int, bool) {
	if len(name) != 2 || name[0] != "js" || !strings.HasPrefix(name[1], "Function") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(name[1], "Function"))
	if err != nil {
		return 0, false
	}
	return n, true
}

func exported(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return goName(string(r))
}

// goName sanitizes an identifier for Go output.
func goName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	s := b.String()
	if s == "" {
		return "_"
	}
	if unicode.IsDigit(rune(s[0])) {
		s = "_" + s
	}
	return s
}
