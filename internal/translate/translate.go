// Package translate converts the input declaration AST into the
// output symbol tree. The mapping is total: every unsupported shape
// degrades to a comment placeholder or a permissive type, and the only
// error is the structural precondition on module nesting.
package translate

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/declbridge/declbridge/internal/decl"
	"github.com/declbridge/declbridge/internal/sym"
)

// ErrModuleOutsidePackage is the single fatal condition: a
// module-shaped declaration whose container is not a package.
var ErrModuleOutsidePackage = errors.New("module declaration outside a package")

// Translate builds the symbol tree for one input document. On success
// the returned root package is complete and never mutated again.
func Translate(decls []decl.Decl) (*sym.Package, error) {
	root := sym.NewRootPackage()
	for _, d := range decls {
		if err := processDecl(root, d); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// processDecl dispatches one declaration onto owner, recursing into
// module bodies.
func processDecl(owner sym.Container, d decl.Decl) error {
	switch d := d.(type) {
	case decl.ModuleDecl:
		pkg, ok := owner.(*sym.Package)
		if !ok {
			return fmt.Errorf("%w: module %q inside %q", ErrModuleOutsidePackage, d.Name, owner.SymbolName())
		}
		mod := pkg.GetOrCreateModule(sym.Name(d.Name))
		for _, inner := range d.Decls {
			if err := processDecl(mod, inner); err != nil {
				return err
			}
		}

	case decl.VarDecl:
		if obj, ok := d.Type.(decl.ObjectType); ok {
			mod := owner.GetOrCreateModule(sym.Name(d.Name))
			processMembers(owner, mod, obj.Members)
			return nil
		}
		f := owner.NewField(sym.Name(d.Name))
		f.Type = translateType(typeOrAny(d.Type), true)

	case decl.TypeAliasDecl:
		if obj, ok := d.Type.(decl.ObjectType); ok {
			cls := owner.GetOrCreateClass(sym.Name(d.Name))
			processMembers(owner, cls, obj.Members)
			return nil
		}
		placeholder(owner, d.Text())

	case decl.InterfaceDecl:
		cls := owner.GetOrCreateClass(sym.Name(d.Name))
		for _, parent := range d.Parents {
			cls.AddParent(translateType(parent, false))
		}
		cls.TypeParams = append(cls.TypeParams, translateTypeParams(d.TypeParams)...)
		processMembers(owner, cls, d.Members)

	case decl.FuncDecl:
		buildMethod(owner, sym.Name(d.Name), d.Sig)

	default:
		placeholder(owner, d.Text())
	}
	return nil
}

// processMembers converts one container body onto owner. enclosing is
// the container owning both owner and its potential companion class.
func processMembers(enclosing, owner sym.Container, members []decl.Member) {
	ownerName := owner.SymbolName()

	// Companion reference: the class sharing owner's name, with that
	// class's current type parameters applied as arguments. Computed
	// at first use only.
	var companion *sym.TypeRef
	companionRef := func() *sym.TypeRef {
		if companion == nil {
			var targs []*sym.TypeRef
			if cls := enclosing.FindClass(ownerName); cls != nil {
				for _, tp := range cls.TypeParams {
					targs = append(targs, sym.NewTypeRef(sym.QualName{string(tp.Name)}))
				}
			}
			companion = sym.NewTypeRef(sym.QualName{string(ownerName)}, targs...)
		}
		return companion
	}

	for _, m := range members {
		switch m := m.(type) {
		case decl.CallMember:
			buildMethod(owner, "apply", m.Sig)

		case decl.CtorMember:
			_, isModule := owner.(*sym.Module)
			if isModule && len(m.Sig.TypeParams) == 0 && m.Sig.Result != nil &&
				translateType(m.Sig.Result, false).Equal(companionRef()) {
				cls := enclosing.GetOrCreateClass(ownerName)
				cls.IsTrait = false
				buildMethod(cls, sym.ConstructorName, decl.Signature{
					Params: m.Sig.Params,
					Result: decl.TypeRefNode{Name: "void"},
				})
				continue
			}
			placeholder(owner, m.Text())

		case decl.PropertyMember:
			// The prototype marker carries no translatable information.
			if m.Name == "prototype" {
				continue
			}
			f := owner.NewField(sym.Name(m.Name))
			f.Type = translateType(typeOrAny(m.Type), true)

		case decl.FuncMember:
			buildMethod(owner, sym.Name(m.Name), m.Sig)

		case decl.IndexMember:
			indexTpe := translateType(m.IndexType, false)
			valueTpe := translateType(m.ValueType, false)

			getter := owner.NewMethod("apply")
			getter.Params = []*sym.Param{{Name: sym.Name(m.IndexName), Type: indexTpe}}
			getter.Result = valueTpe
			getter.IndexAccessor = true

			setter := owner.NewMethod("update")
			setter.Params = []*sym.Param{
				{Name: sym.Name(m.IndexName), Type: indexTpe},
				{Name: "v", Type: valueTpe},
			}
			setter.Result = sym.UnitType
			setter.IndexAccessor = true

		default:
			placeholder(owner, m.Text())
		}
	}
}

// buildMethod translates one callable signature into a method on
// owner. Signatures with constant-typed parameters are dropped
// entirely: the target type system has no literal types. A freshly
// built method that duplicates an existing one (post-translation) is
// discarded.
func buildMethod(owner sym.Container, name sym.Name, sig decl.Signature) {
	for _, p := range sig.Params {
		if _, ok := p.Type.(decl.ConstType); ok {
			return
		}
	}

	m := owner.NewMethod(name)
	m.TypeParams = translateTypeParams(sig.TypeParams)

	for _, p := range sig.Params {
		ps := &sym.Param{Name: sym.Name(p.Name), Optional: p.Optional}
		if rep, ok := p.Type.(decl.RepeatedType); ok {
			ps.Type = sym.Repeated(translateType(rep.Elem, false))
		} else {
			ps.Type = translateType(typeOrAny(p.Type), false)
		}
		m.Params = append(m.Params, ps)
	}

	if sig.Result != nil {
		m.Result = translateType(sig.Result, true)
	} else {
		m.Result = sym.DynamicType
	}

	owner.RemoveIfDuplicate(m)
}

func translateTypeParams(tparams []decl.TypeParam) []sym.TypeParam {
	if len(tparams) == 0 {
		return nil
	}
	out := make([]sym.TypeParam, 0, len(tparams))
	for _, tp := range tparams {
		var bound *sym.TypeRef
		if tp.Bound != nil {
			bound = translateType(tp.Bound, false)
		}
		out = append(out, sym.TypeParam{Name: sym.Name(tp.Name), Bound: bound})
	}
	return out
}

// typeOrAny substitutes the implicit any for an absent annotation.
func typeOrAny(t decl.Type) decl.Type {
	if t == nil {
		return decl.TypeRefNode{Name: "any"}
	}
	return t
}

func placeholder(owner sym.Container, text string) {
	slog.Debug("unrecognized construct", "owner", string(owner.SymbolName()), "text", text)
	owner.NewComment("??? " + text)
}
