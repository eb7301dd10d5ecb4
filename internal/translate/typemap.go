package translate

import (
	"github.com/declbridge/declbridge/internal/decl"
	"github.com/declbridge/declbridge/internal/sym"
)

// translateType maps one input type node to a target type reference.
// It is pure and total: unrepresentable shapes degrade to permissive
// types instead of failing.
//
// anyAsDynamic selects the outer translation mode, used only for
// declared variable/field/result types at declaration top level; it
// never propagates into nested positions, so an "any" inside a nested
// function-type signature always maps to the permissive type.
func translateType(t decl.Type, anyAsDynamic bool) *sym.TypeRef {
	switch t := t.(type) {
	case decl.TypeRefNode:
		if len(t.Qualifier) == 0 && len(t.Args) == 0 {
			if core := coreType(t.Name, anyAsDynamic); core != nil {
				return core
			}
		}

		var base sym.QualName
		switch {
		case len(t.Qualifier) == 0 && t.Name == "Array":
			base = sym.ArrayName
		case len(t.Qualifier) == 0 && t.Name == "Function":
			base = sym.FunctionBaseName
		default:
			base = append(append(sym.QualName{}, t.Qualifier...), t.Name)
		}

		targs := make([]*sym.TypeRef, len(t.Args))
		for i, a := range t.Args {
			targs[i] = translateType(a, false)
		}
		return sym.NewTypeRef(base, targs...)

	case decl.ObjectType:
		// Inline object types have no structural target representation.
		return sym.AnyType

	case decl.FuncType:
		return translateFuncType(t.Sig)

	case decl.RepeatedType:
		return sym.Repeated(translateType(t.Elem, false))

	default:
		// ConstType, RawType and anything unforeseen.
		return sym.AnyType
	}
}

// coreType resolves primitive/core type names; nil means the name is
// not a core type.
func coreType(name string, anyAsDynamic bool) *sym.TypeRef {
	switch name {
	case "any":
		if anyAsDynamic {
			return sym.DynamicType
		}
		return sym.AnyType
	case "dynamic":
		return sym.DynamicType
	case "void":
		return sym.UnitType
	case "number", "int", "integer", "float", "double":
		return sym.NumberType
	case "bool", "boolean":
		return sym.BooleanType
	case "string":
		return sym.StringType
	}
	return nil
}

// translateFuncType encodes a function-type literal as an
// arity-indexed function reference. Type parameters and variadic
// parameters cannot be encoded, so those shapes degrade to the
// unparametrized function base; an absent result degrades the whole
// literal to the permissive type.
func translateFuncType(sig decl.Signature) *sym.TypeRef {
	if len(sig.TypeParams) > 0 {
		return sym.FunctionBaseType
	}
	for _, p := range sig.Params {
		if _, ok := p.Type.(decl.RepeatedType); ok {
			return sym.FunctionBaseType
		}
	}
	if sig.Result == nil {
		return sym.AnyType
	}

	targs := make([]*sym.TypeRef, 0, len(sig.Params)+1)
	for _, p := range sig.Params {
		targs = append(targs, translateType(typeOrAny(p.Type), false))
	}
	targs = append(targs, translateType(sig.Result, false))

	return sym.NewTypeRef(sym.FunctionName(len(sig.Params)), targs...)
}
