// Package decl defines the input declaration AST handed to the
// translator by the external parser. Each AST layer (declarations,
// members, types) is a closed tagged-variant: a marker interface plus
// one struct per shape, with Raw* catch-alls so that unrecognized
// input degrades to a comment placeholder instead of failing.
package decl

import (
	"fmt"
	"strings"
)

// Decl is a top-level (or module-nested) declaration.
type Decl interface {
	isDecl()
	Text() string
}

// Member is a single entry in an object/interface body.
type Member interface {
	isMember()
	Text() string
}

// Type is a type annotation node.
type Type interface {
	isType()
	Text() string
}

// Param is one parameter of a signature. A nil Type means the
// parameter was declared without an annotation (implicit any).
type Param struct {
	Name     string
	Optional bool
	Type     Type
}

// TypeParam is a declared type parameter with an optional upper bound.
type TypeParam struct {
	Name  string
	Bound Type
}

// Signature is the callable shape shared by functions, methods, call
// signatures and constructors. A nil Result means no declared result.
type Signature struct {
	TypeParams []TypeParam
	Params     []Param
	Result     Type
}

// -----------------------------------------------------------------------------
// Declarations
// -----------------------------------------------------------------------------

// ModuleDecl is a namespace-shaped declaration: name { decls }.
type ModuleDecl struct {
	Name  string
	Decls []Decl
}

// VarDecl is a variable declaration. A nil Type is an implicitly-any
// variable; an *ObjectType turns the variable into a module.
type VarDecl struct {
	Name string
	Type Type
}

// TypeAliasDecl is a type alias. Only aliases to object types are
// representable; anything else arrives as a RawDecl.
type TypeAliasDecl struct {
	Name string
	Type Type
}

// InterfaceDecl is an interface declaration.
type InterfaceDecl struct {
	Name       string
	TypeParams []TypeParam
	Parents    []Type
	Members    []Member
}

// FuncDecl is a top-level function declaration.
type FuncDecl struct {
	Name string
	Sig  Signature
}

// RawDecl carries the textual form of a declaration the parser could
// not classify.
type RawDecl struct {
	Raw string
}

func (ModuleDecl) isDecl()    {}
func (VarDecl) isDecl()       {}
func (TypeAliasDecl) isDecl() {}
func (InterfaceDecl) isDecl() {}
func (FuncDecl) isDecl()      {}
func (RawDecl) isDecl()       {}

func (d ModuleDecl) Text() string { return fmt.Sprintf("module %s", d.Name) }

func (d VarDecl) Text() string {
	if d.Type == nil {
		return fmt.Sprintf("var %s", d.Name)
	}
	return fmt.Sprintf("var %s: %s", d.Name, d.Type.Text())
}

func (d TypeAliasDecl) Text() string {
	return fmt.Sprintf("type %s = %s", d.Name, d.Type.Text())
}

func (d InterfaceDecl) Text() string { return fmt.Sprintf("interface %s", d.Name) }

func (d FuncDecl) Text() string {
	return fmt.Sprintf("function %s%s", d.Name, d.Sig.Text())
}

func (d RawDecl) Text() string { return d.Raw }

// -----------------------------------------------------------------------------
// Members
// -----------------------------------------------------------------------------

// CallMember makes values of the owning type invokable: (params): result.
type CallMember struct {
	Sig Signature
}

// CtorMember is a construct signature: new (params): result.
type CtorMember struct {
	Sig Signature
}

// PropertyMember is name: type, optionally flagged with "?".
type PropertyMember struct {
	Name     string
	Optional bool
	Type     Type
}

// FuncMember is a named method signature.
type FuncMember struct {
	Name     string
	Optional bool
	Sig      Signature
}

// IndexMember is an index signature: [indexName: indexType]: valueType.
type IndexMember struct {
	IndexName string
	IndexType Type
	ValueType Type
}

// RawMember carries the textual form of an unrecognized member.
type RawMember struct {
	Raw string
}

func (CallMember) isMember()     {}
func (CtorMember) isMember()     {}
func (PropertyMember) isMember() {}
func (FuncMember) isMember()     {}
func (IndexMember) isMember()    {}
func (RawMember) isMember()      {}

func (m CallMember) Text() string { return m.Sig.Text() }
func (m CtorMember) Text() string { return "new " + m.Sig.Text() }

func (m PropertyMember) Text() string {
	opt := ""
	if m.Optional {
		opt = "?"
	}
	if m.Type == nil {
		return m.Name + opt
	}
	return fmt.Sprintf("%s%s: %s", m.Name, opt, m.Type.Text())
}

func (m FuncMember) Text() string { return m.Name + m.Sig.Text() }

func (m IndexMember) Text() string {
	return fmt.Sprintf("[%s: %s]: %s", m.IndexName, m.IndexType.Text(), m.ValueType.Text())
}

func (m RawMember) Text() string { return m.Raw }

// -----------------------------------------------------------------------------
// Types
// -----------------------------------------------------------------------------

// TypeRefNode is a (possibly qualified, possibly parametrized) type
// reference: Qualifier.Name<Args>.
type TypeRefNode struct {
	Qualifier []string
	Name      string
	Args      []Type
}

// ObjectType is an inline object-type literal.
type ObjectType struct {
	Members []Member
}

// FuncType is a function-type literal.
type FuncType struct {
	Sig Signature
}

// RepeatedType marks a variadic element type: ...T.
type RepeatedType struct {
	Elem Type
}

// ConstType is a literal/constant type denoting one fixed value.
type ConstType struct {
	Value string
}

// RawType carries the textual form of an unrecognized type node.
type RawType struct {
	Raw string
}

func (TypeRefNode) isType()  {}
func (ObjectType) isType()   {}
func (FuncType) isType()     {}
func (RepeatedType) isType() {}
func (ConstType) isType()    {}
func (RawType) isType()      {}

func (t TypeRefNode) Text() string {
	var b strings.Builder
	for _, q := range t.Qualifier {
		b.WriteString(q)
		b.WriteByte('.')
	}
	b.WriteString(t.Name)
	if len(t.Args) > 0 {
		b.WriteByte('<')
		for i, a := range t.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.Text())
		}
		b.WriteByte('>')
	}
	return b.String()
}

func (t ObjectType) Text() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.Text()
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

func (t FuncType) Text() string { return t.Sig.Text() }

func (t RepeatedType) Text() string { return "..." + t.Elem.Text() }

func (t ConstType) Text() string { return t.Value }

func (t RawType) Text() string { return t.Raw }

// Text renders the signature in declaration form.
func (s Signature) Text() string {
	var b strings.Builder
	if len(s.TypeParams) > 0 {
		b.WriteByte('<')
		for i, tp := range s.TypeParams {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(tp.Name)
			if tp.Bound != nil {
				b.WriteString(" extends ")
				b.WriteString(tp.Bound.Text())
			}
		}
		b.WriteByte('>')
	}
	b.WriteByte('(')
	for i, p := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		if p.Optional {
			b.WriteByte('?')
		}
		if p.Type != nil {
			b.WriteString(": ")
			b.WriteString(p.Type.Text())
		}
	}
	b.WriteByte(')')
	if s.Result != nil {
		b.WriteString(": ")
		b.WriteString(s.Result.Text())
	}
	return b.String()
}
