// Package sym is the output symbol tree: the containers (packages,
// modules, classes/traits) and leaves (fields, methods, parameters,
// comments) the translator builds and the printers render. Member
// order is strictly first-encounter order and is part of the contract
// with the printers.
package sym

// Name is an identifier in the output tree.
type Name string

// ConstructorName is the reserved sentinel naming a constructor.
const ConstructorName Name = "<init>"

// Symbol is any node owned by a container.
type Symbol interface {
	SymbolName() Name
}

// Container is the shared capability of packages, modules and
// classes: an insertion-ordered member list with name-keyed lookup of
// nested classes and modules.
type Container interface {
	Symbol
	Members() []Symbol
	FindClass(name Name) *Class
	FindModule(name Name) *Module
	GetOrCreateClass(name Name) *Class
	GetOrCreateModule(name Name) *Module
	NewField(name Name) *Field
	NewMethod(name Name) *Method
	NewComment(text string) *Comment
	RemoveIfDuplicate(m *Method) bool
}

type container struct {
	name    Name
	members []Symbol
	classes map[Name]*Class
	modules map[Name]*Module
}

func newContainer(name Name) container {
	return container{
		name:    name,
		classes: make(map[Name]*Class),
		modules: make(map[Name]*Module),
	}
}

func (c *container) SymbolName() Name  { return c.name }
func (c *container) Members() []Symbol { return c.members }

func (c *container) FindClass(name Name) *Class   { return c.classes[name] }
func (c *container) FindModule(name Name) *Module { return c.modules[name] }

// GetOrCreateClass returns the class named name, creating and
// appending it on first request. Repeated requests merge into the same
// instance.
func (c *container) GetOrCreateClass(name Name) *Class {
	if cls := c.classes[name]; cls != nil {
		return cls
	}
	cls := &Class{container: newContainer(name), IsTrait: true}
	c.classes[name] = cls
	c.members = append(c.members, cls)
	return cls
}

// GetOrCreateModule returns the module named name, creating and
// appending it on first request.
func (c *container) GetOrCreateModule(name Name) *Module {
	if mod := c.modules[name]; mod != nil {
		return mod
	}
	mod := &Module{container: newContainer(name)}
	c.modules[name] = mod
	c.members = append(c.members, mod)
	return mod
}

// NewField appends a field; the caller sets its type.
func (c *container) NewField(name Name) *Field {
	f := &Field{Name: name, Type: AnyType}
	c.members = append(c.members, f)
	return f
}

// NewMethod appends a method; the caller fills in its shape.
func (c *container) NewMethod(name Name) *Method {
	m := &Method{Name: name, Result: DynamicType}
	c.members = append(c.members, m)
	return m
}

// NewComment appends a placeholder for an untranslatable construct.
func (c *container) NewComment(text string) *Comment {
	cm := &Comment{Text: text}
	c.members = append(c.members, cm)
	return cm
}

// RemoveIfDuplicate drops m from the member list when a structurally
// equal method (other than m itself) is already present, and reports
// whether it did. m must be the most recently appended member.
func (c *container) RemoveIfDuplicate(m *Method) bool {
	for _, s := range c.members {
		other, ok := s.(*Method)
		if !ok || other == m {
			continue
		}
		if other.Equal(m) {
			for i := len(c.members) - 1; i >= 0; i-- {
				if c.members[i] == Symbol(m) {
					c.members = append(c.members[:i], c.members[i+1:]...)
					break
				}
			}
			return true
		}
	}
	return false
}

// Package is a container that additionally owns nested packages. The
// root package has the empty name.
type Package struct {
	container
	packages map[Name]*Package
}

// NewRootPackage creates the anonymous top package for one run.
func NewRootPackage() *Package {
	return &Package{container: newContainer(""), packages: make(map[Name]*Package)}
}

// GetOrCreatePackage returns the nested package named name, creating
// it on first request.
func (p *Package) GetOrCreatePackage(name Name) *Package {
	if p.packages == nil {
		p.packages = make(map[Name]*Package)
	}
	if pkg := p.packages[name]; pkg != nil {
		return pkg
	}
	pkg := &Package{container: newContainer(name), packages: make(map[Name]*Package)}
	p.packages[name] = pkg
	p.members = append(p.members, pkg)
	return pkg
}

// Module is a singleton object exposing a set of members.
type Module struct {
	container
}

// Class is a nominal type; it starts life as a trait and flips to a
// class the first time a constructor is synthesized for it.
type Class struct {
	container
	TypeParams []TypeParam
	Parents    []*TypeRef
	IsTrait    bool
}

// AddParent appends ref to the parent list unless a structurally equal
// parent is already present.
func (c *Class) AddParent(ref *TypeRef) {
	for _, p := range c.Parents {
		if p.Equal(ref) {
			return
		}
	}
	c.Parents = append(c.Parents, ref)
}

// Field is a named value member with a single type.
type Field struct {
	Name Name
	Type *TypeRef
}

func (f *Field) SymbolName() Name { return f.Name }

// Param is one method parameter.
type Param struct {
	Name     Name
	Optional bool
	Type     *TypeRef
}

// Equal compares name, optional flag and type.
func (p *Param) Equal(o *Param) bool {
	return p.Name == o.Name && p.Optional == o.Optional && p.Type.Equal(o.Type)
}

// TypeParam is a declared type parameter with an optional upper bound.
type TypeParam struct {
	Name  Name
	Bound *TypeRef
}

// Equal compares name and bound.
func (tp TypeParam) Equal(o TypeParam) bool {
	return tp.Name == o.Name && tp.Bound.Equal(o.Bound)
}

// Method is a callable member. IndexAccessor marks the apply/update
// pair synthesized from an index signature, rendered with bracket
// syntax.
type Method struct {
	Name          Name
	TypeParams    []TypeParam
	Params        []*Param
	Result        *TypeRef
	IndexAccessor bool
}

func (m *Method) SymbolName() Name { return m.Name }

// Equal is the structural-duplicate relation: equal name, type
// parameters and parameters. The result type is deliberately excluded
// so overloads that differ only in result collapse to one.
func (m *Method) Equal(o *Method) bool {
	if m.Name != o.Name || len(m.TypeParams) != len(o.TypeParams) || len(m.Params) != len(o.Params) {
		return false
	}
	for i := range m.TypeParams {
		if !m.TypeParams[i].Equal(o.TypeParams[i]) {
			return false
		}
	}
	for i := range m.Params {
		if !m.Params[i].Equal(o.Params[i]) {
			return false
		}
	}
	return true
}

// Comment is a textual record of an unrecognized input node, preserved
// in member order and never interpreted.
type Comment struct {
	Text string
}

func (c *Comment) SymbolName() Name { return "" }
