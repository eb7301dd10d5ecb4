package sym

import (
	"strconv"
	"strings"
)

// QualName is a dot-qualified target type name.
type QualName []string

func (q QualName) String() string { return strings.Join(q, ".") }

// Equal reports segment-wise equality.
func (q QualName) Equal(o QualName) bool {
	if len(q) != len(o) {
		return false
	}
	for i := range q {
		if q[i] != o[i] {
			return false
		}
	}
	return true
}

// TypeRef is an immutable reference to a target type: a qualified base
// name plus ordered type arguments. Never mutate one after creation —
// shared references are handed out freely.
type TypeRef struct {
	Name  QualName
	Targs []*TypeRef
}

// NewTypeRef builds a type reference.
func NewTypeRef(name QualName, targs ...*TypeRef) *TypeRef {
	return &TypeRef{Name: name, Targs: targs}
}

// Equal is structural: equal base name and recursively equal argument
// lists.
func (t *TypeRef) Equal(o *TypeRef) bool {
	if t == nil || o == nil {
		return t == o
	}
	if !t.Name.Equal(o.Name) {
		return false
	}
	if len(t.Targs) != len(o.Targs) {
		return false
	}
	for i := range t.Targs {
		if !t.Targs[i].Equal(o.Targs[i]) {
			return false
		}
	}
	return true
}

func (t *TypeRef) String() string {
	if t == nil {
		return "<nil>"
	}
	if len(t.Targs) == 0 {
		return t.Name.String()
	}
	parts := make([]string, len(t.Targs))
	for i, a := range t.Targs {
		parts[i] = a.String()
	}
	return t.Name.String() + "[" + strings.Join(parts, ", ") + "]"
}

// repeatedMarker is the base name of the variadic wrapper; the printer
// renders TypeRef(<repeated>, T) as T*.
const repeatedMarker = "<repeated>"

// Built-in target type references.
var (
	AnyType          = NewTypeRef(QualName{"js", "Any"})
	DynamicType      = NewTypeRef(QualName{"js", "Dynamic"})
	UnitType         = NewTypeRef(QualName{"scala", "Unit"})
	NumberType       = NewTypeRef(QualName{"scala", "Double"})
	BooleanType      = NewTypeRef(QualName{"scala", "Boolean"})
	StringType       = NewTypeRef(QualName{"java", "lang", "String"})
	FunctionBaseType = NewTypeRef(QualName{"js", "Function"})
)

// ArrayName is the base name of the target array type.
var ArrayName = QualName{"js", "Array"}

// FunctionBaseName is the base name of the unknown-arity function type.
var FunctionBaseName = QualName{"js", "Function"}

// FunctionName returns the base name of the arity-n function type.
func FunctionName(n int) QualName {
	return QualName{"js", "Function" + strconv.Itoa(n)}
}

// Repeated wraps elem as a variadic parameter type.
func Repeated(elem *TypeRef) *TypeRef {
	return NewTypeRef(QualName{repeatedMarker}, elem)
}

// RepeatedElem returns the wrapped element type and true when t is a
// variadic wrapper.
func RepeatedElem(t *TypeRef) (*TypeRef, bool) {
	if t != nil && len(t.Name) == 1 && t.Name[0] == repeatedMarker && len(t.Targs) == 1 {
		return t.Targs[0], true
	}
	return nil, false
}
