package translate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/declbridge/declbridge/internal/decl"
)

func TestTranslateTypeTable(t *testing.T) {
	tests := []struct {
		name         string
		in           decl.Type
		anyAsDynamic bool
		want         string
	}{
		{name: "number", in: ref("number"), want: "scala.Double"},
		{name: "int", in: ref("int"), want: "scala.Double"},
		{name: "bool", in: ref("bool"), want: "scala.Boolean"},
		{name: "boolean", in: ref("boolean"), want: "scala.Boolean"},
		{name: "string", in: ref("string"), want: "java.lang.String"},
		{name: "void", in: ref("void"), want: "scala.Unit"},
		{name: "dynamic inner", in: ref("dynamic"), want: "js.Dynamic"},
		{name: "dynamic outer", in: ref("dynamic"), anyAsDynamic: true, want: "js.Dynamic"},
		{name: "any inner", in: ref("any"), want: "js.Any"},
		{name: "any outer", in: ref("any"), anyAsDynamic: true, want: "js.Dynamic"},
		{name: "array base", in: ref("Array", ref("string")), want: "js.Array[java.lang.String]"},
		{name: "bare array base", in: ref("Array"), want: "js.Array"},
		{name: "function base", in: ref("Function"), want: "js.Function"},
		{name: "plain identifier", in: ref("Widget"), want: "Widget"},
		{
			name: "dotted identifier with args",
			in:   decl.TypeRefNode{Qualifier: []string{"a", "b"}, Name: "C", Args: []decl.Type{ref("number")}},
			want: "a.b.C[scala.Double]",
		},
		{
			name: "type arguments translate in inner mode",
			in:   ref("Array", ref("any")),
			// Outer mode never reaches into arguments.
			anyAsDynamic: true,
			want:         "js.Array[js.Any]",
		},
		{name: "object literal degrades", in: decl.ObjectType{}, want: "js.Any"},
		{
			name: "function type",
			in: decl.FuncType{Sig: decl.Signature{
				Params: []decl.Param{{Name: "a", Type: ref("number")}, {Name: "b", Type: ref("string")}},
				Result: ref("boolean"),
			}},
			want: "js.Function2[scala.Double, java.lang.String, scala.Boolean]",
		},
		{
			name: "nullary function type",
			in:   decl.FuncType{Sig: decl.Signature{Result: ref("void")}},
			want: "js.Function0[scala.Unit]",
		},
		{
			name: "generic function type degrades to base",
			in: decl.FuncType{Sig: decl.Signature{
				TypeParams: []decl.TypeParam{{Name: "T"}},
				Result:     ref("T"),
			}},
			want: "js.Function",
		},
		{
			name: "variadic function type degrades to base",
			in: decl.FuncType{Sig: decl.Signature{
				Params: []decl.Param{{Name: "rest", Type: decl.RepeatedType{Elem: ref("string")}}},
				Result: ref("void"),
			}},
			want: "js.Function",
		},
		{
			name: "function type without result degrades",
			in:   decl.FuncType{Sig: decl.Signature{Params: []decl.Param{{Name: "x", Type: ref("number")}}}},
			want: "js.Any",
		},
		{
			name: "nested function-type any result stays permissive even in outer mode",
			in: decl.FuncType{Sig: decl.Signature{
				Params: []decl.Param{{Name: "x"}},
				Result: ref("any"),
			}},
			anyAsDynamic: true,
			want:         "js.Function1[js.Any, js.Any]",
		},
		{name: "repeated", in: decl.RepeatedType{Elem: ref("number")}, want: "<repeated>[scala.Double]"},
		{name: "constant type degrades", in: decl.ConstType{Value: `"x"`}, want: "js.Any"},
		{name: "raw type degrades", in: decl.RawType{Raw: "A | B"}, want: "js.Any"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateType(tt.in, tt.anyAsDynamic)
			require.Equal(t, tt.want, got.String())

			// Idempotence: repeated translation of the same node in the
			// same mode yields an equal reference.
			again := translateType(tt.in, tt.anyAsDynamic)
			require.True(t, got.Equal(again))
		})
	}
}

func TestCoreTypeIsNotQualified(t *testing.T) {
	// A qualified name that happens to end in a core spelling is a
	// plain identifier, not a primitive.
	got := translateType(decl.TypeRefNode{Qualifier: []string{"m"}, Name: "number"}, false)
	require.Equal(t, "m.number", got.String())

	// Likewise a parametrized spelling.
	got = translateType(ref("string", ref("number")), false)
	require.Equal(t, "string[scala.Double]", got.String())
}
