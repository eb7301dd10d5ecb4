package printer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/declbridge/declbridge/internal/sym"
)

func TestGoBindings(t *testing.T) {
	root := sym.NewRootPackage()

	version := root.NewField("version")
	version.Type = sym.StringType

	emitter := root.GetOrCreateClass("Emitter")
	on := emitter.NewMethod("on")
	on.Params = []*sym.Param{
		{Name: "event", Type: sym.StringType},
		{Name: "cb", Type: sym.NewTypeRef(sym.FunctionName(2), sym.NumberType, sym.StringType, sym.UnitType)},
	}
	on.Result = sym.UnitType
	// Overloads collapse to the first occurrence.
	onAgain := emitter.NewMethod("on")
	onAgain.Params = []*sym.Param{{Name: "event", Type: sym.AnyType}}
	onAgain.Result = sym.UnitType
	ctor := emitter.NewMethod(sym.ConstructorName)
	ctor.Result = sym.UnitType

	console := root.GetOrCreateModule("console")
	log := console.NewMethod("log")
	log.Params = []*sym.Param{{Name: "items", Type: sym.Repeated(sym.AnyType)}}
	log.Result = sym.DynamicType

	var buf bytes.Buffer
	require.NoError(t, GoBindings(&buf, root, "bindings"))
	got := buf.String()

	assert.Contains(t, got, "Code generated by declbridge. DO NOT EDIT.")
	assert.Contains(t, got, "package bindings")

	assert.Contains(t, got, "GlobalScope interface")
	assert.Contains(t, got, "Version() string")
	assert.Contains(t, got, "SetVersion(string)")

	assert.Contains(t, got, "Emitter interface")
	assert.Contains(t, got, "On(event string, cb func(float64, string))")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("On(")))
	assert.NotContains(t, got, "<init>")

	assert.Contains(t, got, "ConsoleModule interface")
	assert.Contains(t, got, "Log(items ...any) any")
}

func TestGoBindingsFlattensNestedPackages(t *testing.T) {
	root := sym.NewRootPackage()
	dom := root.GetOrCreatePackage("dom")
	node := dom.GetOrCreateClass("Node")
	name := node.NewMethod("nodeName")
	name.Params = nil
	name.Result = sym.StringType

	var buf bytes.Buffer
	require.NoError(t, GoBindings(&buf, root, "bindings"))
	got := buf.String()

	assert.Contains(t, got, "Node interface")
	assert.Contains(t, got, "NodeName() string")
	assert.NotContains(t, got, "package dom")
}

func TestGoNameSanitizes(t *testing.T) {
	assert.Equal(t, "Init_", exported("init-"))
	assert.Equal(t, "_", goName(""))
	assert.Equal(t, "_2d", goName("2d"))
	assert.Equal(t, "My_Type", exported("my.Type"))
}
