package translate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/declbridge/declbridge/pkg/manifest"
	"github.com/declbridge/declbridge/pkg/translator"
)

const greeterDoc = `{
  "declarations": [
    {"kind": "interface", "name": "Greeter", "members": [
      {"kind": "method", "name": "greet", "signature": {
        "params": [{"name": "name", "type": {"kind": "ref", "name": "string"}}],
        "result": {"kind": "ref", "name": "string"}
      }}
    ]},
    {"kind": "var", "name": "version", "type": {"kind": "ref", "name": "string"}}
  ]
}`

func writeInput(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestRunWritesFacade(t *testing.T) {
	outDir := t.TempDir()
	opts := translator.NewOptions()
	opts.Input = writeInput(t, greeterDoc)
	opts.OutDir = outDir
	opts.Package = "com.example.bindings"
	opts.Normalize()

	require.NoError(t, Run(opts, "0.1.0"))

	facade, err := os.ReadFile(filepath.Join(outDir, "facade.scala"))
	require.NoError(t, err)
	got := string(facade)
	assert.Contains(t, got, "package com.example.bindings")
	assert.Contains(t, got, "trait Greeter extends js.Object")
	assert.Contains(t, got, "def greet(name: java.lang.String): java.lang.String = js.native")
	assert.Contains(t, got, "var version: java.lang.String = js.native")
}

func TestRunWritesGoBindings(t *testing.T) {
	outDir := t.TempDir()
	opts := translator.NewOptions()
	opts.Input = writeInput(t, greeterDoc)
	opts.OutDir = outDir
	opts.Package = "com.example.bindings"
	opts.GoOut = "bindings.go"
	opts.Normalize()

	require.NoError(t, Run(opts, "0.1.0"))

	src, err := os.ReadFile(filepath.Join(outDir, "bindings.go"))
	require.NoError(t, err)
	got := string(src)
	assert.Contains(t, got, "package bindings")
	assert.Contains(t, got, "Greeter interface")
	assert.Contains(t, got, "Greet(name string) string")
}

func TestRunRecordsManifest(t *testing.T) {
	outDir := t.TempDir()
	manifestPath := filepath.Join(outDir, "manifest.yaml")
	opts := translator.NewOptions()
	opts.Input = writeInput(t, greeterDoc)
	opts.OutDir = outDir
	opts.Manifest = manifestPath
	opts.Version = "1.2.3"
	opts.Normalize()

	require.NoError(t, Run(opts, "0.1.0"))

	m, err := manifest.Load(manifestPath)
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", m.CurrentVersion)
	require.Len(t, m.Snapshots, 1)
	assert.Equal(t, "facade.scala", m.Snapshots[0].Name)
	assert.Equal(t, filepath.Join(outDir, "facade.scala"), m.Snapshots[0].File)
}

func TestRunRejectsStaleTool(t *testing.T) {
	outDir := t.TempDir()
	manifestPath := filepath.Join(outDir, "manifest.yaml")
	m := &manifest.Manifest{MinimumToolVersion: "2.0.0"}
	require.NoError(t, m.Save(manifestPath))

	opts := translator.NewOptions()
	opts.Input = writeInput(t, greeterDoc)
	opts.OutDir = outDir
	opts.Manifest = manifestPath
	opts.Normalize()

	err := Run(opts, "0.1.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "older than manifest minimum")
}

func TestRunMissingInput(t *testing.T) {
	opts := translator.NewOptions()
	opts.Input = filepath.Join(t.TempDir(), "nope.json")
	opts.OutDir = t.TempDir()
	opts.Normalize()

	require.Error(t, Run(opts, "0.1.0"))
}

func TestRunTranslationFailure(t *testing.T) {
	// A namespace nested under an interface cannot be represented and
	// must fail the whole run.
	const doc = `{
	  "declarations": [
	    {"kind": "interface", "name": "Outer", "members": []},
	    {"kind": "module", "name": "ns", "decls": [
	      {"kind": "module", "name": "inner", "decls": []}
	    ]}
	  ]
	}`

	opts := translator.NewOptions()
	opts.Input = writeInput(t, doc)
	opts.OutDir = t.TempDir()
	opts.Normalize()

	require.Error(t, Run(opts, "0.1.0"))
}
