// Package translate is the action gluing the pipeline together: read
// the declaration document, translate it, render the outputs, record
// the manifest snapshot.
package translate

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/declbridge/declbridge/internal/decl"
	"github.com/declbridge/declbridge/internal/printer"
	"github.com/declbridge/declbridge/internal/sym"
	"github.com/declbridge/declbridge/internal/translate"
	"github.com/declbridge/declbridge/pkg/manifest"
	"github.com/declbridge/declbridge/pkg/translator"
)

// Run executes one translation run with the provided options.
func Run(opts *translator.Options, toolVersion string) error {
	in, err := os.Open(opts.Input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = in.Close() }()

	doc, err := decl.DecodeDocument(in)
	if err != nil {
		return fmt.Errorf("decode input %s: %w", opts.Input, err)
	}

	root, err := translate.Translate(doc.Declarations)
	if err != nil {
		return fmt.Errorf("translate %s: %w", opts.Input, err)
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	outFile := filepath.Join(opts.OutDir, opts.OutFile)
	if err := renderFacade(root, opts.Package, outFile); err != nil {
		return err
	}
	slog.Info("facade written", "file", outFile, "package", opts.Package)

	if opts.GoOut != "" {
		goFile := filepath.Join(opts.OutDir, opts.GoOut)
		if err := renderGoBindings(root, opts.Package, goFile); err != nil {
			return err
		}
		slog.Info("go bindings written", "file", goFile)
	}

	if opts.Manifest != "" {
		if err := record(opts, toolVersion, outFile); err != nil {
			return err
		}
	}

	return nil
}

func renderFacade(root *sym.Package, pkg, path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create facade file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := printer.New(f, pkg).Print(root); err != nil {
		return fmt.Errorf("render facade: %w", err)
	}
	return nil
}

func renderGoBindings(root *sym.Package, pkg, path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create bindings file: %w", err)
	}
	defer func() { _ = f.Close() }()

	segs := strings.Split(pkg, ".")
	if err := printer.GoBindings(f, root, segs[len(segs)-1]); err != nil {
		return fmt.Errorf("render go bindings: %w", err)
	}
	return nil
}

func record(opts *translator.Options, toolVersion, outFile string) error {
	m, err := manifest.Load(opts.Manifest)
	if err != nil {
		return err
	}
	if err := m.CheckToolVersion(toolVersion); err != nil {
		return err
	}

	version := opts.Version
	if version == "" {
		version = "0.0.0"
	}
	m.AddSnapshot(manifest.Snapshot{
		Name:    opts.OutFile,
		Version: version,
		File:    outFile,
	})

	if err := m.Save(opts.Manifest); err != nil {
		return err
	}
	slog.Info("manifest updated", "file", opts.Manifest, "version", version)
	return nil
}
