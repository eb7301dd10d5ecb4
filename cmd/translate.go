package cmd

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	action "github.com/declbridge/declbridge/internal/action/translate"
	"github.com/declbridge/declbridge/pkg/translator"
)

func init() {
	rootCmd.AddCommand(NewTranslateCommand())
}

func NewTranslateCommand() *cobra.Command {
	options := translator.NewOptions()

	translateCmd := &cobra.Command{
		Use:   "translate",
		Short: "translate a declaration document",
		Long:  "Translate a parsed ambient declaration document into a Scala.js facade (and optional Go bindings)",
		RunE: func(c *cobra.Command, args []string) error {
			options.Normalize()
			if err := action.Run(options, toolVersion); err != nil {
				return err
			}
			if options.Watch {
				return watch(options)
			}
			return nil
		},
	}
	translateCmd.Flags().StringVarP(&options.Input, "input", "i", "", "declaration document to translate")
	translateCmd.Flags().StringVarP(&options.OutDir, "output-directory", "o", "facade", "directory to write generated sources")
	translateCmd.Flags().StringVarP(&options.OutFile, "output-file", "f", "facade.scala", "facade output file")
	translateCmd.Flags().StringVarP(&options.Package, "package", "p", "facade", "target package of the emitted facade")
	translateCmd.Flags().StringVar(&options.GoOut, "go-out", "", "also emit Go binding stubs to this file")
	translateCmd.Flags().StringVar(&options.Version, "snapshot-version", "", "version recorded in the manifest")
	translateCmd.Flags().StringVar(&options.Manifest, "manifest", "", "manifest file tracking emitted snapshots")
	translateCmd.Flags().BoolVarP(&options.Watch, "watch", "w", false, "re-run when the input document changes")
	_ = translateCmd.MarkFlagRequired("input")

	return translateCmd
}

// watch re-runs the action whenever the input document is rewritten.
// Editors replace files rather than writing in place, so the watch is
// on the parent directory and filtered by name.
func watch(options *translator.Options) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(options.Input)
	if err := watcher.Add(dir); err != nil {
		return err
	}
	slog.Info("watching for changes", "dir", dir, "input", options.Input)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(options.Input) {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			slog.Info("input changed, re-translating", "input", options.Input)
			if err := action.Run(options, toolVersion); err != nil {
				slog.With("error", err).Error("translation failed")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.With("error", err).Warn("watch error")
		}
	}
}
