package cmd

import (
	"bytes"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// toolVersion is stamped at release time via -ldflags.
var toolVersion = "0.1.0"

var (
	configFiles []string
	level       string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "declbridge",
	Short: "translate ambient declaration documents into Scala.js facades",
}

// Execute runs the root command. It is called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&level, "level", "l", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringSliceVar(&configFiles, "config", []string{}, "config file(s) - later files override earlier ones")
}

// parseLevel maps the --level flag onto a slog level; "trace" extends
// the scale below debug.
func parseLevel(s string) slog.Level {
	if strings.EqualFold(s, "trace") {
		return slog.Level(-8)
	}
	var ll slog.Level
	if err := ll.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return ll
}

// initConfig sets the default logger and reads config files and ENV.
func initConfig() {
	l := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(level),
	}))
	slog.SetDefault(l)

	if len(configFiles) > 0 {
		viper.SetConfigFile(configFiles[0])
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc")
		viper.SetConfigType("yaml")
		viper.SetConfigName("declbridge")
	}

	viper.AutomaticEnv() // read in environment variables that match

	if err := viper.ReadInConfig(); err == nil {
		l.With("config", viper.ConfigFileUsed()).Info("using config file(s)")
	}
	for _, file := range configFiles[1:] {
		configBytes, err := os.ReadFile(file)
		if err != nil {
			l.With("error", err, "file", file).Warn("failed to read config file")
			continue
		}
		if err = viper.MergeConfig(bytes.NewReader(configBytes)); err != nil {
			l.With("error", err, "file", file).Warn("failed to merge config file")
		} else {
			l.With("file", file).Info("merged config file")
		}
	}

	viper.Set("version", toolVersion)
}
