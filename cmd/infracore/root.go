package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"infracore-tile/internal/config"
	"infracore-tile/internal/logging"
	"infracore-tile/internal/telemetry"
)

var (
	rootConfigPath string
	rootSchemaPath string
	rootVariant    string
	rootSeed       int64
	rootLogFile    string
	rootLogLevel   string
)

var rootCmd = &cobra.Command{
	Use:          "infracore",
	Short:        "InfraCore system status tile",
	Long:         "infracore mounts an animated infrastructure status tile driven by simulated load and service health.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootConfigPath, "config", "", "Path to tile configuration YAML (embedded default if empty)")
	pf.StringVar(&rootSchemaPath, "schema", "", "Path to CUE schema file (embedded default if empty)")
	pf.StringVar(&rootVariant, "variant", "", "Tile variant: dashboard or grid")
	pf.Int64Var(&rootSeed, "seed", 0, "Random seed (0 picks a time based seed)")
	pf.StringVar(&rootLogFile, "log-file", "", "Write logs to this file")
	pf.StringVar(&rootLogLevel, "log-level", "info", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(snapshotCmd)
}

// tileOptions merges INFRACORE_VARIANT and INFRACORE_SEED with the flags.
// Explicit flags take precedence over the environment.
func tileOptions(variant string, variantSet bool, seed int64, seedSet bool) ([]config.Option, error) {
	var opts []config.Option

	if env := os.Getenv("INFRACORE_VARIANT"); env != "" && !variantSet {
		variant = env
	}
	switch telemetry.Variant(variant) {
	case "", telemetry.VariantDashboard, telemetry.VariantGrid:
	default:
		return nil, fmt.Errorf("unknown variant %q", variant)
	}
	opts = append(opts, config.WithVariant(variant))

	if env := os.Getenv("INFRACORE_SEED"); env != "" && !seedSet {
		s, err := strconv.ParseInt(env, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid INFRACORE_SEED: %w", err)
		}
		seed, seedSet = s, true
	}
	if seedSet {
		opts = append(opts, config.WithSeed(seed))
	}
	return opts, nil
}

// loadConfig reads the tile configuration selected by the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.TileConfig, error) {
	flags := cmd.Flags()
	opts, err := tileOptions(rootVariant, flags.Changed("variant"), rootSeed, flags.Changed("seed"))
	if err != nil {
		return nil, err
	}
	return config.Load(rootConfigPath, rootSchemaPath, opts...)
}

// newLogger builds the command logger. Without --log-file, logs go to
// fallback. The returned cleanup closes any opened file.
func newLogger(fallback io.Writer) (*slog.Logger, func(), error) {
	level, err := logging.ParseLevel(rootLogLevel)
	if err != nil {
		return nil, nil, err
	}
	if rootLogFile == "" {
		return logging.New(fallback, level), func() {}, nil
	}
	f, err := os.OpenFile(rootLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return logging.New(f, level), func() { f.Close() }, nil
}
