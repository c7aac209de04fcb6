// fraudproof evaluates constraint predicates and commits to their outcome.
package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/jam-duna/fraudproof/common"
	"github.com/jam-duna/fraudproof/config"
	log "github.com/jam-duna/fraudproof/log"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

type globalFlags struct {
	configPath   string
	logLevel     string
	debugModules string
	dbPath       string
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	g := &globalFlags{}
	if Commit == "none" {
		Commit = common.CommitHash()
	}
	rootCmd := &cobra.Command{
		Use:   "fraudproof",
		Short: "Constraint VM fraud proof driver",
		Long: `Runs constraint bytecode against a solution and state snapshot and
commits to a one byte outcome as ABI encoded public values.`,
		Version:      Version + " (" + Commit + ", " + BuildTime + ")",
		SilenceUsage: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "JSON configuration file")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error); overrides the config")
	rootCmd.PersistentFlags().StringVar(&g.debugModules, "debug", "", "Comma separated modules with debug logging (vm_mod,map_mod,harness_mod,store_mod or all)")
	rootCmd.PersistentFlags().StringVar(&g.dbPath, "db", "", "LevelDB path for stored predicates and state; overrides the config")

	rootCmd.AddCommand(newRunCmd(g), newDisasmCmd(g), newStoreCmd(g))
	return rootCmd
}

// load reads the configuration, applies flag overrides and sets up logging.
func (g *globalFlags) load(stderr io.Writer) (config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return cfg, err
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if g.debugModules != "" {
		cfg.Log.Modules = g.debugModules
	}
	if g.dbPath != "" {
		cfg.DBPath = g.dbPath
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	if err := log.InitLogger(stderr, cfg.Log.Level, cfg.Log.JSON); err != nil {
		return cfg, err
	}
	log.EnableModules(cfg.Log.Modules)
	return cfg, nil
}

// setupTracing installs an SDK tracer provider exporting over OTLP/HTTP when
// an endpoint is configured.
func setupTracing(ctx context.Context, cfg config.Tracing) (trace.TracerProvider, func(context.Context) error, error) {
	if cfg.Endpoint == "" {
		return otel.GetTracerProvider(), func(context.Context) error { return nil }, nil
	}
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exp, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", cfg.ServiceName))),
	)
	otel.SetTracerProvider(tp)
	log.Info(log.HarnessMonitoring, "tracing enabled", "endpoint", cfg.Endpoint)
	return tp, tp.Shutdown, nil
}
