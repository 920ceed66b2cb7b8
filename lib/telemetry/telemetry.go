package telemetry

import (
	"context"
	"log/slog"
	"os"

	"ulearning-export/lib/configutil"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var tracerProvider *sdktrace.TracerProvider

// InitSlog installs the default text logger. Debug mode lowers the
// level to slog.LevelDebug.
func InitSlog(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// SetupFromEnv searches up the filesystem from the cwd for a
// telemetry.json5 config and sets up trace exporting with it. A
// missing config is not an error; spans simply go nowhere.
func SetupFromEnv(ctx context.Context, serviceName string) error {
	config, err := configutil.ReadRecursively[config]("telemetry.json5")
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return Setup(ctx, serviceName, config)
}

// Setup installs a global tracer provider exporting to the configured
// otlp endpoint.
func Setup(ctx context.Context, serviceName string, config config) error {
	r, err := newResource(serviceName)
	if err != nil {
		return err
	}

	exporter, err := otlpTraceExportFromConfig(ctx, config)
	if err != nil {
		return err
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(r),
	)
	otel.SetTracerProvider(tracerProvider)
	return nil
}

// Shutdown flushes any pending spans. Safe to call when Setup never
// ran.
func Shutdown(ctx context.Context) error {
	if tracerProvider == nil {
		return nil
	}
	return tracerProvider.Shutdown(ctx)
}

var setupTestEnvironments = map[string]bool{}

// SetupForTesting sets up telemetry in a testing environment, ensuring
// that it isn't set up more than once per service name.
func SetupForTesting(serviceName string) func() {
	if setupTestEnvironments[serviceName] {
		return func() {}
	}
	setupTestEnvironments[serviceName] = true

	InitSlog(true)
	err := SetupFromEnv(context.Background(), serviceName)
	if err != nil {
		panic(err)
	}

	return func() {
		err := Shutdown(context.Background())
		if err != nil {
			panic(err)
		}
	}
}
