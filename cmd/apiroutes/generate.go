package main

import (
	"time"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"
	"github.com/vango-dev/apiroutes/internal/config"
	"github.com/vango-dev/apiroutes/internal/errors"
	"github.com/vango-dev/apiroutes/internal/metrics"
	"github.com/vango-dev/apiroutes/internal/output"
	"github.com/vango-dev/apiroutes/pkg/routetree"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/vango-dev/apiroutes/cmd/apiroutes"

func runGenerate(cmd *cobra.Command, opts *options) (err error) {
	start := time.Now()

	ctx, span := otel.Tracer(tracerName).Start(cmd.Context(), "apiroutes.generate")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	var (
		rec   *metrics.Recorder
		stats routetree.Stats
		size  int
	)
	if opts.metricsFile != "" {
		rec = metrics.New()
		defer func() {
			rec.ObserveScan(stats)
			rec.ObserveOutput(size)
			rec.ObserveRun(time.Since(start), err)
			if werr := rec.WriteTextfile(opts.metricsFile); werr != nil && err == nil {
				err = errors.New("E105").
					WithDetail("Could not write " + opts.metricsFile).
					Wrap(werr)
			}
		}()
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	info(cmd, "Scanning %s...", cfg.SourcePath())

	tree, stats, err := opts.build(ctx, cfg)
	if err != nil {
		return err
	}
	if tree.IsEmpty() {
		warn(cmd, emptyWarning(cfg))
	}

	code := generator(cfg).Render(tree)
	size = len(code)
	span.SetAttributes(
		attribute.Int("apiroutes.endpoints", stats.Endpoints),
		attribute.Int("apiroutes.output_bytes", size),
	)

	if err := writeOutput(cfg, code); err != nil {
		return err
	}

	success(cmd, "Generated %s (%d routes, %s)",
		cfg.OutputPath(), stats.Endpoints, units.HumanSize(float64(size)))
	return nil
}

func writeOutput(cfg *config.Config, code string) error {
	if err := output.Write(cfg.OutputPath(), []byte(code)); err != nil {
		return errors.New("E102").
			WithDetail("Could not write " + cfg.OutputPath()).
			WithSuggestion("Check that the output directory is writable or pass another file with --output").
			Wrap(err)
	}
	return nil
}
