package main

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vango-dev/apiroutes/internal/config"
	"github.com/vango-dev/apiroutes/internal/errors"
	"github.com/vango-dev/apiroutes/internal/logger"
	"github.com/vango-dev/apiroutes/pkg/routegen"
	"github.com/vango-dev/apiroutes/pkg/routetree"
)

// options holds the flags shared by every command.
type options struct {
	dir         string
	output      string
	markers     []string
	prefix      string
	configFile  string
	metricsFile string
	verbose     bool
	logFormat   string
	noColor     bool

	logger *slog.Logger
}

// setup configures colors and logging before a command runs.
func (o *options) setup(cmd *cobra.Command) error {
	if o.noColor || os.Getenv("NO_COLOR") != "" {
		errors.DisableColors()
	}

	format, err := logger.ParseFormat(o.logFormat)
	if err != nil {
		return errors.New("E122").
			WithDetail(err.Error()).
			WithExample("apiroutes --log-format json")
	}
	o.logger = logger.New(cmd.ErrOrStderr(), format, o.verbose)
	return nil
}

// loadConfig resolves the configuration from, in increasing precedence, the
// config file, the environment and the command-line flags.
func (o *options) loadConfig() (*config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	if err := config.LoadDotEnv(wd); err != nil {
		return nil, err
	}

	var cfg *config.Config
	if o.configFile != "" {
		cfg, err = config.LoadFile(o.configFile)
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv()

	if o.dir != "" {
		if cfg.Dir, err = filepath.Abs(o.dir); err != nil {
			return nil, err
		}
	}
	if o.output != "" {
		if cfg.Output, err = filepath.Abs(o.output); err != nil {
			return nil, err
		}
	}
	if markers := cleanList(o.markers); len(markers) > 0 {
		cfg.Markers = markers
	} else if len(o.markers) > 0 {
		return nil, errors.New("E122").
			WithDetail("--marker needs at least one file name").
			WithExample("apiroutes --marker route.ts,route.js")
	}
	if o.prefix != "" {
		cfg.Prefix = routetree.JoinURL(o.prefix)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o.logger.Debug("configuration loaded",
		"config", cfg.Path(),
		"dir", cfg.SourcePath(),
		"output", cfg.OutputPath(),
		"markers", strings.Join(cfg.Markers, ","),
		"prefix", cfg.Prefix)

	return cfg, nil
}

// build scans the configured API directory.
func (o *options) build(ctx context.Context, cfg *config.Config) (*routetree.Node, routetree.Stats, error) {
	builder := routetree.NewBuilder(
		routetree.WithMarkers(cfg.Markers...),
		routetree.WithPrefix(cfg.Prefix),
		routetree.WithIgnore(cfg.Ignore...),
		routetree.WithFollowSymlinks(cfg.FollowSymlinksEnabled()),
		routetree.WithLogger(o.logger),
	)

	tree, stats, err := builder.Build(ctx, cfg.SourcePath())
	if err != nil {
		var dirErr *routetree.DirectoryError
		if stderrors.As(err, &dirErr) {
			if stderrors.Is(err, routetree.ErrInvalidName) {
				return nil, stats, errors.New("E101").
					WithDetail("Directory name " + strconv.Quote(dirErr.Path) + " is not valid UTF-8").
					WithSuggestion("Rename the directory or exclude it with an ignore pattern").
					Wrap(err)
			}
			return nil, stats, errors.New("E101").
				WithDetail("Could not list " + dirErr.Path).
				WithSuggestion("Check that the directory exists or pass it with --dir").
				WithExample("apiroutes --dir src/app/api").
				Wrap(err)
		}
		return nil, stats, err
	}

	o.logger.Debug("scan complete",
		"directories", stats.Directories,
		"endpoints", stats.Endpoints,
		"max_depth", stats.MaxDepth,
		"skipped", stats.Skipped)

	return tree, stats, nil
}

// generator returns the emitter configured from cfg.
func generator(cfg *config.Config) *routegen.Generator {
	return routegen.NewGenerator(
		routegen.WithTypeName(cfg.TypeName),
		routegen.WithConstName(cfg.ConstName),
		routegen.WithHeader(cfg.Header),
	)
}

// emptyWarning reports that no endpoint was found under dir.
func emptyWarning(cfg *config.Config) *errors.CodedError {
	return errors.New("W103").
		WithDetail("No directory under " + cfg.SourcePath() + " contains " + strings.Join(cfg.Markers, " or ")).
		WithSuggestion("Check --dir and --marker")
}

func cleanList(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
