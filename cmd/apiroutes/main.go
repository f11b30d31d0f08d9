package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vango-dev/apiroutes/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		errors.PrintError(cliError(err))
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "apiroutes",
		Short: "Generate a typed route map from an API directory",
		Long: `apiroutes scans a file-based API route directory and writes a TypeScript
module describing every endpoint it finds.

A directory is an endpoint when it contains a marker file (route.ts by
default). The generated file exports an interface mirroring the directory
tree and a constant holding the URL path of each endpoint:

  src/app/api/users/route.ts       →  apiRoutes.users.path
  src/app/api/users/[id]/route.ts  →  apiRoutes.users.routes["[id]"].path

Configuration is read from apiroutes.json, apiroutes.toml or apiroutes.yaml
in the project root, then APIROUTES_* environment variables, then flags.

Examples:
  apiroutes                                # Generate with defaults
  apiroutes -d app/api -o lib/routes.ts    # Custom locations
  apiroutes -m route.ts,route.js           # Several marker files
  apiroutes tree                           # Show the discovered routes
  apiroutes check                          # Fail if the output is stale`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	rootCmd.SetFlagErrorFunc(flagError)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.dir, "dir", "d", "", "API source directory (default: src/app/api)")
	flags.StringVarP(&opts.output, "output", "o", "", "Output file (default: src/lib/apiRoutes.ts)")
	flags.StringSliceVarP(&opts.markers, "marker", "m", nil, "Marker file names (default: route.ts)")
	flags.StringVar(&opts.prefix, "prefix", "", "URL prefix for every path (default: /api)")
	flags.StringVar(&opts.configFile, "config", "", "Config file (default: nearest apiroutes.{json,toml,yaml})")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics for the run to this file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log format: text or json")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		treeCmd(opts),
		checkCmd(opts),
		versionCmd(),
	)

	return rootCmd
}

// flagError attaches E122 to flag parsing failures.
func flagError(cmd *cobra.Command, err error) error {
	return errors.FromError(err, "E122").
		WithSuggestion("Run '" + cmd.CommandPath() + " --help' for usage")
}

// cliError prepares err for printing on exit.
func cliError(err error) error {
	if stderrors.Is(err, context.Canceled) {
		return errors.Newf(errors.CategoryCLI, "interrupted")
	}
	return err
}

// success prints a success message.
func success(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", paint("\033[32m", "✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a coded warning to stderr.
func warn(cmd *cobra.Command, w *errors.CodedError) {
	errors.Fprint(cmd.ErrOrStderr(), w)
}

func paint(code, text string) string {
	if !errors.ColorsEnabled() {
		return text
	}
	return code + text + "\033[0m"
}
