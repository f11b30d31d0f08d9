package main

import (
	"github.com/spf13/cobra"
	"github.com/vango-dev/apiroutes/internal/errors"
	"github.com/vango-dev/apiroutes/internal/output"
)

func checkCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the generated file is up to date",
		Long: `Scan the API directory, render the route module and compare it with the
existing output file. Nothing is written.

Exits non-zero when the file is missing or differs, which makes it suitable
for CI:

  apiroutes check || (echo "run apiroutes" && exit 1)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			tree, stats, err := opts.build(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if tree.IsEmpty() {
				warn(cmd, emptyWarning(cfg))
			}

			code := generator(cfg).Render(tree)
			ok, err := output.UpToDate(cfg.OutputPath(), []byte(code))
			if err != nil {
				return errors.New("E104").
					WithDetail("Could not read " + cfg.OutputPath()).
					Wrap(err)
			}
			if !ok {
				return errors.New("E104").
					WithDetail(cfg.OutputPath() + " does not match the routes in " + cfg.SourcePath()).
					WithSuggestion("Regenerate the file and commit it").
					WithExample("apiroutes")
			}

			success(cmd, "%s is up to date (%d routes)", cfg.OutputPath(), stats.Endpoints)
			return nil
		},
	}
}
