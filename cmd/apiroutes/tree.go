package main

import (
	"github.com/spf13/cobra"
	"github.com/vango-dev/apiroutes/pkg/routegen"
)

func treeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the discovered routes",
		Long: `Scan the API directory and print the route tree without writing anything.

Endpoint directories are shown with their URL path:

  /api
  ├── health → /api/health
  └── users → /api/users
      └── [id] → /api/users/[id]`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			tree, _, err := opts.build(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if tree.IsEmpty() {
				warn(cmd, emptyWarning(cfg))
			}

			return routegen.PrintTree(cmd.OutOrStdout(), tree, cfg.Prefix)
		},
	}
}
