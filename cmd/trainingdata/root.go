package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	ctx := newCommandContext()

	rootCmd := &cobra.Command{
		Use:           "trainingdata",
		Short:         "Build CEFR training tables from candidate voice notes",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.dbFlag, "db", "", "Path to the recruitment SQLite database (CANDIDATES_DB)")

	rootCmd.AddCommand(newExtractCommand(ctx))
	rootCmd.AddCommand(newCandidatesCommand(ctx))
	rootCmd.AddCommand(newSummarizeCommand(ctx))

	return rootCmd
}
