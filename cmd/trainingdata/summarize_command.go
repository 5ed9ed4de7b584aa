package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cefr-training-go/internal/dataset"
)

func newSummarizeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize [file]",
		Short: "Summarize a training table: samples per CEFR level and feature coverage",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.OutputPath
			if len(args) == 1 {
				path = args[0]
			}

			s, err := dataset.LoadAndSummarize(path, ctx.logger(cmd))
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(s.ByLevel))
			for _, level := range s.Levels() {
				rows = append(rows, []string{level, strconv.Itoa(s.ByLevel[level])})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d samples, %d feature columns\n", s.Path, s.Rows, len(s.FeatureColumns))
			if len(rows) > 0 {
				fmt.Fprintln(out, renderTable([]string{"Level", "Samples"}, rows, []columnAlignment{alignLeft, alignRight}))
			}
			if len(s.SparseColumns) > 0 {
				fmt.Fprintf(out, "Columns with empty cells: %s\n", strings.Join(s.SparseColumns, ", "))
			}
			return nil
		},
	}
}
