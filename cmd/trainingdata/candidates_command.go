package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"cefr-training-go/internal/store"
)

func newCandidatesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "candidates",
		Short: "List assessed candidates with voice notes, without extracting features",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			records, err := store.NewCollector(cfg.DatabasePath).Collect(cmd.Context())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No assessed candidates with voice notes")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, r := range records {
				rows = append(rows, []string{
					strconv.FormatInt(r.ID, 10),
					r.FullName,
					r.EnglishLevel,
					r.VoiceNotePath,
					voiceNoteState(r.VoiceNotePath),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Name", "Level", "Voice note", "On disk"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func voiceNoteState(path string) string {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return "yes"
	case errors.Is(err, fs.ErrNotExist):
		return "missing"
	default:
		return "error"
	}
}
