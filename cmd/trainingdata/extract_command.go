package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cefr-training-go/internal/aggregator"
	"cefr-training-go/internal/extractor"
	"cefr-training-go/internal/pipeline"
	"cefr-training-go/internal/store"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var (
		outFlag     string
		backendFlag string
		mlURLFlag   string
		workersFlag int
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract voice-note features for assessed candidates and write the training table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("out") {
				cfg.OutputPath = outFlag
			}
			if cmd.Flags().Changed("backend") {
				cfg.FeatureBackend = backendFlag
			}
			if cmd.Flags().Changed("ml-url") {
				cfg.MLAPIURL = mlURLFlag
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workersFlag
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := ctx.logger(cmd).WithRun().WithField("service", "trainingdata")
			log.WithField("db", cfg.DatabasePath).WithField("out", cfg.OutputPath).Info("starting extraction run")

			fx, err := extractor.FromConfig(cfg, log)
			if err != nil {
				return err
			}
			if h, ok := fx.(*extractor.HTTPExtractor); ok && cfg.ReadyTimeout > 0 {
				log.WithField("ready_timeout", cfg.ReadyTimeout.String()).Info("waiting for feature service")
				if err := h.WaitReady(cmd.Context(), cfg.ReadyTimeout); err != nil {
					return err
				}
			}

			records, err := store.NewCollector(cfg.DatabasePath).Collect(cmd.Context())
			if err != nil {
				log.WithField("error", err.Error()).Error("failed to collect candidates")
				return err
			}
			log.WithField("candidates", len(records)).Info("collected candidates")

			p := pipeline.New(fx, pipeline.WithLogger(log), pipeline.WithWorkers(cfg.Workers))
			res, err := p.Extract(cmd.Context(), records, cfg.OutputPath)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderStats(res.Stats))
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d samples to %s\n", res.Table.Len(), res.Destination)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "Destination file; .xlsx writes a spreadsheet (TRAINING_OUTPUT)")
	cmd.Flags().StringVar(&backendFlag, "backend", "", "Feature backend: http, ffprobe or mock (FEATURE_BACKEND)")
	cmd.Flags().StringVar(&mlURLFlag, "ml-url", "", "Base URL of the ML feature service (ML_API_URL)")
	cmd.Flags().IntVarP(&workersFlag, "workers", "w", 1, "Candidates processed concurrently (EXTRACT_WORKERS)")

	return cmd
}

func renderStats(s aggregator.Stats) string {
	rows := [][]string{
		{"attempted", strconv.Itoa(s.Attempted)},
		{"written", strconv.Itoa(s.Written)},
		{"missing voice note", strconv.Itoa(s.Missing)},
		{"failed", strconv.Itoa(s.Failed)},
	}
	for _, level := range s.Levels() {
		rows = append(rows, []string{"level " + level, strconv.Itoa(s.ByLevel[level])})
	}
	return renderTable([]string{"Candidates", "Count"}, rows, []columnAlignment{alignLeft, alignRight})
}
