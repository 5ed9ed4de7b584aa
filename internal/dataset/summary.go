package dataset

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"cefr-training-go/internal/types"
)

type Summary struct {
	Path           string         `json:"path"`
	Rows           int            `json:"rows"`
	FeatureColumns []string       `json:"feature_columns"`
	ByLevel        map[string]int `json:"by_level"`
	SparseColumns  []string       `json:"sparse_columns"`
}

// Levels returns the CEFR labels present in the summary, sorted.
func (s Summary) Levels() []string {
	levels := make([]string, 0, len(s.ByLevel))
	for l := range s.ByLevel {
		levels = append(levels, l)
	}
	sort.Strings(levels)
	return levels
}

// LoadAndSummarize reads a training table and reports its shape: row count, feature
// columns, samples per CEFR level and columns with at least one empty cell.
func LoadAndSummarize(path string, log logrus.FieldLogger) (Summary, error) {
	log = log.WithField("component", "dataset.summary").WithField("path", path)
	log.Info("opening training table for summarization")

	header, rows, err := Load(path)
	if err != nil {
		log.WithError(err).Error("load failed")
		return Summary{}, fmt.Errorf("load: %w", err)
	}

	levelIdx := -1
	var features []string
	for i, h := range header {
		if h == types.KeyCEFRLevel {
			levelIdx = i
		}
		if !types.IsMetadataKey(h) {
			features = append(features, h)
		}
	}
	if levelIdx == -1 {
		log.Error("no cefr_level column")
		return Summary{}, fmt.Errorf("missing %s column", types.KeyCEFRLevel)
	}

	byLevel := map[string]int{}
	sparse := map[int]bool{}
	for _, r := range rows {
		byLevel[r[levelIdx]]++
		for i, cell := range r {
			if cell == "" && !types.IsMetadataKey(header[i]) {
				sparse[i] = true
			}
		}
	}
	sparseCols := []string{}
	for i, h := range header {
		if sparse[i] {
			sparseCols = append(sparseCols, h)
		}
	}

	s := Summary{
		Path:           path,
		Rows:           len(rows),
		FeatureColumns: features,
		ByLevel:        byLevel,
		SparseColumns:  sparseCols,
	}
	log.WithFields(logrus.Fields{
		"rows":     s.Rows,
		"features": len(s.FeatureColumns),
		"levels":   len(s.ByLevel),
		"sparse":   len(s.SparseColumns),
	}).Info("training table summarization complete")
	return s, nil
}
