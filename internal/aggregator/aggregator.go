package aggregator

import (
	"sort"

	"cefr-training-go/internal/processor"
)

// Stats counts what happened to each candidate in one extraction run.
type Stats struct {
	Attempted int            `json:"attempted"`
	Written   int            `json:"written"`
	Missing   int            `json:"missing"`
	Failed    int            `json:"failed"`
	ByLevel   map[string]int `json:"by_level"`
}

func Aggregate(outcomes []processor.Outcome) Stats {
	s := Stats{Attempted: len(outcomes), ByLevel: map[string]int{}}
	for _, o := range outcomes {
		switch o.Status {
		case processor.StatusExtracted:
			s.Written++
			s.ByLevel[o.Record.EnglishLevel]++
		case processor.StatusMissing:
			s.Missing++
		case processor.StatusFailed:
			s.Failed++
		}
	}
	return s
}

// Levels returns the CEFR labels with at least one written row, sorted.
func (s Stats) Levels() []string {
	levels := make([]string, 0, len(s.ByLevel))
	for l := range s.ByLevel {
		levels = append(levels, l)
	}
	sort.Strings(levels)
	return levels
}
