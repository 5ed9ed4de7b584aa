package aggregator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"cefr-training-go/internal/processor"
	"cefr-training-go/internal/types"
)

func outcome(level string, status processor.Status) processor.Outcome {
	o := processor.Outcome{Record: types.CandidateRecord{EnglishLevel: level}, Status: status}
	if status == processor.StatusFailed {
		o.Err = errors.New("bad audio")
	}
	return o
}

func TestAggregate(t *testing.T) {
	s := Aggregate([]processor.Outcome{
		outcome("B2", processor.StatusExtracted),
		outcome("B2", processor.StatusExtracted),
		outcome("A1", processor.StatusExtracted),
		outcome("C1", processor.StatusMissing),
		outcome("C2", processor.StatusFailed),
	})

	assert.Equal(t, 5, s.Attempted)
	assert.Equal(t, 3, s.Written)
	assert.Equal(t, 1, s.Missing)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, map[string]int{"B2": 2, "A1": 1}, s.ByLevel)
	assert.Equal(t, []string{"A1", "B2"}, s.Levels())
}

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(nil)
	assert.Zero(t, s.Attempted)
	assert.Empty(t, s.ByLevel)
	assert.Empty(t, s.Levels())
}
