// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"cefr-training-go/internal/aggregator"
	"cefr-training-go/internal/dataset"
	"cefr-training-go/internal/extractor"
	"cefr-training-go/internal/processor"
	"cefr-training-go/internal/types"
)

// DefaultOutput is used when Extract is given an empty destination.
const DefaultOutput = "training_data.csv"

// Pipeline turns collected candidates into a labelled feature table.
type Pipeline struct {
	fx      extractor.FeatureExtractor
	log     logrus.FieldLogger
	workers int
}

type Option func(*Pipeline)

func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Pipeline) {
		p.log = log
	}
}

// WithWorkers processes up to n candidates concurrently. Row order is unaffected.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

func New(fx extractor.FeatureExtractor, opts ...Option) *Pipeline {
	p := &Pipeline{fx: fx, workers: 1}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		p.log = l
	}
	return p
}

// Result is the table written by Extract together with per-run counts.
type Result struct {
	Table       *dataset.Table
	Stats       aggregator.Stats
	Destination string
}

// Run processes every record and returns one Outcome per record, in input order.
func (p *Pipeline) Run(ctx context.Context, records []types.CandidateRecord) []processor.Outcome {
	outcomes := make([]processor.Outcome, len(records))
	if p.workers <= 1 || len(records) <= 1 {
		for i, rec := range records {
			outcomes[i] = processor.Process(ctx, rec, p.fx, p.log)
		}
		return outcomes
	}

	workers := p.workers
	if workers > len(records) {
		workers = len(records)
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = processor.Process(ctx, records[i], p.fx, p.log)
			}
		}()
	}
	for i := range records {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return outcomes
}

// Fold keeps the successful outcomes, in order, as table rows.
func Fold(outcomes []processor.Outcome) *dataset.Table {
	table := dataset.NewTable()
	for _, o := range outcomes {
		if o.Status == processor.StatusExtracted {
			table.Append(o.Features)
		}
	}
	return table
}

// Extract processes records, writes the successful rows to destination and reports the
// count. Missing voice notes and extraction failures only drop their own row; a write
// failure or a cancelled context fails the whole call.
func (p *Pipeline) Extract(ctx context.Context, records []types.CandidateRecord, destination string) (*Result, error) {
	if destination == "" {
		destination = DefaultOutput
	}

	outcomes := p.Run(ctx, records)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extraction interrupted: %w", err)
	}

	res := &Result{
		Table:       Fold(outcomes),
		Stats:       aggregator.Aggregate(outcomes),
		Destination: destination,
	}
	if err := res.Table.Write(destination); err != nil {
		p.log.WithField("error", err.Error()).Error("failed to save training table")
		return nil, err
	}

	p.log.WithFields(logrus.Fields{
		"attempted": res.Stats.Attempted,
		"written":   res.Stats.Written,
		"missing":   res.Stats.Missing,
		"failed":    res.Stats.Failed,
	}).Infof("Saved %d samples to %s", res.Table.Len(), destination)
	return res, nil
}
