package extractor

import (
	"context"
	"fmt"
	"hash/fnv"
	"os"

	"cefr-training-go/internal/types"
)

// MockExtractor returns deterministic pseudo-features derived from the file's size and name.
// Useful for exercising the pipeline without the ML service.
type MockExtractor struct{}

func (MockExtractor) Extract(ctx context.Context, audioPath string) (types.FeatureVector, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := os.Stat(audioPath)
	if err != nil {
		return nil, fmt.Errorf("stat audio: %w", err)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("empty audio file")
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(info.Name()))
	seed := float64(h.Sum32()%1000) / 1000

	return types.FeatureVector{
		"mock":          true,
		"size_bytes":    info.Size(),
		"speech_rate":   2 + seed*3,
		"pause_ratio":   0.1 + seed*0.4,
		"pitch_mean_hz": 110 + seed*120,
		"energy_rms":    0.05 + seed*0.2,
	}, nil
}
