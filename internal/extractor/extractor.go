// Package extractor turns an audio file into a FeatureVector.
//
// Backends:
//   - HTTPExtractor: uploads the file to the ML feature service
//   - FFProbeExtractor: reads container/stream properties with ffprobe
//   - MockExtractor: deterministic offline features for demos and tests
//
// FromConfig picks the backend named by FEATURE_BACKEND.
package extractor

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"cefr-training-go/internal/config"
	"cefr-training-go/internal/types"
)

// FeatureExtractor computes the features of one audio file. Implementations may fail
// for unreadable, corrupt or unsupported input.
type FeatureExtractor interface {
	Extract(ctx context.Context, audioPath string) (types.FeatureVector, error)
}

// Func adapts a plain function to FeatureExtractor.
type Func func(ctx context.Context, audioPath string) (types.FeatureVector, error)

func (f Func) Extract(ctx context.Context, audioPath string) (types.FeatureVector, error) {
	return f(ctx, audioPath)
}

// FromConfig builds the backend selected in cfg.
func FromConfig(cfg *config.Config, log logrus.FieldLogger) (FeatureExtractor, error) {
	log = log.WithFields(logrus.Fields{
		"component": "extractor",
		"backend":   cfg.FeatureBackend,
	})

	switch cfg.FeatureBackend {
	case config.BackendHTTP:
		log.WithField("ml_api_url", cfg.MLAPIURL).Info("using ML feature service")
		return NewHTTPExtractor(cfg.MLAPIURL, cfg.FeatureTimeout), nil
	case config.BackendFFProbe:
		log.WithField("ffprobe_bin", cfg.FFProbeBinary).Info("using ffprobe features")
		return NewFFProbeExtractor(cfg.FFProbeBinary, cfg.FeatureTimeout), nil
	case config.BackendMock:
		log.Warn("using mock features; output is not suitable for training")
		return MockExtractor{}, nil
	default:
		return nil, fmt.Errorf("unknown feature backend %q", cfg.FeatureBackend)
	}
}
