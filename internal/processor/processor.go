// internal/processor/processor.go
package processor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"

	"cefr-training-go/internal/extractor"
	"cefr-training-go/internal/types"
)

type Status int

const (
	StatusExtracted Status = iota
	StatusMissing
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusExtracted:
		return "extracted"
	case StatusMissing:
		return "missing"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Outcome is the result of processing one candidate: a labelled feature vector,
// a silent skip for a missing voice note, or a failure with its reason.
type Outcome struct {
	Record   types.CandidateRecord
	Status   Status
	Features types.FeatureVector
	Err      error
}

// Process checks the candidate's voice note, extracts its features and labels them.
// Failures are captured in the Outcome; Process never aborts the caller's batch.
func Process(ctx context.Context, rec types.CandidateRecord, fx extractor.FeatureExtractor, log logrus.FieldLogger) Outcome {
	log = log.WithFields(logrus.Fields{
		"candidate_id": rec.ID,
		"full_name":    rec.FullName,
	})
	out := Outcome{Record: rec}

	if _, err := os.Stat(rec.VoiceNotePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.WithField("voice_note_path", rec.VoiceNotePath).Debug("voice note not found, skipping")
			out.Status = StatusMissing
			return out
		}
		return fail(out, fmt.Errorf("stat voice note: %w", err), log)
	}

	log.Infof("Processing %s...", rec.FullName)

	features, err := extract(ctx, fx, rec.VoiceNotePath)
	if err != nil {
		return fail(out, err, log)
	}
	if features == nil {
		features = types.FeatureVector{}
	}

	out.Status = StatusExtracted
	out.Features = features.WithCandidate(rec)
	return out
}

// extract converts a panicking backend into an ordinary error.
func extract(ctx context.Context, fx extractor.FeatureExtractor, path string) (vec types.FeatureVector, err error) {
	defer func() {
		if r := recover(); r != nil {
			vec, err = nil, fmt.Errorf("feature extractor panic: %v", r)
		}
	}()
	return fx.Extract(ctx, path)
}

func fail(out Outcome, err error, log logrus.FieldLogger) Outcome {
	log.WithField("error", err.Error()).Errorf("Error processing %s", out.Record.FullName)
	out.Status = StatusFailed
	out.Err = err
	return out
}
