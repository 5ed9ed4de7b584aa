package extractor

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cefr-training-go/internal/config"
	"cefr-training-go/internal/types"
)

func TestFromConfig(t *testing.T) {
	log, _ := test.NewNullLogger()
	cfg := &config.Config{MLAPIURL: "http://ml:8000", FFProbeBinary: "ffprobe", FeatureTimeout: time.Second}

	cfg.FeatureBackend = config.BackendHTTP
	fx, err := FromConfig(cfg, log)
	require.NoError(t, err)
	assert.IsType(t, &HTTPExtractor{}, fx)

	cfg.FeatureBackend = config.BackendFFProbe
	fx, err = FromConfig(cfg, log)
	require.NoError(t, err)
	assert.IsType(t, &FFProbeExtractor{}, fx)

	cfg.FeatureBackend = config.BackendMock
	fx, err = FromConfig(cfg, log)
	require.NoError(t, err)
	assert.IsType(t, MockExtractor{}, fx)

	cfg.FeatureBackend = "praat"
	_, err = FromConfig(cfg, log)
	assert.Error(t, err)
}

func TestFuncAdapter(t *testing.T) {
	var fx FeatureExtractor = Func(func(ctx context.Context, path string) (types.FeatureVector, error) {
		return types.FeatureVector{"path_len": len(path)}, nil
	})
	vec, err := fx.Extract(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, 3, vec["path_len"])
}

func TestMockExtractorIsDeterministic(t *testing.T) {
	path := writeAudio(t, "candidate-1.wav", []byte("RIFF....WAVE"))

	first, err := MockExtractor{}.Extract(context.Background(), path)
	require.NoError(t, err)
	second, err := MockExtractor{}.Extract(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(12), first["size_bytes"])
	assert.Equal(t, true, first["mock"])
}

func TestMockExtractorFailures(t *testing.T) {
	_, err := MockExtractor{}.Extract(context.Background(), filepath.Join(t.TempDir(), "missing.wav"))
	assert.Error(t, err)

	empty := writeAudio(t, "empty.wav", nil)
	_, err = MockExtractor{}.Extract(context.Background(), empty)
	assert.ErrorContains(t, err, "empty audio file")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = MockExtractor{}.Extract(ctx, empty)
	assert.ErrorIs(t, err, context.Canceled)
}
