package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"cefr-training-go/internal/types"
)

type probeResult struct {
	Streams []probeStream `json:"streams"`
	Format  probeFormat   `json:"format"`
}

type probeStream struct {
	CodecName  string `json:"codec_name"`
	CodecType  string `json:"codec_type"`
	SampleRate string `json:"sample_rate"`
	Channels   int    `json:"channels"`
	BitRate    string `json:"bit_rate"`
}

type probeFormat struct {
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
	FormatName string `json:"format_name"`
}

type commandRunner func(ctx context.Context, binary string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, binary string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return output, nil
}

// FFProbeExtractor derives container and stream level features from ffprobe JSON output.
type FFProbeExtractor struct {
	binary  string
	timeout time.Duration
	run     commandRunner
}

func NewFFProbeExtractor(binary string, timeout time.Duration) *FFProbeExtractor {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	return &FFProbeExtractor{binary: binary, timeout: timeout, run: execRunner}
}

func (f *FFProbeExtractor) Extract(ctx context.Context, audioPath string) (types.FeatureVector, error) {
	if strings.TrimSpace(audioPath) == "" {
		return nil, errors.New("ffprobe inspect: empty path")
	}
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	output, err := f.run(ctx, f.binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", audioPath)
	if err != nil {
		return nil, fmt.Errorf("ffprobe inspect: %w", err)
	}

	var res probeResult
	if err := json.Unmarshal(output, &res); err != nil {
		return nil, fmt.Errorf("ffprobe parse: %w", err)
	}
	return res.features()
}

func (r probeResult) features() (types.FeatureVector, error) {
	var audio []probeStream
	for _, s := range r.Streams {
		if strings.EqualFold(s.CodecType, "audio") {
			audio = append(audio, s)
		}
	}
	if len(audio) == 0 {
		return nil, errors.New("no audio stream")
	}

	duration := parseNumber(r.Format.Duration)
	if duration <= 0 {
		return nil, fmt.Errorf("unusable duration %q", r.Format.Duration)
	}

	first := audio[0]
	bitRate := parseNumber(r.Format.BitRate)
	if bitRate <= 0 {
		bitRate = parseNumber(first.BitRate)
	}

	return types.FeatureVector{
		"duration_sec":  duration,
		"size_bytes":    parseNumber(r.Format.Size),
		"bit_rate":      bitRate,
		"sample_rate":   parseNumber(first.SampleRate),
		"channels":      first.Channels,
		"codec":         first.CodecName,
		"format":        r.Format.FormatName,
		"audio_streams": len(audio),
	}, nil
}

// parseNumber returns 0 for missing or malformed values.
func parseNumber(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0
	}
	return parsed
}
