package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"cefr-training-go/internal/types"
)

const (
	extractPath = "/api/extract-features"
	healthPath  = "/api/health"
)

// HTTPExtractor posts audio files to the ML feature service.
type HTTPExtractor struct {
	baseURL string
	client  *http.Client
}

func NewHTTPExtractor(baseURL string, timeout time.Duration) *HTTPExtractor {
	return &HTTPExtractor{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Extract uploads audioPath as multipart field "file" and decodes the JSON feature map.
// There is no retry: a failed call fails the record.
func (h *HTTPExtractor) Extract(ctx context.Context, audioPath string) (types.FeatureVector, error) {
	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}

	var b bytes.Buffer
	w := multipart.NewWriter(&b)
	part, err := w.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+extractPath, &b)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feature service: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("feature service error: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return decodeFeatures(body)
}

// decodeFeatures accepts either a bare feature object or {"success":..,"features":{..},"error":..}.
func decodeFeatures(body []byte) (types.FeatureVector, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("feature service returned empty body")
	}
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("json decode error: %v body=%s", err, string(body))
	}
	if ok, present := raw["success"].(bool); present && !ok {
		msg, _ := raw["error"].(string)
		if msg == "" {
			msg = "unspecified error"
		}
		return nil, fmt.Errorf("feature extraction failed: %s", msg)
	}
	if nested, ok := raw["features"].(map[string]any); ok {
		return types.FeatureVector(nested), nil
	}
	delete(raw, "success")
	delete(raw, "error")
	if len(raw) == 0 {
		return nil, errors.New("feature service returned no features")
	}
	return types.FeatureVector(raw), nil
}

// Available reports whether the health endpoint answers with a 2xx status.
func (h *HTTPExtractor) Available(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+healthPath, nil)
	if err != nil {
		return err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 300 {
		return fmt.Errorf("health check: status=%d", resp.StatusCode)
	}
	return nil
}

// WaitReady polls the health endpoint with exponential backoff until it succeeds or
// maxWait elapses. It runs once before a batch, never per record.
func (h *HTTPExtractor) WaitReady(ctx context.Context, maxWait time.Duration) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 250 * time.Millisecond
	bo.MaxElapsedTime = maxWait

	var lastErr error
	op := func() error {
		lastErr = h.Available(ctx)
		return lastErr
	}
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		if lastErr == nil {
			lastErr = err
		}
		return fmt.Errorf("feature service not ready at %s: %w", h.baseURL, lastErr)
	}
	return nil
}
