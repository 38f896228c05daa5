package signs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func handImage(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		img.Set(x, x, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func newTestAnalyzer(t *testing.T, baseURL string) *Analyzer {
	t.Helper()
	prompts, err := LoadPrompts("")
	if err != nil {
		t.Fatalf("LoadPrompts failed: %v", err)
	}
	analyzer, err := NewAnalyzer(Options{APIKey: "key", BaseURL: baseURL, Model: "test-model"}, prompts, zap.NewNop())
	if err != nil {
		t.Fatalf("NewAnalyzer failed: %v", err)
	}
	return analyzer
}

func completionServer(t *testing.T, hits *int, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++

		var request chatRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if request.Model != "test-model" {
			t.Fatalf("unexpected model %q", request.Model)
		}
		parts := request.Messages[0].Content
		if !strings.Contains(parts[0].Text, "A to N") {
			t.Fatalf("prompt does not mention the letter range: %q", parts[0].Text)
		}
		if !strings.HasPrefix(parts[1].ImageURL.URL, "data:image/png;base64,") {
			t.Fatalf("image is not a png data url")
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"` + reply + `"}}]}`))
	}))
}

func TestAnalyze(t *testing.T) {
	hits := 0
	server := completionServer(t, &hits, "Your Sign Looks Like: B")
	defer server.Close()

	verdict, err := newTestAnalyzer(t, server.URL).Analyze(context.Background(), handImage(t), RangeAN)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if verdict != "Your Sign Looks Like: B" {
		t.Fatalf("unexpected verdict: %q", verdict)
	}
	if hits != 1 {
		t.Fatalf("expected one upstream call, got %d", hits)
	}
}

func TestAnalyzeRejectsUnknownRange(t *testing.T) {
	_, err := newTestAnalyzer(t, "http://unused.invalid").Analyze(context.Background(), handImage(t), "A-Z")
	if !errors.Is(err, ErrInvalidLetterRange) {
		t.Fatalf("expected ErrInvalidLetterRange, got %v", err)
	}
}

func TestAnalyzeRejectsNonImage(t *testing.T) {
	_, err := newTestAnalyzer(t, "http://unused.invalid").Analyze(context.Background(), []byte("definitely not a png"), RangeAN)
	if !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage, got %v", err)
	}
}

func TestAnalyzeDoesNotRetryClientErrors(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	if _, err := newTestAnalyzer(t, server.URL).Analyze(context.Background(), handImage(t), RangeOZ); err == nil {
		t.Fatal("expected error for upstream 400")
	}
	if hits != 1 {
		t.Fatalf("client errors must not be retried, got %d calls", hits)
	}
}

func TestAnalyzeRetriesServerErrors(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits < 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Your Sign Looks Like: Q"}}]}`))
	}))
	defer server.Close()

	verdict, err := newTestAnalyzer(t, server.URL).Analyze(context.Background(), handImage(t), RangeOZ)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if verdict != "Your Sign Looks Like: Q" {
		t.Fatalf("unexpected verdict: %q", verdict)
	}
	if hits != 2 {
		t.Fatalf("expected one retry, got %d calls", hits)
	}
}

func TestLoadPromptsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	override := "ranges:\n  A-N: custom A-N prompt\n"
	if err := os.WriteFile(path, []byte(override), 0o644); err != nil {
		t.Fatalf("failed to write prompts file: %v", err)
	}

	prompts, err := LoadPrompts(path)
	if err != nil {
		t.Fatalf("LoadPrompts failed: %v", err)
	}
	if prompts.Ranges[RangeAN] != "custom A-N prompt" {
		t.Fatalf("override not applied: %q", prompts.Ranges[RangeAN])
	}
	if !strings.Contains(prompts.Ranges[RangeOZ], "O to Z") {
		t.Fatalf("default O-Z prompt lost: %q", prompts.Ranges[RangeOZ])
	}
	if !prompts.ValidRange(RangeAN) || !prompts.ValidRange(RangeOZ) {
		t.Fatal("built-in ranges must stay valid")
	}
	if prompts.ValidRange("B-M") {
		t.Fatal("unknown range must be invalid")
	}
}

func TestAnalyzerRequiresAPIKey(t *testing.T) {
	prompts, err := LoadPrompts("")
	if err != nil {
		t.Fatalf("LoadPrompts failed: %v", err)
	}
	if _, err := NewAnalyzer(Options{}, prompts, zap.NewNop()); err == nil {
		t.Fatal("expected error for empty API key")
	}
}
