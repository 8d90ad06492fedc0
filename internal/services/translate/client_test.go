package translate_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"homesight/internal/config"
	"homesight/internal/services"
	"homesight/internal/services/translate"
)

func newServer(t *testing.T, requests *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			requests.Add(1)
		}
		var req struct {
			Text   string `json:"q"`
			Source string `json:"source"`
			Target string `json:"target"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Source != "en" {
			t.Errorf("source = %q", req.Source)
		}
		json.NewEncoder(w).Encode(map[string]string{"translatedText": "[ko] " + req.Text})
	}))
}

func testConfig(baseURL string) config.Translate {
	return config.Translate{
		Enabled:        true,
		TargetLanguage: "ko",
		BaseURL:        baseURL,
	}
}

func TestNewClientValidatesLanguage(t *testing.T) {
	_, err := translate.NewClient(config.Translate{BaseURL: "http://localhost", TargetLanguage: "not a language"})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}

	_, err = translate.NewClient(config.Translate{TargetLanguage: "ko"})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for missing base url, got %v", err)
	}

	client, err := translate.NewClient(config.Translate{BaseURL: "http://localhost", TargetLanguage: "ko"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if client.Target() != "ko" {
		t.Fatalf("unexpected target %q", client.Target())
	}
}

func TestTranslateShortText(t *testing.T) {
	server := newServer(t, nil)
	defer server.Close()

	client, err := translate.NewClient(testConfig(server.URL))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	got, err := client.Translate(context.Background(), "person walking with a bag")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "[ko] person walking with a bag" {
		t.Fatalf("unexpected translation %q", got)
	}
}

func TestTranslateEmptyTextPassesThrough(t *testing.T) {
	var requests atomic.Int32
	server := newServer(t, &requests)
	defer server.Close()

	client, err := translate.NewClient(testConfig(server.URL))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	got, err := client.Translate(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "   " {
		t.Fatalf("expected passthrough, got %q", got)
	}
	if requests.Load() != 0 {
		t.Fatalf("expected no requests, got %d", requests.Load())
	}
}

func TestTranslateCachesResults(t *testing.T) {
	var requests atomic.Int32
	server := newServer(t, &requests)
	defer server.Close()

	client, err := translate.NewClient(testConfig(server.URL))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := client.Translate(context.Background(), "repeated summary"); err != nil {
			t.Fatalf("Translate failed: %v", err)
		}
	}
	if requests.Load() != 1 {
		t.Fatalf("expected 1 request, got %d", requests.Load())
	}
}

func TestTranslateChunksLongText(t *testing.T) {
	var requests atomic.Int32
	server := newServer(t, &requests)
	defer server.Close()

	client, err := translate.NewClient(testConfig(server.URL))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	sentence := strings.Repeat("a person walks through the hallway", 6)
	long := sentence + ". " + sentence + ". " + sentence

	got, err := client.Translate(context.Background(), long)
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if requests.Load() != 3 {
		t.Fatalf("expected 3 chunk requests, got %d", requests.Load())
	}
	if strings.Count(got, "[ko]") != 3 {
		t.Fatalf("expected 3 translated chunks: %q", got)
	}
}

func TestTranslateFailureReturnsOriginal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := translate.NewClient(testConfig(server.URL))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	got, err := client.Translate(context.Background(), "person at the door")
	if err == nil {
		t.Fatal("expected error")
	}
	if got != "person at the door" {
		t.Fatalf("expected original text back, got %q", got)
	}
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}
