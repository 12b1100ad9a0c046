package analyzer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAnalyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze" {
			t.Errorf("expected /analyze, got %s", r.URL.Path)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req["image_url"] != "https://cdn.example.com/rx.png" {
			t.Errorf("unexpected image_url %q", req["image_url"])
		}
		json.NewEncoder(w).Encode(Result{
			Medications: []Medication{{Name: "Amoxicillin", Dosage: "500mg", Frequency: "3x daily"}},
			RawText:     "Amoxicillin 500mg",
		})
	}))
	defer srv.Close()

	client := NewWithBaseURL(srv.URL)
	result, err := client.Analyze(context.Background(), "https://cdn.example.com/rx.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Medications) != 1 || result.Medications[0].Name != "Amoxicillin" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestAnalyzeUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "ocr backend down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewWithBaseURL(srv.URL)
	if _, err := client.Analyze(context.Background(), "https://cdn.example.com/rx.png"); err == nil {
		t.Fatal("expected error for upstream failure")
	}
}

func TestAnalyzeWithoutBaseURL(t *testing.T) {
	client := NewWithBaseURL("")
	if _, err := client.Analyze(context.Background(), "x"); err == nil {
		t.Fatal("expected error when base URL is unset")
	}
}
