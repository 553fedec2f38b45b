package detect

import (
	"context"
	"encoding/json"
	"image"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ollama/ollama/api"
)

func TestOllamaDetector_Detect(t *testing.T) {
	var gotReq api.ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(api.ChatResponse{
			Model:   gotReq.Model,
			Message: api.Message{Role: "assistant", Content: `{"objects":[{"label":"Buoy","score":0.6,"box":[0.25,0.25,0.75,0.5]}]}`},
			Done:    true,
		})
	}))
	defer srv.Close()

	d, err := NewOllamaDetector(srv.URL+"/api/chat", "vision-test", []string{"Ship", "Buoy"}, 5*time.Second, discardLogger)
	if err != nil {
		t.Fatalf("new detector: %v", err)
	}
	dets, err := d.Detect(context.Background(), image.NewRGBA(image.Rect(0, 0, 200, 100)))
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if len(dets) != 1 || dets[0].Rect != image.Rect(50, 25, 150, 50) || dets[0].Label != "Buoy" {
		t.Fatalf("unexpected detections %+v", dets)
	}
	if gotReq.Model != "vision-test" || len(gotReq.Messages) != 1 || len(gotReq.Messages[0].Images) != 1 {
		t.Fatalf("unexpected request %+v", gotReq)
	}
	if !strings.Contains(gotReq.Messages[0].Content, "Ship, Buoy") {
		t.Fatalf("prompt should list labels: %q", gotReq.Messages[0].Content)
	}
}

func TestNewOllamaDetector_Validation(t *testing.T) {
	if _, err := NewOllamaDetector("not a url", "m", nil, 0, nil); err == nil {
		t.Fatalf("expected url error")
	}
	if _, err := NewOllamaDetector("http://localhost:11434", "", nil, 0, nil); err == nil {
		t.Fatalf("expected model error")
	}
}
