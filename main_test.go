package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"globetrotter/config"
	"globetrotter/stores"
	"globetrotter/stores/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{CORSAllowedOrigins: []string{"*"}}
	srv := httptest.NewServer(setupRouter(cfg, stores.WithMetrics(memory.NewStore(), "router-test")))
	t.Cleanup(srv.Close)
	return srv
}

func TestRouter_Healthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestRouter_EndToEnd(t *testing.T) {
	srv := newTestServer(t)

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/v1/drafts/t1/itinerary", strings.NewReader(`{"day":1}`))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("PUT status = %d", resp.StatusCode)
	}

	resp, err = http.Post(srv.URL+"/api/v1/wishlist/toggle", "application/json", strings.NewReader(`{"id":"x","title":"X"}`))
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("toggle status = %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	defer resp.Body.Close()
	buf := new(strings.Builder)
	if _, err := io.Copy(buf, resp.Body); err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	for _, name := range []string{"kv_operations_total", "http_requests_total"} {
		if !strings.Contains(buf.String(), name) {
			t.Errorf("metrics output lacks %s", name)
		}
	}
}
