package datasource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

const indexPayload = `[
	{"name": "GitSavvy", "author": "divmain", "stars": 2500},
	{"name": "Terminus", "author": "randy3k", "stars": 1400}
]`

func TestHTTPSourceLoad(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(indexPayload))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, srv.Client())
	ctx := context.Background()

	records, err := src.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}
	if records[0].Name != "GitSavvy" {
		t.Errorf("first record = %s", records[0].Name)
	}

	// Later loads return the cached collection without refetching.
	if _, err := src.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if hits.Load() != 1 {
		t.Errorf("endpoint hit %d times, want 1", hits.Load())
	}
}

func TestHTTPSourceWrongContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, srv.Client())
	if _, err := src.Load(context.Background()); err == nil {
		t.Error("expected error for non-JSON content type")
	}
}

func TestHTTPSourceErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, srv.Client())
	if _, err := src.Load(context.Background()); err == nil {
		t.Error("expected error for 503 response")
	}
}

func TestHTTPSourceCachesFailure(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, srv.Client())
	ctx := context.Background()
	_, _ = src.Load(ctx)
	_, _ = src.Load(ctx)

	if hits.Load() != 1 {
		t.Errorf("failed endpoint hit %d times, want 1", hits.Load())
	}
}

func TestLoadSoft(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	records := LoadSoft(context.Background(), NewHTTPSource(srv.URL, srv.Client()))
	if records != nil {
		t.Errorf("LoadSoft on failure = %v, want nil", records)
	}
}
