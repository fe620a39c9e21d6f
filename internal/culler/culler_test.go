package culler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/mylinks/internal/model"
)

func TestCheckURLs(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusGone) })
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) })
	mux.HandleFunc("/get-only", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	links := []*model.Link{
		{ID: "a", URL: srv.URL + "/ok"},
		{ID: "b", URL: srv.URL + "/gone"},
		{ID: "c", URL: srv.URL + "/broken"},
		{ID: "d", URL: srv.URL + "/get-only"},
		{ID: "e", URL: srv.URL + "/missing"},
		{ID: "f", URL: "not a url"},
	}

	var calls atomic.Int32
	results := CheckURLs(context.Background(), links, Options{
		Concurrency: 3,
		Timeout:     2 * time.Second,
		OnProgress:  func(completed, total int) { calls.Add(1) },
	})

	assert.Equal(t, len(results), len(links))
	want := []Status{Healthy, Dead, Unreachable, Healthy, Dead, Unreachable}
	for i, s := range want {
		assert.Equal(t, results[i].Link.ID, links[i].ID)
		assert.Equal(t, results[i].Status, s, "link %s", links[i].ID)
	}
	assert.Equal(t, results[2].Error, "Internal Server Error")
	assert.Equal(t, int(calls.Load()), len(links))

	dead := DeadLinks(results)
	assert.Equal(t, len(dead), 2)
}

func TestCheckURLs_Empty(t *testing.T) {
	assert.Check(t, CheckURLs(context.Background(), nil, Options{}) == nil)
}

func TestIsExcludedDomain(t *testing.T) {
	exclude := map[string]bool{"github.com": true}

	tests := []struct {
		url  string
		want bool
	}{
		{"https://github.com/private/repo", true},
		{"https://api.github.com/x", true},
		{"https://github.com:443/x", true},
		{"https://notgithub.com", false},
		{"https://example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, isExcludedDomain(tt.url, exclude), tt.want)
		})
	}
}

func TestNormalizeError(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"dial tcp: lookup x: no such host", "DNS failure"},
		{"context deadline exceeded (Client.Timeout exceeded)", "Timeout"},
		{"connect: connection refused", "Connection refused"},
		{"x509: certificate signed by unknown authority", "TLS/certificate error"},
		{"something odd", "something odd"},
	}
	for _, tt := range tests {
		assert.Equal(t, normalizeError(tt.input), tt.want)
	}
}
