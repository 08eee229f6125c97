package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewsBriefingMissingKeyIsReportedNotRaised(t *testing.T) {
	c := NewConnectors(Config{})
	got, err := c.NewsBriefing(context.Background(), "in", "")
	if err != nil {
		t.Fatalf("NewsBriefing() error = %v", err)
	}
	if !strings.Contains(got, "missing GNews API key") {
		t.Fatalf("NewsBriefing() = %q, want configuration outcome", got)
	}
}

func TestNewsBriefingNormalizesCountryCode(t *testing.T) {
	var gotCountry string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCountry = r.URL.Query().Get("country")
		_, _ = w.Write([]byte(`{"articles":[{"title":"Headline one","description":"Summary one."}]}`))
	}))
	defer srv.Close()

	c := NewConnectors(Config{GNewsBaseURL: srv.URL, GNewsAPIKey: "key"})
	for _, code := range []string{"US", "us", "Us"} {
		if _, err := c.NewsBriefing(context.Background(), code, ""); err != nil {
			t.Fatalf("NewsBriefing(%q) error = %v", code, err)
		}
		if gotCountry != "us" {
			t.Fatalf("country param for %q = %q, want %q", code, gotCountry, "us")
		}
	}
}

func TestNewsBriefingCapsAtThreeAndPrefersDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"articles":[
			{"title":"T1","description":"D1."},
			{"title":"T2","description":""},
			{"title":"T3","description":"D3."},
			{"title":"T4","description":"D4."}
		]}`))
	}))
	defer srv.Close()

	c := NewConnectors(Config{GNewsBaseURL: srv.URL, GNewsAPIKey: "key"})
	got, err := c.NewsBriefing(context.Background(), "", "")
	if err != nil {
		t.Fatalf("NewsBriefing() error = %v", err)
	}
	if strings.Contains(got, "D4.") {
		t.Fatalf("NewsBriefing() = %q, want at most 3 summaries", got)
	}
	if !strings.Contains(got, "D1.") || !strings.Contains(got, "T2") || !strings.Contains(got, "D3.") {
		t.Fatalf("NewsBriefing() = %q, want description preferred with headline fallback", got)
	}
}

func TestSearchNewsEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"articles":[]}`))
	}))
	defer srv.Close()

	c := NewConnectors(Config{GNewsBaseURL: srv.URL, GNewsAPIKey: "key"})
	got, err := c.SearchNews(context.Background(), "quantum pigeons")
	if err != nil {
		t.Fatalf("SearchNews() error = %v", err)
	}
	if !strings.Contains(got, "No results found for quantum pigeons") {
		t.Fatalf("SearchNews() = %q, want empty-result outcome", got)
	}
}

func TestCountryCode(t *testing.T) {
	if got, ok := countryCode("IN"); !ok || got != "in" {
		t.Fatalf(`countryCode("IN") = %q, %v, want "in", true`, got, ok)
	}
	if _, ok := countryCode("India"); ok {
		t.Fatalf(`countryCode("India") accepted, want place-name rejection`)
	}
	if _, ok := countryCode("4x"); ok {
		t.Fatalf(`countryCode("4x") accepted, want rejection`)
	}
}
