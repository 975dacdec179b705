package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLookupSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("upc"); got != "12345" {
			t.Errorf("expected upc=12345, got %q", got)
		}
		w.Write([]byte(`{"total": 1, "items": [{"title": "Test Widget"}]}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL)
	name, err := client.Lookup(context.Background(), "12345")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if name != "Test Widget" {
		t.Errorf("expected 'Test Widget', got %q", name)
	}
}

func TestLookupNoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total": 0, "items": []}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL)
	name, err := client.Lookup(context.Background(), "12345")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if name != "" {
		t.Errorf("expected no suggestion, got %q", name)
	}
}

func TestLookupBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL)
	if _, err := client.Lookup(context.Background(), "12345"); err == nil {
		t.Error("expected an error for a non-200 status")
	}
}

func TestLookupMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL)
	if _, err := client.Lookup(context.Background(), "12345"); err == nil {
		t.Error("expected an error for a malformed body")
	}
}

func TestLookupTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewClient(server.URL)
	if _, err := client.Lookup(ctx, "12345"); err == nil {
		t.Error("expected an error when the lookup times out")
	}
}
