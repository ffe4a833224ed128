package powerflex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func testQuery() Query {
	return Query{
		ACN:       "0021",
		Account:   "16",
		SortBy:    "session_start_time",
		SortOrder: "DESC",
		Limit:     25,
		Page:      1,
		From:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		To:        time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestFetchSessions(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"rows":[{"session_id":"a","session_kwh":2.5},7]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret-token", zap.NewNop())
	n, raw, err := c.FetchSessions(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/v1/public/sessions/acn/0021" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if got := gotQuery["acc"]; len(got) != 1 || got[0] != "16" {
		t.Errorf("acc = %v", got)
	}
	if got := gotQuery["date"]; len(got) != 2 ||
		!strings.HasPrefix(got[0], "gte:") || !strings.HasPrefix(got[1], "lte:") {
		t.Errorf("date params = %v, want gte then lte", got)
	}

	if n.Total != 2 || n.Valid() != 1 {
		t.Errorf("total/valid = %d/%d, want 2/1", n.Total, n.Valid())
	}
	if len(raw) == 0 {
		t.Error("expected the raw body to be returned")
	}
}

func TestFetchSessionsNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such acn", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", zap.NewNop())
	_, _, err := c.FetchSessions(context.Background(), testQuery())
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error should mention the status: %v", err)
	}
}

func TestFetchSessionsContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := NewClient(srv.URL, "", zap.NewNop())
	_, _, err := c.FetchSessions(ctx, testQuery())
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
}
