package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/TomWang22/fin-news-summarizer/internal/search"
)

// testClient wires a client to a test server with instant, recorded sleeps.
func testClient(t *testing.T, handler http.Handler) (*Client, *[]time.Duration) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	var slept []time.Duration
	c := NewClient(srv.URL)
	c.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return c, &slept
}

func TestSearchEncodesParams(t *testing.T) {
	var gotQuery map[string][]string
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"provider":"newsapi","count":1,"articles":[{"title":"t","url":"https://x","source":"s"}]}`))
	}))

	resp, err := c.Search(context.Background(), search.Params{
		Query:     "AAPL",
		Provider:  "newsapi",
		Limit:     10,
		Sentences: 3,
		DateFrom:  "2024-01-01",
		Sources:   "reuters",
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if resp.Count != 1 || len(resp.Articles) != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}

	checks := map[string]string{
		"query":               "AAPL",
		"provider":            "newsapi",
		"limit":               "10",
		"summarize_sentences": "3",
		"date_from":           "2024-01-01",
		"sources":             "reuters",
	}
	for k, want := range checks {
		if got := gotQuery[k]; len(got) != 1 || got[0] != want {
			t.Errorf("query %s = %v, want %q", k, got, want)
		}
	}
	for _, absent := range []string{"date_to", "domains"} {
		if _, ok := gotQuery[absent]; ok {
			t.Errorf("empty field %s must not be sent", absent)
		}
	}
}

func TestRateLimitRetry(t *testing.T) {
	attempts := 0
	c, slept := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts <= 2 {
			w.Header().Set("Retry-After", "2")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"provider":"rss","count":0,"articles":[]}`))
	}))

	if _, err := c.Search(context.Background(), search.Params{Query: "x", Provider: "rss", Limit: 1, Sentences: 1}); err != nil {
		t.Fatalf("search: %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
	// retry-after (2s) plus backoff doubling from 500ms.
	want := []time.Duration{2*time.Second + 500*time.Millisecond, 2*time.Second + time.Second}
	if len(*slept) != len(want) {
		t.Fatalf("expected %d sleeps, got %d", len(want), len(*slept))
	}
	for i, w := range want {
		if (*slept)[i] != w {
			t.Errorf("sleep %d = %v, want %v", i, (*slept)[i], w)
		}
	}
}

func TestRateLimitExhaustion(t *testing.T) {
	attempts := 0
	c, slept := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := c.Search(context.Background(), search.Params{Query: "x", Provider: "rss", Limit: 1, Sentences: 1})
	if err == nil {
		t.Fatal("expected error after retries are exhausted")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusTooManyRequests {
		t.Fatalf("expected 429 api error, got %v", err)
	}
	if attempts != 5 {
		t.Errorf("expected initial call + 4 retries, got %d attempts", attempts)
	}
	// Backoff doubles from 500ms and caps at 4s; header absent -> 1s default.
	want := []time.Duration{
		time.Second + 500*time.Millisecond,
		time.Second + time.Second,
		time.Second + 2*time.Second,
		time.Second + 4*time.Second,
	}
	for i, w := range want {
		if (*slept)[i] != w {
			t.Errorf("sleep %d = %v, want %v", i, (*slept)[i], w)
		}
	}
}

func TestErrorDetailExtraction(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"detail":"NewsAPI quota exceeded"}`))
	}))

	_, err := c.Search(context.Background(), search.Params{Query: "x", Provider: "rss", Limit: 1, Sentences: 1})
	if err == nil || err.Error() != "NewsAPI quota exceeded" {
		t.Fatalf("expected detail message, got %v", err)
	}
}

func TestErrorGenericFallback(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("not json"))
	}))

	_, err := c.Search(context.Background(), search.Params{Query: "x", Provider: "rss", Limit: 1, Sentences: 1})
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Detail != "" || apiErr.Status != 500 {
		t.Fatalf("expected generic 500 error, got %v", err)
	}
}

func TestCreateSavedConflict(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"detail":"A saved search with this name already exists."}`))
	}))

	_, err := c.CreateSaved(context.Background(), "dup", search.Params{Query: "x", Provider: "rss"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestCreateSaved(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/saved" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":7,"name":"mine","params":{"query":"x","provider":"rss","limit":10,"summarize_sentences":3},"created_at":"2024-05-01T10:00:00"}`))
	}))

	created, err := c.CreateSaved(context.Background(), "mine", search.Params{Query: "x", Provider: "rss", Limit: 10, Sentences: 3})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 7 || created.Name != "mine" {
		t.Errorf("unexpected created row: %+v", created)
	}
}

func TestListSavedCursor(t *testing.T) {
	var got map[string][]string
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Write([]byte(`{"items":[{"id":3,"name":"a","params":{"query":"q","provider":"rss","limit":10,"summarize_sentences":3},"created_at":"2024-05-01T10:00:00"}],"next_cursor":3}`))
	}))

	cursor := int64(9)
	page, err := c.ListSaved(context.Background(), ListSavedOpts{
		Query: "fed", Limit: 10, Order: "id", Dir: "desc", Cursor: &cursor,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got["q"][0] != "fed" || got["cursor"][0] != "9" || got["order"][0] != "id" || got["dir"][0] != "desc" {
		t.Errorf("unexpected query: %v", got)
	}
	if page.NextCursor == nil || *page.NextCursor != 3 {
		t.Errorf("expected next_cursor 3, got %v", page.NextCursor)
	}
}

func TestListSavedEndOfList(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[],"next_cursor":null}`))
	}))

	page, err := c.ListSaved(context.Background(), ListSavedOpts{Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.NextCursor != nil {
		t.Errorf("expected nil cursor at end of list, got %v", *page.NextCursor)
	}
}

func TestDeleteSaved(t *testing.T) {
	var gotPath string
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := c.DeleteSaved(context.Background(), 42); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if gotPath != "DELETE /api/saved/42" {
		t.Errorf("unexpected request %q", gotPath)
	}
}

func TestProbeSources(t *testing.T) {
	var got map[string][]string
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Write([]byte(`{"tested":["reuters","bloomberg.com"],"results":{"reuters":2,"bloomberg.com":0}}`))
	}))

	res, err := c.ProbeSources(context.Background(), ProbeOpts{Items: "reuters,bloomberg.com", DateFrom: "2024-01-01"})
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if got["items"][0] != "reuters,bloomberg.com" || got["limit"][0] != "1" || got["date_from"][0] != "2024-01-01" {
		t.Errorf("unexpected query: %v", got)
	}
	if res.Results["reuters"] != 2 {
		t.Errorf("unexpected results: %+v", res.Results)
	}
}
