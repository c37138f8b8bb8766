package search

import (
	"context"
	"errors"
	"testing"

	"github.com/TomWang22/fin-news-summarizer/internal/sources"
)

type fakeSearcher struct {
	calls     []Params
	responses []*Response
	errs      []error
}

func (s *fakeSearcher) Search(ctx context.Context, p Params) (*Response, error) {
	i := len(s.calls)
	s.calls = append(s.calls, p)
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return &Response{Provider: p.Provider}, nil
}

func qualityState() State {
	st := DefaultState()
	st.Provider = ProviderNewsAPI
	st.Query = "AAPL"
	st.Broad = false
	st.Quality = sources.ByLabel("Reuters")
	return st
}

func TestExecuteEmptyQuery(t *testing.T) {
	fake := &fakeSearcher{}
	o := NewOrchestrator(fake)

	st := DefaultState()
	st.Query = "  "
	if _, err := o.Execute(context.Background(), st); !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
	if len(fake.calls) != 0 {
		t.Errorf("no network call may be issued for an empty query, got %d", len(fake.calls))
	}
}

func TestExecutePlainSuccess(t *testing.T) {
	fake := &fakeSearcher{responses: []*Response{{Provider: ProviderRSS, Count: 2}}}
	o := NewOrchestrator(fake)

	out, err := o.Execute(context.Background(), DefaultState())
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out.Fallback {
		t.Error("unexpected fallback for rss search")
	}
	if len(fake.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(fake.calls))
	}
}

func TestExecuteDomainFallback(t *testing.T) {
	fake := &fakeSearcher{responses: []*Response{
		{Provider: ProviderNewsAPI, Count: 0},
		{Provider: ProviderNewsAPI, Count: 3},
	}}
	o := NewOrchestrator(fake)

	out, err := o.Execute(context.Background(), qualityState())
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !out.Fallback {
		t.Fatal("expected fallback to be reported")
	}
	if out.Response.Count != 3 {
		t.Errorf("expected the retried response, got count=%d", out.Response.Count)
	}

	if len(fake.calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(fake.calls))
	}
	first, second := fake.calls[0], fake.calls[1]
	if first.Sources != "reuters" || first.Domains != "" {
		t.Errorf("first call: %+v", first)
	}
	if second.Sources != "" || second.Domains != "reuters.com" {
		t.Errorf("retry must swap sources for the config domain: %+v", second)
	}
	if out.Params != second {
		t.Error("outcome params must describe the retried request")
	}
}

func TestExecuteFallbackIsOneShot(t *testing.T) {
	fake := &fakeSearcher{responses: []*Response{
		{Provider: ProviderNewsAPI, Count: 0},
		{Provider: ProviderNewsAPI, Count: 0},
	}}
	o := NewOrchestrator(fake)

	out, err := o.Execute(context.Background(), qualityState())
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !out.Fallback {
		t.Error("expected fallback")
	}
	if len(fake.calls) != 2 {
		t.Errorf("a zero-result retry is final; got %d calls", len(fake.calls))
	}
}

func TestExecuteNoFallbackWithoutDomain(t *testing.T) {
	st := qualityState()
	st.Quality = sources.Config{Label: "Custom", SourceID: "custom-wire"}

	fake := &fakeSearcher{responses: []*Response{{Provider: ProviderNewsAPI, Count: 0}}}
	o := NewOrchestrator(fake)

	out, err := o.Execute(context.Background(), st)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out.Fallback || len(fake.calls) != 1 {
		t.Errorf("no fallback without a config domain: fallback=%v calls=%d", out.Fallback, len(fake.calls))
	}
}

func TestExecuteNoFallbackWithResults(t *testing.T) {
	fake := &fakeSearcher{responses: []*Response{{Provider: ProviderNewsAPI, Count: 1}}}
	o := NewOrchestrator(fake)

	out, err := o.Execute(context.Background(), qualityState())
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out.Fallback || len(fake.calls) != 1 {
		t.Errorf("non-empty result must not trigger fallback: fallback=%v calls=%d", out.Fallback, len(fake.calls))
	}
}

func TestExecuteSurfacesErrors(t *testing.T) {
	boom := errors.New("backend down")
	fake := &fakeSearcher{errs: []error{boom}}
	o := NewOrchestrator(fake)

	if _, err := o.Execute(context.Background(), DefaultState()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped transport error, got %v", err)
	}
}

func TestExecuteFallbackErrorSurfaces(t *testing.T) {
	boom := errors.New("retry failed")
	fake := &fakeSearcher{
		responses: []*Response{{Provider: ProviderNewsAPI, Count: 0}, nil},
		errs:      []error{nil, boom},
	}
	o := NewOrchestrator(fake)

	if _, err := o.Execute(context.Background(), qualityState()); !errors.Is(err, boom) {
		t.Fatalf("expected fallback error, got %v", err)
	}
}
