package search

import (
	"context"
	"errors"
	"fmt"
)

// ErrEmptyQuery blocks submission before any network call is made.
var ErrEmptyQuery = errors.New("query is empty")

// Searcher is the transport dependency of the orchestrator.
type Searcher interface {
	Search(ctx context.Context, p Params) (*Response, error)
}

// Orchestrator executes assembled search requests, with a single automatic
// domain-fallback retry when a quality-source filter yields nothing.
type Orchestrator struct {
	client Searcher
}

func NewOrchestrator(client Searcher) *Orchestrator {
	return &Orchestrator{client: client}
}

// Outcome is the result of one Execute call.
type Outcome struct {
	Response *Response
	// Params are the parameters of the request that produced Response (the
	// fallback request when Fallback is set).
	Params Params
	// Fallback reports that the quality-source request returned zero results
	// and was reissued with the config's domain substituted for the source ID.
	Fallback bool
}

// Execute assembles params from the state and runs the search. When a
// newsapi request filtered by a quality source returns zero results and the
// selected config also carries a domain, the request is reissued once with
// sources dropped and domains set to that fallback domain. The retried
// request is final regardless of its outcome.
func (o *Orchestrator) Execute(ctx context.Context, st State) (*Outcome, error) {
	if !st.CanSearch() {
		return nil, ErrEmptyQuery
	}

	p := st.Params()
	resp, err := o.client.Search(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	if p.Sources != "" && resp.Count == 0 && st.Quality.Domain != "" {
		retry := p
		retry.Sources = ""
		retry.Domains = st.Quality.Domain
		resp, err = o.client.Search(ctx, retry)
		if err != nil {
			return nil, fmt.Errorf("domain fallback search: %w", err)
		}
		return &Outcome{Response: resp, Params: retry, Fallback: true}, nil
	}

	return &Outcome{Response: resp, Params: p}, nil
}
