package domain

import "errors"

var (
	// ErrConfiguration marks a missing credential or unusable setting; it halts the flow.
	ErrConfiguration = errors.New("configuration error")
	// ErrUpstreamFetch marks a network or decode failure from the news source.
	ErrUpstreamFetch = errors.New("upstream fetch failed")
	// ErrClusteringUnavailable marks a corpus that cannot be clustered.
	ErrClusteringUnavailable = errors.New("clustering unavailable")
	// ErrSummarization marks a failed summarizer call.
	ErrSummarization = errors.New("summarization failed")
	// ErrInvalidInput marks a request the dashboard cannot act on.
	ErrInvalidInput = errors.New("invalid input")
)
