package service

import "errors"

// Failure taxonomy for the similarity and report pipelines. Each sentinel
// propagates to the HTTP layer unchanged so it can pick the response code;
// nothing here is retried internally.
var (
	ErrRegionNotFound      = errors.New("region not found")
	ErrSearchUnavailable   = errors.New("vector search unavailable")
	ErrProviderUnavailable = errors.New("narrative provider unavailable")
	ErrMalformedReport     = errors.New("malformed report from provider")
	ErrMalformedComparison = errors.New("malformed comparison from provider")
)
