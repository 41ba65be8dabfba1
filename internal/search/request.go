package search

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultMaxNodes is the node budget when a request does not set one
const DefaultMaxNodes = 100

// ErrInvalidRequest is returned for requests that cannot start a search
var ErrInvalidRequest = errors.New("invalid search request")

// Request is the inbound search request
type Request struct {
	StartURL  string `json:"start_url"`
	TargetURL string `json:"target_url"`
	MaxNodes  int    `json:"max_nodes"`
	Algorithm string `json:"algorithm"`
}

// Normalize applies defaults and validates the request.
// defaultMaxNodes replaces a missing or non-positive budget.
func (r Request) Normalize(defaultMaxNodes int) (Request, Algorithm, error) {
	r.StartURL = strings.TrimSpace(r.StartURL)
	r.TargetURL = strings.TrimSpace(r.TargetURL)

	if r.StartURL == "" {
		return r, "", fmt.Errorf("%w: start_url is required", ErrInvalidRequest)
	}
	if r.TargetURL == "" {
		return r, "", fmt.Errorf("%w: target_url is required", ErrInvalidRequest)
	}

	if r.MaxNodes <= 0 {
		r.MaxNodes = defaultMaxNodes
	}
	if r.MaxNodes <= 0 {
		r.MaxNodes = DefaultMaxNodes
	}

	alg, err := ParseAlgorithm(r.Algorithm)
	if err != nil {
		return r, "", fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	r.Algorithm = string(alg)

	return r, alg, nil
}
