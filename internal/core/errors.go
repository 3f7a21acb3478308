package core

import "errors"

var (
	ErrInvalidThreshold = errors.New("threshold must be a finite number")
	ErrMissingBatch     = errors.New("statements are required")
	ErrNoSource         = errors.New("no fact source configured")
	ErrNoRepairer       = errors.New("no LLM configured for repair")
)
