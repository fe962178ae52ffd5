package core

import "errors"

// Failure taxonomy. Stages wrap these with %w and convert them into ERROR
// messages at the stage boundary; callers test with errors.Is. The no-answer
// sentinel (NoAnswerSentinel) is deliberately not part of this set because it
// is a successful outcome, not a failure.
var (
	// ErrMissingQuery indicates an empty query rejected before any external call.
	ErrMissingQuery = errors.New("missing query")

	// ErrMissingPath indicates an empty document path rejected before any external call.
	ErrMissingPath = errors.New("missing document path")

	// ErrUnsupportedFormat indicates a document extension no parser is registered for.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrParseFailure indicates text extraction from a supported document failed.
	ErrParseFailure = errors.New("document parse failure")

	// ErrIndexFailure indicates the similarity index rejected an add or search.
	ErrIndexFailure = errors.New("index failure")

	// ErrModelCall indicates a model inference call failed.
	ErrModelCall = errors.New("model call failure")
)
