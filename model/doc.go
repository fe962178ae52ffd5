// Package model defines the provider-agnostic completion interface used for
// answer generation and query rewriting, plus a deterministic MockModel for
// tests. Vendor adapters (OpenAI, Anthropic) live in subpackages so the
// stages remain decoupled from SDKs.
//
// The interface is deliberately non-streaming: the workflow consumes whole
// completions and token streaming is out of scope.
package model
