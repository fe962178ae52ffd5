// Package workflow drives the ingestion and question-answering pipelines.
// The Coordinator owns the three stage agents, the conversation log and the
// rewrite-and-retry policy; a small explicit state machine routes each
// invocation through the stages.
//
// One invocation is strictly sequential. The conversation log is
// mutex-guarded so concurrent ProcessQuery calls on the same Coordinator do
// not race, though answers then interleave in log order.
package workflow
