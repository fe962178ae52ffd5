// Package agent implements the three processing stages of the workflow:
// ingestion (document to indexed chunks), retrieval (query to ranked
// passages) and response (query plus passages to a grounded answer).
//
// Stages are stateless between calls and are addressed exclusively through
// core.Message envelopes; every reply carries the trace id of the message it
// answers. A stage never lets an error escape its boundary: failures of the
// external collaborators (parser, index, model) are converted into ERROR
// messages.
package agent
