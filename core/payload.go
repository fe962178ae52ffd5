package core

// Payload is the polymorphic body of a Message. Concrete variants implement
// the unexported marker so the set stays closed and handlers can switch over
// it exhaustively instead of probing dynamic maps for keys.
type Payload interface{ isPayload() }

// DocumentIngestionPayload requests ingestion of a single document.
type DocumentIngestionPayload struct {
	DocumentPath string `json:"document_path"`
}

func (DocumentIngestionPayload) isPayload() {}

// IngestionResultPayload reports the outcome of a successful ingestion.
type IngestionResultPayload struct {
	Status       string `json:"status"`
	DocumentPath string `json:"document_path"`
	NumChunks    int    `json:"num_chunks"`
}

func (IngestionResultPayload) isPayload() {}

// RetrievalRequestPayload asks for supporting passages for a query.
type RetrievalRequestPayload struct {
	Query string `json:"query"`
}

func (RetrievalRequestPayload) isPayload() {}

// RetrievalResultPayload carries the ranked passages for a query. Query holds
// the query that actually produced the passages, which may be a rewritten
// form of the one originally requested. Sources are deduplicated in
// first-seen order.
type RetrievalResultPayload struct {
	RetrievedContext []string `json:"retrieved_context"`
	Sources          []string `json:"sources"`
	Query            string   `json:"query"`
}

func (RetrievalResultPayload) isPayload() {}

// ResponseRequestPayload asks the response stage for a grounded answer.
type ResponseRequestPayload struct {
	Query            string   `json:"query"`
	RetrievedContext []string `json:"retrieved_context"`
	Sources          []string `json:"sources"`
}

func (ResponseRequestPayload) isPayload() {}

// ResponseResultPayload carries the generated answer. Answer may be the
// literal NoAnswerSentinel, which is a first-class outcome (context was
// insufficient), not an error.
type ResponseResultPayload struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

func (ResponseResultPayload) isPayload() {}

// ErrorPayload reports a stage-local failure. Query and DocumentPath carry
// the offending input when one is known.
type ErrorPayload struct {
	Error        string `json:"error"`
	Query        string `json:"query,omitempty"`
	DocumentPath string `json:"document_path,omitempty"`
}

func (ErrorPayload) isPayload() {}

// NoAnswerSentinel is the designated answer value meaning "no grounded answer
// exists in the provided material". It is the inter-stage signal that
// triggers the coordinator's rewrite-and-retry loop.
const NoAnswerSentinel = "false"

// StatusSuccess is the status string reported by a completed ingestion.
const StatusSuccess = "success"
