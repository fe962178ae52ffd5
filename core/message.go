package core

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// StageID identifies a workflow participant as message sender or receiver.
type StageID string

// Well-known stage identifiers.
const (
	StageCoordinator StageID = "CoordinatorAgent"
	StageIngestion   StageID = "IngestionAgent"
	StageRetrieval   StageID = "RetrievalAgent"
	StageResponse    StageID = "ResponseAgent"
)

// MessageType enumerates the wire vocabulary of the workflow.
type MessageType string

const (
	// TypeDocumentIngestion requests ingestion of a document path.
	TypeDocumentIngestion MessageType = "DOCUMENT_INGESTION"
	// TypeIngestionResult reports a completed ingestion.
	TypeIngestionResult MessageType = "INGESTION_RESULT"
	// TypeRetrievalRequest asks the retrieval stage for supporting passages.
	TypeRetrievalRequest MessageType = "RETRIEVAL_REQUEST"
	// TypeRetrievalResult carries ranked passages plus their sources.
	TypeRetrievalResult MessageType = "RETRIEVAL_RESULT"
	// TypeResponseRequest asks the response stage for a grounded answer.
	TypeResponseRequest MessageType = "RESPONSE_REQUEST"
	// TypeResponseResult carries the generated answer (or the no-answer sentinel).
	TypeResponseResult MessageType = "RESPONSE_RESULT"
	// TypeError reports a stage-local failure converted into a message.
	TypeError MessageType = "ERROR"
)

// Message is the immutable inter-stage communication unit. It is constructed
// by the producing stage, consumed exactly once by the addressed stage and
// then discarded; stages hold no message history.
type Message struct {
	Sender   StageID     `json:"sender"`
	Receiver StageID     `json:"receiver"`
	Type     MessageType `json:"type"`
	TraceID  string      `json:"trace_id"`
	Payload  Payload     `json:"payload"`
}

// NewMessage constructs a message. An empty traceID is replaced by a freshly
// generated one so envelopes are always correlatable.
func NewMessage(sender, receiver StageID, typ MessageType, traceID string, payload Payload) Message {
	if traceID == "" {
		traceID = NewTraceID()
	}
	return Message{Sender: sender, Receiver: receiver, Type: typ, TraceID: traceID, Payload: payload}
}

// NewTraceID generates an opaque correlation token. All messages belonging to
// one logical request, including rewrite retries, share a single trace id.
func NewTraceID() string { return uuid.NewString() }

// messageJSON is the wire shape of Message with the payload deferred so the
// concrete variant can be selected on the type tag during decoding.
type messageJSON struct {
	Sender   StageID         `json:"sender"`
	Receiver StageID         `json:"receiver"`
	Type     MessageType     `json:"type"`
	TraceID  string          `json:"trace_id"`
	Payload  json.RawMessage `json:"payload"`
}

// MarshalJSON encodes the envelope with the payload variant inlined.
func (m Message) MarshalJSON() ([]byte, error) {
	var raw json.RawMessage
	if m.Payload != nil {
		b, err := json.Marshal(m.Payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", m.Type, err)
		}
		raw = b
	}
	return json.Marshal(messageJSON{
		Sender:   m.Sender,
		Receiver: m.Receiver,
		Type:     m.Type,
		TraceID:  m.TraceID,
		Payload:  raw,
	})
}

// UnmarshalJSON decodes the envelope, dispatching the payload variant on the
// message type. Round trip law: Decode(Encode(m)) == m.
func (m *Message) UnmarshalJSON(data []byte) error {
	var wire messageJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	payload, err := decodePayload(wire.Type, wire.Payload)
	if err != nil {
		return err
	}
	*m = Message{
		Sender:   wire.Sender,
		Receiver: wire.Receiver,
		Type:     wire.Type,
		TraceID:  wire.TraceID,
		Payload:  payload,
	}
	return nil
}

// Encode serializes the message to its canonical JSON encoding.
func (m Message) Encode() ([]byte, error) { return json.Marshal(m) }

// Decode parses a message from its canonical JSON encoding.
func Decode(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, err
	}
	return m, nil
}

func decodePayload(typ MessageType, raw json.RawMessage) (Payload, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var p Payload
	switch typ {
	case TypeDocumentIngestion:
		p = &DocumentIngestionPayload{}
	case TypeIngestionResult:
		p = &IngestionResultPayload{}
	case TypeRetrievalRequest:
		p = &RetrievalRequestPayload{}
	case TypeRetrievalResult:
		p = &RetrievalResultPayload{}
	case TypeResponseRequest:
		p = &ResponseRequestPayload{}
	case TypeResponseResult:
		p = &ResponseResultPayload{}
	case TypeError:
		p = &ErrorPayload{}
	default:
		return nil, fmt.Errorf("unknown message type %q", typ)
	}
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", typ, err)
	}
	return deref(p), nil
}

// deref converts the pointer used for unmarshaling back into the value form
// produced by constructors, keeping round-tripped messages comparable.
func deref(p Payload) Payload {
	switch v := p.(type) {
	case *DocumentIngestionPayload:
		return *v
	case *IngestionResultPayload:
		return *v
	case *RetrievalRequestPayload:
		return *v
	case *RetrievalResultPayload:
		return *v
	case *ResponseRequestPayload:
		return *v
	case *ResponseResultPayload:
		return *v
	case *ErrorPayload:
		return *v
	default:
		return p
	}
}
