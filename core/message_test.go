package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage_GeneratesTraceID(t *testing.T) {
	msg := NewMessage(StageCoordinator, StageIngestion, TypeDocumentIngestion, "", DocumentIngestionPayload{DocumentPath: "/tmp/doc.txt"})

	assert.NotEmpty(t, msg.TraceID)

	other := NewMessage(StageCoordinator, StageIngestion, TypeDocumentIngestion, "", DocumentIngestionPayload{DocumentPath: "/tmp/doc.txt"})
	assert.NotEqual(t, msg.TraceID, other.TraceID)
}

func TestNewMessage_KeepsExplicitTraceID(t *testing.T) {
	msg := NewMessage(StageCoordinator, StageRetrieval, TypeRetrievalRequest, "trace-1", RetrievalRequestPayload{Query: "q"})
	assert.Equal(t, "trace-1", msg.TraceID)
}

func TestMessage_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
	}{
		{
			name: "document ingestion",
			msg:  NewMessage(StageCoordinator, StageIngestion, TypeDocumentIngestion, "t1", DocumentIngestionPayload{DocumentPath: "/docs/report.pdf"}),
		},
		{
			name: "ingestion result",
			msg:  NewMessage(StageIngestion, StageCoordinator, TypeIngestionResult, "t2", IngestionResultPayload{Status: StatusSuccess, DocumentPath: "/docs/report.pdf", NumChunks: 12}),
		},
		{
			name: "retrieval request",
			msg:  NewMessage(StageCoordinator, StageRetrieval, TypeRetrievalRequest, "t3", RetrievalRequestPayload{Query: "what is the capital?"}),
		},
		{
			name: "retrieval result",
			msg: NewMessage(StageRetrieval, StageResponse, TypeRetrievalResult, "t4", RetrievalResultPayload{
				RetrievedContext: []string{"passage one", "passage two"},
				Sources:          []string{"report.pdf"},
				Query:            "rewritten query",
			}),
		},
		{
			name: "response request",
			msg: NewMessage(StageCoordinator, StageResponse, TypeResponseRequest, "t5", ResponseRequestPayload{
				Query:            "what is the capital?",
				RetrievedContext: []string{"passage"},
				Sources:          []string{"report.pdf"},
			}),
		},
		{
			name: "response result with sentinel",
			msg:  NewMessage(StageResponse, StageCoordinator, TypeResponseResult, "t6", ResponseResultPayload{Answer: NoAnswerSentinel, Sources: []string{}}),
		},
		{
			name: "error with query",
			msg:  NewMessage(StageRetrieval, StageCoordinator, TypeError, "t7", ErrorPayload{Error: "index unavailable", Query: "q"}),
		},
		{
			name: "error with document path",
			msg:  NewMessage(StageIngestion, StageCoordinator, TypeError, "t8", ErrorPayload{Error: "parse failed", DocumentPath: "/docs/x.docx"}),
		},
		{
			name: "default trace id",
			msg:  NewMessage(StageCoordinator, StageRetrieval, TypeRetrievalRequest, "", RetrievalRequestPayload{Query: "q"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.msg.Encode()
			require.NoError(t, err)

			decoded, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, tt.msg, decoded)
		})
	}
}

func TestMessage_WireShape(t *testing.T) {
	msg := NewMessage(StageCoordinator, StageIngestion, TypeDocumentIngestion, "trace-9", DocumentIngestionPayload{DocumentPath: "/tmp/a.txt"})

	data, err := msg.Encode()
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Equal(t, "CoordinatorAgent", wire["sender"])
	assert.Equal(t, "IngestionAgent", wire["receiver"])
	assert.Equal(t, "DOCUMENT_INGESTION", wire["type"])
	assert.Equal(t, "trace-9", wire["trace_id"])

	payload, ok := wire["payload"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/tmp/a.txt", payload["document_path"])
}

func TestDecode_UnknownType(t *testing.T) {
	_, err := Decode([]byte(`{"sender":"a","receiver":"b","type":"BOGUS","trace_id":"t","payload":{}}`))
	assert.Error(t, err)
}

func TestDecode_NullPayload(t *testing.T) {
	decoded, err := Decode([]byte(`{"sender":"a","receiver":"b","type":"ERROR","trace_id":"t","payload":null}`))
	require.NoError(t, err)
	assert.Nil(t, decoded.Payload)
}
