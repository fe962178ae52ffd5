package agent

import (
	"context"
	"testing"

	"github.com/hupe1980/ragmesh/core"
	"github.com/hupe1980/ragmesh/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func responseMsg(query string, passages, sources []string) core.Message {
	return core.NewMessage(core.StageCoordinator, core.StageResponse, core.TypeResponseRequest, "trace-a", core.ResponseRequestPayload{
		Query:            query,
		RetrievedContext: passages,
		Sources:          sources,
	})
}

func TestResponseAgent_GroundedAnswer(t *testing.T) {
	m := model.NewMockModel("answerer")
	m.AddResponse("capital of Freedonia", "Sylvania")
	agent := NewResponseAgent(m, nil)

	reply := agent.Process(context.Background(), responseMsg(
		"What is the capital of Freedonia?",
		[]string{"The capital of Freedonia is Sylvania."},
		[]string{"atlas.txt"},
	), "")

	assert.Equal(t, core.TypeResponseResult, reply.Type)
	assert.Equal(t, "trace-a", reply.TraceID)

	payload, ok := reply.Payload.(core.ResponseResultPayload)
	require.True(t, ok)
	assert.Equal(t, "Sylvania", payload.Answer)
	assert.Equal(t, []string{"atlas.txt"}, payload.Sources)
}

func TestResponseAgent_PromptContainsOrdinalContextAndHistory(t *testing.T) {
	m := model.NewMockModel("answerer")
	agent := NewResponseAgent(m, nil)

	agent.Process(context.Background(), responseMsg(
		"question?",
		[]string{"first passage", "second passage"},
		nil,
	), "Question: earlier\nAnswer: said\n\n")

	calls := m.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt, "Context 1: first passage")
	assert.Contains(t, calls[0].Prompt, "Context 2: second passage")
	assert.Contains(t, calls[0].Prompt, "Question: earlier")
	assert.Contains(t, calls[0].Prompt, `return: "false"`)
	assert.Contains(t, calls[0].System, "strictly")
}

func TestResponseAgent_SentinelIsFirstClassOutcome(t *testing.T) {
	m := model.NewMockModel("answerer")
	m.SetDefault(core.NoAnswerSentinel)
	agent := NewResponseAgent(m, nil)

	reply := agent.Process(context.Background(), responseMsg("q", nil, nil), "")

	assert.Equal(t, core.TypeResponseResult, reply.Type, "sentinel is not an error")
	payload, ok := reply.Payload.(core.ResponseResultPayload)
	require.True(t, ok)
	assert.Equal(t, core.NoAnswerSentinel, payload.Answer)
	assert.Equal(t, []string{}, payload.Sources)
}

func TestResponseAgent_AcceptsRetrievalResult(t *testing.T) {
	m := model.NewMockModel("answerer")
	m.SetDefault("forwarded answer")
	agent := NewResponseAgent(m, nil)

	msg := core.NewMessage(core.StageRetrieval, core.StageResponse, core.TypeRetrievalResult, "t", core.RetrievalResultPayload{
		RetrievedContext: []string{"passage"},
		Sources:          []string{"doc.txt"},
		Query:            "q",
	})
	reply := agent.Process(context.Background(), msg, "")

	payload, ok := reply.Payload.(core.ResponseResultPayload)
	require.True(t, ok)
	assert.Equal(t, "forwarded answer", payload.Answer)
	assert.Equal(t, []string{"doc.txt"}, payload.Sources)
}

func TestResponseAgent_MissingQuery(t *testing.T) {
	agent := NewResponseAgent(model.NewMockModel("answerer"), nil)

	reply := agent.Process(context.Background(), responseMsg("", nil, nil), "")

	assert.Equal(t, core.TypeError, reply.Type)
	payload, ok := reply.Payload.(core.ErrorPayload)
	require.True(t, ok)
	assert.Equal(t, "no query provided", payload.Error)
}

func TestResponseAgent_ModelFailure(t *testing.T) {
	agent := NewResponseAgent(erroringModel{}, nil)

	reply := agent.Process(context.Background(), responseMsg("q", []string{"p"}, nil), "")

	assert.Equal(t, core.TypeError, reply.Type)
	payload, ok := reply.Payload.(core.ErrorPayload)
	require.True(t, ok)
	assert.Equal(t, "q", payload.Query)
}

func TestResponseAgent_UnsupportedMessageType(t *testing.T) {
	agent := NewResponseAgent(model.NewMockModel("answerer"), nil)

	reply := agent.Process(context.Background(), core.NewMessage(core.StageCoordinator, core.StageResponse, core.TypeDocumentIngestion, "t", core.DocumentIngestionPayload{DocumentPath: "/x"}), "")

	assert.Equal(t, core.TypeError, reply.Type)
}

type erroringModel struct{}

func (erroringModel) Complete(context.Context, model.Request) (model.Response, error) {
	return model.Response{}, assert.AnError
}

func (erroringModel) Info() model.Info { return model.Info{Name: "erroring", Provider: "test"} }
