package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/ragmesh/core"
	"github.com/hupe1980/ragmesh/internal/util"
	"github.com/hupe1980/ragmesh/logging"
	"github.com/hupe1980/ragmesh/model"
)

const answerSystem = "You are a helpful assistant designed to answer questions based strictly on the provided " +
	"context or prior chat history. Do not use external knowledge or assumptions."

const answerPrompt = `Chat History:
{{.ChatHistory}}

Context Information (from uploaded documents):
{{.Context}}

User Question:
{{.Question}}

Instructions:
- Only answer if the answer can be found in either the chat history or the context information.
- If the answer is not explicitly available, return: "false"
- Do not make up information.
- Be concise and accurate.`

// ResponseAgent produces a grounded answer from a query, retrieved passages
// and the conversation history. The literal answer "false" is a first-class
// outcome meaning the material contains no grounded answer; it is not an
// error.
type ResponseAgent struct {
	model  model.Model
	logger logging.Logger
}

// NewResponseAgent constructs the response stage.
func NewResponseAgent(m model.Model, logger logging.Logger) *ResponseAgent {
	return &ResponseAgent{model: m, logger: logging.OrNoOp(logger)}
}

// Process handles an incoming message. It accepts RESPONSE_REQUEST and, for
// the forwarding path from the retrieval stage, RETRIEVAL_RESULT.
func (a *ResponseAgent) Process(ctx context.Context, msg core.Message, chatHistory string) core.Message {
	var (
		query    string
		passages []string
		sources  []string
	)
	switch p := msg.Payload.(type) {
	case core.ResponseRequestPayload:
		query, passages, sources = p.Query, p.RetrievedContext, p.Sources
	case core.RetrievalResultPayload:
		query, passages, sources = p.Query, p.RetrievedContext, p.Sources
	default:
		return errorReply(core.StageResponse, msg, core.ErrorPayload{
			Error: fmt.Sprintf("unsupported message type: %s", msg.Type),
		})
	}
	if query == "" {
		return errorReply(core.StageResponse, msg, core.ErrorPayload{
			Error: "no query provided",
		})
	}

	prompt, err := util.RenderTemplate(answerPrompt, map[string]any{
		"ChatHistory": chatHistory,
		"Context":     formatContext(passages),
		"Question":    query,
	})
	if err != nil {
		return a.modelError(msg, query, err)
	}

	resp, err := a.model.Complete(ctx, model.Request{System: answerSystem, Prompt: prompt})
	if err != nil {
		return a.modelError(msg, query, err)
	}

	a.logger.Info("answer generated", "query", query, "grounded", resp.Text != core.NoAnswerSentinel, "trace_id", msg.TraceID)
	if sources == nil {
		sources = []string{}
	}
	return core.NewMessage(core.StageResponse, msg.Sender, core.TypeResponseResult, msg.TraceID, core.ResponseResultPayload{
		Answer:  resp.Text,
		Sources: sources,
	})
}

func (a *ResponseAgent) modelError(msg core.Message, query string, err error) core.Message {
	a.logger.Warn("answer generation failed", "query", query, "error", err)
	return errorReply(core.StageResponse, msg, core.ErrorPayload{
		Error: fmt.Sprintf("error generating response: %v", err),
		Query: query,
	})
}

// formatContext labels each passage with its ordinal so the model can cite
// positions unambiguously.
func formatContext(passages []string) string {
	labelled := make([]string, len(passages))
	for i, p := range passages {
		labelled[i] = fmt.Sprintf("Context %d: %s", i+1, p)
	}
	return strings.Join(labelled, "\n\n")
}
