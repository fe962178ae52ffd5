package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/ragmesh/agent"
	"github.com/hupe1980/ragmesh/core"
	"github.com/hupe1980/ragmesh/logging"
	"github.com/hupe1980/ragmesh/rewrite"
)

// FallbackAnswer is returned when both the initial attempt and the
// rewrite-retry fail to produce a grounded answer.
const FallbackAnswer = "I couldn't find an answer to your question."

// Response is the outcome of one answered query.
type Response struct {
	Content string   `json:"content"`
	Sources []string `json:"sources"`
}

// Coordinator runs the pipeline: it routes each invocation through the
// stage agents via the state machine, applies the single rewrite-and-retry
// policy on unanswered queries and maintains the conversation log.
type Coordinator struct {
	ingestion *agent.IngestionAgent
	retrieval *agent.RetrievalAgent
	response  *agent.ResponseAgent
	rewriter  rewrite.Rewriter
	log       *ConversationLog
	logger    logging.Logger
}

// NewCoordinator wires the coordinator. The rewriter is the conversation
// rewriter applied between the two answer attempts.
func NewCoordinator(ingestion *agent.IngestionAgent, retrieval *agent.RetrievalAgent, response *agent.ResponseAgent, rewriter rewrite.Rewriter, logger logging.Logger) *Coordinator {
	return &Coordinator{
		ingestion: ingestion,
		retrieval: retrieval,
		response:  response,
		rewriter:  rewriter,
		log:       NewConversationLog(),
		logger:    logging.OrNoOp(logger),
	}
}

// Memory exposes the conversation log, mainly for inspection and tests.
func (c *Coordinator) Memory() *ConversationLog { return c.log }

// ProcessDocument ingests the document at path into the index. A blank path
// is rejected with core.ErrMissingPath before any stage runs. The returned
// payload reports the chunk count; stage failures surface as errors.
func (c *Coordinator) ProcessDocument(ctx context.Context, path string) (core.IngestionResultPayload, error) {
	if strings.TrimSpace(path) == "" {
		return core.IngestionResultPayload{}, core.ErrMissingPath
	}
	ws := &WorkflowState{DocumentPath: path, TraceID: core.NewTraceID()}
	c.run(ctx, ws)

	if ws.IngestionResult == nil {
		return core.IngestionResultPayload{}, fmt.Errorf("ingestion produced no result")
	}
	switch p := ws.IngestionResult.Payload.(type) {
	case core.IngestionResultPayload:
		return p, nil
	case core.ErrorPayload:
		return core.IngestionResultPayload{}, fmt.Errorf("ingestion failed: %s", p.Error)
	default:
		return core.IngestionResultPayload{}, fmt.Errorf("unexpected ingestion reply: %s", ws.IngestionResult.Type)
	}
}

// ProcessQuery answers a question against the ingested material. A blank
// query is rejected with core.ErrMissingQuery before any stage or model
// runs. An unanswered first attempt, whether a sentinel answer or a stage
// error, is retried exactly once with a conversation-aware rewrite of the
// query under the same trace id. If the retry is also unanswered the
// fallback answer is returned with no sources and the turn is not recorded
// in the log.
func (c *Coordinator) ProcessQuery(ctx context.Context, query string) (Response, error) {
	if strings.TrimSpace(query) == "" {
		return Response{}, core.ErrMissingQuery
	}
	traceID := core.NewTraceID()

	ws := &WorkflowState{Query: query, TraceID: traceID}
	c.run(ctx, ws)
	if answer, sources, ok := grounded(ws); ok {
		c.log.Append(query, answer)
		return Response{Content: answer, Sources: sources}, nil
	}

	rewritten, err := c.rewriter.Rewrite(ctx, query, c.log.History())
	if err != nil {
		c.logger.Warn("query rewrite failed, retrying with original query", "query", query, "error", err, "trace_id", traceID)
		rewritten = query
	}
	c.logger.Info("retrying with rewritten query", "original", query, "rewritten", rewritten, "trace_id", traceID)

	retry := &WorkflowState{Query: rewritten, TraceID: traceID}
	c.run(ctx, retry)
	if answer, sources, ok := grounded(retry); ok {
		c.log.Append(query, answer)
		return Response{Content: answer, Sources: sources}, nil
	}

	c.logger.Info("no grounded answer after retry", "query", query, "trace_id", traceID)
	return Response{Content: FallbackAnswer, Sources: []string{}}, nil
}

// run drives one invocation through the state machine, calling the stage
// agent for each state and recording its reply on the workflow state.
func (c *Coordinator) run(ctx context.Context, ws *WorkflowState) {
	history := c.log.History()
	for state := transition(StateInit, ws); state != StateDone; state = transition(state, ws) {
		c.logger.Debug("entering state", "state", state.String(), "trace_id", ws.TraceID)
		switch state {
		case StateIngesting:
			msg := core.NewMessage(core.StageCoordinator, core.StageIngestion, core.TypeDocumentIngestion, ws.TraceID, core.DocumentIngestionPayload{
				DocumentPath: ws.DocumentPath,
			})
			reply := c.ingestion.Process(ctx, msg)
			ws.IngestionResult = &reply
		case StateRetrieving:
			msg := core.NewMessage(core.StageCoordinator, core.StageRetrieval, core.TypeRetrievalRequest, ws.TraceID, core.RetrievalRequestPayload{
				Query: ws.Query,
			})
			reply := c.retrieval.Process(ctx, msg, history)
			ws.RetrievalResult = &reply
		case StateAnswering:
			if ws.RetrievalResult.Type == core.TypeError {
				ws.FinalResponse = ws.RetrievalResult
				continue
			}
			reply := c.response.Process(ctx, *ws.RetrievalResult, history)
			ws.FinalResponse = &reply
		}
	}
}

// grounded extracts the answer from a finished run. It reports false for a
// missing result, a stage error or the no-answer sentinel; all three mean
// the attempt did not answer the question.
func grounded(ws *WorkflowState) (answer string, sources []string, ok bool) {
	if ws.FinalResponse == nil {
		return "", nil, false
	}
	p, isResult := ws.FinalResponse.Payload.(core.ResponseResultPayload)
	if !isResult || p.Answer == core.NoAnswerSentinel {
		return "", nil, false
	}
	return p.Answer, p.Sources, true
}
