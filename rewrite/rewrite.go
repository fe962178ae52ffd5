// Package rewrite provides the query-rewrite capability used at two places in
// the workflow: by the retrieval stage when a search returns no usable
// passages, and by the coordinator when the answer stage reports that no
// grounded answer exists. The two call sites carry different prompts, so they
// are constructed as two distinct Rewriter instances.
package rewrite

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/ragmesh/core"
	"github.com/hupe1980/ragmesh/internal/util"
	"github.com/hupe1980/ragmesh/logging"
	"github.com/hupe1980/ragmesh/model"
)

// Rewriter reformulates a query into a self-contained form using prior
// conversation context. Implementations return the original query unchanged
// when no better formulation is produced.
type Rewriter interface {
	Rewrite(ctx context.Context, query, chatHistory string) (string, error)
}

const retrievalSystem = "You are a question re-writer that converts a vague or context-dependent input " +
	"question into a clearer and more specific version optimized for document or web search. " +
	"Use the chat history to understand the question's intent and make it self-contained. " +
	"Do not include explanations; only output the rewritten question."

const retrievalPrompt = "Conversation History:\n{{.ChatHistory}}\n\n" +
	"Original Query:\n{{.Question}}\n\n" +
	"Rewritten Query (only output the improved question):"

const conversationSystem = "You are a query reformulation assistant. Your job is to take a user query and the " +
	"preceding chat history, and rewrite the query as a complete, clear, and self-contained question. " +
	"If the user's current query is a follow-up or refers to something mentioned earlier, use the relevant " +
	"context from the chat history to make the new query meaningful on its own. " +
	"Your output must be a rewritten query that stands alone without requiring the previous conversation. " +
	"Do not provide any explanations; just return the rewritten query."

const conversationPrompt = "Conversation History:\n{{.ChatHistory}}\n\n" +
	"User's Latest Query:\n{{.Question}}\n\n" +
	"Rewritten Self-Contained Query:"

// ModelRewriter drives a completion model with a fixed prompt pair.
type ModelRewriter struct {
	model  model.Model
	system string
	prompt string
	logger logging.Logger
}

// NewRetrievalRewriter builds the search-oriented rewriter used by the
// retrieval stage after an empty result set.
func NewRetrievalRewriter(m model.Model, logger logging.Logger) *ModelRewriter {
	return &ModelRewriter{model: m, system: retrievalSystem, prompt: retrievalPrompt, logger: logging.OrNoOp(logger)}
}

// NewConversationRewriter builds the general reformulation rewriter used by
// the coordinator after a failed answer.
func NewConversationRewriter(m model.Model, logger logging.Logger) *ModelRewriter {
	return &ModelRewriter{model: m, system: conversationSystem, prompt: conversationPrompt, logger: logging.OrNoOp(logger)}
}

// Rewrite implements Rewriter. An empty model output falls back to the
// original query; model failures wrap core.ErrModelCall.
func (r *ModelRewriter) Rewrite(ctx context.Context, query, chatHistory string) (string, error) {
	prompt, err := util.RenderTemplate(r.prompt, map[string]any{
		"Question":    query,
		"ChatHistory": chatHistory,
	})
	if err != nil {
		return "", fmt.Errorf("render rewrite prompt: %w", err)
	}

	resp, err := r.model.Complete(ctx, model.Request{System: r.system, Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("%w: rewrite: %v", core.ErrModelCall, err)
	}

	rewritten := strings.TrimSpace(resp.Text)
	if rewritten == "" {
		r.logger.Debug("rewrite produced empty output, keeping original query", "query", query)
		return query, nil
	}
	r.logger.Debug("query rewritten", "from", query, "to", rewritten)
	return rewritten, nil
}

// Static returns a fixed rewrite regardless of input; Empty output falls back
// to the original query. Intended for tests.
type Static struct {
	Output string
	// Calls counts Rewrite invocations.
	Calls int
}

// Rewrite implements Rewriter.
func (s *Static) Rewrite(_ context.Context, query, _ string) (string, error) {
	s.Calls++
	if s.Output == "" {
		return query, nil
	}
	return s.Output, nil
}
