package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/ragmesh/core"
	"github.com/hupe1980/ragmesh/index"
	"github.com/hupe1980/ragmesh/logging"
	"github.com/hupe1980/ragmesh/rewrite"
)

// DefaultTopK is the number of candidates requested per similarity search.
const DefaultTopK = 5

// RetrievalAgent turns a query into ranked supporting passages. When a search
// yields no usable passage it rewrites the query once and retries once; the
// retry's outcome is final.
type RetrievalAgent struct {
	index    index.Index
	rewriter rewrite.Rewriter
	topK     int
	logger   logging.Logger
}

// NewRetrievalAgent constructs the retrieval stage. topK values below one
// fall back to DefaultTopK.
func NewRetrievalAgent(idx index.Index, rewriter rewrite.Rewriter, topK int, logger logging.Logger) *RetrievalAgent {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &RetrievalAgent{index: idx, rewriter: rewriter, topK: topK, logger: logging.OrNoOp(logger)}
}

// Process handles an incoming message. chatHistory is the formatted
// conversation snapshot supplied by the coordinator. Successful results are
// addressed to the response stage; errors go back to the sender.
func (a *RetrievalAgent) Process(ctx context.Context, msg core.Message, chatHistory string) core.Message {
	if msg.Type != core.TypeRetrievalRequest {
		return errorReply(core.StageRetrieval, msg, core.ErrorPayload{
			Error: fmt.Sprintf("unsupported message type: %s", msg.Type),
		})
	}
	req, ok := msg.Payload.(core.RetrievalRequestPayload)
	if !ok || req.Query == "" {
		return errorReply(core.StageRetrieval, msg, core.ErrorPayload{
			Error: "no query provided",
		})
	}

	query := req.Query
	results, err := a.searchValid(ctx, query)
	if err != nil {
		return a.indexError(msg, query, err)
	}

	if len(results) == 0 {
		rewritten, err := a.rewriter.Rewrite(ctx, query, chatHistory)
		if err != nil {
			a.logger.Warn("query rewrite failed", "query", query, "error", err)
			return errorReply(core.StageRetrieval, msg, core.ErrorPayload{
				Error: fmt.Sprintf("error rewriting query: %v", err),
				Query: query,
			})
		}
		a.logger.Debug("retrying retrieval with rewritten query", "original", query, "rewritten", rewritten, "trace_id", msg.TraceID)
		query = rewritten
		if results, err = a.searchValid(ctx, query); err != nil {
			return a.indexError(msg, query, err)
		}
	}

	retrieved := make([]string, 0, len(results))
	sources := make([]string, 0, len(results))
	seen := make(map[string]struct{}, len(results))
	for _, r := range results {
		retrieved = append(retrieved, r.Content)
		source := r.Metadata.Source
		if source == "" {
			source = "Unknown"
		}
		if _, ok := seen[source]; !ok {
			seen[source] = struct{}{}
			sources = append(sources, source)
		}
	}

	a.logger.Info("retrieval completed", "query", query, "passages", len(retrieved), "trace_id", msg.TraceID)
	return core.NewMessage(core.StageRetrieval, core.StageResponse, core.TypeRetrievalResult, msg.TraceID, core.RetrievalResultPayload{
		RetrievedContext: retrieved,
		Sources:          sources,
		Query:            query,
	})
}

// searchValid runs one top-K search and drops degenerate candidates.
func (a *RetrievalAgent) searchValid(ctx context.Context, query string) ([]core.ScoredChunk, error) {
	results, err := a.index.Search(ctx, query, a.topK)
	if err != nil {
		return nil, err
	}
	valid := results[:0]
	for _, r := range results {
		if isValidContent(r.Content) {
			valid = append(valid, r)
		}
	}
	return valid, nil
}

func (a *RetrievalAgent) indexError(msg core.Message, query string, err error) core.Message {
	a.logger.Warn("retrieval failed", "query", query, "error", err)
	return errorReply(core.StageRetrieval, msg, core.ErrorPayload{
		Error: fmt.Sprintf("error retrieving documents: %v", err),
		Query: query,
	})
}

// isValidContent rejects empty passages and passages consisting only of
// whitespace and the "-" filler used for section separators.
func isValidContent(content string) bool {
	stripped := strings.ReplaceAll(strings.TrimSpace(content), "-", "")
	return strings.TrimSpace(stripped) != ""
}
