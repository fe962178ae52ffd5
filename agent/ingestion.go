package agent

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/hupe1980/ragmesh/core"
	"github.com/hupe1980/ragmesh/index"
	"github.com/hupe1980/ragmesh/logging"
	"github.com/hupe1980/ragmesh/parse"
	"github.com/hupe1980/ragmesh/split"
)

// IngestionAgent turns a raw document into indexed chunks. Re-ingesting the
// same document creates duplicate chunks; the index does not deduplicate.
type IngestionAgent struct {
	parser   parse.Parser
	splitter split.Splitter
	index    index.Index
	logger   logging.Logger
}

// NewIngestionAgent constructs the ingestion stage.
func NewIngestionAgent(parser parse.Parser, splitter split.Splitter, idx index.Index, logger logging.Logger) *IngestionAgent {
	return &IngestionAgent{parser: parser, splitter: splitter, index: idx, logger: logging.OrNoOp(logger)}
}

// Process handles an incoming message, answering with either an
// INGESTION_RESULT or an ERROR addressed back to the sender.
func (a *IngestionAgent) Process(ctx context.Context, msg core.Message) core.Message {
	if msg.Type != core.TypeDocumentIngestion {
		return errorReply(core.StageIngestion, msg, core.ErrorPayload{
			Error: fmt.Sprintf("unsupported message type: %s", msg.Type),
		})
	}
	req, ok := msg.Payload.(core.DocumentIngestionPayload)
	if !ok || req.DocumentPath == "" {
		return errorReply(core.StageIngestion, msg, core.ErrorPayload{
			Error: "no document path provided",
		})
	}

	text, err := a.parser.Parse(req.DocumentPath)
	if err != nil {
		a.logger.Warn("document parse failed", "path", req.DocumentPath, "error", err)
		return errorReply(core.StageIngestion, msg, core.ErrorPayload{
			Error:        fmt.Sprintf("error processing document: %v", err),
			DocumentPath: req.DocumentPath,
		})
	}

	pieces := a.splitter.Split(text)
	chunks := make([]core.Chunk, len(pieces))
	source := filepath.Base(req.DocumentPath)
	for i, piece := range pieces {
		chunks[i] = core.Chunk{
			Content: piece,
			Metadata: core.ChunkMetadata{
				Source:       source,
				ChunkID:      uuid.NewString(),
				DocumentPath: req.DocumentPath,
			},
		}
	}

	if err := a.index.Add(ctx, chunks); err != nil {
		a.logger.Warn("indexing failed", "path", req.DocumentPath, "error", err)
		return errorReply(core.StageIngestion, msg, core.ErrorPayload{
			Error:        fmt.Sprintf("error processing document: %v", err),
			DocumentPath: req.DocumentPath,
		})
	}

	a.logger.Info("document ingested", "path", req.DocumentPath, "chunks", len(chunks), "trace_id", msg.TraceID)
	return core.NewMessage(core.StageIngestion, msg.Sender, core.TypeIngestionResult, msg.TraceID, core.IngestionResultPayload{
		Status:       core.StatusSuccess,
		DocumentPath: req.DocumentPath,
		NumChunks:    len(chunks),
	})
}

// errorReply builds an ERROR message addressed back to the sender of msg.
func errorReply(from core.StageID, msg core.Message, payload core.ErrorPayload) core.Message {
	return core.NewMessage(from, msg.Sender, core.TypeError, msg.TraceID, payload)
}
