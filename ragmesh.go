// Package ragmesh provides a high-level façade over the pipeline packages
// (parsing, splitting, indexing, models and the workflow coordinator)
// enabling rapid construction of retrieval-augmented question answering.
// Most applications interact with this package by:
//  1. Creating a RagMesh via New() (optionally overriding the defaults)
//  2. Feeding documents with ProcessDocument
//  3. Asking questions with ProcessQuery
//
// The façade delegates orchestration to workflow.Coordinator while keeping
// setup ergonomics concise. All defaults are safe for local development and
// testing: a mock model, an in-memory index over a deterministic embedder and
// a no-op logger. Production deployments supply real model clients, a durable
// index and a structured logger.
package ragmesh

import (
	"context"

	"github.com/hupe1980/ragmesh/agent"
	"github.com/hupe1980/ragmesh/config"
	"github.com/hupe1980/ragmesh/core"
	"github.com/hupe1980/ragmesh/embedding"
	"github.com/hupe1980/ragmesh/index"
	"github.com/hupe1980/ragmesh/logging"
	"github.com/hupe1980/ragmesh/model"
	"github.com/hupe1980/ragmesh/parse"
	"github.com/hupe1980/ragmesh/rewrite"
	"github.com/hupe1980/ragmesh/split"
	"github.com/hupe1980/ragmesh/workflow"
)

// Options configures the RagMesh instance.
type Options struct {
	// Parser turns document files into text (defaults to the multi-format
	// DocumentParser).
	Parser parse.Parser

	// Splitter cuts parsed text into chunks. When nil a recursive splitter
	// with ChunkSize/ChunkOverlap is used.
	Splitter split.Splitter

	// Index stores and searches chunks (defaults to an in-memory index over
	// a deterministic fake embedder).
	Index index.Index

	// AnswerModel generates grounded answers (defaults to a mock model).
	AnswerModel model.Model

	// RewriteModel drives both query rewriters. When nil the AnswerModel is
	// reused.
	RewriteModel model.Model

	// ChunkSize and ChunkOverlap configure the default splitter; ignored
	// when Splitter is set explicitly.
	ChunkSize    int
	ChunkOverlap int

	// TopK is the number of candidates per similarity search.
	TopK int

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// WithParser overrides the document parser.
func WithParser(p parse.Parser) func(*Options) {
	return func(o *Options) { o.Parser = p }
}

// WithSplitter overrides the chunk splitter.
func WithSplitter(s split.Splitter) func(*Options) {
	return func(o *Options) { o.Splitter = s }
}

// WithIndex overrides the chunk index.
func WithIndex(idx index.Index) func(*Options) {
	return func(o *Options) { o.Index = idx }
}

// WithAnswerModel sets the model used for answer generation.
func WithAnswerModel(m model.Model) func(*Options) {
	return func(o *Options) { o.AnswerModel = m }
}

// WithRewriteModel sets the model used for query rewriting.
func WithRewriteModel(m model.Model) func(*Options) {
	return func(o *Options) { o.RewriteModel = m }
}

// WithChunkSize sets the splitter chunk size in characters.
func WithChunkSize(size int) func(*Options) {
	return func(o *Options) { o.ChunkSize = size }
}

// WithChunkOverlap sets the splitter chunk overlap in characters.
func WithChunkOverlap(overlap int) func(*Options) {
	return func(o *Options) { o.ChunkOverlap = overlap }
}

// WithTopK sets the similarity search candidate count.
func WithTopK(k int) func(*Options) {
	return func(o *Options) { o.TopK = k }
}

// WithLogger sets the logger shared by all stages.
func WithLogger(l logging.Logger) func(*Options) {
	return func(o *Options) { o.Logger = l }
}

// RagMesh is the high-level façade aggregating the pipeline stages behind a
// single coordinator.
type RagMesh struct {
	opts        Options
	coordinator *workflow.Coordinator
}

// New creates a RagMesh instance with optional overrides. Any unset
// dependency is initialized with a local in-process implementation.
func New(optFns ...func(o *Options)) *RagMesh {
	opts := Options{
		ChunkSize:    config.DefaultChunkSize,
		ChunkOverlap: config.DefaultChunkOverlap,
		TopK:         config.DefaultTopK,
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Parser == nil {
		opts.Parser = parse.NewDocumentParser()
	}
	if opts.Splitter == nil {
		opts.Splitter = split.NewRecursiveSplitter(opts.ChunkSize, opts.ChunkOverlap)
	}
	if opts.Index == nil {
		opts.Index = index.NewMemory(&embedding.Fake{})
	}
	if opts.AnswerModel == nil {
		opts.AnswerModel = model.NewMockModel("ragmesh-default")
	}
	if opts.RewriteModel == nil {
		opts.RewriteModel = opts.AnswerModel
	}

	coordinator := workflow.NewCoordinator(
		agent.NewIngestionAgent(opts.Parser, opts.Splitter, opts.Index, opts.Logger),
		agent.NewRetrievalAgent(opts.Index, rewrite.NewRetrievalRewriter(opts.RewriteModel, opts.Logger), opts.TopK, opts.Logger),
		agent.NewResponseAgent(opts.AnswerModel, opts.Logger),
		rewrite.NewConversationRewriter(opts.RewriteModel, opts.Logger),
		opts.Logger,
	)
	return &RagMesh{opts: opts, coordinator: coordinator}
}

// ProcessDocument ingests the document at path into the index.
func (r *RagMesh) ProcessDocument(ctx context.Context, path string) (core.IngestionResultPayload, error) {
	return r.coordinator.ProcessDocument(ctx, path)
}

// ProcessQuery answers a question against the ingested material.
func (r *RagMesh) ProcessQuery(ctx context.Context, query string) (workflow.Response, error) {
	return r.coordinator.ProcessQuery(ctx, query)
}

// Memory exposes the conversation log.
func (r *RagMesh) Memory() *workflow.ConversationLog {
	return r.coordinator.Memory()
}
