// Package pgvector provides a PostgreSQL-backed index.Index using the
// pgvector extension for similarity search. Chunks are embedded through the
// injected embedder and ranked by cosine distance in SQL, so concurrent
// readers and writers rely on PostgreSQL's own guarantees.
package pgvector

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvec "github.com/pgvector/pgvector-go"
	pgxvec "github.com/pgvector/pgvector-go/pgx"

	"github.com/hupe1980/ragmesh/core"
	"github.com/hupe1980/ragmesh/embedding"
	"github.com/hupe1980/ragmesh/logging"
)

// Options configure the store.
type Options struct {
	// Table is the chunk table name.
	Table string
	// Dimensions is the embedding vector width; must match the embedder.
	Dimensions int
	// Logger for operational messages; nil means silent.
	Logger logging.Logger
}

// Store implements index.Index on PostgreSQL + pgvector.
type Store struct {
	pool     *pgxpool.Pool
	embedder embedding.Embedder
	opts     Options
}

// New connects a pool to url and ensures the extension and chunk table
// exist. Close the returned store when done.
func New(ctx context.Context, url string, embedder embedding.Embedder, optFns ...func(o *Options)) (*Store, error) {
	opts := Options{Table: "ragmesh_chunks", Dimensions: 1536}
	for _, fn := range optFns {
		fn(&opts)
	}
	opts.Logger = logging.OrNoOp(opts.Logger)

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvec.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	s := &Store{pool: pool, embedder: embedder, opts: opts}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// migrate creates the extension and chunk table if missing.
func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return fmt.Errorf("create vector extension: %w", err)
	}
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id            TEXT PRIMARY KEY,
		content       TEXT NOT NULL,
		source        TEXT NOT NULL,
		document_path TEXT NOT NULL,
		embedding     VECTOR(%d) NOT NULL
	)`, s.opts.Table, s.opts.Dimensions)
	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create chunk table: %w", err)
	}
	return nil
}

// Add implements index.Index. Each chunk is inserted under its ChunkID;
// identical content under distinct ids creates duplicate rows.
func (s *Store) Add(ctx context.Context, chunks []core.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("%w: embed chunks: %v", core.ErrIndexFailure, err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("%w: got %d vectors for %d chunks", core.ErrIndexFailure, len(vectors), len(chunks))
	}

	batch := &pgx.Batch{}
	sql := fmt.Sprintf(`INSERT INTO %s (id, content, source, document_path, embedding) VALUES ($1, $2, $3, $4, $5)`, s.opts.Table)
	for i, c := range chunks {
		batch.Queue(sql, c.Metadata.ChunkID, c.Content, c.Metadata.Source, c.Metadata.DocumentPath, pgvec.NewVector(vectors[i]))
	}
	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("%w: insert chunks: %v", core.ErrIndexFailure, err)
	}
	s.opts.Logger.Debug("indexed chunks", "count", len(chunks), "table", s.opts.Table)
	return nil
}

// Search implements index.Index ranking by cosine distance.
func (s *Store) Search(ctx context.Context, query string, k int) ([]core.ScoredChunk, error) {
	if k <= 0 {
		return nil, nil
	}
	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", core.ErrIndexFailure, err)
	}

	sql := fmt.Sprintf(`SELECT content, source, id, document_path, 1 - (embedding <=> $1) AS score
		FROM %s ORDER BY embedding <=> $1 LIMIT $2`, s.opts.Table)
	rows, err := s.pool.Query(ctx, sql, pgvec.NewVector(vectors[0]), k)
	if err != nil {
		return nil, fmt.Errorf("%w: search: %v", core.ErrIndexFailure, err)
	}
	defer rows.Close()

	var results []core.ScoredChunk
	for rows.Next() {
		var (
			sc    core.ScoredChunk
			score float64
		)
		if err := rows.Scan(&sc.Content, &sc.Metadata.Source, &sc.Metadata.ChunkID, &sc.Metadata.DocumentPath, &score); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", core.ErrIndexFailure, err)
		}
		sc.Score = float32(score)
		results = append(results, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: search: %v", core.ErrIndexFailure, err)
	}
	return results, nil
}

// Close releases the underlying pool.
func (s *Store) Close() { s.pool.Close() }
