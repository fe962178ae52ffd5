package core

// ChunkMetadata describes the origin of a chunk. Source is the human-readable
// label used for citation (typically the document's base name), ChunkID is
// unique per chunk, DocumentPath is the full path the chunk came from.
type ChunkMetadata struct {
	Source       string `json:"source"`
	ChunkID      string `json:"chunk_id"`
	DocumentPath string `json:"document_path"`
}

// Chunk is a bounded text span produced from a source document, the unit
// stored in and retrieved from the index.
type Chunk struct {
	Content  string        `json:"content"`
	Metadata ChunkMetadata `json:"metadata"`
}

// ScoredChunk is a chunk returned from a similarity search together with its
// relevance score (higher is more similar).
type ScoredChunk struct {
	Chunk
	Score float32 `json:"score"`
}
