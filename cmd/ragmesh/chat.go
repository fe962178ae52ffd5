package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hupe1980/ragmesh"
	"github.com/hupe1980/ragmesh/config"
	"github.com/hupe1980/ragmesh/embedding"
	embeddingopenai "github.com/hupe1980/ragmesh/embedding/openai"
	"github.com/hupe1980/ragmesh/index"
	"github.com/hupe1980/ragmesh/index/pgvector"
	"github.com/hupe1980/ragmesh/logging"
	modelanthropic "github.com/hupe1980/ragmesh/model/anthropic"
	modelopenai "github.com/hupe1980/ragmesh/model/openai"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the interactive chat session",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(&logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: cfg.LogFormat,
		Output: os.Stderr,
	})

	mesh, cleanup, err := buildMesh(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Println("ragmesh chat. Upload documents with /upload <path>, ask questions as plain text.")
	fmt.Println("Type /exit or press Ctrl+D to quit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println("\nGoodbye.")
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if handleCommand(ctx, mesh, input) {
				break
			}
			continue
		}

		resp, err := mesh.ProcessQuery(ctx, input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		fmt.Println(resp.Content)
		for i, source := range resp.Sources {
			fmt.Printf("  [%d] %s\n", i+1, source)
		}
		fmt.Println()
	}

	return scanner.Err()
}

// handleCommand processes a slash command, reporting whether the loop should
// exit.
func handleCommand(ctx context.Context, mesh *ragmesh.RagMesh, input string) bool {
	parts := strings.Fields(input)
	switch parts[0] {
	case "/exit", "/quit":
		fmt.Println("Goodbye.")
		return true
	case "/upload":
		if len(parts) < 2 {
			fmt.Println("Usage: /upload <path>")
			return false
		}
		path := strings.TrimSpace(strings.TrimPrefix(input, "/upload"))
		result, err := mesh.ProcessDocument(ctx, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Upload failed: %v\n", err)
			return false
		}
		fmt.Printf("Uploaded %s (%d chunks)\n", result.DocumentPath, result.NumChunks)
	case "/help":
		fmt.Println("Commands:")
		fmt.Println("  /upload <path>  ingest a document")
		fmt.Println("  /exit           quit")
	default:
		fmt.Printf("Unknown command %s (try /help)\n", parts[0])
	}
	return false
}

// buildMesh wires the pipeline from configuration. Without an OpenAI key the
// mesh runs fully in-process on the mock model, which is only useful for
// trying out the plumbing.
func buildMesh(ctx context.Context, cfg *config.Config, logger logging.Logger) (*ragmesh.RagMesh, func(), error) {
	cleanup := func() {}

	opts := []func(*ragmesh.Options){
		ragmesh.WithLogger(logger),
		ragmesh.WithChunkSize(cfg.ChunkSize),
		ragmesh.WithChunkOverlap(cfg.ChunkOverlap),
		ragmesh.WithTopK(cfg.TopK),
	}

	var embedder embedding.Embedder = &embedding.Fake{}
	if cfg.OpenAIAPIKey != "" {
		embedder = embeddingopenai.NewEmbedder(func(o *embeddingopenai.Options) {
			o.APIKey = cfg.OpenAIAPIKey
		})
		opts = append(opts, ragmesh.WithAnswerModel(modelopenai.NewModel(func(o *modelopenai.Options) {
			o.APIKey = cfg.OpenAIAPIKey
		})))
		logger.Info("using OpenAI for answers and embeddings")
	} else {
		logger.Warn("OPENAI_API_KEY not set, falling back to the mock model")
	}

	if cfg.AnthropicAPIKey != "" {
		opts = append(opts, ragmesh.WithRewriteModel(modelanthropic.NewModel(func(o *modelanthropic.Options) {
			o.APIKey = cfg.AnthropicAPIKey
		})))
		logger.Info("using Anthropic for query rewriting")
	}

	var idx index.Index = index.NewMemory(embedder)
	if cfg.PostgresURL != "" {
		store, err := pgvector.New(ctx, cfg.PostgresURL, embedder, func(o *pgvector.Options) {
			o.Logger = logger
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect pgvector index: %w", err)
		}
		cleanup = store.Close
		idx = store
		logger.Info("using pgvector index")
	}
	opts = append(opts, ragmesh.WithIndex(idx))

	return ragmesh.New(opts...), cleanup, nil
}
