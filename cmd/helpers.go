package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ziadkadry99/grocer/internal/agent"
	"github.com/ziadkadry99/grocer/internal/assistant"
	"github.com/ziadkadry99/grocer/internal/catalog"
	"github.com/ziadkadry99/grocer/internal/config"
	"github.com/ziadkadry99/grocer/internal/db"
	"github.com/ziadkadry99/grocer/internal/embeddings"
	"github.com/ziadkadry99/grocer/internal/llm"
	"github.com/ziadkadry99/grocer/internal/progress"
	"github.com/ziadkadry99/grocer/internal/vectordb"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `grocer init` to create a config file", err)
	}
	return cfg, nil
}

// apiKey reads the OpenAI key from the environment.
func apiKey() (string, error) {
	key := os.Getenv(config.APIKeyEnvVar)
	if key == "" {
		return "", fmt.Errorf("%s environment variable is required", config.APIKeyEnvVar)
	}
	return key, nil
}

// createEmbedder creates an embeddings.Embedder based on config.
func createEmbedder(cfg *config.Config) (embeddings.Embedder, error) {
	key, err := apiKey()
	if err != nil {
		return nil, err
	}
	return embeddings.NewOpenAIEmbedder(key, embeddings.OpenAIModel(cfg.EmbeddingModel)), nil
}

// createProvider creates the chat LLM provider based on config.
func createProvider(cfg *config.Config) (llm.Provider, error) {
	key, err := apiKey()
	if err != nil {
		return nil, err
	}
	return llm.NewOpenAIProvider(key, cfg.Model), nil
}

// openIndex loads the catalog and builds or loads the vector index under the
// data dir. Progress is reported on the terminal unless silent is set.
func openIndex(ctx context.Context, cfg *config.Config, rebuild, silent bool) (*catalog.Catalog, vectordb.Index, error) {
	cat, err := catalog.LoadGlob(cfg.Catalog)
	if err != nil {
		return nil, nil, fmt.Errorf("loading catalog: %w", err)
	}
	if cat.Len() == 0 {
		return nil, nil, fmt.Errorf("catalog %s has no products", cfg.Catalog)
	}

	embedder, err := createEmbedder(cfg)
	if err != nil {
		return nil, nil, err
	}

	var reporter progress.Reporter = progress.NewReporter()
	if silent {
		reporter = progress.Silent{}
	}

	idx, err := vectordb.BuildOrLoad(ctx, cfg.DataDir, cat, embedder, reporter, rebuild)
	if err != nil {
		return nil, nil, fmt.Errorf("building vector index: %w", err)
	}
	return cat, idx, nil
}

// openAssistant wires the full stack: catalog, index, provider, thread store,
// and agent loop. The returned closer releases the thread database.
func openAssistant(ctx context.Context, cfg *config.Config, silent bool) (*assistant.Assistant, func() error, error) {
	cat, idx, err := openIndex(ctx, cfg, false, silent)
	if err != nil {
		return nil, nil, err
	}

	provider, err := createProvider(cfg)
	if err != nil {
		return nil, nil, err
	}

	database, err := db.Open(filepath.Join(cfg.DataDir, "grocer.db"))
	if err != nil {
		return nil, nil, fmt.Errorf("opening thread database: %w", err)
	}

	a := assistant.New(cat, idx, provider, db.NewThreadStore(database), agent.Options{
		Model:        cfg.Model,
		Temperature:  cfg.Temperature,
		MaxTurns:     cfg.MaxTurns,
		SystemPrompt: cfg.SystemPrompt,
		Verbose:      verbose,
	})
	return a, database.Close, nil
}
