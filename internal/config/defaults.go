package config

// DefaultConfig returns a Config with sensible defaults: the small OpenAI
// models and everything under ./.grocer.
func DefaultConfig() *Config {
	return &Config{
		Model:          "gpt-4o-mini",
		EmbeddingModel: "text-embedding-3-small",
		Temperature:    0.7,
		Catalog:        "products.txt",
		DataDir:        ".grocer",
		MaxTurns:       8,
		Port:           8820,
	}
}
