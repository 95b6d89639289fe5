package config

// Config is the top-level grocer configuration, corresponding to .grocer.yml.
type Config struct {
	// Model is the chat-completions model driving the agent.
	Model string `yaml:"model" koanf:"model"`
	// EmbeddingModel is the model used to embed product blobs and queries.
	EmbeddingModel string `yaml:"embedding_model" koanf:"embedding_model"`
	// Temperature is passed through to the chat model.
	Temperature float64 `yaml:"temperature" koanf:"temperature"`
	// Catalog is a path or doublestar glob selecting product feed files.
	Catalog string `yaml:"catalog" koanf:"catalog"`
	// DataDir holds the persisted vector index and the conversation DB.
	DataDir string `yaml:"data_dir" koanf:"data_dir"`
	// MaxTurns caps agent round-trips per query.
	MaxTurns int `yaml:"max_turns" koanf:"max_turns"`
	// Port is the web chat server port.
	Port int `yaml:"port" koanf:"port"`
	// SystemPrompt overrides the built-in assistant prompt when set.
	SystemPrompt string `yaml:"system_prompt,omitempty" koanf:"system_prompt"`
}
