package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .grocer.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to grocer! Let's configure your store assistant.")
	fmt.Println()

	cfg := DefaultConfig()

	modelPrompt := promptui.Select{
		Label: "Select chat model",
		Items: []string{"gpt-4o-mini", "gpt-4o"},
	}
	_, model, err := modelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("model selection: %w", err)
	}
	cfg.Model = model

	embedPrompt := promptui.Select{
		Label: "Select embedding model",
		Items: []string{"text-embedding-3-small", "text-embedding-3-large"},
	}
	_, embedModel, err := embedPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("embedding model selection: %w", err)
	}
	cfg.EmbeddingModel = embedModel

	catalogPrompt := promptui.Prompt{
		Label:   "Product catalog file (path or glob)",
		Default: cfg.Catalog,
	}
	catalog, err := catalogPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("catalog path: %w", err)
	}
	cfg.Catalog = catalog

	dataPrompt := promptui.Prompt{
		Label:   "Data directory (index + conversations)",
		Default: cfg.DataDir,
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	cfg.DataDir = dataDir

	portPrompt := promptui.Prompt{
		Label:   "Web chat port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			_, err := strconv.Atoi(s)
			return err
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(".grocer.yml"); err != nil {
		return nil, err
	}

	fmt.Println()
	fmt.Println("Saved .grocer.yml. Set OPENAI_API_KEY, then run `grocer index`.")
	return cfg, nil
}
