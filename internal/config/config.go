package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type DatasetConfig struct {
	GroundTruth   string   `toml:"ground_truth"`
	ImageRoot     string   `toml:"image_root"`
	TargetFolders []string `toml:"target_folders"`
}

type RunConfig struct {
	// Prompts lists the prompt-variant keys to sweep, in order.
	Prompts     []string `toml:"prompts"`
	MaxAttempts int      `toml:"max_attempts"`
}

type OutputConfig struct {
	ResultsDir string `toml:"results_dir"`
	EvalDir    string `toml:"eval_dir"`
}

type Config struct {
	LLM     LLMConfig     `toml:"llm"`
	Dataset DatasetConfig `toml:"dataset"`
	Run     RunConfig     `toml:"run"`
	Output  OutputConfig  `toml:"output"`

	// PromptTemplates overrides or extends the built-in prompt catalog.
	// Templates reference the probed object with the {object} placeholder.
	PromptTemplates map[string]string `toml:"prompt_templates"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a config with every default applied and no file loaded.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = "openai"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o"
	}
	if c.Dataset.GroundTruth == "" {
		c.Dataset.GroundTruth = "GroundTruth.csv"
	}
	if c.Dataset.ImageRoot == "" {
		c.Dataset.ImageRoot = "images"
	}
	if len(c.Run.Prompts) == 0 {
		c.Run.Prompts = []string{"baseline", "misleading1", "mitigate1"}
	}
	if c.Run.MaxAttempts == 0 {
		c.Run.MaxAttempts = 8
	}
	if c.Output.ResultsDir == "" {
		c.Output.ResultsDir = "results"
	}
	if c.Output.EvalDir == "" {
		c.Output.EvalDir = "evaluation_outputs"
	}
}

// ApplyEnv overrides file values with environment variables when present.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" && c.LLM.APIKey == "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("RESULTS_DIR"); v != "" {
		c.Output.ResultsDir = v
	}
	if v := os.Getenv("EVAL_DIR"); v != "" {
		c.Output.EvalDir = v
	}
}
