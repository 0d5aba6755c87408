package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"
)

const defaultMaxTokens = 256

//go:embed judges.yaml
var defaultJudgesYAML []byte

// LoadJudgesConfig reads the judge configuration from JUDGES_CONFIG_PATH, or
// the built-in relevance/faithfulness configuration when the variable is unset.
func LoadJudgesConfig() (*JudgesConfig, error) {
	path := os.Getenv("JUDGES_CONFIG_PATH")
	if path == "" {
		return ParseJudgesConfig(defaultJudgesYAML)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return ParseJudgesConfig(data)
}

func ParseJudgesConfig(data []byte) (*JudgesConfig, error) {
	var cfg JudgesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *JudgesConfig) {
	if cfg.Judges.DefaultModel.MaxTokens == 0 {
		cfg.Judges.DefaultModel.MaxTokens = defaultMaxTokens
	}

	for i := range cfg.Judges.Evaluators {
		judge := &cfg.Judges.Evaluators[i]
		if judge.Model == nil {
			model := cfg.Judges.DefaultModel
			judge.Model = &model
			continue
		}
		if judge.Model.MaxTokens == 0 {
			judge.Model.MaxTokens = cfg.Judges.DefaultModel.MaxTokens
		}
		if judge.Model.Temperature == 0 {
			judge.Model.Temperature = cfg.Judges.DefaultModel.Temperature
		}
	}
}

func (c *JudgesConfig) Validate() error {
	if len(c.Judges.Evaluators) == 0 {
		return errors.New("no judges configured")
	}

	if err := validateModel("default_model", c.Judges.DefaultModel); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Judges.Evaluators))
	for i, judge := range c.Judges.Evaluators {
		if judge.Name == "" {
			return fmt.Errorf("judge at index %d: missing name", i)
		}
		if seen[judge.Name] {
			return fmt.Errorf("duplicate judge name: %s", judge.Name)
		}
		seen[judge.Name] = true

		if judge.Prompt == "" {
			return fmt.Errorf("judge %s: missing prompt", judge.Name)
		}
		if _, err := template.New(judge.Name).Parse(judge.Prompt); err != nil {
			return fmt.Errorf("judge %s: invalid prompt template: %w", judge.Name, err)
		}

		if judge.Model != nil {
			if err := validateModel("judge "+judge.Name, *judge.Model); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateModel(owner string, model ModelConfig) error {
	if model.MaxTokens < 0 {
		return fmt.Errorf("%s: negative max_tokens %d", owner, model.MaxTokens)
	}
	if model.Temperature < 0 || model.Temperature > 1 {
		return fmt.Errorf("%s: invalid temperature %.2f, must be between 0 and 1", owner, model.Temperature)
	}
	return nil
}
