package config

// JudgesConfig is the root of the judge prompt configuration file.
type JudgesConfig struct {
	Judges Judges `yaml:"judges"`
}

type Judges struct {
	DefaultModel ModelConfig          `yaml:"default_model"`
	Evaluators   []JudgeConfiguration `yaml:"evaluators"`
}

// JudgeConfiguration describes one LLM judge. Prompt is a text/template
// rendered with the extracted exchange (.Query, .Response, .Context).
type JudgeConfiguration struct {
	Name            string       `yaml:"name"`
	Enabled         bool         `yaml:"enabled"`
	Description     string       `yaml:"description"`
	RequiresContext bool         `yaml:"requires_context"`
	Prompt          string       `yaml:"prompt"`
	Model           *ModelConfig `yaml:"model,omitempty"`
}

type ModelConfig struct {
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// Enabled returns the enabled judges in file order.
func (c *JudgesConfig) Enabled() []JudgeConfiguration {
	var enabled []JudgeConfiguration
	for _, j := range c.Judges.Evaluators {
		if j.Enabled {
			enabled = append(enabled, j)
		}
	}
	return enabled
}
