// Package llm provides the LLM client abstraction and Gemini implementation
// used for skill extraction and resume writing.
package llm

// ModelTier selects a model by task complexity.
type ModelTier string

const (
	// TierExtract is for structured extraction: skills, job requirements.
	TierExtract ModelTier = "extract"
	// TierGenerate is for long-form resume writing and refinement.
	TierGenerate ModelTier = "generate"
)

// Config holds the per-tier model selection.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini model selection.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierExtract:  "gemini-2.5-flash",
			TierGenerate: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model for a tier, falling back to the extract model.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	return c.Models[TierExtract]
}

// WithModel returns a copy of the config with one tier overridden.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := &Config{Models: make(map[ModelTier]string, len(c.Models))}
	for k, v := range c.Models {
		out.Models[k] = v
	}
	out.Models[tier] = model
	return out
}
