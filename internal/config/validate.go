package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Generation.validate(); err != nil {
		return fmt.Errorf("generation: %w", err)
	}
	if c.OpenAI.Model == "" {
		return fmt.Errorf("openai.model must not be empty")
	}
	return nil
}

func (g *GenerationConfig) validate() error {
	if g.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be >= 1 (got %d)", g.MaxAttempts)
	}
	if g.SimilarityThreshold <= 0 || g.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity_threshold must be in (0,1] (got %v)", g.SimilarityThreshold)
	}
	if g.QueueTTL <= 0 {
		return fmt.Errorf("queue_ttl must be > 0 (got %v)", g.QueueTTL)
	}
	if g.SweepInterval <= 0 {
		return fmt.Errorf("sweep_interval must be > 0 (got %v)", g.SweepInterval)
	}
	if g.ContextTitles <= 0 {
		return fmt.Errorf("context_titles must be > 0 (got %d)", g.ContextTitles)
	}
	if g.CheckTitles < g.ContextTitles {
		return fmt.Errorf("check_titles must be >= context_titles (got %d < %d)", g.CheckTitles, g.ContextTitles)
	}
	if g.BaseTemperature <= 0 || g.BaseTemperature > 1 {
		return fmt.Errorf("base_temperature must be in (0,1] (got %v)", g.BaseTemperature)
	}
	if g.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", g.MaxTokens)
	}
	return nil
}
