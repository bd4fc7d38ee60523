package config

import "os"

// GeminiModels defines which Gemini models to use for different tasks
type GeminiModels struct {
	// Survey is for questionnaire generation (needs to be fast)
	Survey string `json:"survey"`

	// Options is for dependent-option regeneration mid-survey (fast)
	Options string `json:"options"`

	// Profile is for the learning-profile narrative (quality matters)
	Profile string `json:"profile"`

	// Criteria is for evaluation-criteria extraction (fast, structured)
	Criteria string `json:"criteria"`

	// Queries is for extra/fallback search-query generation (fast)
	Queries string `json:"queries"`

	// Roadmap is for the final study-plan narrative (quality over speed)
	Roadmap string `json:"roadmap"`

	// Quiz is for knowledge-check generation
	Quiz string `json:"quiz"`

	// Chat is for free-form conversation turns
	Chat string `json:"chat"`
}

// GenerationOptions are the sampling parameters sent with every call.
type GenerationOptions struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	SafetyThreshold string  `json:"safetyThreshold"`
}

// AIConfig holds all AI-related configuration
type AIConfig struct {
	APIKey     string            `json:"-"` // Never serialize
	BaseURL    string            `json:"baseUrl"`
	Models     GeminiModels      `json:"models"`
	Generation GenerationOptions `json:"generation"`
	TimeoutMS  int               `json:"timeoutMs"`
	MaxRetries int               `json:"maxRetries"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		BaseURL: "https://generativelanguage.googleapis.com/v1beta/models",
		Models: GeminiModels{
			// Fast models for interactive operations
			Survey:   getEnvOrDefault("GEMINI_MODEL_SURVEY", "gemini-2.5-flash-preview-05-20"),
			Options:  getEnvOrDefault("GEMINI_MODEL_OPTIONS", "gemini-2.5-flash-preview-05-20"),
			Criteria: getEnvOrDefault("GEMINI_MODEL_CRITERIA", "gemini-2.0-flash"),
			Queries:  getEnvOrDefault("GEMINI_MODEL_QUERIES", "gemini-2.0-flash"),
			Chat:     getEnvOrDefault("GEMINI_MODEL_CHAT", "gemini-2.5-flash-preview-05-20"),

			// Quality models for narrative generation
			Profile: getEnvOrDefault("GEMINI_MODEL_PROFILE", "gemini-2.0-flash"),
			Roadmap: getEnvOrDefault("GEMINI_MODEL_ROADMAP", "gemini-2.0-flash"),
			Quiz:    getEnvOrDefault("GEMINI_MODEL_QUIZ", "gemini-2.0-flash"),
		},
		Generation: GenerationOptions{
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 4096,
			SafetyThreshold: "BLOCK_MEDIUM_AND_ABOVE",
		},
		TimeoutMS:  15000, // 15 second default timeout
		MaxRetries: 4,
	}
}

// IsEnabled returns true if the AI API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ModelEndpoint returns the full endpoint for a given model
func (c *AIConfig) ModelEndpoint(model string) string {
	return c.BaseURL + "/" + model + ":generateContent"
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
