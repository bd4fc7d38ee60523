package config

import (
	"os"
	"strconv"
)

// YouTubeConfig holds video-search configuration
type YouTubeConfig struct {
	APIKey            string  `json:"-"` // Never serialize
	BaseURL           string  `json:"baseUrl"`
	MaxResults        int     `json:"maxResults"`
	RequestsPerSecond float64 `json:"requestsPerSecond"`
	TimeoutMS         int     `json:"timeoutMs"`
}

// DefaultYouTubeConfig returns the default video-search configuration
func DefaultYouTubeConfig() *YouTubeConfig {
	maxResults := 25
	if v := os.Getenv("YOUTUBE_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 50 {
			maxResults = n
		}
	}
	return &YouTubeConfig{
		APIKey:            os.Getenv("YOUTUBE_API_KEY"),
		BaseURL:           getEnvOrDefault("YOUTUBE_BASE_URL", "https://www.googleapis.com/youtube/v3"),
		MaxResults:        maxResults,
		RequestsPerSecond: 4,
		TimeoutMS:         10000,
	}
}

// IsEnabled returns true if the search API is configured
func (c *YouTubeConfig) IsEnabled() bool {
	return c.APIKey != ""
}
