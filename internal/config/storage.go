package config

import "os"

// StorageConfig holds object-storage settings for uploads (avatars,
// history exports).
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool

	// PublicBaseURL, when set, is used to build the returned object URL
	// instead of the raw endpoint (e.g. a CDN front).
	PublicBaseURL string
}

// DefaultStorageConfig returns storage settings from the environment
func DefaultStorageConfig() *StorageConfig {
	return &StorageConfig{
		Endpoint:      getEnvOrDefault("STORAGE_ENDPOINT", "localhost:9000"),
		AccessKey:     os.Getenv("STORAGE_ACCESS_KEY"),
		SecretKey:     os.Getenv("STORAGE_SECRET_KEY"),
		Bucket:        getEnvOrDefault("STORAGE_BUCKET", "learnloop-uploads"),
		UseSSL:        os.Getenv("STORAGE_USE_SSL") == "true",
		PublicBaseURL: os.Getenv("STORAGE_PUBLIC_URL"),
	}
}

// IsEnabled returns true if object storage is configured
func (c *StorageConfig) IsEnabled() bool {
	return c.AccessKey != "" && c.SecretKey != ""
}
