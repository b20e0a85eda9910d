package mediastore

import (
	"errors"
	"fmt"

	"github.com/slotpress/slotpress/internal/pkg/env"
)

// Config holds media storage configuration
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
	EndpointURL     string // Optional for S3-compatible services
	PublicBaseURL   string // CDN or bucket URL media links are built from
	Enabled         bool
}

// LoadConfig loads media storage configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		AccessKeyID:     env.GetEnv("MEDIA_S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("MEDIA_S3_SECRET_ACCESS_KEY", ""),
		Region:          env.GetEnv("MEDIA_S3_REGION", "eu-central-1"),
		BucketName:      env.GetEnv("MEDIA_S3_BUCKET_NAME", ""),
		EndpointURL:     env.GetEnv("MEDIA_S3_ENDPOINT_URL", ""),
		PublicBaseURL:   env.GetEnv("MEDIA_PUBLIC_BASE_URL", ""),
		Enabled:         env.GetEnv("MEDIA_S3_ENABLED", "false") == "true",
	}

	if config.Enabled {
		if config.AccessKeyID == "" {
			return nil, errors.New("MEDIA_S3_ACCESS_KEY_ID is required when media storage is enabled")
		}
		if config.SecretAccessKey == "" {
			return nil, errors.New("MEDIA_S3_SECRET_ACCESS_KEY is required when media storage is enabled")
		}
		if config.BucketName == "" {
			return nil, errors.New("MEDIA_S3_BUCKET_NAME is required when media storage is enabled")
		}
	}

	return config, nil
}

// IsEnabled returns true if media storage is enabled
func (c *Config) IsEnabled() bool {
	return c.Enabled
}

// PosterKey generates the object key for a clip poster image
func (c *Config) PosterKey(clipUUID string, year, month int) string {
	return fmt.Sprintf("posters/%04d/%02d/%s.jpg", year, month, clipUUID)
}

// MerchImageKey generates the object key for a merch item image
func (c *Config) MerchImageKey(slug string, year, month int) string {
	return fmt.Sprintf("merch/%04d/%02d/%s.jpg", year, month, slug)
}

// PublicURL builds the public URL for an object key
func (c *Config) PublicURL(objectKey string) string {
	if c.PublicBaseURL != "" {
		return c.PublicBaseURL + "/" + objectKey
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.BucketName, c.Region, objectKey)
}
