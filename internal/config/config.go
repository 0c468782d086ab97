package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port            string
	MongoDBURI      string
	MongoDBPassword string
	MongoDBName     string
	Environment     string
	LogLevel        string
	JWTSecret       string
	JWKSURL         string
	UploadTempDir   string
	UploadPhotoDir  string
	CORSOrigin      string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:            getEnvWithDefault("PORT", "8080"),
		MongoDBURI:      os.Getenv("MONGODB_URI"),
		MongoDBPassword: os.Getenv("MONGODB_PASSWORD"),
		MongoDBName:     getEnvWithDefault("MONGODB_DB", "staynest"),
		Environment:     getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:        getEnvWithDefault("LOG_LEVEL", "info"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		JWKSURL:         os.Getenv("AUTH_JWKS_URL"),
		UploadTempDir:   getEnvWithDefault("UPLOAD_TEMP_DIR", "uploads/temp"),
		UploadPhotoDir:  getEnvWithDefault("UPLOAD_PHOTO_DIR", "uploads/place-photos"),
		CORSOrigin:      getEnvWithDefault("CORS_ORIGIN", "http://localhost:3000"),
	}

	// Validate required fields
	if cfg.MongoDBURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.JWTSecret == "" && cfg.JWKSURL == "" {
		return nil, fmt.Errorf("either JWT_SECRET or AUTH_JWKS_URL is required")
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
