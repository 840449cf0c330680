package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	DatabaseURL        string
	Port               string
	GoEnv              string
	DatasetPath        string
	DatasetS3Key       string
	AWSRegion          string
	AWSS3Bucket        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	TargetFoodCostPct  float64
	CORSAllowOrigin    string
	LogLevel           string
}

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	// Determine which environment file to load
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Try to load environment-specific file first
	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		// If environment-specific file doesn't exist, try .env
		if err := godotenv.Load(); err != nil {
			// In production, environment variables are set directly
			// so it's okay if .env files don't exist
			log.Printf("No .env file found, using system environment variables")
		}
	} else {
		log.Printf("Loaded configuration from %s", envFile)
	}

	config := &Config{
		DatabaseURL:        getEnv("DATABASE_URL", "file:menu_analytics.db"),
		Port:               getEnv("PORT", "8080"),
		GoEnv:              getEnv("GO_ENV", "development"),
		DatasetPath:        getEnv("DATASET_PATH", "data/restaurant_pos_data.csv"),
		DatasetS3Key:       getEnv("DATASET_S3_KEY", ""),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSS3Bucket:        getEnv("AWS_S3_BUCKET", ""),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		TargetFoodCostPct:  getEnvFloat("TARGET_FOOD_COST_PCT", 32.0),
		CORSAllowOrigin:    getEnv("CORS_ALLOW_ORIGIN", "*"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that all required configuration values are set
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.DatasetPath == "" && c.DatasetS3Key == "" {
		return fmt.Errorf("either DATASET_PATH or DATASET_S3_KEY is required")
	}
	if c.DatasetS3Key != "" && c.AWSS3Bucket == "" {
		return fmt.Errorf("AWS_S3_BUCKET is required when DATASET_S3_KEY is set")
	}
	if c.TargetFoodCostPct <= 0 || c.TargetFoodCostPct >= 100 {
		return fmt.Errorf("TARGET_FOOD_COST_PCT must be between 0 and 100")
	}
	return nil
}

// UsesS3Dataset returns true if the dataset should be fetched from S3
func (c *Config) UsesS3Dataset() bool {
	return c.DatasetS3Key != ""
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// GetDatabaseURL returns the database URL
func (c *Config) GetDatabaseURL() string {
	return c.DatabaseURL
}

var configInstance *Config

// GetConfig returns the loaded configuration instance
func GetConfig() *Config {
	return configInstance
}

// SetConfig sets the configuration instance (primarily for testing)
func SetConfig(cfg *Config) {
	configInstance = cfg
}

// InitConfig loads the configuration and stores it as the active instance
func InitConfig() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	configInstance = cfg
	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvFloat retrieves a float environment variable or returns a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default %.1f", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
