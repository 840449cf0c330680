package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name: "valid local dataset config",
			config: Config{
				DatabaseURL:       "file::memory:",
				DatasetPath:       "data/restaurant_pos_data.csv",
				TargetFoodCostPct: 32.0,
			},
			wantErr: "",
		},
		{
			name: "valid S3 dataset config",
			config: Config{
				DatabaseURL:       "file::memory:",
				DatasetS3Key:      "datasets/restaurant_pos_data.csv",
				AWSS3Bucket:       "harborview-datasets",
				TargetFoodCostPct: 30.0,
			},
			wantErr: "",
		},
		{
			name: "missing database URL",
			config: Config{
				DatasetPath:       "data/restaurant_pos_data.csv",
				TargetFoodCostPct: 32.0,
			},
			wantErr: "DATABASE_URL is required",
		},
		{
			name: "missing dataset source",
			config: Config{
				DatabaseURL:       "file::memory:",
				TargetFoodCostPct: 32.0,
			},
			wantErr: "either DATASET_PATH or DATASET_S3_KEY is required",
		},
		{
			name: "S3 key without bucket",
			config: Config{
				DatabaseURL:       "file::memory:",
				DatasetS3Key:      "datasets/restaurant_pos_data.csv",
				TargetFoodCostPct: 32.0,
			},
			wantErr: "AWS_S3_BUCKET is required when DATASET_S3_KEY is set",
		},
		{
			name: "target food cost out of range",
			config: Config{
				DatabaseURL:       "file::memory:",
				DatasetPath:       "data/restaurant_pos_data.csv",
				TargetFoodCostPct: 120.0,
			},
			wantErr: "TARGET_FOOD_COST_PCT must be between 0 and 100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestUsesS3Dataset(t *testing.T) {
	cfg := Config{DatasetPath: "data/restaurant_pos_data.csv"}
	assert.False(t, cfg.UsesS3Dataset())

	cfg.DatasetS3Key = "datasets/restaurant_pos_data.csv"
	assert.True(t, cfg.UsesS3Dataset())
}

func TestEnvironmentHelpers(t *testing.T) {
	cfg := Config{GoEnv: "test"}
	assert.True(t, cfg.IsTest())
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())

	cfg.GoEnv = "production"
	assert.True(t, cfg.IsProduction())

	cfg.GoEnv = "development"
	assert.True(t, cfg.IsDevelopment())
}

func TestGetEnvFloat(t *testing.T) {
	os.Setenv("TEST_FLOAT_VALUE", "28.5")
	defer os.Unsetenv("TEST_FLOAT_VALUE")
	assert.Equal(t, 28.5, getEnvFloat("TEST_FLOAT_VALUE", 32.0))

	os.Setenv("TEST_FLOAT_VALUE", "not-a-number")
	assert.Equal(t, 32.0, getEnvFloat("TEST_FLOAT_VALUE", 32.0))

	os.Unsetenv("TEST_FLOAT_VALUE")
	assert.Equal(t, 32.0, getEnvFloat("TEST_FLOAT_VALUE", 32.0))
}
