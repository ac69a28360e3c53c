package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type UploadsConfig struct {
	Dir          string `mapstructure:"dir"`
	MaxSizeBytes int64  `mapstructure:"max_size_bytes"`
}

func (config UploadsConfig) validate() error {
	if config.Dir == "" {
		return fmt.Errorf("missing variable: uploads dir")
	}
	if config.MaxSizeBytes <= 0 {
		return fmt.Errorf("uploads max_size_bytes must be greater than zero")
	}
	return nil
}

func (config UploadsConfig) bindEnvironmentVariables() error {
	if err := viper.BindEnv("uploads.dir", "UPLOADS_DIR"); err != nil {
		return err
	}
	return viper.BindEnv("uploads.max_size_bytes", "UPLOADS_MAX_SIZE_BYTES")
}
