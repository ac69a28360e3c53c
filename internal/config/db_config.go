package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type DBConfig struct {
	ConnectionString string `mapstructure:"connection_string"`
	Database         string `mapstructure:"database"`
}

func (config DBConfig) validate() error {
	if config.ConnectionString == "" {
		return fmt.Errorf("missing variable: db connection string")
	}
	if config.Database == "" {
		return fmt.Errorf("missing variable: db database name")
	}
	return nil
}

func (config DBConfig) bindEnvironmentVariables() error {
	if err := viper.BindEnv("db.connection_string", "DB_CONNECTION_STRING"); err != nil {
		return err
	}
	return viper.BindEnv("db.database", "DB_DATABASE")
}
