package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address        string  `mapstructure:"address"`
	MetricsAddress string  `mapstructure:"metrics_address"`
	Host           string  `mapstructure:"host"`
	SessionSecret  string  `mapstructure:"session_secret"`
	LoginMaxPerSec float64 `mapstructure:"login_max_per_sec"`
}

func (config ServerConfig) validate() error {
	var errs []error

	if config.Address == "" {
		errs = append(errs, fmt.Errorf("missing variable: address"))
	}
	if config.Host == "" {
		errs = append(errs, fmt.Errorf("missing variable: host"))
	}
	if config.SessionSecret == "" {
		errs = append(errs, fmt.Errorf("missing variable: session_secret"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config ServerConfig) bindEnvironmentVariables() error {

	if err := viper.BindEnv("server.address", "SERVER_ADDRESS"); err != nil {
		return err
	}

	if err := viper.BindEnv("server.metrics_address", "METRICS_ADDRESS"); err != nil {
		return err
	}

	if err := viper.BindEnv("server.host", "SERVER_HOST"); err != nil {
		return err
	}

	if err := viper.BindEnv("server.login_max_per_sec", "LOGIN_MAX_PER_SEC"); err != nil {
		return err
	}

	return viper.BindEnv("server.session_secret", "SESSION_SECRET")
}
