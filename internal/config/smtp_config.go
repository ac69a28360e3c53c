package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

func (config SMTPConfig) validate() error {
	var errs []error

	if config.Host == "" {
		errs = append(errs, fmt.Errorf("missing variable: smtp host"))
	}
	if config.Port == 0 {
		errs = append(errs, fmt.Errorf("missing variable: smtp port"))
	}
	if config.From == "" {
		errs = append(errs, fmt.Errorf("missing variable: smtp from"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config SMTPConfig) bindEnvironmentVariables() error {

	if err := viper.BindEnv("smtp.host", "SMTP_HOST"); err != nil {
		return err
	}

	if err := viper.BindEnv("smtp.port", "SMTP_PORT"); err != nil {
		return err
	}

	if err := viper.BindEnv("smtp.user", "SMTP_USER"); err != nil {
		return err
	}

	if err := viper.BindEnv("smtp.password", "SMTP_PASSWORD"); err != nil {
		return err
	}

	return viper.BindEnv("smtp.from", "SMTP_FROM")
}
