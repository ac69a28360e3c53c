package config

import (
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Config_EnvironmentOverrideWorksCorrect(t *testing.T) {
	override := Config{
		Server: ServerConfig{
			Address:        ":5000",
			MetricsAddress: ":9200",
			Host:           "jobs.example.com",
			SessionSecret:  "overrideSecret",
			LoginMaxPerSec: 7,
		},
		DB: DBConfig{
			ConnectionString: "mongodb://override:27017",
			Database:         "overrideDb",
		},
		SMTP: SMTPConfig{
			Host:     "smtp.override.example",
			Port:     2525,
			User:     "overrideUser",
			Password: "overridePassword",
			From:     "no-reply@override.example",
		},
		Uploads: UploadsConfig{
			Dir:          "/tmp/uploads",
			MaxSizeBytes: 200000,
		},
	}
	os.Setenv("CONFIG_PATH", "../../configs/config.yaml")

	os.Setenv("SERVER_ADDRESS", override.Server.Address)
	os.Setenv("METRICS_ADDRESS", override.Server.MetricsAddress)
	os.Setenv("SERVER_HOST", override.Server.Host)
	os.Setenv("SESSION_SECRET", override.Server.SessionSecret)
	os.Setenv("LOGIN_MAX_PER_SEC", strconv.FormatFloat(override.Server.LoginMaxPerSec, 'f', -1, 64))
	os.Setenv("DB_CONNECTION_STRING", override.DB.ConnectionString)
	os.Setenv("DB_DATABASE", override.DB.Database)
	os.Setenv("SMTP_HOST", override.SMTP.Host)
	os.Setenv("SMTP_PORT", strconv.Itoa(override.SMTP.Port))
	os.Setenv("SMTP_USER", override.SMTP.User)
	os.Setenv("SMTP_PASSWORD", override.SMTP.Password)
	os.Setenv("SMTP_FROM", override.SMTP.From)
	os.Setenv("UPLOADS_DIR", override.Uploads.Dir)
	os.Setenv("UPLOADS_MAX_SIZE_BYTES", strconv.FormatInt(override.Uploads.MaxSizeBytes, 10))

	cfg := Get()

	assert.Equal(t, override.Server, cfg.Server)
	assert.Equal(t, override.DB, cfg.DB)
	assert.Equal(t, override.SMTP, cfg.SMTP)
	assert.Equal(t, override.Uploads, cfg.Uploads)
}
