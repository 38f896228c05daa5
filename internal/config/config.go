package config

import (
	"fmt"

	units "github.com/docker/go-units"
	"github.com/pkg/errors"

	"github.com/signlingo/backend/pkg/conf"
)

type Config struct {
	Environment string

	Server struct {
		ListenAddress string
	}

	DataBase struct {
		Host string
		Port uint16
		User string
		Pass string
		Name string
	}

	Auth struct {
		JWTSecret string
		Audience  string
	}

	Storage struct {
		BaseURL        string
		ServiceRoleKey string
		Bucket         string
	}

	OpenRouter struct {
		APIKey  string
		BaseURL string
		Model   string
		Referer string
		Title   string
	}

	Signs struct {
		PromptsPath  string
		MaxImageSize string
	}

	Log struct {
		File       string
		MaxSizeMB  int
		MaxBackups int
	}
}

func ParseConfig() (*Config, error) {
	config := &Config{}
	if err := conf.ParseConfig(config, conf.EnvPrefix("SGL")); err != nil {
		return nil, errors.Wrap(err, "Failed to parse config")
	}
	applyDefaults(config)
	return config, nil
}

func applyDefaults(config *Config) {
	if config.Server.ListenAddress == "" {
		config.Server.ListenAddress = ":8000"
	}
	if config.Auth.Audience == "" {
		config.Auth.Audience = "authenticated"
	}
	if config.Signs.MaxImageSize == "" {
		config.Signs.MaxImageSize = "8MB"
	}
}

// MaxImageBytes parses the human-readable upload cap ("8MB", "512KiB").
func (c *Config) MaxImageBytes() (int64, error) {
	size, err := units.FromHumanSize(c.Signs.MaxImageSize)
	if err != nil {
		return 0, errors.Wrapf(err, "Invalid max image size %q", c.Signs.MaxImageSize)
	}
	return size, nil
}

// DSN assembles the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
		c.DataBase.Host, c.DataBase.Port, c.DataBase.User, c.DataBase.Pass, c.DataBase.Name)
}
