package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port           int      `yaml:"port"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"server"`

	Gemini struct {
		ApiKey         string `yaml:"apiKey"`
		Model          string `yaml:"model"`
		BaseURL        string `yaml:"baseUrl"`
		TimeoutSeconds int    `yaml:"timeoutSeconds"`
	} `yaml:"gemini"`

	Database struct {
		URI string `yaml:"uri"`
	} `yaml:"database"`
}

// LoadConfig reads the configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-1.5-flash"
	}
	if c.Gemini.BaseURL == "" {
		c.Gemini.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if c.Gemini.TimeoutSeconds == 0 {
		c.Gemini.TimeoutSeconds = 60
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
}
