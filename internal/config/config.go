package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	Model struct {
		// Path is where the fitted classifier artifact is stored.
		Path string `yaml:"path"`
		// Dataset is the labeled training corpus read at startup and on
		// retrain.
		Dataset string `yaml:"dataset"`
		Trees   int    `yaml:"trees"`
		Seed    int64  `yaml:"seed"`
	} `yaml:"model"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Auth struct {
		JWTSecret     string `yaml:"jwt_secret"`
		TokenTTLHours int    `yaml:"token_ttl_hours"`
	} `yaml:"auth"`
}

// LoadConfig reads configuration from the specified YAML file and fills in
// defaults for anything left unset.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	// Set defaults
	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}

	if config.Model.Path == "" {
		config.Model.Path = "./data/scam_detector_model.json"
	}

	if config.Model.Dataset == "" {
		config.Model.Dataset = "./data/labeled_dataset.csv"
	}

	if config.Model.Trees == 0 {
		config.Model.Trees = 100
	}

	if config.Model.Seed == 0 {
		config.Model.Seed = 42
	}

	if config.Database.Path == "" {
		config.Database.Path = "./data/scamguard.db"
	}

	if config.Auth.TokenTTLHours == 0 {
		config.Auth.TokenTTLHours = 24
	}

	// Expand environment variables in secrets
	config.Auth.JWTSecret = os.ExpandEnv(config.Auth.JWTSecret)

	return config, nil
}
