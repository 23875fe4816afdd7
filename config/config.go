package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jsphweid/tonas/constants"
	"gopkg.in/yaml.v3"
)

type DynamoDB struct {
	Endpoint string `yaml:"endpoint"`
	Region   string `yaml:"region"`
	Table    string `yaml:"table"`
}

type Config struct {
	DataHome string   `yaml:"data_home"`
	Addr     string   `yaml:"addr"`
	DynamoDB DynamoDB `yaml:"dynamodb"`
}

func Default() Config {
	return Config{
		DataHome: constants.GetDefaultDataHome(),
		Addr:     ":8080",
		DynamoDB: DynamoDB{
			Endpoint: "http://localhost:8000",
			Region:   "localhost",
			Table:    "tonas-metadata",
		},
	}
}

// Load starts from the defaults, applies the YAML file at path when it exists
// and finally the environment. An empty path falls back to TONAS_CONFIG.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("TONAS_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("could not read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("could not parse config %s: %w", path, err)
			}
		}
	}

	cfg.DataHome = envStr("TONAS_HOME", cfg.DataHome)
	cfg.Addr = envStr("TONAS_ADDR", cfg.Addr)
	cfg.DynamoDB.Endpoint = envStr("TONAS_DYNAMODB_ENDPOINT", cfg.DynamoDB.Endpoint)
	cfg.DynamoDB.Region = envStr("TONAS_DYNAMODB_REGION", cfg.DynamoDB.Region)
	cfg.DynamoDB.Table = envStr("TONAS_METADATA_TABLE", cfg.DynamoDB.Table)
	return cfg, nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
