package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env     string        `yaml:"env" env:"APP_ENV" env-default:"local"`
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Tray    TrayConfig    `yaml:"tray"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"console"`
}

type ServerConfig struct {
	Port         int `yaml:"port" env:"SERVER_PORT" env-default:"3000"`
	ReadTimeout  int `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"15"`
	WriteTimeout int `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"15"`
}

type StorageConfig struct {
	Path string `yaml:"path" env:"STORAGE_PATH" env-default:"data/case-tracker.db"`
}

type TrayConfig struct {
	Enabled bool `yaml:"enabled" env:"TRAY_ENABLED" env-default:"false"`
}

// LoadConfig reads the YAML config file and applies environment
// overrides. A missing file is not an error; environment variables and
// defaults apply alone.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from environment: %w", err)
	}
	return &cfg, nil
}
