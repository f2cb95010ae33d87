package orbit

import (
	"fmt"
	"os"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the client configuration file, e.g. orbit.yaml:
//
//	base_url: https://api.orbit.example
//	session_file: ${HOME}/.orbit/session.json
//	timeout: 30s
type Config struct {
	BaseURL     string        `yaml:"base_url" validate:"required,url"`
	SessionFile string        `yaml:"session_file"`
	Timeout     time.Duration `yaml:"timeout"`
	UserAgent   string        `yaml:"user_agent"`
}

func LoadConfigFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	// expand environment variables $
	expanded := os.ExpandEnv(string(content))

	cfg := new(Config)
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}

	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("yaml")
	})

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// NewClientFromConfig builds a client from a loaded configuration. A
// session file path switches persistence from memory to disk.
func NewClientFromConfig(cfg *Config) (*Client, error) {
	options := []ClientOption{}
	if cfg.SessionFile != "" {
		options = append(options, WithTokenStore(NewFileTokenStore(cfg.SessionFile)))
	}
	if cfg.Timeout > 0 {
		options = append(options, WithTimeout(cfg.Timeout))
	}
	if cfg.UserAgent != "" {
		options = append(options, WithUserAgent(cfg.UserAgent))
	}
	return NewClient(cfg.BaseURL, options...)
}
