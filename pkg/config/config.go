package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIURL            = "https://api.mindcraft.com.cn/v1/chat/completions"
	DefaultModel             = "gpt-4.1-free"
	DefaultConversationsFile = "conversations.json"
	DefaultPromptFile        = "prompt-config.json"
	DefaultConfigFile        = "mcchat.yaml"

	ClientSDK  = "sdk"
	ClientHTTP = "http"
)

// Environment variable names.
const (
	EnvAPIKey = "API_KEY"
	EnvAPIURL = "API_URL"
	EnvModel  = "MODEL"
	EnvClient = "API_CLIENT"
)

// Config holds all runtime configuration for the chat client.
type Config struct {
	APIKey string
	APIURL string
	Model  string
	Client string

	ConversationsFile string
	PromptFile        string
	Markdown          bool
	Verbose           bool
}

// File is the optional YAML configuration file. The API key is never read from it.
type File struct {
	APIURL            string `yaml:"api_url"`
	Model             string `yaml:"model"`
	Client            string `yaml:"client"`
	ConversationsFile string `yaml:"conversations_file"`
	PromptFile        string `yaml:"prompt_file"`
	Markdown          *bool  `yaml:"markdown"`
}

// DefaultConfig returns a baseline configuration without side effects.
func DefaultConfig() Config {
	return Config{
		APIURL:            DefaultAPIURL,
		Model:             DefaultModel,
		Client:            ClientSDK,
		ConversationsFile: DefaultConversationsFile,
		PromptFile:        DefaultPromptFile,
	}
}

// LoadFile reads a YAML config file. A missing file yields a zero File and no error.
func LoadFile(path string) (File, error) {
	var f File
	path = strings.TrimSpace(path)
	if path == "" {
		return f, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return f, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return f, nil
}

// ApplyFile overlays non-empty file values onto cfg.
func ApplyFile(cfg Config, f File) Config {
	if v := strings.TrimSpace(f.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(f.Model); v != "" {
		cfg.Model = v
	}
	if v := strings.TrimSpace(f.Client); v != "" {
		cfg.Client = v
	}
	if v := strings.TrimSpace(f.ConversationsFile); v != "" {
		cfg.ConversationsFile = v
	}
	if v := strings.TrimSpace(f.PromptFile); v != "" {
		cfg.PromptFile = v
	}
	if f.Markdown != nil {
		cfg.Markdown = *f.Markdown
	}
	return cfg
}

// ApplyEnv overlays environment values onto cfg. Unset or blank variables keep
// the current value, so defaults survive.
func ApplyEnv(cfg Config, getenv func(string) string) Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg.APIKey = strings.TrimSpace(getenv(EnvAPIKey))
	if v := strings.TrimSpace(getenv(EnvAPIURL)); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(getenv(EnvModel)); v != "" {
		cfg.Model = v
	}
	if v := strings.TrimSpace(getenv(EnvClient)); v != "" {
		cfg.Client = v
	}
	return cfg
}

// Normalize sanitizes configuration values and applies defaults.
func Normalize(cfg Config) Config {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.APIURL = strings.TrimSpace(cfg.APIURL)
	cfg.Model = strings.TrimSpace(cfg.Model)
	cfg.Client = strings.ToLower(strings.TrimSpace(cfg.Client))
	cfg.ConversationsFile = strings.TrimSpace(cfg.ConversationsFile)
	cfg.PromptFile = strings.TrimSpace(cfg.PromptFile)

	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Client == "" {
		cfg.Client = ClientSDK
	}
	if cfg.ConversationsFile == "" {
		cfg.ConversationsFile = DefaultConversationsFile
	}
	if cfg.PromptFile == "" {
		cfg.PromptFile = DefaultPromptFile
	}
	return cfg
}

// Validate reports every missing or invalid setting the chat session needs.
func Validate(cfg Config) error {
	var errs []error
	if cfg.APIKey == "" {
		errs = append(errs, fmt.Errorf("%s is not set", EnvAPIKey))
	}
	if cfg.APIURL == "" {
		errs = append(errs, fmt.Errorf("%s is not set", EnvAPIURL))
	}
	switch cfg.Client {
	case ClientSDK, ClientHTTP:
	default:
		errs = append(errs, fmt.Errorf("%s must be %q or %q, got %q", EnvClient, ClientSDK, ClientHTTP, cfg.Client))
	}
	return errors.Join(errs...)
}
