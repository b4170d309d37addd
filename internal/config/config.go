package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Backends understood by the generator factory
const (
	BackendREST      = "rest"
	BackendLangchain = "langchain"
)

// APIKeyEnv is the environment variable that carries the upstream credential
const APIKeyEnv = "GEMINI_API_KEY"

// Config represents the application configuration
type Config struct {
	Server ServerConfig `koanf:"server"`
	Gemini GeminiConfig `koanf:"gemini"`
	Retry  RetryConfig  `koanf:"retry"`
}

// ServerConfig controls the HTTP listener and logging
type ServerConfig struct {
	Port      int    `koanf:"port"`
	LogLevel  string `koanf:"log_level"`
	LogPretty bool   `koanf:"log_pretty"`
}

// GeminiConfig contains configuration for the upstream generator
type GeminiConfig struct {
	APIKey      string        `koanf:"api_key"`
	Model       string        `koanf:"model"`
	Backend     string        `koanf:"backend"`
	Temperature float64       `koanf:"temperature"`
	Timeout     time.Duration `koanf:"timeout"`
	// PersonaFile replaces the built-in Aura persona when set
	PersonaFile string `koanf:"persona_file"`
}

// RetryConfig bounds upstream retries. Zero retries is the default.
type RetryConfig struct {
	MaxRetries int           `koanf:"max_retries"`
	BaseDelay  time.Duration `koanf:"base_delay"`
	MaxDelay   time.Duration `koanf:"max_delay"`
}

// Defaults returns the built-in configuration values
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"server.port":        8888,
		"server.log_level":   "info",
		"server.log_pretty":  false,
		"gemini.model":       "gemini-2.5-flash-preview-05-20",
		"gemini.backend":     BackendREST,
		"gemini.temperature": 0.0,
		"gemini.timeout":     "60s",
		"retry.max_retries":  0,
		"retry.base_delay":   "1s",
		"retry.max_delay":    "30s",
	}
}

// LoadConfig loads the configuration from a file
func LoadConfig(configPath string) (*Config, error) {
	var k = koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else {
		defaultPaths := []string{"./aura.toml", "$HOME/.aura.toml"}
		for _, path := range defaultPaths {
			path = os.ExpandEnv(path)
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err == nil {
					break
				}
			}
		}
	}

	// AURA_GEMINI_MODEL -> gemini.model. Only the first underscore is a separator so keys
	// like log_level survive.
	if err := k.Load(env.Provider("AURA_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "AURA_")), "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("error loading environment: %w", err)
	}

	if key := os.Getenv(APIKeyEnv); key != "" {
		if err := k.Load(confmap.Provider(map[string]interface{}{"gemini.api_key": key}, "."), nil); err != nil {
			return nil, fmt.Errorf("error loading %s: %w", APIKeyEnv, err)
		}
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &config, nil
}

// InitConfig initializes a new configuration file
func InitConfig(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	sampleConfig := `# Aura Configuration

[server]
port = 8888
log_level = "info"
log_pretty = false

[gemini]
# Prefer the GEMINI_API_KEY environment variable over storing the key here.
# api_key = "your-gemini-api-key"
model = "gemini-2.5-flash-preview-05-20"
backend = "rest"
timeout = "60s"
# persona_file = "persona.md"

[retry]
max_retries = 0
base_delay = "1s"
max_delay = "30s"
`

	return os.WriteFile(configPath, []byte(sampleConfig), 0644)
}

// Validate validates the configuration
func Validate(config *Config) error {
	if config.Gemini.APIKey == "" {
		return fmt.Errorf("gemini api_key is required (set %s)", APIKeyEnv)
	}

	if config.Gemini.Model == "" {
		return fmt.Errorf("gemini model is required")
	}

	switch config.Gemini.Backend {
	case BackendREST, BackendLangchain:
	default:
		return fmt.Errorf("unknown gemini backend %q", config.Gemini.Backend)
	}

	if config.Gemini.Timeout < 0 {
		return fmt.Errorf("gemini timeout must not be negative")
	}

	if config.Retry.MaxRetries < 0 {
		return fmt.Errorf("retry max_retries must not be negative")
	}

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("server port %d is out of range", config.Server.Port)
	}

	return nil
}

// MaskSecret keeps the first four characters of a secret
func MaskSecret(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-4)
}
