// File path: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nicodishanthj/lqa-insight/internal/locale"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// EnvConfigPath names the variable that points at an optional YAML file.
const EnvConfigPath = "INSIGHT_CONFIG"

// LLM selects and configures the completion service.
type LLM struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	Endpoint string `yaml:"endpoint"`
	// APIKey is never read from YAML; credentials come from the environment.
	APIKey string `yaml:"-"`
}

// Config controls the server and the audit pipeline.
type Config struct {
	Addr          string `yaml:"addr"`
	DefaultLocale string `yaml:"default_locale"`
	// FilterP2 drops P2 items from the fix list after validation.
	FilterP2 bool `yaml:"filter_p2"`
	// UploadMemory bounds the multipart form bytes kept in memory; the rest
	// spills to temporary files.
	UploadMemory int64 `yaml:"upload_memory"`
	LLM          LLM   `yaml:"llm"`
}

// DefaultConfig returns the baseline configuration used when no overrides are
// supplied.
func DefaultConfig() Config {
	return Config{
		Addr:          ":8080",
		DefaultLocale: string(locale.Default),
		UploadMemory:  32 << 20,
		LLM: LLM{
			Provider: ProviderGemini,
		},
	}
}

// LoadConfig builds a Config from defaults, the YAML file at path (skipped
// when empty) and environment variables, in that order.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfigPath))
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return applyDefaults(cfg), nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if value := strings.TrimSpace(os.Getenv("INSIGHT_ADDR")); value != "" {
		cfg.Addr = value
	}
	if value := strings.TrimSpace(os.Getenv("INSIGHT_PROVIDER")); value != "" {
		cfg.LLM.Provider = strings.ToLower(value)
	}
	if value := strings.TrimSpace(os.Getenv("INSIGHT_MODEL")); value != "" {
		cfg.LLM.Model = value
	}
	if value := strings.TrimSpace(os.Getenv("INSIGHT_ENDPOINT")); value != "" {
		cfg.LLM.Endpoint = value
	}
	if value := strings.TrimSpace(os.Getenv("INSIGHT_DEFAULT_LOCALE")); value != "" {
		cfg.DefaultLocale = value
	}
	if value := strings.TrimSpace(os.Getenv("INSIGHT_FILTER_P2")); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("parse INSIGHT_FILTER_P2: %w", err)
		}
		cfg.FilterP2 = parsed
	}
	if value := strings.TrimSpace(os.Getenv("INSIGHT_UPLOAD_MEMORY")); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("parse INSIGHT_UPLOAD_MEMORY: %w", err)
		}
		cfg.UploadMemory = parsed
	}
	return nil
}

func applyDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if strings.TrimSpace(cfg.Addr) == "" {
		cfg.Addr = defaults.Addr
	}
	if strings.TrimSpace(cfg.DefaultLocale) == "" {
		cfg.DefaultLocale = defaults.DefaultLocale
	}
	if cfg.UploadMemory <= 0 {
		cfg.UploadMemory = defaults.UploadMemory
	}
	if strings.TrimSpace(cfg.LLM.Provider) == "" {
		cfg.LLM.Provider = defaults.LLM.Provider
	}
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	return cfg
}

// CredentialEnv lists the environment variables consulted for the provider's
// API key, in lookup order.
func (l LLM) CredentialEnv() []string {
	switch l.Provider {
	case ProviderOpenAI:
		return []string{"OPENAI_API_KEY"}
	default:
		return []string{"GEMINI_API_KEY", "API_KEY"}
	}
}

// Credential returns the explicit key or the first non-empty variable from
// CredentialEnv.
func (l LLM) Credential() string {
	if key := strings.TrimSpace(l.APIKey); key != "" {
		return key
	}
	for _, name := range l.CredentialEnv() {
		if value := strings.TrimSpace(os.Getenv(name)); value != "" {
			return value
		}
	}
	return ""
}

// Locale returns the configured default locale, or the package default when
// the value is not supported.
func (c Config) Locale() locale.Locale {
	parsed, _ := locale.Parse(c.DefaultLocale)
	return parsed.Or(locale.Default)
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("listen address required"))
	}
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		errs = append(errs, fmt.Errorf("unknown llm provider %q", c.LLM.Provider))
	}
	if _, ok := locale.Parse(c.DefaultLocale); !ok {
		errs = append(errs, fmt.Errorf("unsupported default locale %q", c.DefaultLocale))
	}
	if c.UploadMemory <= 0 {
		errs = append(errs, errors.New("upload memory must be positive"))
	}
	return errors.Join(errs...)
}
