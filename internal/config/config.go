package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Built-in defaults. Top-p and top-k carry no local default: left unset they
// are omitted from the request and the remote defaults apply.
const (
	DefaultModel           = "gemini-1.5-pro-latest"
	DefaultTemperature     = 0.7
	DefaultMaxOutputTokens = 8192
)

// DefaultLogFile receives debug output when CODA_DEBUG enables logging
// without naming a file.
const DefaultLogFile = "coda.log"

// Config holds all Coda configuration. It is built once at startup and
// passed into every component that needs it; nothing mutates it afterwards.
type Config struct {
	// Gemini API key. Environment-only (GOOGLE_API_KEY), never read from
	// the config file.
	APIKey string `yaml:"-"`

	// Model selects the remote Gemini model.
	Model string `yaml:"model"`

	// Generation parameters forwarded to the model
	Generation GenerationConfig `yaml:"generation"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// GenerationConfig configures sampling and the response length cap. Pointer
// fields distinguish "unset" from zero, so the remote defaults stay in effect
// unless a value was asked for.
type GenerationConfig struct {
	Temperature     float64  `yaml:"temperature"`
	TopP            *float64 `yaml:"top_p,omitempty"`
	TopK            *int     `yaml:"top_k,omitempty"`
	MaxOutputTokens int      `yaml:"max_output_tokens"`
}

// LoggingConfig configures the debug log file. An empty File disables
// logging; the chat terminal never receives log output.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Model: DefaultModel,
		Generation: GenerationConfig{
			Temperature:     DefaultTemperature,
			MaxOutputTokens: DefaultMaxOutputTokens,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration record: built-in defaults, then the optional
// YAML file at path, then environment overrides. The returned Config is
// always usable. The error only reports a config file that exists but could
// not be read or parsed; callers treat it as a warning, never a startup
// failure.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var warn error
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				// Unmarshal may have partially filled the record
				cfg = DefaultConfig()
				warn = fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			warn = fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, warn
}

// applyEnvOverrides applies environment variable overrides. A numeric
// variable that fails to parse is ignored and the current value stands, so
// a typo in the environment degrades to the documented default instead of
// failing startup.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		c.APIKey = key
	}
	if model := os.Getenv("GEMINI_MODEL_NAME"); model != "" {
		c.Model = model
	}

	if raw := os.Getenv("GEMINI_TEMPERATURE"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			c.Generation.Temperature = v
		}
	}
	if raw := os.Getenv("GEMINI_TOP_P"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			c.Generation.TopP = &v
		}
	}
	if raw := os.Getenv("GEMINI_TOP_K"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			c.Generation.TopK = &v
		}
	}
	if raw := os.Getenv("GEMINI_MAX_TOKENS"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			c.Generation.MaxOutputTokens = v
		}
	}

	// CODA_DEBUG flips on file logging without a config file.
	if os.Getenv("CODA_DEBUG") != "" {
		c.Logging.Level = "debug"
		if c.Logging.File == "" {
			c.Logging.File = DefaultLogFile
		}
	}
}

// Validate checks the one fatal precondition: a usable API key. Everything
// else degrades to defaults.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("GOOGLE_API_KEY not found: set the GOOGLE_API_KEY environment variable or create a .env file with the key")
	}
	return nil
}

// Summary renders the active generation parameters for the startup banner.
// Unset parameters are omitted, mirroring what is sent to the API.
func (g GenerationConfig) Summary() string {
	parts := []string{fmt.Sprintf("temperature=%g", g.Temperature)}
	if g.TopP != nil {
		parts = append(parts, fmt.Sprintf("top_p=%g", *g.TopP))
	}
	if g.TopK != nil {
		parts = append(parts, fmt.Sprintf("top_k=%d", *g.TopK))
	}
	parts = append(parts, fmt.Sprintf("max_output_tokens=%d", g.MaxOutputTokens))
	return strings.Join(parts, " ")
}
