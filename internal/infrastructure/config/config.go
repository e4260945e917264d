package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/clickup-mcp/pkg/clickup"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

const (
	appDir     = "clickup-mcp"
	configFile = "config.yaml"
)

// Config is the on-disk and environment configuration of the server.
// Durations are kept as strings so the file round-trips unchanged.
type Config struct {
	APIToken     string `yaml:"api_token,omitempty" json:"api_token,omitempty"`
	OAuthToken   string `yaml:"oauth_token,omitempty" json:"oauth_token,omitempty"`
	ClientID     string `yaml:"client_id,omitempty" json:"client_id,omitempty"`
	ClientSecret string `yaml:"client_secret,omitempty" json:"client_secret,omitempty"`
	RedirectURL  string `yaml:"redirect_url,omitempty" json:"redirect_url,omitempty"`

	BaseURL           string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	Timeout           string `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	MinRequestSpacing string `yaml:"min_request_spacing,omitempty" json:"min_request_spacing,omitempty"`
	RetryDelay        string `yaml:"retry_delay,omitempty" json:"retry_delay,omitempty"`
	MaxRetries        *int   `yaml:"max_retries,omitempty" json:"max_retries,omitempty"`

	LogLevel    string `yaml:"log_level,omitempty" json:"log_level,omitempty"`
	JournalPath string `yaml:"journal_path,omitempty" json:"journal_path,omitempty"`
}

// Tuning is the resolved request pipeline configuration.
type Tuning struct {
	BaseURL    string
	Timeout    time.Duration
	MinSpacing time.Duration
	RetryDelay time.Duration
	MaxRetries int
}

const configSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "api_token": { "type": "string" },
    "oauth_token": { "type": "string" },
    "client_id": { "type": "string" },
    "client_secret": { "type": "string" },
    "redirect_url": { "type": "string", "pattern": "^https?://" },
    "base_url": { "type": "string", "pattern": "^https?://" },
    "timeout": { "$ref": "#/definitions/duration" },
    "min_request_spacing": { "$ref": "#/definitions/duration" },
    "retry_delay": { "$ref": "#/definitions/duration" },
    "max_retries": { "type": "integer", "minimum": 0, "maximum": 10 },
    "log_level": { "enum": ["debug", "info", "warn", "error"] },
    "journal_path": { "type": "string" }
  },
  "definitions": {
    "duration": { "type": "string", "pattern": "^([0-9]+(\\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$" }
  }
}`

var configSchemaLoader = gojsonschema.NewStringLoader(configSchemaJSON)

// ErrInvalid wraps every schema validation failure.
var ErrInvalid = errors.New("invalid config")

// envOverrides maps environment variables onto config fields.
var envOverrides = []struct {
	name string
	set  func(*Config, string)
}{
	{"CLICKUP_API_TOKEN", func(c *Config, v string) { c.APIToken = v }},
	{"CLICKUP_OAUTH_TOKEN", func(c *Config, v string) { c.OAuthToken = v }},
	{"CLICKUP_CLIENT_ID", func(c *Config, v string) { c.ClientID = v }},
	{"CLICKUP_CLIENT_SECRET", func(c *Config, v string) { c.ClientSecret = v }},
	{"CLICKUP_REDIRECT_URL", func(c *Config, v string) { c.RedirectURL = v }},
	{"CLICKUP_BASE_URL", func(c *Config, v string) { c.BaseURL = v }},
	{"CLICKUP_MCP_LOG_LEVEL", func(c *Config, v string) { c.LogLevel = strings.ToLower(v) }},
	{"CLICKUP_MCP_JOURNAL", func(c *Config, v string) { c.JournalPath = v }},
}

// DefaultPath returns $XDG_CONFIG_HOME/clickup-mcp/config.yaml or the
// platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, appDir, configFile), nil
}

// LoadFile reads the config file only. A missing file yields an empty config.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config file, applies environment overrides and validates
// the result.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory. The file holds
// credentials and is written owner-only.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// ApplyEnv overrides fields with any non-empty environment variables.
func (c *Config) ApplyEnv() {
	for _, o := range envOverrides {
		if v := strings.TrimSpace(os.Getenv(o.name)); v != "" {
			o.set(c, v)
		}
	}
}

// Validate checks the config against its JSON Schema.
func (c *Config) Validate() error {
	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	result, err := gojsonschema.Validate(configSchemaLoader, gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("failed to validate config: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
	}
	return nil
}

// Tuning resolves pipeline settings, falling back to the client defaults.
func (c *Config) Tuning() (Tuning, error) {
	t := Tuning{
		BaseURL:    clickup.DefaultBaseURL,
		Timeout:    clickup.DefaultTimeout,
		MinSpacing: clickup.DefaultMinSpacing,
		RetryDelay: clickup.DefaultRetryDelay,
		MaxRetries: clickup.DefaultMaxRetries,
	}
	if c.BaseURL != "" {
		t.BaseURL = c.BaseURL
	}
	if c.MaxRetries != nil {
		t.MaxRetries = *c.MaxRetries
	}
	for _, d := range []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"timeout", c.Timeout, &t.Timeout},
		{"min_request_spacing", c.MinRequestSpacing, &t.MinSpacing},
		{"retry_delay", c.RetryDelay, &t.RetryDelay},
	} {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return Tuning{}, fmt.Errorf("invalid %s %q: %w", d.name, d.raw, err)
		}
		*d.dst = v
	}
	return t, nil
}

// Redacted returns a copy with secrets masked, for display.
func (c *Config) Redacted() Config {
	out := *c
	out.APIToken = mask(c.APIToken)
	out.OAuthToken = mask(c.OAuthToken)
	out.ClientSecret = mask(c.ClientSecret)
	return out
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "****" + s[len(s)-4:]
}
