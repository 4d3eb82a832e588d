package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultBaseURL = "http://127.0.0.1:8080"
	defaultTimeout = 10 * time.Second

	// EnvAPIURL overrides api.base_url when set.
	EnvAPIURL = "NOTES_API_URL"
)

type Config struct {
	API     APIConfig     `toml:"api"`
	Logging LoggingConfig `toml:"logging"`
	UI      UIConfig      `toml:"ui"`
}

type APIConfig struct {
	BaseURL   string `toml:"base_url"`
	Token     string `toml:"token,omitempty"`
	TokenPath string `toml:"token_path,omitempty"`
	Timeout   string `toml:"timeout"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type UIConfig struct {
	Markdown *bool  `toml:"markdown"`
	Theme    string `toml:"theme"`
}

func DefaultConfig() Config {
	markdown := true
	return Config{
		API: APIConfig{
			BaseURL: defaultBaseURL,
			Timeout: defaultTimeout.String(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		UI: UIConfig{
			Markdown: &markdown,
			Theme:    "dark",
		},
	}
}

// Load reads the default config file and applies environment overrides.
func Load() (Config, error) {
	path, err := CoreConfigPath()
	if err != nil {
		return Config{}, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads path on top of the defaults. A missing or empty file
// yields the defaults.
func LoadFromPath(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if raw := strings.TrimSpace(os.Getenv(EnvAPIURL)); raw != "" {
		cfg.API.BaseURL = raw
	}
	return cfg, nil
}

func (c Config) BaseURL() string {
	base := strings.TrimSpace(c.API.BaseURL)
	if base == "" {
		return defaultBaseURL
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	base = strings.TrimRight(base, "/")
	if base == "http:" || base == "https:" {
		return defaultBaseURL
	}
	return base
}

func (c Config) Timeout() time.Duration {
	raw := strings.TrimSpace(c.API.Timeout)
	if raw == "" {
		return defaultTimeout
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return defaultTimeout
	}
	return d
}

// ResolveTokenPath returns the configured token file, or the default one
// under the data dir.
func (c Config) ResolveTokenPath() (string, error) {
	path := strings.TrimSpace(c.API.TokenPath)
	if path == "" {
		return TokenPath()
	}
	return resolveConfigPath(path)
}

// Token returns the inline token if set, otherwise the contents of the token
// file. A missing token file is not an error.
func (c Config) Token() (string, error) {
	if token := strings.TrimSpace(c.API.Token); token != "" {
		return token, nil
	}
	path, err := c.ResolveTokenPath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

func (c Config) LogFormat() string {
	format := strings.TrimSpace(c.Logging.Format)
	if format == "" {
		return "console"
	}
	return format
}

func (c Config) MarkdownEnabled() bool {
	if c.UI.Markdown == nil {
		return true
	}
	return *c.UI.Markdown
}

func (c Config) DarkTheme() bool {
	return !strings.EqualFold(strings.TrimSpace(c.UI.Theme), "light")
}

// Encode renders the configuration as TOML.
func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}

func resolveConfigPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("path is required")
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, path), nil
}
