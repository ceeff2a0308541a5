package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	mcp "github.com/viant/mcp"
)

// Config is the gateway configuration. Every section is optional; the zero
// value yields a gateway with all backend groups enabled, an ephemeral
// attestation key and stderr text logging.
type Config struct {
	Server      *mcp.ServerOptions `yaml:"server,omitempty" json:"server,omitempty"`
	Log         *Log               `yaml:"log,omitempty" json:"log,omitempty"`
	Guards      *Guards            `yaml:"guards,omitempty" json:"guards,omitempty"`
	Attestation *Attestation       `yaml:"attestation,omitempty" json:"attestation,omitempty"`
}

// Log selects the slog handler built by the CLI.
type Log struct {
	Level  string `yaml:"level,omitempty" json:"level,omitempty"`   // debug|info|warn|error
	Format string `yaml:"format,omitempty" json:"format,omitempty"` // text|json
}

// Guards controls which optional backend groups are probed at startup.
// Disabling a group makes its acquisition fail, which is the only way to
// turn a capability off: there is no runtime toggle.
type Guards struct {
	Disabled []string `yaml:"disabled,omitempty" json:"disabled,omitempty"`
}

// Disabled reports whether the named backend group was disabled.
func (g *Guards) IsDisabled(name string) bool {
	if g == nil {
		return false
	}
	for _, disabled := range g.Disabled {
		if strings.EqualFold(disabled, name) {
			return true
		}
	}
	return false
}

// Attestation configures the response signer. KeyURL may be a local path or
// any URL scheme supported by viant/afs; when empty an ephemeral key is
// generated at startup.
type Attestation struct {
	Enabled *bool  `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	KeyURL  string `yaml:"keyURL,omitempty" json:"keyURL,omitempty"`
}

// IsEnabled defaults to true when the section or flag is absent.
func (a *Attestation) IsEnabled() bool {
	if a == nil || a.Enabled == nil {
		return true
	}
	return *a.Enabled
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Log != nil {
		switch strings.ToLower(c.Log.Format) {
		case "", "text", "json":
		default:
			return fmt.Errorf("unsupported log format %q", c.Log.Format)
		}
	}
	return nil
}
