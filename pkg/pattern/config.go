package pattern

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/aretw0/picker/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config is the file representation of role bindings. Role names are the
// keys; unlisted roles keep their defaults.
type Config struct {
	Mouse map[string]MouseBinding `json:"mouse" yaml:"mouse" mapstructure:"mouse"`
	Keys  map[string]KeyBinding   `json:"keys" yaml:"keys" mapstructure:"keys"`
}

// Load reads bindings from a YAML, TOML or JSON file, chosen by extension.
// A missing file yields the default pattern.
func Load(path string) (*EventPattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("failed to read bindings: %w", err)
	}
	return Parse(data, strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
}

// Parse decodes bindings in the given format ("yaml", "yml", "toml" or "json").
func Parse(data []byte, format string) (*EventPattern, error) {
	raw := make(map[string]any)

	switch format {
	case "toml":
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, fmt.Errorf("failed to parse toml bindings: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse json bindings: %w", err)
		}
	default:
		// Default to YAML
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse yaml bindings: %w", err)
		}
	}

	cfg, err := DecodeConfig(raw)
	if err != nil {
		return nil, err
	}
	return FromConfig(cfg)
}

// DecodeConfig converts an already parsed bindings document into a Config.
// Unknown fields and malformed buttons, keys or modifiers are rejected.
func DecodeConfig(raw map[string]any) (Config, error) {
	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.TextUnmarshallerHookFunc(),
		ErrorUnused: true,
		Result:      &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("%w: %v", domain.ErrInvalidBinding, err)
	}
	return cfg, nil
}

// FromConfig applies cfg on top of the default bindings.
func FromConfig(cfg Config) (*EventPattern, error) {
	p := New()
	for name, b := range cfg.Mouse {
		role, err := domain.ParseRole(name)
		if err != nil {
			return nil, err
		}
		if err := p.SetMousePattern(role, b); err != nil {
			return nil, err
		}
	}
	for name, b := range cfg.Keys {
		role, err := domain.ParseRole(name)
		if err != nil {
			return nil, err
		}
		if err := p.SetKeyPattern(role, b); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Config returns the current bindings in file form.
func (p *EventPattern) Config() Config {
	cfg := Config{
		Mouse: make(map[string]MouseBinding, len(p.mouse)),
		Keys:  make(map[string]KeyBinding, len(p.keys)),
	}
	for r, b := range p.mouse {
		cfg.Mouse[r.String()] = b
	}
	for r, b := range p.keys {
		cfg.Keys[r.String()] = b
	}
	return cfg
}
