package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/likhoapp/likho/internal/lexicon"
)

// Load reads and validates a configuration file from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open config file %q: %w", path, err)
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader reads and validates a configuration from the given reader.
// Unknown fields are rejected.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Default returns a configuration populated with working defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr: ":8080",
			LogLevel:   LogInfo,
		},
		Translit: TranslitConfig{
			Timeout:         3 * time.Second,
			NumCandidates:   5,
			BreakerFailures: 4,
			BreakerCooldown: 20 * time.Second,
		},
		Editor: EditorConfig{
			DefaultLanguage: "en-US",
			HintDebounce:    300 * time.Millisecond,
		},
	}
}

// Validate checks the configuration for errors and returns all of them
// joined together, or nil if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.ListenAddr == "" {
		errs = append(errs, errors.New("server.listen_addr must not be empty"))
	}
	if !c.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is not one of debug, info, warn, error", c.Server.LogLevel))
	}
	if c.Translit.Timeout <= 0 {
		errs = append(errs, errors.New("translit.timeout must be positive"))
	}
	if c.Translit.NumCandidates <= 0 {
		errs = append(errs, errors.New("translit.num_candidates must be positive"))
	}
	if c.Translit.BreakerFailures < 0 {
		errs = append(errs, errors.New("translit.breaker_failures must not be negative"))
	}
	if c.Translit.BreakerCooldown < 0 {
		errs = append(errs, errors.New("translit.breaker_cooldown must not be negative"))
	}
	if c.Editor.DefaultLanguage == "" {
		errs = append(errs, errors.New("editor.default_language must not be empty"))
	}
	if c.Editor.HintDebounce < 0 {
		errs = append(errs, errors.New("editor.hint_debounce must not be negative"))
	}
	for i, cc := range c.Editor.Commands {
		if err := cc.validate(); err != nil {
			errs = append(errs, fmt.Errorf("editor.commands[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (c CommandConfig) validate() error {
	var errs []error
	if !c.Category.IsValid() {
		errs = append(errs, fmt.Errorf("category %q is not recognised", c.Category))
	}
	if c.Trigger == "" {
		errs = append(errs, errors.New("trigger must not be empty"))
	}
	switch c.Category {
	case lexicon.CategoryPunctuation:
		if c.Literal == "" {
			errs = append(errs, errors.New("punctuation entries need a literal"))
		}
		if c.Directive != lexicon.DirectiveNone {
			errs = append(errs, errors.New("punctuation entries must not set a directive"))
		}
	case lexicon.CategoryNavigation, lexicon.CategoryEditing:
		if c.Directive == lexicon.DirectiveNone {
			errs = append(errs, errors.New("navigation and editing entries need a directive"))
		} else if !c.Directive.IsValid() {
			errs = append(errs, fmt.Errorf("directive %q is not recognised", c.Directive))
		}
		if c.Literal != "" {
			errs = append(errs, errors.New("navigation and editing entries must not set a literal"))
		}
	}
	return errors.Join(errs...)
}
