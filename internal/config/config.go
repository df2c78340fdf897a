// Package config provides the configuration schema and loader for the likho
// editor host.
package config

import (
	"time"

	"github.com/likhoapp/likho/internal/lexicon"
)

// LogLevel controls log verbosity for the likho host.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root configuration structure for likho.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Translit TranslitConfig `yaml:"translit"`
	Editor   EditorConfig   `yaml:"editor"`
}

// ServerConfig holds network and logging settings for the likho host.
type ServerConfig struct {
	// ListenAddr is the TCP address the host listens on (e.g., ":8080").
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`
}

// TranslitConfig configures the remote transliteration engine.
type TranslitConfig struct {
	// BaseURL overrides the engine endpoint. Leave empty for the default.
	BaseURL string `yaml:"base_url"`

	// Timeout bounds one lookup. A lookup past the timeout is treated as a
	// transport failure and the token passes through. Default: 3s.
	Timeout time.Duration `yaml:"timeout"`

	// NumCandidates is how many candidate spellings the engine is asked for
	// per segment. Default: 5.
	NumCandidates int `yaml:"num_candidates"`

	// BreakerFailures is the consecutive-failure count after which lookups
	// are suppressed for BreakerCooldown. Zero keeps the built-in default.
	BreakerFailures int           `yaml:"breaker_failures"`
	BreakerCooldown time.Duration `yaml:"breaker_cooldown"`
}

// EditorConfig holds editor session defaults.
type EditorConfig struct {
	// DefaultLanguage is the BCP-47 language code sessions start with
	// (e.g., "en-US", "hi", "bn").
	DefaultLanguage string `yaml:"default_language"`

	// HintDebounce is the quiet period before the advisory pending-token
	// hint fires. The hint drives UI highlighting only. Default: 300ms.
	HintDebounce time.Duration `yaml:"hint_debounce"`

	// Commands are extra lexicon entries installed on top of the built-ins.
	Commands []CommandConfig `yaml:"commands"`
}

// CommandConfig declares one user-defined trigger phrase.
// Exactly one of Literal and Directive must be set, matching the category:
// punctuation entries carry a literal, navigation and editing entries carry
// a directive.
type CommandConfig struct {
	Category  lexicon.Category  `yaml:"category"`
	Trigger   string            `yaml:"trigger"`
	Literal   string            `yaml:"literal"`
	Directive lexicon.Directive `yaml:"directive"`
}
