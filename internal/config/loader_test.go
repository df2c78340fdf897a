package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/likhoapp/likho/internal/config"
	"github.com/likhoapp/likho/internal/lexicon"
)

const fullConfig = `
server:
  listen_addr: ":9090"
  log_level: debug
translit:
  base_url: "http://localhost:1234/request"
  timeout: 1s
  num_candidates: 3
  breaker_failures: 2
  breaker_cooldown: 5s
editor:
  default_language: hi
  hint_debounce: 150ms
  commands:
    - category: punctuation
      trigger: ellipsis
      literal: "..."
    - category: editing
      trigger: scratch that
      directive: delete-sentence
`

func TestLoadFromReader(t *testing.T) {
	t.Parallel()
	cfg, err := config.LoadFromReader(strings.NewReader(fullConfig))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}
	if cfg.Server.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %q, want %q", cfg.Server.ListenAddr, ":9090")
	}
	if cfg.Server.LogLevel != config.LogDebug {
		t.Errorf("LogLevel = %q, want debug", cfg.Server.LogLevel)
	}
	if cfg.Translit.Timeout != time.Second {
		t.Errorf("Timeout = %v, want 1s", cfg.Translit.Timeout)
	}
	if cfg.Editor.DefaultLanguage != "hi" {
		t.Errorf("DefaultLanguage = %q, want hi", cfg.Editor.DefaultLanguage)
	}
	if len(cfg.Editor.Commands) != 2 {
		t.Fatalf("len(Commands) = %d, want 2", len(cfg.Editor.Commands))
	}
	if cfg.Editor.Commands[1].Directive != lexicon.DirectiveDeleteSentence {
		t.Errorf("Commands[1].Directive = %q, want delete-sentence", cfg.Editor.Commands[1].Directive)
	}
}

func TestLoadFromReaderDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := config.LoadFromReader(strings.NewReader("server:\n  listen_addr: \":8000\"\n"))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}
	if cfg.Server.LogLevel != config.LogInfo {
		t.Errorf("LogLevel = %q, want default info", cfg.Server.LogLevel)
	}
	if cfg.Translit.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v, want default 3s", cfg.Translit.Timeout)
	}
	if cfg.Translit.NumCandidates != 5 {
		t.Errorf("NumCandidates = %d, want default 5", cfg.Translit.NumCandidates)
	}
	if cfg.Editor.HintDebounce != 300*time.Millisecond {
		t.Errorf("HintDebounce = %v, want default 300ms", cfg.Editor.HintDebounce)
	}
}

func TestLoadFromReaderRejectsUnknownFields(t *testing.T) {
	t.Parallel()
	_, err := config.LoadFromReader(strings.NewReader("server:\n  listen_address: \":8000\"\n"))
	if err == nil {
		t.Fatal("LoadFromReader() accepted an unknown field")
	}
}

func TestValidateErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "empty listen addr",
			mutate: func(c *config.Config) { c.Server.ListenAddr = "" },
			want:   "listen_addr",
		},
		{
			name:   "bad log level",
			mutate: func(c *config.Config) { c.Server.LogLevel = "verbose" },
			want:   "log_level",
		},
		{
			name:   "zero timeout",
			mutate: func(c *config.Config) { c.Translit.Timeout = 0 },
			want:   "timeout",
		},
		{
			name: "punctuation command without literal",
			mutate: func(c *config.Config) {
				c.Editor.Commands = []config.CommandConfig{{
					Category: lexicon.CategoryPunctuation,
					Trigger:  "tilde",
				}}
			},
			want: "literal",
		},
		{
			name: "editing command with unknown directive",
			mutate: func(c *config.Config) {
				c.Editor.Commands = []config.CommandConfig{{
					Category:  lexicon.CategoryEditing,
					Trigger:   "zap",
					Directive: "explode",
				}}
			},
			want: "explode",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}
