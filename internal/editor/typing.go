package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/likhoapp/likho/internal/token"
	"github.com/likhoapp/likho/pkg/translit"
)

// SetMode switches the input mode. Switching to type mode suspends any live
// dictation and starts a fresh typing session; switching back to dictate mode
// resumes recognition when it was live before. Any lookup still in flight at
// switch time is invalidated and its result discarded.
func (c *Coordinator) SetMode(ctx context.Context, m Mode) error {
	if m != ModeDictate && m != ModeType {
		return fmt.Errorf("editor: unknown mode %q", m)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == m {
		return nil
	}
	c.generation++
	c.setPending("")

	switch m {
	case ModeType:
		if c.listening {
			c.resumeMode = true
			if err := c.source.Stop(); err != nil {
				slog.Warn("typing: suspend recognition failed", "error", err)
			}
			c.listening = false
		}
		c.session = &typingSession{
			id:        uuid.NewString(),
			language:  c.language,
			startedAt: time.Now(),
		}
		c.metrics.ActiveSessions.Add(ctx, 1)
		slog.Info("typing session started",
			"session_id", c.session.id,
			"language", c.session.language,
		)

	case ModeDictate:
		if c.session != nil {
			c.metrics.ActiveSessions.Add(ctx, -1)
			slog.Info("typing session ended",
				"session_id", c.session.id,
				"duration", time.Since(c.session.startedAt),
			)
			c.session = nil
		}
		if c.resumeMode {
			c.resumeMode = false
			if err := c.source.Start(ctx); err != nil {
				slog.Warn("dictation: resume recognition failed", "error", err)
			} else {
				c.listening = true
			}
		}
	}

	c.mode = m
	if c.listening {
		c.setStatus(StatusListening)
	} else {
		c.setStatus(StatusReady)
	}
	return nil
}

// SetLanguage switches the working language (BCP-47 code). It propagates to
// the speech source, invalidates in-flight lookups, and clears the pending
// token hint.
func (c *Coordinator) SetLanguage(code string) error {
	if code == "" {
		return errors.New("editor: language code must not be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.language = code
	c.generation++
	c.setPending("")
	if c.session != nil {
		c.session.language = code
	}
	if err := c.source.SetLanguage(code); err != nil {
		return fmt.Errorf("editor: set recognition language: %w", err)
	}
	slog.Info("language changed", "language", code)
	return nil
}

// HandleKeystroke feeds one keystroke to the typing pipeline. handled reports
// whether the coordinator consumed the keystroke; when false the host inserts
// it into the buffer itself.
//
// Outside type mode — or for a language with no target script — every
// keystroke passes through untouched. A non-terminating keystroke only
// refreshes the advisory pending-token hint. A terminating keystroke
// (whitespace or sentence punctuation) resolves the trailing token,
// transliterates it, commits the replacement, and then inserts the terminator
// itself. While a lookup is in flight further terminating keystrokes share
// that lookup and are otherwise swallowed.
func (c *Coordinator) HandleKeystroke(ctx context.Context, key rune) (handled bool, err error) {
	c.mu.Lock()

	if c.mode != ModeType || translit.ScriptForLanguage(c.language) == translit.ScriptNone {
		c.mu.Unlock()
		return false, nil
	}

	if !token.IsTerminating(key) {
		// The host inserts the key after we return; the hint anticipates it.
		if cand, ok := c.tracker.Resolve(); ok {
			c.setPending(cand.Text + string(key))
		} else {
			c.setPending(string(key))
		}
		c.mu.Unlock()
		return false, nil
	}

	cand, ok := c.tracker.Resolve()
	if !ok {
		c.setPending("")
		c.mu.Unlock()
		return false, nil
	}

	gen := c.generation
	language := c.language
	c.setStatus(StatusProcessing)
	c.mu.Unlock()

	// Terminators racing in while a lookup for the same token is in flight
	// join it through the group and wait on its result. Only the caller whose
	// function actually ran applies the result; the sharers are swallowed.
	var owner bool
	v, _, _ := c.group.Do(cand.Text, func() (any, error) {
		owner = true
		start := time.Now()
		res := c.translit.Transliterate(ctx, cand.Text, language)
		status := "failed"
		if res.Succeeded {
			status = "ok"
		}
		c.metrics.RecordTranslit(ctx,
			string(translit.ScriptForLanguage(language)),
			status,
			time.Since(start).Seconds(),
		)
		return res, nil
	})
	res := v.(translit.Result)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !owner {
		slog.Debug("typing: shared in-flight lookup, swallowing keystroke", "key", string(key))
		return true, nil
	}
	if c.generation != gen || c.mode != ModeType {
		slog.Debug("typing: discarding stale lookup result", "token", cand.Text)
		if c.mode == ModeType {
			// Language changed mid-flight. A mode switch resets status
			// itself; a language switch does not, so recover here.
			c.setStatus(StatusReady)
		}
		return true, nil
	}
	c.setStatus(StatusReady)

	if res.Succeeded && res.DisplayText != cand.Text {
		if err := c.tracker.Commit(cand.Text, res.DisplayText); err != nil {
			if errors.Is(err, token.ErrTokenMoved) {
				slog.Warn("typing: token moved during lookup, leaving buffer untouched",
					"token", cand.Text,
				)
				return true, nil
			}
			return true, fmt.Errorf("editor: commit transliteration: %w", err)
		}
	}

	c.buf.InsertText(string(key))
	c.notifyBuffer()
	c.setPending("")
	return true, nil
}
