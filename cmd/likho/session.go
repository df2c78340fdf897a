package main

import (
	"context"
	"log/slog"
	"sync"

	"github.com/coder/websocket"

	"github.com/likhoapp/likho/internal/buffer"
	"github.com/likhoapp/likho/internal/config"
	"github.com/likhoapp/likho/internal/editor"
	"github.com/likhoapp/likho/internal/lexicon"
	"github.com/likhoapp/likho/pkg/speech/wsbridge"
	"github.com/likhoapp/likho/pkg/translit"
)

// Outbound frame shapes pushed to the browser.
type statusFrame struct {
	Type   string `json:"type"`
	Status string `json:"status"`
}

type notificationFrame struct {
	Type    string `json:"type"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

type pendingFrame struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

type bufferFrame struct {
	Type   string `json:"type"`
	Text   string `json:"text"`
	Cursor int    `json:"cursor"`
}

// serveSession wires one browser connection into a fresh editor pipeline and
// pumps events both ways until the connection ends. Each connection gets its
// own buffer, lexicon, and coordinator; only the transliteration client is
// shared.
func serveSession(ctx context.Context, conn *websocket.Conn, cfg *config.Config, client *translit.Client) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bridge := wsbridge.New(conn)
	defer bridge.Close()

	lex := lexicon.New()
	for _, cc := range cfg.Editor.Commands {
		lex.Add(cc.Category, cc.Trigger, lexicon.Payload{
			Literal:   cc.Literal,
			Directive: cc.Directive,
		})
	}

	buf := buffer.NewMemory()
	coord := editor.New(editor.Config{
		Buffer:       buf,
		Source:       bridge,
		Translit:     client,
		Lexicon:      lex,
		Language:     cfg.Editor.DefaultLanguage,
		HintDebounce: cfg.Editor.HintDebounce,
	})

	unsubBuffer := coord.OnBufferChange(func(text string, cursor int) {
		frame := bufferFrame{Type: "buffer", Text: text, Cursor: cursor}
		if err := bridge.Publish(ctx, frame); err != nil {
			slog.Debug("publish buffer failed", "err", err)
		}
	})
	defer unsubBuffer()

	unsubStatus := coord.OnStatus(func(s editor.Status) {
		if err := bridge.Publish(ctx, statusFrame{Type: "status", Status: string(s)}); err != nil {
			slog.Debug("publish status failed", "err", err)
		}
	})
	defer unsubStatus()

	unsubNotify := coord.OnNotify(func(n editor.Notification) {
		frame := notificationFrame{Type: "notification", Level: string(n.Level), Message: n.Message}
		if err := bridge.Publish(ctx, frame); err != nil {
			slog.Debug("publish notification failed", "err", err)
		}
	})
	defer unsubNotify()

	unsubPending := coord.OnPendingToken(func(tok string) {
		if err := bridge.Publish(ctx, pendingFrame{Type: "pending_token", Token: tok}); err != nil {
			slog.Debug("publish pending token failed", "err", err)
		}
	})
	defer unsubPending()

	var wg sync.WaitGroup

	// Speech pump.
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := coord.Run(ctx); err != nil && ctx.Err() == nil {
			slog.Warn("coordinator loop error", "err", err)
		}
	}()

	// Keystroke pump.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for r := range bridge.Keystrokes() {
			handled, err := coord.HandleKeystroke(ctx, r)
			if err != nil {
				slog.Warn("keystroke error", "err", err)
				continue
			}
			if !handled {
				coord.InsertText(string(r))
			}
		}
	}()

	// Control pump.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for ctl := range bridge.Controls() {
			var err error
			switch ctl.Op {
			case "set_mode":
				err = coord.SetMode(ctx, editor.Mode(ctl.Mode))
			case "set_language":
				err = coord.SetLanguage(ctl.Language)
			case "start_dictation":
				err = coord.StartDictation(ctx)
			case "stop_dictation":
				err = coord.StopDictation()
			}
			if err != nil {
				slog.Warn("control failed", "op", ctl.Op, "err", err)
				frame := notificationFrame{Type: "notification", Level: string(editor.LevelWarn), Message: err.Error()}
				if perr := bridge.Publish(ctx, frame); perr != nil {
					slog.Debug("publish notification failed", "err", perr)
				}
			}
		}
	}()

	if err := bridge.Run(ctx); err != nil && ctx.Err() == nil {
		slog.Warn("bridge closed with error", "err", err)
	}
	cancel()
	wg.Wait()
}
