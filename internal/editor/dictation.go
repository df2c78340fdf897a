package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/likhoapp/likho/internal/classify"
	"github.com/likhoapp/likho/internal/lexicon"
	"github.com/likhoapp/likho/internal/normalize"
	"github.com/likhoapp/likho/pkg/speech"
)

// Run consumes the speech source's event streams until ctx is cancelled or
// both streams close. It is the only reader of those streams; call it from a
// single goroutine.
func (c *Coordinator) Run(ctx context.Context) error {
	results := c.source.Results()
	errs := c.source.Errors()
	for results != nil || errs != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case r, ok := <-results:
			if !ok {
				results = nil
				continue
			}
			c.handleResult(ctx, r)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			c.handleRecognitionError(ctx, err)
		}
	}
	return nil
}

// StartDictation begins (or restarts) speech recognition. Fails with
// [ErrUnsupported] when the source cannot recognize speech; typing is
// unaffected by that.
func (c *Coordinator) StartDictation(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.source.IsSupported() {
		return ErrUnsupported
	}
	if c.mode != ModeDictate {
		return fmt.Errorf("editor: cannot start dictation in %s mode", c.mode)
	}
	if err := c.source.Start(ctx); err != nil {
		return fmt.Errorf("editor: start recognition: %w", err)
	}
	c.listening = true
	c.setStatus(StatusListening)
	slog.Info("dictation started", "language", c.language)
	return nil
}

// StopDictation suspends speech recognition. Already-captured results may
// still arrive and are processed normally.
func (c *Coordinator) StopDictation() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.source.Stop(); err != nil {
		return fmt.Errorf("editor: stop recognition: %w", err)
	}
	c.listening = false
	c.setStatus(StatusReady)
	slog.Info("dictation stopped")
	return nil
}

// handleResult processes one recognition event. Interim results only move the
// status display; final results run the full classification pipeline.
func (c *Coordinator) handleResult(ctx context.Context, r speech.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != ModeDictate {
		slog.Debug("dictation: dropping result outside dictate mode", "final", r.IsFinal)
		return
	}

	if !r.IsFinal {
		c.setStatus(StatusDetecting)
		return
	}

	c.setStatus(StatusProcessing)
	action := c.class.Classify(r.FinalText)
	c.metrics.RecordCommand(ctx, string(action.Kind))
	slog.Debug("dictation: classified utterance",
		"kind", string(action.Kind),
		"trigger", action.MatchedTrigger,
	)
	c.applyAction(action)
	c.notifyBuffer()

	if c.listening {
		c.setStatus(StatusListening)
	} else {
		c.setStatus(StatusReady)
	}
}

// applyAction mutates the buffer according to a classified action. Callers
// hold c.mu.
func (c *Coordinator) applyAction(action classify.Action) {
	switch action.Kind {
	case classify.KindPlainText:
		if action.Literal == "" {
			return
		}
		text := normalize.CleanSpacing(action.Literal)
		text = normalize.AutoCapitalize(text, c.precedingText())
		c.buf.InsertText(text)
		if s, ok := c.class.Suggest(action.Literal); ok {
			c.notify(LevelInfo, fmt.Sprintf("Did you mean the %s command %q?", s.Category, s.Trigger))
		}

	case classify.KindPunctuation:
		c.buf.InsertText(action.Literal)

	case classify.KindNavigation, classify.KindEditing:
		c.applyDirective(action.Directive)
	}
}

// applyDirective dispatches a symbolic editor operation. Callers hold c.mu.
func (c *Coordinator) applyDirective(d lexicon.Directive) {
	switch d {
	case lexicon.DirectiveNewLine:
		c.buf.InsertLineBreak()
	case lexicon.DirectiveNewParagraph:
		c.buf.InsertParagraphBreak()
	case lexicon.DirectiveDeleteSentence:
		c.buf.DeleteLastSentence()
	case lexicon.DirectiveUndo:
		if !c.buf.Undo() {
			c.notify(LevelInfo, "Nothing to undo.")
		}
	case lexicon.DirectiveRedo:
		if !c.buf.Redo() {
			c.notify(LevelInfo, "Nothing to redo.")
		}
	default:
		slog.Warn("dictation: unknown directive ignored", "directive", string(d))
	}
}

// handleRecognitionError surfaces a recognition failure. The recognition
// session has ended when one arrives; the user restarts dictation explicitly.
func (c *Coordinator) handleRecognitionError(ctx context.Context, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	code := speech.ErrorCode("unknown")
	var rerr *speech.RecognitionError
	if errors.As(err, &rerr) {
		code = rerr.Code
	}
	c.metrics.RecordSpeechError(ctx, string(code))
	slog.Warn("dictation: recognition error", "code", string(code), "error", err)

	c.listening = false
	c.setStatus(StatusError)
	c.notify(LevelError, recognitionMessage(code))
}

// recognitionMessage maps a recognition error code to user-facing text.
func recognitionMessage(code speech.ErrorCode) string {
	switch code {
	case speech.ErrNoSpeech:
		return "No speech was detected. Dictation has stopped."
	case speech.ErrAudioCapture:
		return "The microphone is unavailable. Check your audio input."
	case speech.ErrNotAllowed:
		return "Microphone access was denied. Allow it to use dictation."
	case speech.ErrNetwork:
		return "Speech recognition lost its network connection."
	}
	return "Speech recognition failed. Dictation has stopped."
}
