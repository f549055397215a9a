// Package assistant drives the conversation: collect a message, dispatch
// it, stream the reply, and decide which failures the session survives.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"coda/internal/gemini"
	"coda/internal/term"
)

// Session dispatches one user message and returns the reply stream.
type Session interface {
	Send(ctx context.Context, message string) (Stream, error)
}

// Stream is the pull side of one streamed reply.
type Stream interface {
	Next() bool
	Fragment() string
	Err() error
	Close()
}

// Collector gathers one complete user message.
type Collector interface {
	Collect() (string, error)
}

// Loop owns the conversation from first prompt to farewell. One Loop runs
// per process, synchronously, on a single session.
type Loop struct {
	session   Session
	collector Collector
	renderer  *term.Renderer
	log       *zap.Logger
}

func New(session Session, collector Collector, renderer *term.Renderer, logger *zap.Logger) *Loop {
	return &Loop{
		session:   session,
		collector: collector,
		renderer:  renderer,
		log:       logger.Named("assistant"),
	}
}

// Run repeats collect-dispatch-render until the user quits, input ends,
// the context is canceled, or a fatal error surfaces. A nil return means a
// deliberate shutdown with the farewell already printed; a non-nil return
// is fatal and the caller owns the diagnostic.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			l.renderer.Farewell(true)
			return nil
		}

		l.renderer.InputHeader()
		message, err := l.collector.Collect()
		switch {
		case errors.Is(err, term.ErrInterrupted):
			l.renderer.Farewell(true)
			return nil
		case errors.Is(err, io.EOF):
			l.renderer.Farewell(false)
			return nil
		case err != nil:
			return fmt.Errorf("failed to read input: %w", err)
		}

		trimmed := strings.TrimSpace(message)
		if isQuit(trimmed) {
			l.renderer.Farewell(false)
			return nil
		}
		if trimmed == "" {
			continue
		}

		if err := l.turn(ctx, message); err != nil {
			if errors.Is(err, context.Canceled) {
				l.renderer.Farewell(true)
				return nil
			}
			return err
		}
	}
}

// turn sends one message and renders its streamed reply. Recoverable
// failures are reported to the user and consumed here; everything else
// propagates.
func (l *Loop) turn(ctx context.Context, message string) error {
	l.renderer.ReplyHeader()

	stream, err := l.session.Send(ctx, message)
	if err != nil {
		return l.recover(err)
	}
	defer stream.Close()

	l.renderer.Thinking()

	var full strings.Builder
	for stream.Next() {
		frag := stream.Fragment()
		if frag == "" {
			l.renderer.EmptyChunkWarning()
			continue
		}
		l.renderer.Fragment(frag)
		full.WriteString(frag)
	}
	if err := stream.Err(); err != nil {
		return l.recover(err)
	}

	l.renderer.FinishReply(full.String())
	l.log.Debug("turn complete", zap.Int("reply_chars", full.Len()))
	return nil
}

// recover reports a recoverable turn failure and consumes it. Unknown
// kinds and non-turn errors, cancellation included, pass through.
func (l *Loop) recover(err error) error {
	var terr *gemini.TurnError
	if !errors.As(err, &terr) {
		return err
	}

	switch terr.Kind {
	case gemini.KindStoppedGeneration:
		l.renderer.StopWarning(terr.Err)
	case gemini.KindBlockedContent:
		l.renderer.BlockedError(terr.Err)
	case gemini.KindTransientService:
		l.renderer.ServiceError(terr.Err)
	default:
		return terr
	}

	l.log.Warn("turn failed",
		zap.String("kind", terr.Kind.String()),
		zap.Error(terr.Err))
	return nil
}

func isQuit(message string) bool {
	switch strings.ToLower(message) {
	case "quit", "exit":
		return true
	}
	return false
}
