package gemini

import (
	"context"
	"errors"
	"iter"
	"strings"

	"google.golang.org/genai"
)

// Stream delivers one reply as an ordered sequence of text fragments. It
// wraps the SDK's push iterator in pull semantics:
//
//	for stream.Next() {
//		render(stream.Fragment())
//	}
//	if err := stream.Err(); err != nil {
//		// classify and recover
//	}
//
// A fragment may be empty when a chunk carried no usable content, for
// example output withheld by the safety filter; the consumer decides how
// to surface that. Close releases the underlying iterator and is safe to
// call at any point, including after exhaustion.
type Stream struct {
	ctx  context.Context
	next func() (*genai.GenerateContentResponse, error, bool)
	stop func()

	cur     string
	err     error
	pending *TurnError
	done    bool
}

func newStream(ctx context.Context, seq iter.Seq2[*genai.GenerateContentResponse, error]) *Stream {
	next, stop := iter.Pull2(seq)
	return &Stream{ctx: ctx, next: next, stop: stop}
}

// Next advances to the next fragment. It returns false when the stream is
// exhausted or broken; Err tells the two apart.
func (s *Stream) Next() bool {
	if s.done {
		return false
	}
	if s.pending != nil {
		s.finish(s.pending)
		return false
	}
	if err := s.ctx.Err(); err != nil {
		s.finish(err)
		return false
	}

	resp, err, ok := s.next()
	if !ok {
		s.finish(nil)
		return false
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			s.finish(err)
		} else {
			s.finish(Classify(err))
		}
		return false
	}

	if terr := promptBlocked(resp); terr != nil {
		s.finish(terr)
		return false
	}

	s.cur = joinParts(resp)
	if terr := finishedAbnormally(resp); terr != nil {
		if s.cur == "" {
			s.finish(terr)
			return false
		}
		// Deliver the chunk's text first, then surface the stop condition.
		s.pending = terr
	}
	return true
}

// Fragment returns the text produced by the latest successful Next.
func (s *Stream) Fragment() string { return s.cur }

// Err reports what ended the stream. It stays nil after a clean end.
func (s *Stream) Err() error { return s.err }

// Close releases the underlying iterator.
func (s *Stream) Close() {
	s.done = true
	s.stop()
}

func (s *Stream) finish(err error) {
	s.err = err
	s.done = true
	s.stop()
}

// promptBlocked reports the prompt-feedback block reason on a chunk, if any.
func promptBlocked(resp *genai.GenerateContentResponse) *TurnError {
	if resp == nil || resp.PromptFeedback == nil {
		return nil
	}
	pf := resp.PromptFeedback
	if pf.BlockReason == "" || pf.BlockReason == genai.BlockedReasonUnspecified {
		return nil
	}
	return blockedContent(pf.BlockReason, pf.BlockReasonMessage)
}

// finishedAbnormally reports a finish reason other than a natural stop.
func finishedAbnormally(resp *genai.GenerateContentResponse) *TurnError {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	switch reason := resp.Candidates[0].FinishReason; reason {
	case "", genai.FinishReasonUnspecified, genai.FinishReasonStop:
		return nil
	default:
		return stoppedGeneration(reason)
	}
}

// joinParts concatenates the text parts of the first candidate. Chunks
// with no candidates or no parts yield an empty fragment.
func joinParts(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range content.Parts {
		if part == nil {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}
