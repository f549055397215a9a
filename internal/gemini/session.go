package gemini

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Session is the standing conversation with the remote model. It is owned
// by the interaction loop for the whole process run and never recreated:
// a failed turn leaves the session valid.
type Session struct {
	chat *genai.Chat
	id   string
	log  *zap.Logger
}

// ID returns the conversation ID used for log correlation.
func (s *Session) ID() string {
	return s.id
}

// Send submits one user message and returns the reply as a fragment
// stream. The SDK defers request errors to the first pull, so the returned
// error is reserved for failures detectable before the call leaves the
// process.
func (s *Session) Send(ctx context.Context, message string) (*Stream, error) {
	s.log.Debug("dispatching message",
		zap.String("conversation_id", s.id),
		zap.Int("chars", len(message)))

	seq := s.chat.SendMessageStream(ctx, genai.Part{Text: message})
	return newStream(ctx, seq), nil
}
