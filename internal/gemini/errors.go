package gemini

import (
	"errors"
	"fmt"
	"net"

	"google.golang.org/genai"
)

// Kind classifies a failed turn so the interaction loop can decide between
// recovering and shutting down.
type Kind int

const (
	// KindUnknown covers everything the other kinds do not. The loop
	// treats it as fatal rather than continue on an inconsistent session.
	KindUnknown Kind = iota

	// KindBlockedContent means the prompt was rejected by the safety
	// policy before any generation happened.
	KindBlockedContent

	// KindStoppedGeneration means the reply ended early: safety filter,
	// token limit, or a stop condition cut the candidate off.
	KindStoppedGeneration

	// KindTransientService covers API and network failures where the
	// session itself is still assumed valid.
	KindTransientService
)

func (k Kind) String() string {
	switch k {
	case KindBlockedContent:
		return "blocked_content"
	case KindStoppedGeneration:
		return "stopped_generation"
	case KindTransientService:
		return "transient_service"
	default:
		return "unknown"
	}
}

// TurnError describes why a single turn failed. Kind drives the recovery
// policy; Err keeps the underlying SDK error for diagnostics and logs.
type TurnError struct {
	Kind Kind
	Err  error
}

func (e *TurnError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *TurnError) Unwrap() error {
	return e.Err
}

// blockedContent reports a prompt rejected by the safety policy.
func blockedContent(reason genai.BlockedReason, message string) *TurnError {
	err := fmt.Errorf("prompt blocked (%s)", reason)
	if message != "" {
		err = fmt.Errorf("prompt blocked (%s): %s", reason, message)
	}
	return &TurnError{Kind: KindBlockedContent, Err: err}
}

// stoppedGeneration reports a reply cut off before its natural end.
func stoppedGeneration(reason genai.FinishReason) *TurnError {
	return &TurnError{
		Kind: KindStoppedGeneration,
		Err:  fmt.Errorf("generation stopped (%s)", reason),
	}
}

// Classify maps an error from the SDK onto a turn error kind. Every API
// error is treated as recoverable: the remote call failed but the session
// remains usable, which matches how rejected requests behave in practice.
// Context cancellation is deliberately not classified here; callers check
// for it before consulting the kind.
func Classify(err error) *TurnError {
	var terr *TurnError
	if errors.As(err, &terr) {
		return terr
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &TurnError{Kind: KindTransientService, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return &TurnError{Kind: KindTransientService, Err: err}
	}

	return &TurnError{Kind: KindUnknown, Err: err}
}
