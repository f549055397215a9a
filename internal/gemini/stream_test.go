package gemini

import (
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"
)

type chunk struct {
	resp *genai.GenerateContentResponse
	err  error
}

func seqOf(chunks ...chunk) iter.Seq2[*genai.GenerateContentResponse, error] {
	return func(yield func(*genai.GenerateContentResponse, error) bool) {
		for _, c := range chunks {
			if !yield(c.resp, c.err) {
				return
			}
		}
	}
}

func textChunk(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func drain(s *Stream) []string {
	var got []string
	for s.Next() {
		got = append(got, s.Fragment())
	}
	return got
}

func TestStream_DeliversFragmentsInOrder(t *testing.T) {
	s := newStream(context.Background(), seqOf(
		chunk{resp: textChunk("Hel")},
		chunk{resp: textChunk("lo, ")},
		chunk{resp: textChunk("world!")},
	))
	defer s.Close()

	got := drain(s)
	want := []string{"Hel", "lo, ", "world!"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fragments mismatch (-want +got):\n%s", diff)
	}
	if err := s.Err(); err != nil {
		t.Errorf("Err() = %v, want nil after clean end", err)
	}
}

func TestStream_EmptyChunkYieldsEmptyFragment(t *testing.T) {
	empty := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{}}},
	}
	s := newStream(context.Background(), seqOf(
		chunk{resp: textChunk("before")},
		chunk{resp: empty},
		chunk{resp: textChunk("after")},
	))
	defer s.Close()

	got := drain(s)
	want := []string{"before", "", "after"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fragments mismatch (-want +got):\n%s", diff)
	}
	if err := s.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}

func TestStream_MidStreamAPIError(t *testing.T) {
	s := newStream(context.Background(), seqOf(
		chunk{resp: textChunk("partial")},
		chunk{err: genai.APIError{Code: 503, Message: "overloaded", Status: "UNAVAILABLE"}},
	))
	defer s.Close()

	got := drain(s)
	want := []string{"partial"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fragments mismatch (-want +got):\n%s", diff)
	}

	var terr *TurnError
	if !errors.As(s.Err(), &terr) {
		t.Fatalf("Err() = %v, want *TurnError", s.Err())
	}
	if terr.Kind != KindTransientService {
		t.Errorf("Kind = %s, want %s", terr.Kind, KindTransientService)
	}
}

func TestStream_PromptBlocked(t *testing.T) {
	blocked := &genai.GenerateContentResponse{
		PromptFeedback: &genai.GenerateContentResponsePromptFeedback{
			BlockReason:        genai.BlockedReasonSafety,
			BlockReasonMessage: "prompt rejected",
		},
	}
	s := newStream(context.Background(), seqOf(chunk{resp: blocked}))
	defer s.Close()

	if s.Next() {
		t.Fatal("Next() = true, want false for a blocked prompt")
	}

	var terr *TurnError
	if !errors.As(s.Err(), &terr) {
		t.Fatalf("Err() = %v, want *TurnError", s.Err())
	}
	if terr.Kind != KindBlockedContent {
		t.Errorf("Kind = %s, want %s", terr.Kind, KindBlockedContent)
	}
}

func TestStream_AbnormalFinishDeliversTrailingText(t *testing.T) {
	cutOff := textChunk("truncated tail")
	cutOff.Candidates[0].FinishReason = genai.FinishReasonMaxTokens

	s := newStream(context.Background(), seqOf(
		chunk{resp: textChunk("head ")},
		chunk{resp: cutOff},
	))
	defer s.Close()

	got := drain(s)
	want := []string{"head ", "truncated tail"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fragments mismatch (-want +got):\n%s", diff)
	}

	var terr *TurnError
	if !errors.As(s.Err(), &terr) {
		t.Fatalf("Err() = %v, want *TurnError", s.Err())
	}
	if terr.Kind != KindStoppedGeneration {
		t.Errorf("Kind = %s, want %s", terr.Kind, KindStoppedGeneration)
	}
}

func TestStream_AbnormalFinishWithoutText(t *testing.T) {
	stopped := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
	}
	s := newStream(context.Background(), seqOf(chunk{resp: stopped}))
	defer s.Close()

	if s.Next() {
		t.Fatal("Next() = true, want false when the cut-off chunk has no text")
	}

	var terr *TurnError
	if !errors.As(s.Err(), &terr) {
		t.Fatalf("Err() = %v, want *TurnError", s.Err())
	}
	if terr.Kind != KindStoppedGeneration {
		t.Errorf("Kind = %s, want %s", terr.Kind, KindStoppedGeneration)
	}
}

func TestStream_NaturalStopIsClean(t *testing.T) {
	last := textChunk("done")
	last.Candidates[0].FinishReason = genai.FinishReasonStop

	s := newStream(context.Background(), seqOf(chunk{resp: last}))
	defer s.Close()

	got := drain(s)
	want := []string{"done"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fragments mismatch (-want +got):\n%s", diff)
	}
	if err := s.Err(); err != nil {
		t.Errorf("Err() = %v, want nil for a natural stop", err)
	}
}

func TestStream_CloseStopsIteration(t *testing.T) {
	s := newStream(context.Background(), seqOf(
		chunk{resp: textChunk("one")},
		chunk{resp: textChunk("two")},
	))

	if !s.Next() {
		t.Fatal("Next() = false on first pull")
	}
	s.Close()

	if s.Next() {
		t.Error("Next() = true after Close")
	}
	if err := s.Err(); err != nil {
		t.Errorf("Err() = %v, want nil after Close", err)
	}
	s.Close() // safe to repeat
}

func TestStream_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newStream(ctx, seqOf(chunk{resp: textChunk("never delivered")}))
	defer s.Close()

	if s.Next() {
		t.Fatal("Next() = true on a canceled context")
	}
	if !errors.Is(s.Err(), context.Canceled) {
		t.Errorf("Err() = %v, want context.Canceled", s.Err())
	}
}
