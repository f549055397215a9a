// Package gemini wraps the google.golang.org/genai SDK behind the small
// surface the assistant needs: create one chat session, send a message,
// pull the reply back as a stream of text fragments.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"coda/internal/config"
	"coda/internal/prompt"
)

// ResponseMIMEType pins replies to plain text so streamed fragments can be
// printed as they arrive.
const ResponseMIMEType = "text/plain"

// safetySettings is the fixed moderation policy: block medium and above
// across the four harm categories. Deliberately not configurable.
func safetySettings() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}
	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, c := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  c,
			Threshold: genai.HarmBlockThresholdBlockMediumAndAbove,
		})
	}
	return settings
}

// Client owns the SDK client for the lifetime of the process.
type Client struct {
	cc  *genai.Client
	log *zap.Logger
}

// NewClient configures the Gemini SDK with the API key from cfg. Failure
// here is fatal for the caller; there is no degraded mode without a client.
func NewClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("API key is required")
	}

	cc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to configure Gemini client: %w", err)
	}

	return &Client{cc: cc, log: logger.Named("gemini")}, nil
}

// StartChat opens the conversation: model, generation parameters, safety
// policy, and system instruction all come from cfg and the fixed constants
// above. The chat starts with empty history; the remote side accumulates
// context from there. Exactly one session is created per process run.
func (c *Client) StartChat(ctx context.Context, cfg *config.Config) (*Session, error) {
	chat, err := c.cc.Chats.Create(ctx, cfg.Model, buildGenerationConfig(cfg), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start chat with model %q: %w", cfg.Model, err)
	}

	id := uuid.NewString()
	c.log.Info("chat session started",
		zap.String("conversation_id", id),
		zap.String("model", cfg.Model))

	return &Session{
		chat: chat,
		id:   id,
		log:  c.log.Named("session"),
	}, nil
}

// buildGenerationConfig translates the configuration record into the SDK
// request shape. Unset top-p/top-k stay nil so the remote defaults apply.
func buildGenerationConfig(cfg *config.Config) *genai.GenerateContentConfig {
	gen := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(float32(cfg.Generation.Temperature)),
		MaxOutputTokens:   int32(cfg.Generation.MaxOutputTokens),
		ResponseMIMEType:  ResponseMIMEType,
		SafetySettings:    safetySettings(),
		SystemInstruction: genai.NewContentFromText(prompt.SystemInstruction, genai.RoleUser),
	}
	if cfg.Generation.TopP != nil {
		gen.TopP = genai.Ptr(float32(*cfg.Generation.TopP))
	}
	if cfg.Generation.TopK != nil {
		gen.TopK = genai.Ptr(float32(*cfg.Generation.TopK))
	}
	return gen
}
