package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/markforge/backend/models"
	openai "github.com/sashabaranov/go-openai"
)

// ErrGenerationFailed is returned when the external text-generation call
// errors, or its reply cannot be parsed into the expected content shape.
var ErrGenerationFailed = errors.New("content generation failed")

// GenerationRequest carries the full context for one version-generation call
type GenerationRequest struct {
	BrandGuide   *models.BrandGuide
	Campaign     *models.Campaign
	Audience     *models.Audience
	Channel      models.ChannelType
	Strategy     models.Strategy
	Instructions string
}

// GenerationResult is one successfully parsed content candidate plus the
// prompt that produced it, retained on the asset for regeneration and audit.
type GenerationResult struct {
	Content models.VersionContent
	Prompt  string
}

// ContentGenerator produces one strategy-flavored content candidate per call.
// Implementations make a single attempt; retries and partial-failure handling
// belong to the caller.
type ContentGenerator interface {
	GenerateVersion(ctx context.Context, req GenerationRequest) (*GenerationResult, error)
}

// OpenAIContentGenerator implements ContentGenerator on the OpenAI chat API
type OpenAIContentGenerator struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	logger      *log.Logger
}

// OpenAIConfig holds the settings for the OpenAI-backed generator
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// NewOpenAIContentGenerator creates an OpenAI-backed content generator
func NewOpenAIContentGenerator(cfg OpenAIConfig, logger *log.Logger) *OpenAIContentGenerator {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o"
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.8
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1024
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if logger == nil {
		logger = log.Default()
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &OpenAIContentGenerator{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.Timeout,
		logger:      logger,
	}
}

const systemPrompt = "You are an expert marketing copywriter. " +
	"Reply with a single JSON object containing exactly the requested fields and nothing else."

// GenerateVersion builds the channel- and strategy-specific prompt, makes one
// chat completion call, and parses the reply into the channel's content shape.
func (g *OpenAIContentGenerator) GenerateVersion(ctx context.Context, req GenerationRequest) (*GenerationResult, error) {
	prompt := BuildPrompt(req)

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	})
	duration := time.Since(start)

	if err != nil {
		g.logger.Printf("openai completion failed: channel=%s strategy=%s duration=%v err=%v",
			req.Channel, req.Strategy, duration, err)
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", ErrGenerationFailed)
	}

	g.logger.Printf("openai completion ok: channel=%s strategy=%s tokens=%d duration=%v",
		req.Channel, req.Strategy, resp.Usage.TotalTokens, duration)

	content, err := ParseGeneratedContent(resp.Choices[0].Message.Content, req.Channel)
	if err != nil {
		return nil, err
	}

	return &GenerationResult{Content: *content, Prompt: prompt}, nil
}

// BuildPrompt assembles the natural-language prompt for one generation call.
// Field-length constraints are stated in the prompt but not enforced on the
// response; the reply is only validated structurally.
func BuildPrompt(req GenerationRequest) string {
	var b strings.Builder

	b.WriteString("Write marketing copy for the following campaign.\n\n")

	if req.BrandGuide != nil {
		b.WriteString("BRAND:\n")
		b.WriteString(req.BrandGuide.ContextSummary())
		b.WriteString("\n")
	}

	if req.Campaign != nil {
		b.WriteString("CAMPAIGN:\n")
		b.WriteString(req.Campaign.ContextSummary())
		b.WriteString("\n")
	}

	if req.Audience != nil {
		b.WriteString("TARGET AUDIENCE:\n")
		b.WriteString(req.Audience.Summary())
		b.WriteString("\n")
	}

	b.WriteString("STRATEGY: ")
	b.WriteString(strategyDirective(req.Strategy))
	b.WriteString("\n\n")

	switch req.Channel {
	case models.ChannelEmail:
		b.WriteString("Produce a hero email. Respond with a JSON object with these fields:\n")
		b.WriteString(`  "subject_line": compelling subject line (max 60 characters)` + "\n")
		b.WriteString(`  "preheader": preview text that complements the subject (max 100 characters)` + "\n")
		b.WriteString(`  "headline": main headline inside the email (max 80 characters)` + "\n")
		b.WriteString(`  "body_copy": 2-3 short paragraphs of body copy` + "\n")
		b.WriteString(`  "cta_text": call-to-action button text (max 25 characters)` + "\n")
	case models.ChannelMetaAds:
		b.WriteString("Produce a single-image Meta ad. Respond with a JSON object with these fields:\n")
		b.WriteString(`  "primary_text": primary ad text above the image (max 125 characters)` + "\n")
		b.WriteString(`  "headline": ad headline (max 40 characters)` + "\n")
		b.WriteString(`  "description": link description (max 30 characters)` + "\n")
		b.WriteString(`  "cta_button": one of the standard Meta CTA button labels` + "\n")
	}

	if req.Instructions != "" {
		b.WriteString("\nADDITIONAL INSTRUCTIONS:\n")
		b.WriteString(req.Instructions)
		b.WriteString("\n")
	}

	return b.String()
}

// strategyDirective returns the short framing clause appended per strategy
func strategyDirective(s models.Strategy) string {
	switch s {
	case models.StrategyConversion:
		return "focus on driving immediate action with a clear, direct offer"
	case models.StrategyAwareness:
		return "focus on brand storytelling and building familiarity"
	case models.StrategyUrgency:
		return "focus on scarcity and deadline framing to prompt quick decisions"
	case models.StrategyEmotional:
		return "focus on values and lifestyle framing that resonates emotionally"
	default:
		return "focus on clear, persuasive messaging"
	}
}

// ParseGeneratedContent extracts the first balanced JSON object from the
// model's free-text reply and decodes it as the channel's content shape.
func ParseGeneratedContent(reply string, channel models.ChannelType) (*models.VersionContent, error) {
	raw, ok := extractJSONObject(reply)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object in reply", ErrGenerationFailed)
	}

	switch channel {
	case models.ChannelEmail:
		var email models.EmailContent
		if err := json.Unmarshal([]byte(raw), &email); err != nil {
			return nil, fmt.Errorf("%w: malformed email content: %v", ErrGenerationFailed, err)
		}
		return &models.VersionContent{Email: &email}, nil
	case models.ChannelMetaAds:
		var ad models.MetaAdContent
		if err := json.Unmarshal([]byte(raw), &ad); err != nil {
			return nil, fmt.Errorf("%w: malformed meta ad content: %v", ErrGenerationFailed, err)
		}
		return &models.VersionContent{MetaAd: &ad}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported channel %q", ErrGenerationFailed, channel)
	}
}

// extractJSONObject returns the first balanced {...} substring of s. Braces
// inside JSON strings are skipped so nested or quoted braces do not break
// the balance count.
func extractJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}
