package client

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/genai"

	"briefy/internal/models"
)

type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// KeyPrefix is the prefix every credential of the provider starts with.
func (p Provider) KeyPrefix() string {
	switch p {
	case ProviderOpenAI:
		return "sk-"
	case ProviderAnthropic:
		return "sk-ant-"
	default:
		return "AIza"
	}
}

func (p Provider) DefaultModel() string {
	switch p {
	case ProviderOpenAI:
		return "gpt-5-mini"
	case ProviderAnthropic:
		return "claude-3-5-sonnet-latest"
	default:
		return "gemini-2.0-flash-exp"
	}
}

func ParseProvider(s string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(s))) {
	case "", ProviderGemini, "google":
		return ProviderGemini, nil
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	case ProviderAnthropic, "claude":
		return ProviderAnthropic, nil
	}
	return "", fmt.Errorf("unknown AI provider %q", s)
}

type Config struct {
	Provider  Provider
	APIKey    string
	Model     string
	MaxTokens int
}

// Gateway sends one prompt per call to the configured provider. There is no
// retry; the provider client's default timeout applies.
type Gateway struct {
	cfg Config

	mu    sync.Mutex
	chat  model.BaseChatModel
	genai *genai.Client
}

func New(cfg Config) *Gateway {
	if cfg.Provider == "" {
		cfg.Provider = ProviderGemini
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = cfg.Provider.DefaultModel()
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 8192
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	return &Gateway{cfg: cfg}
}

// WithChatModel binds a prebuilt chat model instead of constructing one from
// the credential on first use.
func (g *Gateway) WithChatModel(m model.BaseChatModel) *Gateway {
	g.mu.Lock()
	g.chat = m
	g.mu.Unlock()
	return g
}

func (g *Gateway) Provider() Provider { return g.cfg.Provider }
func (g *Gateway) Model() string      { return g.cfg.Model }

// Validate checks the credential shape without touching the network.
func (g *Gateway) Validate() error {
	if g.cfg.APIKey == "" {
		return ErrMissingCredential
	}
	if !strings.HasPrefix(g.cfg.APIKey, g.cfg.Provider.KeyPrefix()) {
		return fmt.Errorf("%w: chaves %s começam com %q", ErrMalformedCredential, g.cfg.Provider, g.cfg.Provider.KeyPrefix())
	}
	return nil
}

func (g *Gateway) Invoke(ctx context.Context, prompt string, media *models.InlineMedia) (string, error) {
	ctx, span := otel.Tracer("briefy/llm").Start(ctx, "gateway.invoke")
	defer span.End()
	span.SetAttributes(
		attribute.String("ai.provider", string(g.cfg.Provider)),
		attribute.String("ai.model", g.cfg.Model),
		attribute.Int("ai.prompt_chars", len(prompt)),
		attribute.Bool("ai.inline_media", media != nil),
	)

	if err := g.Validate(); err != nil {
		span.RecordError(err)
		return "", err
	}

	var (
		text string
		err  error
	)
	if media != nil {
		text, err = g.invokeWithMedia(ctx, prompt, media)
	} else {
		text, err = g.invokeText(ctx, prompt)
	}
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	return text, nil
}

func (g *Gateway) invokeText(ctx context.Context, prompt string) (string, error) {
	chat, err := g.chatModel(ctx)
	if err != nil {
		return "", Classify(err)
	}
	msg, err := chat.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", Classify(err)
	}
	if msg == nil {
		return "", Classify(errors.New("empty response from model"))
	}
	return msg.Content, nil
}

func (g *Gateway) invokeWithMedia(ctx context.Context, prompt string, media *models.InlineMedia) (string, error) {
	if g.cfg.Provider != ProviderGemini {
		return "", ErrMediaUnsupported
	}
	data, err := DecodeMedia(media.Base64Data)
	if err != nil {
		return "", err
	}
	gc, err := g.genaiClient(ctx)
	if err != nil {
		return "", Classify(err)
	}

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromBytes(data, media.MimeType),
	}
	resp, err := gc.Models.GenerateContent(ctx, g.cfg.Model, []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, nil)
	if err != nil {
		return "", Classify(err)
	}
	return resp.Text(), nil
}

// DecodeMedia accepts raw base64 or a data URL and returns the bytes.
func DecodeMedia(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if strings.HasPrefix(payload, "data:") {
		if i := strings.Index(payload, ","); i >= 0 {
			payload = payload[i+1:]
		}
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMedia, err)
	}
	return data, nil
}

// Ping sends a trivial prompt to check the credential and connectivity.
func (g *Gateway) Ping(ctx context.Context) error {
	out, err := g.Invoke(ctx, "Responda apenas com a palavra OK.", nil)
	if err != nil {
		return err
	}
	if strings.TrimSpace(out) == "" {
		return Classify(errors.New("empty response from model"))
	}
	return nil
}

func (g *Gateway) genaiClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.genai != nil {
		return g.genai, nil
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	g.genai = gc
	return gc, nil
}

func (g *Gateway) chatModel(ctx context.Context) (model.BaseChatModel, error) {
	g.mu.Lock()
	if g.chat != nil {
		defer g.mu.Unlock()
		return g.chat, nil
	}
	g.mu.Unlock()

	var (
		chat model.BaseChatModel
		err  error
	)
	switch g.cfg.Provider {
	case ProviderOpenAI:
		chat, err = openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey: g.cfg.APIKey,
			Model:  g.cfg.Model,
		})
	case ProviderAnthropic:
		chat, err = claude.NewChatModel(ctx, &claude.Config{
			APIKey:    g.cfg.APIKey,
			Model:     g.cfg.Model,
			MaxTokens: g.cfg.MaxTokens,
		})
	default:
		var gc *genai.Client
		gc, err = g.genaiClient(ctx)
		if err == nil {
			chat, err = gemini.NewChatModel(ctx, &gemini.Config{
				Client: gc,
				Model:  g.cfg.Model,
			})
		}
	}
	if err != nil {
		return nil, fmt.Errorf("creating %s chat model: %w", g.cfg.Provider, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.chat == nil {
		g.chat = chat
	}
	return g.chat, nil
}
