// Package genai provides the optional assistant draft side-channel.
//
// A Client turns a clinician prompt into suggested narrative text using either the
// OpenAI or Anthropic chat API. Drafts never feed back into outcome paragraphs; they
// are returned to the caller for review only. Repeated identical requests are served
// from a small cache, and a new draft request cancels any draft still in flight.
package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	aoption "github.com/anthropics/anthropic-sdk-go/option"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mitchellh/hashstructure/v2"
	"github.com/openai/openai-go"
	ooption "github.com/openai/openai-go/option"
)

// Supported provider names.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Default models per provider.
const (
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-3-5-sonnet-latest"
)

// DefaultMaxTokens bounds the length of a generated draft.
const DefaultMaxTokens = 1024

// DefaultCacheSize is the number of recent drafts kept for identical requests.
const DefaultCacheSize = 32

var (
	ErrEmptyPrompt        = errors.New("prompt cannot be empty")
	ErrAPIKeyNotSet       = errors.New("API key not set")
	ErrUnsupportedBackend = errors.New("unsupported genai provider")
	ErrNoContent          = errors.New("no content returned")
)

// DraftRequest describes one assistant draft. Model overrides the client default
// when set.
type DraftRequest struct {
	Model  string
	System string
	Prompt string
}

// chatCompletionService is the minimal OpenAI surface used by the client.
type chatCompletionService interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...ooption.RequestOption) (*openai.ChatCompletion, error)
}

// messageService is the minimal Anthropic surface used by the client.
type messageService interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...aoption.RequestOption) (*anthropic.Message, error)
}

// Opts holds configuration options for the genai client.
type Opts struct {
	Provider  string
	APIKey    string
	Model     string
	CacheSize int
}

// Option defines a configuration option for the genai client.
type Option func(*Opts)

// WithProvider selects the backend, "openai" or "anthropic".
func WithProvider(provider string) Option {
	return func(o *Opts) { o.Provider = provider }
}

// WithAPIKey sets the provider API key.
func WithAPIKey(key string) Option {
	return func(o *Opts) { o.APIKey = key }
}

// WithModel overrides the provider default model.
func WithModel(model string) Option {
	return func(o *Opts) { o.Model = model }
}

// WithCacheSize overrides the draft cache capacity.
func WithCacheSize(n int) Option {
	return func(o *Opts) { o.CacheSize = n }
}

// Client generates assistant drafts against one configured provider.
type Client struct {
	provider string
	model    string
	chat     chatCompletionService
	messages messageService

	mu       sync.Mutex
	inflight context.CancelFunc
	cache    *lru.Cache[uint64, string]
}

// NewClient creates a draft client for the configured provider. Defaults to OpenAI
// when no provider is named.
func NewClient(opts ...Option) (*Client, error) {
	cfg := Opts{Provider: ProviderOpenAI, CacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.APIKey == "" {
		return nil, ErrAPIKeyNotSet
	}

	c := &Client{provider: cfg.Provider, model: cfg.Model}
	switch cfg.Provider {
	case ProviderOpenAI:
		cli := openai.NewClient(ooption.WithAPIKey(cfg.APIKey))
		c.chat = &cli.Chat.Completions
		if c.model == "" {
			c.model = DefaultOpenAIModel
		}
	case ProviderAnthropic:
		cli := anthropic.NewClient(aoption.WithAPIKey(cfg.APIKey))
		c.messages = &cli.Messages
		if c.model == "" {
			c.model = DefaultAnthropicModel
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, cfg.Provider)
	}

	cache, err := lru.New[uint64, string](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create draft cache: %w", err)
	}
	c.cache = cache

	slog.Debug("Client.NewClient: genai client created", "provider", cfg.Provider, "model", c.model)
	return c, nil
}

// Draft generates suggested text for the request. Identical requests hit the cache;
// a fresh request cancels any draft still in flight so only the latest one completes.
func (c *Client) Draft(ctx context.Context, req DraftRequest) (string, error) {
	if req.Prompt == "" {
		return "", ErrEmptyPrompt
	}
	if req.Model == "" {
		req.Model = c.model
	}

	sig, err := hashstructure.Hash(req, hashstructure.FormatV2, nil)
	if err != nil {
		return "", fmt.Errorf("failed to hash draft request: %w", err)
	}
	c.mu.Lock()
	if cached, ok := c.cache.Get(sig); ok {
		c.mu.Unlock()
		slog.Debug("Client.Draft: cache hit", "provider", c.provider)
		return cached, nil
	}
	if c.inflight != nil {
		c.inflight()
	}
	ctx, cancel := context.WithCancel(ctx)
	c.inflight = cancel
	c.mu.Unlock()
	defer cancel()

	text, err := c.complete(ctx, req)
	if err != nil {
		slog.Error("Client.Draft: generation failed", "provider", c.provider, "error", err)
		return "", err
	}

	c.mu.Lock()
	c.cache.Add(sig, text)
	c.mu.Unlock()
	slog.Debug("Client.Draft: draft generated", "provider", c.provider, "chars", len(text))
	return text, nil
}

func (c *Client) complete(ctx context.Context, req DraftRequest) (string, error) {
	switch c.provider {
	case ProviderOpenAI:
		return c.completeOpenAI(ctx, req)
	case ProviderAnthropic:
		return c.completeAnthropic(ctx, req)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedBackend, c.provider)
	}
}

func (c *Client) completeOpenAI(ctx context.Context, req DraftRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	resp, err := c.chat.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(req.Model),
		Messages: messages,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoContent
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) completeAnthropic(ctx context.Context, req DraftRequest) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: DefaultMaxTokens,
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt))},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := c.messages.New(ctx, params)
	if err != nil {
		return "", err
	}
	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", ErrNoContent
}
