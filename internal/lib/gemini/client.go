// Package gemini provides the client for the external natural-language
// answer service.
//
// It uses Google's Gemini API (google.golang.org/genai) to answer a
// question with a single word.
package gemini

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/deppfellow/bfhl/internal/config"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// PromptPrefix is prepended to every question.
const PromptPrefix = "Answer in ONE word only: "

// UnknownAnswer is returned when the service replies without any text.
const UnknownAnswer = "Unknown"

var (
	// ErrCredentialMissing is returned by Ask when no API key is configured.
	ErrCredentialMissing = errors.New("gemini: credential missing")

	// ErrRequestFailed hides every transport or decoding failure from the
	// caller. The underlying cause is only logged.
	ErrRequestFailed = errors.New("gemini: request failed")
)

// Client wraps the genai client and a logger.
//
// A Client without credentials is still valid: Ask fails immediately with
// ErrCredentialMissing, so a missing key surfaces per call instead of at
// start-up. The zero value is not usable; use NewClient.
type Client struct {
	genai   *genai.Client
	model   string
	timeout time.Duration
	logger  *zerolog.Logger
}

// NewClient creates a Client from the integration settings.
//
// httpClient may be nil, in which case genai's default transport is used.
// A nil logger discards output.
func NewClient(ctx context.Context, cfg config.IntegrationConfig, httpClient *http.Client, logger *zerolog.Logger) (*Client, error) {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	c := &Client{
		model:   cfg.GeminiModel,
		timeout: cfg.GeminiTimeout,
		logger:  logger,
	}

	apiKey := strings.TrimSpace(cfg.GeminiAPIKey)
	if apiKey == "" {
		return c, nil
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    cfg.GeminiBaseURL,
			APIVersion: cfg.GeminiAPIVersion,
		},
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create gemini client")
	}

	c.genai = client
	return c, nil
}

// Configured reports whether the client holds a credential.
func (c *Client) Configured() bool {
	return c.genai != nil
}

// Ask sends question to the model and returns its one-word answer.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	if c.genai == nil {
		return "", ErrCredentialMissing
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	logger := c.loggerFor(ctx)

	start := time.Now()
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(PromptPrefix+question), nil)
	if err != nil {
		logger.Error().
			Err(err).
			Str("model", c.model).
			Dur("duration", time.Since(start)).
			Msg("gemini request failed")
		return "", ErrRequestFailed
	}

	logger.Debug().
		Str("model", c.model).
		Dur("duration", time.Since(start)).
		Msg("gemini request completed")

	return firstText(resp), nil
}

// loggerFor prefers the request-scoped logger carried by ctx.
func (c *Client) loggerFor(ctx context.Context) *zerolog.Logger {
	if logger := zerolog.Ctx(ctx); logger.GetLevel() != zerolog.Disabled {
		return logger
	}
	return c.logger
}

// firstText extracts the first candidate's first text part.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return UnknownAnswer
	}

	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return UnknownAnswer
	}

	part := candidate.Content.Parts[0]
	if part == nil {
		return UnknownAnswer
	}

	if text := strings.TrimSpace(part.Text); text != "" {
		return text
	}
	return UnknownAnswer
}
