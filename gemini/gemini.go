// Package gemini is the model client: it sends prompts to a hosted Gemini model and returns its text.
package gemini

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/etnz/advisor"
	"google.golang.org/genai"
)

// DefaultModel is the model used when Config.Model is empty.
const DefaultModel = "gemini-2.5-flash"

// APIKeyEnv is the environment variable conventionally holding the API key.
const APIKeyEnv = "GEMINI_API_KEY"

// Config configures a Client.
type Config struct {
	APIKey      string
	Model       string   // DefaultModel if empty
	Temperature *float32 // model default if nil
	HTTPClient  *http.Client
	BaseURL     string // to reach a proxy or a test server
}

// contentGenerator is the subset of *genai.Models used by the client.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client sends prompts to a single model.
//
// It is built once and is safe for concurrent use, it holds no per call state.
type Client struct {
	model  string
	config *genai.GenerateContentConfig
	models contentGenerator // nil when there is no API key
}

// New creates a Client.
//
// A missing API key is not an error here: a warning is logged and every call fails as Unauthenticated.
func New(ctx context.Context, cfg Config) (*Client, error) {
	c := &Client{model: cfg.Model}
	if c.model == "" {
		c.model = DefaultModel
	}
	if cfg.Temperature != nil {
		c.config = &genai.GenerateContentConfig{Temperature: cfg.Temperature}
	}
	if cfg.APIKey == "" {
		log.Printf("warning: %s is not set, model calls will fail", APIKeyEnv)
		return c, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: cfg.BaseURL,
		},
	})
	if err != nil {
		return nil, advisor.Wrap(advisor.Unknown, "gemini", err)
	}
	c.models = client.Models
	return c, nil
}

// Model returns the name of the model this client talks to.
func (c *Client) Model() string { return c.model }

// Generate sends the prompt and returns the model's text, trimmed.
//
// Errors are *advisor.Error, their Kind tells authentication failures, outages,
// empty answers and rejected prompts apart.
func (c *Client) Generate(ctx context.Context, prompt advisor.Prompt) (string, error) {
	const op = "gemini"
	if c.models == nil {
		return "", advisor.Errorf(advisor.Unauthenticated, op, "no API key, set %s", APIKeyEnv)
	}
	if strings.TrimSpace(string(prompt)) == "" {
		return "", advisor.Errorf(advisor.InvalidInput, op, "empty prompt")
	}
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(string(prompt)), c.config)
	if err != nil {
		return "", classify(err)
	}
	log.Printf("gemini %s: %d candidate(s)", c.model, len(resp.Candidates))
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", advisor.Errorf(advisor.NoData, op, "prompt blocked: %s", resp.PromptFeedback.BlockReason)
	}
	text := strings.TrimSpace(firstText(resp))
	if text == "" {
		return "", advisor.Errorf(advisor.NoData, op, "no response from model %s", c.model)
	}
	return text, nil
}

// Reply is like Generate but packs the outcome in an advisor.Reply.
func (c *Client) Reply(ctx context.Context, prompt advisor.Prompt) advisor.Reply {
	text, err := c.Generate(ctx, prompt)
	return advisor.Reply{Text: text, Err: err}
}

// firstText concatenates the text parts of the first candidate.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && !part.Thought {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

// classify tags a genai error with its advisor.Kind.
func classify(err error) error {
	const op = "gemini"
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &advisor.Error{Kind: advisor.Unavailable, Op: op, Err: err}
	}
	code, msg, ok := apiError(err)
	if !ok {
		// transport errors: DNS, refused connections, TLS...
		return &advisor.Error{Kind: advisor.Unavailable, Op: op, Err: err}
	}
	kind := advisor.Unknown
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		kind = advisor.Unauthenticated
	case code == http.StatusBadRequest && strings.Contains(strings.ToLower(msg), "api key"):
		// the Gemini API reports an invalid key as a 400.
		kind = advisor.Unauthenticated
	case code == http.StatusTooManyRequests || code >= 500:
		kind = advisor.Unavailable
	case code == http.StatusNotFound:
		kind = advisor.InvalidInput // unknown model
	case code >= 400:
		kind = advisor.InvalidInput
	}
	return &advisor.Error{Kind: kind, Op: op, Err: err}
}

// apiError extracts the HTTP code and message of a genai.APIError.
func apiError(err error) (code int, msg string, ok bool) {
	var v genai.APIError
	if errors.As(err, &v) {
		return v.Code, v.Message, true
	}
	var p *genai.APIError
	if errors.As(err, &p) && p != nil {
		return p.Code, p.Message, true
	}
	return 0, "", false
}
