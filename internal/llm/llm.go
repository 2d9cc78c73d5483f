// Package llm talks to the Gemini generation API.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/aicommit-cli/aicommit/internal/config"
	"github.com/aicommit-cli/aicommit/internal/prompt"
)

const requestTimeout = 30 * time.Second

// Kind selects which prompt a request renders.
type Kind int

const (
	KindCommitMessage Kind = iota
	KindBranchName
)

// Request describes one generation call.
type Request struct {
	Diff     string
	Kind     Kind
	Language string
	Model    string
}

// Error is a typed generation failure. Feedback carries the service's
// content-filtering block reason when one was reported.
type Error struct {
	Reason   string
	Feedback string
	Err      error
}

func (e *Error) Error() string {
	msg := "generation failed: " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Feedback != "" {
		msg += " (prompt feedback: " + e.Feedback + ")"
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Ordinary code diffs trip the default thresholds often enough that
// every harm category is set to not-block.
var safetySettings = []*genai.SafetySetting{
	{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockNone},
	{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockNone},
	{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockNone},
	{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockNone},
}

// Client wraps the Gemini API client.
type Client struct {
	client *genai.Client

	// CommitTemplate, when set, replaces the built-in commit prompt.
	CommitTemplate string
}

// New builds a Gemini client. The API key must already be present; the
// caller is expected to have failed before this point when it is not.
func New(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set; export it or add it to a .env file")
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create Gemini client: %w", err)
	}
	return &Client{client: c}, nil
}

// Generate renders the prompt for the request and returns the raw
// response text. The diff and model are validated before any network
// traffic happens.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.Diff) == "" {
		return "", errors.New("refusing to generate from an empty diff")
	}
	if !config.IsAllowedModel(req.Model) {
		return "", fmt.Errorf("model %q is not supported; choose one of: %s",
			req.Model, strings.Join(config.AllowedModels, ", "))
	}

	text, err := c.renderPrompt(req)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(ctx, req.Model, genai.Text(text),
		&genai.GenerateContentConfig{SafetySettings: safetySettings})
	if err != nil {
		return "", &Error{Reason: "request failed", Err: err}
	}

	out := strings.TrimSpace(resp.Text())
	if out == "" {
		return "", &Error{Reason: "empty output", Feedback: promptFeedback(resp)}
	}
	return out, nil
}

func (c *Client) renderPrompt(req Request) (string, error) {
	switch req.Kind {
	case KindBranchName:
		return prompt.BranchName(req.Diff)
	default:
		return prompt.CommitMessage(req.Language, req.Diff, c.CommitTemplate)
	}
}

func promptFeedback(resp *genai.GenerateContentResponse) string {
	if resp == nil || resp.PromptFeedback == nil {
		return ""
	}
	fb := string(resp.PromptFeedback.BlockReason)
	if msg := resp.PromptFeedback.BlockReasonMessage; msg != "" {
		fb += ": " + msg
	}
	return fb
}
