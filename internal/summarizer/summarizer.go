// Package summarizer asks an OpenAI-compatible chat model to turn a coach
// brief into a short narrative. Its output is advisory and is validated
// before use.
package summarizer

import (
	"context"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/omarshaarawi/coachbrief/internal/config"
	"github.com/omarshaarawi/coachbrief/internal/models"
	"github.com/sashabaranov/go-openai"
)

var (
	ErrUpstreamTimeout    = errors.New("summarizer timed out")
	ErrUpstreamFailure    = errors.New("summarizer upstream failure")
	ErrMalformedNarrative = errors.New("summarizer returned a malformed narrative")
)

const defaultTimeout = 5 * time.Second

var systemPrompt = strings.Join([]string{
	"You are a fantasy football coach assistant.",
	"Only use facts from the provided JSON. Do NOT invent numbers, names, statuses, or injuries.",
	"Keep it concise and actionable. Prefer imperative voice.",
	"Prioritize start/sit deltas, positional mismatches, and streamer needs.",
	`Return ONLY a JSON object: {"headline": string, "bullets": [1-6 strings], "risks": [strings], "moves": [{"label": string, "reason": string}]}.`,
}, "\n")

type Client struct {
	api      *openai.Client
	model    string
	timeout  time.Duration
	validate *validator.Validate
}

func New(cfg config.LLM) *Client {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		api:      openai.NewClientWithConfig(oc),
		model:    cfg.Model,
		timeout:  timeout,
		validate: validator.New(),
	}
}

// facts is the only view of the brief the model sees.
type facts struct {
	Week         int                     `json:"week"`
	TeamName     string                  `json:"teamName"`
	OpponentName string                  `json:"opponentName"`
	Risk         float64                 `json:"risk"`
	Live         bool                    `json:"live"`
	StartSit     []models.StartSitAdvice `json:"startSit"`
	Mismatches   []models.Mismatch       `json:"mismatches"`
	Streamers    []models.StreamerAdvice `json:"streamers"`
}

// Summarize returns a validated narrative for brief. Errors match
// ErrUpstreamTimeout, ErrUpstreamFailure or ErrMalformedNarrative.
func (c *Client) Summarize(ctx context.Context, brief models.CoachBrief) (*models.CoachNarrative, error) {
	payload, err := sonic.MarshalString(facts{
		Week:         brief.Week,
		TeamName:     brief.TeamName,
		OpponentName: brief.OpponentName,
		Risk:         brief.Risk,
		Live:         brief.Live,
		StartSit:     brief.StartSit,
		Mismatches:   brief.Mismatches,
		Streamers:    brief.Streamers,
	})
	if err != nil {
		return nil, errors.Wrap(err, "encoding brief")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: payload},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, errors.Mark(errors.Wrapf(err, "after %s", c.timeout), ErrUpstreamTimeout)
		}
		return nil, errors.Mark(errors.Wrap(err, "chat completion"), ErrUpstreamFailure)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.Wrap(ErrMalformedNarrative, "no choices in response")
	}

	return c.decode(resp.Choices[0].Message.Content)
}

func (c *Client) decode(content string) (*models.CoachNarrative, error) {
	var narrative models.CoachNarrative
	if err := sonic.UnmarshalString(strings.TrimSpace(content), &narrative); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decoding narrative"), ErrMalformedNarrative)
	}
	if err := c.validate.Struct(narrative); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "validating narrative"), ErrMalformedNarrative)
	}
	return &narrative, nil
}
