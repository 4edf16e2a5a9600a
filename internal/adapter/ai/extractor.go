// Package ai wraps the hosted generative endpoint that parses a
// free-text prompt into a task draft. The model response is untrusted
// input: it is fence-stripped, parsed and field-validated before
// anything downstream sees it.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/Ganderlu/taskmate/internal/config"
	"github.com/Ganderlu/taskmate/internal/core/domain"
	"github.com/Ganderlu/taskmate/internal/core/ports"
)

const systemPrompt = `You are a task planning assistant. Extract task details from the user's input.
Return a JSON object with the following fields:
- title: string (short summary)
- description: string (detailed description)
- category: string
- date: string (YYYY-MM-DD) - assume today is %s if not specified
- startTime: string (HH:MM) - 24h format
- endTime: string (HH:MM) - 24h format (default to 1 hour after start)
Respond ONLY with the JSON object. Do not wrap in markdown code blocks.`

type Extractor struct {
	llm llms.Model
}

var _ ports.DraftExtractor = (*Extractor)(nil)

// NewExtractor builds the client, or returns nil when no API key is
// configured so callers can leave the endpoint unregistered.
func NewExtractor(conf *config.Config) (*Extractor, error) {
	if conf.AIAPIKey == "" {
		return nil, nil
	}

	opts := []openai.Option{
		openai.WithToken(conf.AIAPIKey),
		openai.WithModel(conf.AIModel),
	}
	if conf.AIBaseURL != "" {
		opts = append(opts, openai.WithBaseURL(conf.AIBaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("init ai client: %w", err)
	}
	return &Extractor{llm: llm}, nil
}

func (e *Extractor) ExtractDraft(ctx context.Context, prompt string) (domain.TaskDraft, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return domain.TaskDraft{}, fmt.Errorf("%w: prompt is required", domain.ErrInvalidInput)
	}

	today := time.Now().UTC().Format(domain.DateLayout)
	full := fmt.Sprintf(systemPrompt, today) + "\n\nInput: " + prompt

	raw, err := llms.GenerateFromSinglePrompt(ctx, e.llm, full)
	if err != nil {
		return domain.TaskDraft{}, fmt.Errorf("generate task draft: %w", err)
	}

	return ParseDraft(raw)
}

// ParseDraft turns a raw model completion into a validated draft.
func ParseDraft(raw string) (domain.TaskDraft, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.ReplaceAll(clean, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	var draft domain.TaskDraft
	if err := json.Unmarshal([]byte(clean), &draft); err != nil {
		return domain.TaskDraft{}, fmt.Errorf("%w: model returned malformed draft", domain.ErrInvalidInput)
	}

	draft.Title = strings.TrimSpace(draft.Title)
	if draft.Title == "" {
		return domain.TaskDraft{}, fmt.Errorf("%w: draft has no title", domain.ErrInvalidInput)
	}
	if draft.Category == "" {
		draft.Category = domain.DefaultCategory
	}
	if draft.Date != "" {
		if _, err := time.Parse(domain.DateLayout, draft.Date); err != nil {
			return domain.TaskDraft{}, fmt.Errorf("%w: draft date must be YYYY-MM-DD", domain.ErrInvalidInput)
		}
	}
	for _, value := range []*string{&draft.StartTime, &draft.EndTime} {
		if *value == "" {
			continue
		}
		if _, err := time.Parse(domain.TimeLayout, *value); err != nil {
			// Drop an unparsable time rather than fail the whole draft;
			// the form simply comes back without it.
			*value = ""
		}
	}

	return draft, nil
}
