package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/task-board-api/internal/models"
)

// ChatCompleter is the part of the OpenAI client the suggestion service uses.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type AIService struct {
	client ChatCompleter
	model  string
}

// TaskDraft is a suggested task. Drafts are never persisted by the
// service; the client submits the ones it keeps through the create endpoint.
type TaskDraft struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     *models.Date        `json:"dueDate"`
}

func NewAIService(apiKey string) *AIService {
	return NewAIServiceWithClient(openai.NewClient(apiKey))
}

// NewAIServiceWithClient allows a custom or fake completion client.
func NewAIServiceWithClient(client ChatCompleter) *AIService {
	return &AIService{
		client: client,
		model:  openai.GPT4o,
	}
}

// rawDraft mirrors the JSON the model is asked for; dates stay strings so
// one malformed value does not discard the whole response.
type rawDraft struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"dueDate"`
}

// ExtractTasks asks the model to pull concrete tasks out of free text
func (s *AIService) ExtractTasks(ctx context.Context, text string, today models.Date) ([]TaskDraft, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You extract actionable tasks from text.

Today is %s.

Text:
%s

Reply with a JSON array only, no prose:
[
  {
    "title": "short task title",
    "description": "one or two sentences",
    "priority": "low | medium | high",
    "dueDate": "YYYY-MM-DD, or null when the text gives no deadline"
  }
]

Rules:
- Return [] when there are no tasks
- Convert relative deadlines ("tomorrow", "next week") to calendar dates`, today.String(), text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := stripCodeFence(resp.Choices[0].Message.Content)

	var raw []rawDraft
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	drafts := make([]TaskDraft, 0, len(raw))
	for _, r := range raw {
		d := TaskDraft{
			Title:       strings.TrimSpace(r.Title),
			Description: strings.TrimSpace(r.Description),
			Priority:    models.TaskPriority(strings.ToLower(strings.TrimSpace(r.Priority))),
		}
		if r.DueDate != nil {
			if due, err := models.ParseDate(*r.DueDate); err == nil {
				d.DueDate = &due
			}
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

// stripCodeFence removes a ```json fence some models wrap replies in.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}
