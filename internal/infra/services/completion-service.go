package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"chat-gateway/internal/config"
	"chat-gateway/internal/domain/entities"
	"chat-gateway/internal/infra/logger"
)

// Completion failure classes the router distinguishes. Anything else from
// the backend is wrapped as a generic completion failure. No retries: errors
// are surfaced to the router, which answers the user.
var (
	ErrCompletionAuth        = errors.New("completion backend rejected the credentials")
	ErrCompletionRateLimited = errors.New("completion backend is rate limiting")
	ErrEmptyCompletion       = errors.New("completion backend returned an empty response")
)

type CompletionService struct {
	Client *openai.Client
	Model  string
	Logger *logger.Logger
}

// NewCompletionService creates a new instance of the service.
func NewCompletionService(cfg *config.Config, log *logger.Logger) *CompletionService {
	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	clientConfig.OrgID = cfg.OpenAIOrg
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}

	return &CompletionService{
		Client: openai.NewClientWithConfig(clientConfig),
		Model:  cfg.Model,
		Logger: log,
	}
}

// Complete sends the assembled message array to the chat-completion API and
// returns the generated text.
func (cs *CompletionService) Complete(ctx context.Context, messages []entities.PromptMessage) (string, error) {
	request := openai.ChatCompletionRequest{
		Model:    cs.Model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, msg := range messages {
		request.Messages = append(request.Messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	cs.Logger.Debug(fmt.Sprintf("Calling %s for a chat completion with %d messages", cs.Model, len(messages)))
	response, err := cs.Client.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", classifyCompletionError(err)
	}

	if len(response.Choices) == 0 || strings.TrimSpace(response.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}
	return response.Choices[0].Message.Content, nil
}

func classifyCompletionError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrCompletionAuth, err)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", ErrCompletionRateLimited, err)
		}
	}
	return fmt.Errorf("chat completion failed: %w", err)
}
