// File path: internal/llm/providers/openai_client.go
package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/nicodishanthj/lqa-insight/internal/common"
)

const DefaultOpenAIModel = "gpt-4o"

type OpenAIProvider struct {
	client    openai.Client
	chatModel string
}

// NewOpenAIProvider configures a chat completion client. The SDK's own retry
// loop is disabled so one audit maps to one request.
func NewOpenAIProvider(apiKey, model, endpoint string) (*OpenAIProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingCredential
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultOpenAIModel
	}
	logger := common.Logger()
	opts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	if endpoint = strings.TrimSpace(endpoint); endpoint != "" {
		logger.Info("llm: configuring OpenAI client with custom endpoint", "endpoint", endpoint)
		opts = append(opts, option.WithBaseURL(endpoint))
	} else {
		logger.Debug("llm: using default OpenAI endpoint")
	}
	logger.Info("llm: OpenAI provider configured", "chat_model", model)
	return &OpenAIProvider{client: openai.NewClient(opts...), chatModel: model}, nil
}

func (o *OpenAIProvider) Complete(ctx context.Context, req Request) (string, error) {
	logger := common.Logger()
	logger.Debug("llm: sending chat completion request", "model", o.chatModel, "system_len", len(req.System), "user_len", len(req.User))
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.chatModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
	}
	if req.Schema != nil {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   "audit_report",
					Schema: req.Schema.JSONSchema(),
					Strict: openai.Bool(false),
				},
			},
		}
	}
	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		logger.Error("llm: chat completion failed", "error", err)
		return "", openAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrEmptyResponse)
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyResponse
	}
	logger.Debug("llm: chat completion succeeded", "response_len", len(content))
	return content, nil
}

func (o *OpenAIProvider) Name() string {
	return "openai"
}

func openAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr != nil {
		status := apiErr.Type
		if status == "" {
			status = apiErr.Code
		}
		return &ServiceError{Status: status, Code: apiErr.StatusCode, Message: apiErr.Message}
	}
	return err
}
