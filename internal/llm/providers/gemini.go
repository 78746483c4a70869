// File path: internal/llm/providers/gemini.go
package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/nicodishanthj/lqa-insight/internal/common"
	"github.com/nicodishanthj/lqa-insight/internal/prompt"
)

const DefaultGeminiModel = "gemini-3-pro-preview"

// GeminiProvider calls generateContent with a JSON response schema.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider builds a client for the Gemini API. endpoint overrides the
// service base URL and may be empty.
func NewGeminiProvider(ctx context.Context, apiKey, model, endpoint string) (*GeminiProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingCredential
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultGeminiModel
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	logger := common.Logger()
	if endpoint = strings.TrimSpace(endpoint); endpoint != "" {
		logger.Info("llm: configuring Gemini client with custom endpoint", "endpoint", endpoint)
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: endpoint}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	logger.Info("llm: Gemini provider configured", "model", model)
	return &GeminiProvider{client: client, model: model}, nil
}

func (g *GeminiProvider) Complete(ctx context.Context, req Request) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("nil genai client")
	}
	logger := common.Logger()
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    GeminiSchema(req.Schema),
	}
	logger.Debug("llm: sending generateContent request", "model", g.model, "system_len", len(req.System), "user_len", len(req.User))
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.User), config)
	if err != nil {
		logger.Error("llm: generateContent failed", "model", g.model, "error", err)
		return "", geminiError(err)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	logger.Debug("llm: generateContent succeeded", "response_len", len(text))
	return text, nil
}

func (g *GeminiProvider) Name() string {
	return "gemini"
}

// geminiError lifts API errors into ServiceError so their status and code
// survive as an error envelope.
func geminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &ServiceError{Status: apiErr.Status, Code: apiErr.Code, Message: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &ServiceError{Status: apiErrPtr.Status, Code: apiErrPtr.Code, Message: apiErrPtr.Message}
	}
	return err
}

// GeminiSchema renders a schema tree as a genai schema.
func GeminiSchema(n *prompt.Node) *genai.Schema {
	if n == nil {
		return nil
	}
	s := &genai.Schema{Type: geminiType(n.Type)}
	if n.Nullable {
		s.Nullable = genai.Ptr(true)
	}
	switch n.Type {
	case prompt.TypeObject:
		s.Properties = make(map[string]*genai.Schema, len(n.Fields))
		for _, f := range n.Fields {
			s.Properties[f.Name] = GeminiSchema(f.Node)
			s.PropertyOrdering = append(s.PropertyOrdering, f.Name)
		}
		s.Required = n.Required()
	case prompt.TypeArray:
		s.Items = GeminiSchema(n.Items)
	}
	return s
}

func geminiType(t prompt.Type) genai.Type {
	switch t {
	case prompt.TypeObject:
		return genai.TypeObject
	case prompt.TypeArray:
		return genai.TypeArray
	case prompt.TypeNumber:
		return genai.TypeNumber
	default:
		return genai.TypeString
	}
}
