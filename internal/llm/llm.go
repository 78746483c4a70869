// File path: internal/llm/llm.go
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nicodishanthj/lqa-insight/internal/common"
	"github.com/nicodishanthj/lqa-insight/internal/config"
	"github.com/nicodishanthj/lqa-insight/internal/llm/providers"
)

type Provider = providers.Provider

type Request = providers.Request

type ServiceError = providers.ServiceError

var (
	ErrMissingCredential = providers.ErrMissingCredential
	ErrEmptyResponse     = providers.ErrEmptyResponse
)

// NewProvider selects the completion service named by cfg. A missing
// credential is not fatal: the returned provider fails every call instead so
// the server can still start.
func NewProvider(ctx context.Context, cfg config.LLM) (Provider, error) {
	logger := common.Logger()
	name := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if name == "" {
		name = config.ProviderGemini
	}
	apiKey := cfg.Credential()
	envVar := strings.Join(cfg.CredentialEnv(), " or ")

	var (
		provider Provider
		err      error
	)
	switch name {
	case config.ProviderGemini:
		provider, err = providers.NewGeminiProvider(ctx, apiKey, cfg.Model, cfg.Endpoint)
	case config.ProviderOpenAI:
		provider, err = providers.NewOpenAIProvider(apiKey, cfg.Model, cfg.Endpoint)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
	if errors.Is(err, providers.ErrMissingCredential) {
		return providers.NewUnconfiguredProvider(name, envVar), nil
	}
	if err != nil {
		return nil, fmt.Errorf("configure %s provider: %w", name, err)
	}
	logger.Info("llm: provider selected", "provider", provider.Name())
	return provider, nil
}
