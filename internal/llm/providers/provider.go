// File path: internal/llm/providers/provider.go
package providers

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/nicodishanthj/lqa-insight/internal/prompt"
)

var (
	ErrMissingCredential = errors.New("API key not found")
	ErrEmptyResponse     = errors.New("empty response from AI model")
)

// Request is a single schema-constrained completion: one system instruction,
// one user turn and the shape the answer must take.
type Request struct {
	System string
	User   string
	Schema *prompt.Node
}

// Provider issues exactly one completion call per Complete. Implementations
// must not retry.
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
	Name() string
}

// ServiceError is a failure reported by the completion service itself. Its
// message is the service's JSON error envelope.
type ServiceError struct {
	Status  string
	Code    int
	Message string
}

func (e *ServiceError) Error() string {
	envelope := map[string]any{
		"error": map[string]any{
			"status":  e.Status,
			"code":    e.Code,
			"message": e.Message,
		},
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return e.Status + " (" + strconv.Itoa(e.Code) + "): " + e.Message
	}
	return string(data)
}
