// File path: internal/llm/providers/unconfigured.go
package providers

import (
	"context"
	"fmt"

	"github.com/nicodishanthj/lqa-insight/internal/common"
)

// UnconfiguredProvider stands in when no credential is available. The server
// still starts; every audit fails with a missing credential error.
type UnconfiguredProvider struct {
	name   string
	envVar string
}

func NewUnconfiguredProvider(name, envVar string) *UnconfiguredProvider {
	common.Logger().Warn("llm: no credential configured; audits will fail until it is set", "provider", name, "env", envVar)
	return &UnconfiguredProvider{name: name, envVar: envVar}
}

func (u *UnconfiguredProvider) Complete(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("%w: set %s", ErrMissingCredential, u.envVar)
}

func (u *UnconfiguredProvider) Name() string {
	return u.name
}
