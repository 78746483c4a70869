// File path: internal/audit/audit.go
package audit

import (
	"context"
	"errors"
	"fmt"

	"github.com/nicodishanthj/lqa-insight/internal/common"
	"github.com/nicodishanthj/lqa-insight/internal/common/telemetry"
	"github.com/nicodishanthj/lqa-insight/internal/llm"
	"github.com/nicodishanthj/lqa-insight/internal/locale"
	"github.com/nicodishanthj/lqa-insight/internal/prompt"
	"github.com/nicodishanthj/lqa-insight/internal/report"
)

// Kind classifies why an audit failed.
type Kind string

const (
	// KindPrecondition: nothing to audit, or no credential configured.
	KindPrecondition Kind = "precondition"
	// KindTransport: the call did not complete or the service reported an error.
	KindTransport Kind = "transport"
	// KindContract: the service answered with something that is not a report.
	KindContract Kind = "contract"
)

// DefaultErrorMessage is shown when a failure carries no message of its own.
const DefaultErrorMessage = "An unexpected error occurred during the AI audit."

var ErrNoFiles = errors.New("no report files to audit")

// Error is a classified audit failure with a display-ready message.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind Kind, cause error) *Error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{Kind: kind, Message: NormalizeMessage(msg), cause: cause}
}

// Result is the outcome of one audit. Exactly one of Report and Err is set.
type Result struct {
	Report *report.AuditReport
	Err    *Error
}

func (r Result) OK() bool {
	return r.Err == nil && r.Report != nil
}

type Option func(*Client)

// WithDeferrableFilter drops P2 entries from the fix list after validation.
func WithDeferrableFilter(enabled bool) Option {
	return func(c *Client) {
		c.dropDeferrable = enabled
	}
}

// Client runs audits against a single completion provider.
type Client struct {
	provider       llm.Provider
	dropDeferrable bool
}

func NewClient(provider llm.Provider, opts ...Option) *Client {
	c := &Client{provider: provider}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Audit sends every source in one completion call and decodes the answer.
// The call is made once; failures are returned in the Result, never retried.
func (c *Client) Audit(ctx context.Context, sources []prompt.Source, loc locale.Locale) Result {
	logger := common.Logger()
	ctx, end := telemetry.StartSpan(ctx, "audit.run")

	res := c.run(ctx, sources, loc.Or(locale.Default))

	kind := ""
	if res.Err != nil {
		kind = string(res.Err.Kind)
		logger.Error("audit: failed", "kind", kind, "files", len(sources), "error", res.Err.Message)
	} else {
		logger.Info("audit: report decoded",
			"files", len(sources),
			"fix_items", len(res.Report.FixList),
			"needs_context", len(res.Report.NeedsContext))
	}
	telemetry.RecordAudit(len(sources), kind, telemetry.SpanDuration(ctx))
	end("ok", res.Err == nil)
	return res
}

func (c *Client) run(ctx context.Context, sources []prompt.Source, loc locale.Locale) Result {
	logger := common.Logger()
	if len(sources) == 0 {
		return Result{Err: newError(KindPrecondition, ErrNoFiles)}
	}
	if c.provider == nil {
		return Result{Err: newError(KindPrecondition, fmt.Errorf("%w: no provider", llm.ErrMissingCredential))}
	}

	req := llm.Request{
		System: prompt.SystemInstruction(loc),
		User:   prompt.UserContent(sources),
		Schema: prompt.ResponseSchema(),
	}
	logger.Info("audit: sending request",
		"provider", c.provider.Name(),
		"prompt_version", prompt.Version,
		"locale", loc.String(),
		"files", len(sources),
		"content_len", len(req.User))

	raw, err := c.provider.Complete(ctx, req)
	if err != nil {
		return Result{Err: classify(err)}
	}
	rep, err := report.Decode([]byte(raw))
	if err != nil {
		return Result{Err: newError(KindContract, err)}
	}
	if c.dropDeferrable {
		if n := rep.DropPriority(report.P2); n > 0 {
			logger.Info("audit: dropped deferrable items", "count", n)
		}
	}
	return Result{Report: rep}
}

func classify(err error) *Error {
	switch {
	case errors.Is(err, llm.ErrMissingCredential):
		return newError(KindPrecondition, err)
	case errors.Is(err, llm.ErrEmptyResponse):
		return newError(KindContract, err)
	default:
		return newError(KindTransport, err)
	}
}
