// Package llm provides the model gateway: a uniform interface over one or
// more text-generation backends with automatic failover.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
	"google.golang.org/api/googleapi"
)

// Result is the outcome of a successful generation. CreditExhausted reports
// whether the primary backend was skipped because of a credit/quota error
// during this call, so callers can surface a "service degraded" notice.
type Result struct {
	Text            string
	CreditExhausted bool
}

// Generator is the single-method interface consumed by the pipeline and the
// cover-letter/Q&A generators. Tests substitute stub implementations.
type Generator interface {
	Generate(ctx context.Context, prompt string) (Result, error)
}

// Backend is one concrete text-generation provider.
type Backend interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerationError is returned when every configured backend failed or the
// final backend returned empty content.
type GenerationError struct {
	Detail string
	Cause  error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation failed: %s: %v", e.Detail, e.Cause)
	}
	return fmt.Sprintf("generation failed: %s", e.Detail)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// HTTPStatusError carries a transport status code from a backend so the
// gateway can classify payment-required responses.
type HTTPStatusError struct {
	Status int
	Body   string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("backend http %d: %s", e.Status, e.Body)
}

// creditErrorKeywords is the fixed vocabulary of substrings that signal
// credit or quota exhaustion in a provider error message.
var creditErrorKeywords = []string{
	"credit balance",
	"too low",
	"insufficient",
	"payment",
	"payment required",
	"billing",
	"quota",
	"limit exceeded",
	"402",
	"payment_method",
}

// Gateway tries backends in order and falls through on any failure. A
// credit-classified failure additionally sets a sticky flag, reset at the
// start of each Generate call, that the status endpoint reads. Concurrent
// callers race on that flag; the per-call Result value is the accurate
// signal.
type Gateway struct {
	backends        []Backend
	log             zerolog.Logger
	creditExhausted atomic.Bool
}

// NewGateway builds a gateway over the given backends, primary first.
func NewGateway(logger zerolog.Logger, backends ...Backend) *Gateway {
	return &Gateway{
		backends: backends,
		log:      logger.With().Str("component", "gateway").Logger(),
	}
}

// Generate attempts each backend in order and returns the first non-empty
// response. All failures fall through to the next backend; the
// credit/non-credit distinction only affects the exhaustion flag.
func (g *Gateway) Generate(ctx context.Context, prompt string) (Result, error) {
	g.creditExhausted.Store(false)

	if len(g.backends) == 0 {
		return Result{}, &GenerationError{Detail: "no backends configured"}
	}

	var lastErr error
	exhausted := false
	for _, backend := range g.backends {
		text, err := backend.Generate(ctx, prompt)
		if err != nil {
			if IsCreditError(err) {
				exhausted = true
				g.creditExhausted.Store(true)
				g.log.Warn().Str("backend", backend.Name()).Err(err).
					Msg("backend credits exhausted, falling back")
			} else {
				g.log.Warn().Str("backend", backend.Name()).Err(err).
					Msg("backend failed, falling back")
			}
			lastErr = err
			continue
		}
		if strings.TrimSpace(text) == "" {
			lastErr = fmt.Errorf("backend %s returned empty content", backend.Name())
			continue
		}
		return Result{Text: text, CreditExhausted: exhausted}, nil
	}

	return Result{}, &GenerationError{Detail: "all backends exhausted", Cause: lastErr}
}

// CreditExhausted reports whether the most recent Generate call on this
// gateway hit a credit/quota failure. Best-effort under concurrency.
func (g *Gateway) CreditExhausted() bool {
	return g.creditExhausted.Load()
}

// BackendNames returns the configured backend names in failover order.
func (g *Gateway) BackendNames() []string {
	names := make([]string, len(g.backends))
	for i, b := range g.backends {
		names[i] = b.Name()
	}
	return names
}

// IsCreditError classifies an error as credit/quota exhaustion, either from
// the fixed message vocabulary or a payment-required status code.
func IsCreditError(err error) bool {
	if err == nil {
		return false
	}

	var httpErr *HTTPStatusError
	if errors.As(err, &httpErr) && httpErr.Status == 402 {
		return true
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == 402 {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, keyword := range creditErrorKeywords {
		if strings.Contains(msg, keyword) {
			return true
		}
	}
	return false
}
