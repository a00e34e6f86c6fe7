package middleware

import (
	"context"
	"net/http"

	"gndzkrkc.com/site/internal/routing"
)

// context keys are unexported to avoid collisions
type ctxKey string

const (
	ctxKeyDecision ctxKey = "locale_decision"
	ctxKeyNonce    ctxKey = "csp_nonce"
)

// WithDecision stores the locale negotiation outcome.
func WithDecision(ctx context.Context, d routing.Decision) context.Context {
	return context.WithValue(ctx, ctxKeyDecision, d)
}

// DecisionFrom returns the negotiation outcome, if the Locale middleware ran.
func DecisionFrom(ctx context.Context) (routing.Decision, bool) {
	d, ok := ctx.Value(ctxKeyDecision).(routing.Decision)
	return d, ok
}

// Lang returns the negotiated locale of the request, or fallback.
func Lang(r *http.Request, fallback string) string {
	if d, ok := DecisionFrom(r.Context()); ok && d.Locale != "" {
		return d.Locale
	}
	return fallback
}

// WithNonce stores the CSP nonce of the current document.
func WithNonce(ctx context.Context, nonce string) context.Context {
	return context.WithValue(ctx, ctxKeyNonce, nonce)
}

// Nonce returns the CSP nonce or "" outside the page group.
func Nonce(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyNonce).(string)
	return v
}
