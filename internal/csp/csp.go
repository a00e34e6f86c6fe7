// Package csp composes the Content-Security-Policy and hardening headers sent
// with every response.
package csp

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Options selects the environment- and request-dependent parts of the policy.
type Options struct {
	// Nonce authorizes inline <script> and <style> elements; empty omits it.
	Nonce string
	// Development allows eval and inline styles for tooling.
	Development bool
}

// NewNonce returns a fresh, unguessable nonce: the base64 form of a random
// (version 4) UUID.
func NewNonce() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("csp: generate nonce: %w", err)
	}
	return base64.StdEncoding.EncodeToString([]byte(id.String())), nil
}

// Directives returns the ordered directive clauses of the policy.
func Directives(o Options) []string {
	nonce := ""
	if o.Nonce != "" {
		nonce = " 'nonce-" + o.Nonce + "'"
	}
	script := "script-src 'self'" + nonce + " 'strict-dynamic'"
	style := "style-src 'self'" + nonce
	if o.Development {
		script += " 'unsafe-eval'"
		style += " 'unsafe-inline'"
	}
	return []string{
		"default-src 'self'",
		script,
		"script-src-attr 'none'",
		style,
		"img-src 'self' blob: data:",
		"connect-src 'self' https: wss:",
		"frame-src 'none'",
		"font-src 'self'",
		"object-src 'none'",
		"base-uri 'self'",
		"form-action 'self'",
		"frame-ancestors 'none'",
		"upgrade-insecure-requests",
	}
}

// Build joins the directives into a header value.
func Build(o Options) string {
	return strings.Join(Directives(o), "; ")
}

// Header is a name/value pair.
type Header struct {
	Name  string
	Value string
}

// HardeningHeaders are the static headers applied to every response.
func HardeningHeaders() []Header {
	return []Header{
		{Name: "X-Content-Type-Options", Value: "nosniff"},
		{Name: "X-DNS-Prefetch-Control", Value: "off"},
		{Name: "Strict-Transport-Security", Value: "max-age=63072000; includeSubDomains; preload"},
		{Name: "Referrer-Policy", Value: "strict-origin-when-cross-origin"},
		{Name: "Permissions-Policy", Value: "camera=(), microphone=(), geolocation=()"},
	}
}
