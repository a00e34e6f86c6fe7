package middleware

import (
	"log/slog"
	"net/http"

	"gndzkrkc.com/site/internal/csp"
)

// NonceHeader carries the per-request nonce to downstream handlers.
const NonceHeader = "X-Nonce"

// SecurityHeaders applies the hardening headers to every response.
func SecurityHeaders(next http.Handler) http.Handler {
	headers := csp.HardeningHeaders()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for _, hd := range headers {
			h.Set(hd.Name, hd.Value)
		}
		next.ServeHTTP(w, r)
	})
}

// ContentSecurityPolicy issues a fresh nonce for every HTML document and sets
// the matching Content-Security-Policy. dev relaxes script and style sources
// for local tooling.
func ContentSecurityPolicy(dev bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nonce, err := csp.NewNonce()
			if err != nil {
				slog.ErrorContext(r.Context(), "csp nonce", "error", err)
				writeError(w, r, http.StatusInternalServerError, "internal error")
				return
			}
			w.Header().Set("Content-Security-Policy", csp.Build(csp.Options{Nonce: nonce, Development: dev}))
			r.Header.Set(NonceHeader, nonce)
			next.ServeHTTP(w, r.WithContext(WithNonce(r.Context(), nonce)))
		})
	}
}
