package middleware

import (
	"net/http"
)

// writeError answers with a plain-text status page; documents built by
// handlers are not available this early in the chain.
func writeError(w http.ResponseWriter, _ *http.Request, code int, msg string) {
	w.Header().Del("Content-Security-Policy")
	http.Error(w, msg, code)
}
