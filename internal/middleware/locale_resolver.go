package middleware

import (
	"net/http"
	"time"

	"gndzkrkc.com/site/internal/routing"
)

// LocaleCookie persists the negotiated locale between requests.
const LocaleCookie = "hl"

const localeCookieMaxAge = 365 * 24 * time.Hour

// Locale negotiates the request locale from path prefix, `hl` cookie and
// Accept-Language. Requests outside the canonical URL get a 307 to it with the
// query string kept. The negotiated locale is written back to the cookie when
// it came from the path or triggered a redirect, so the redirect target
// negotiates the same locale.
func Locale(n *routing.Negotiator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			pref := routing.Preference{AcceptLanguage: r.Header.Get("Accept-Language")}
			if c, err := r.Cookie(LocaleCookie); err == nil {
				pref.Cookie = c.Value
			}
			d := n.Negotiate(r.URL.Path, pref)

			if (d.Source == routing.SourcePath || d.Redirect != "") && pref.Cookie != d.Locale {
				http.SetCookie(w, &http.Cookie{
					Name:     LocaleCookie,
					Value:    d.Locale,
					Path:     "/",
					MaxAge:   int(localeCookieMaxAge.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			if d.Redirect != "" {
				target := d.Redirect
				if r.URL.RawQuery != "" {
					target += "?" + r.URL.RawQuery
				}
				http.Redirect(w, r, target, http.StatusTemporaryRedirect)
				return
			}

			w.Header().Set("Content-Language", d.Locale)
			next.ServeHTTP(w, r.WithContext(WithDecision(r.Context(), d)))
		})
	}
}
