// Package theme keeps the visitor's color scheme choice in a cookie.
package theme

import (
	"net/http"
	"strings"
	"time"
)

// Theme is a color scheme preference.
type Theme string

const (
	System Theme = "system"
	Light  Theme = "light"
	Dark   Theme = "dark"
)

// Cookie is the name of the preference cookie.
const Cookie = "theme"

const cookieMaxAge = 365 * 24 * time.Hour

// Parse returns the theme named s, or System for anything unknown.
func Parse(s string) Theme {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case Light, Dark:
		return t
	default:
		return System
	}
}

// Next cycles system → light → dark → system.
func (t Theme) Next() Theme {
	switch t {
	case System:
		return Light
	case Light:
		return Dark
	default:
		return System
	}
}

// FromRequest reads the preference cookie.
func FromRequest(r *http.Request) Theme {
	c, err := r.Cookie(Cookie)
	if err != nil {
		return System
	}
	return Parse(c.Value)
}

// Set stores t in the preference cookie. System clears it.
func Set(w http.ResponseWriter, t Theme) {
	c := &http.Cookie{
		Name:     Cookie,
		Value:    string(t),
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
	}
	if t == System {
		c.Value = ""
		c.MaxAge = -1
	}
	http.SetCookie(w, c)
}

// SafeReturn accepts only same-site absolute paths; anything else is "/".
func SafeReturn(p string) string {
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return "/"
	}
	if strings.ContainsAny(p, "\r\n") {
		return "/"
	}
	return p
}
