package routing

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// PrefixPolicy controls when a locale segment appears at the start of a URL path.
type PrefixPolicy string

const (
	// PrefixAlways puts the locale in front of every path: /en/, /tr/projeler/...
	PrefixAlways PrefixPolicy = "always"
	// PrefixAsNeeded omits the prefix for the default locale only.
	PrefixAsNeeded PrefixPolicy = "as-needed"
	// PrefixNever never prefixes; the locale comes from cookie or headers.
	PrefixNever PrefixPolicy = "never"
)

// ParsePrefixPolicy parses a policy name as used in configuration.
func ParsePrefixPolicy(s string) (PrefixPolicy, error) {
	switch p := PrefixPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PrefixAlways, PrefixAsNeeded, PrefixNever:
		return p, nil
	case "":
		return PrefixAlways, nil
	default:
		return "", fmt.Errorf("routing: unknown locale prefix policy %q", s)
	}
}

// Source records which signal decided the locale.
type Source string

const (
	SourcePath    Source = "path"
	SourceCookie  Source = "cookie"
	SourceHeader  Source = "header"
	SourceDefault Source = "default"
)

// Preference carries the non-path locale signals of a request.
type Preference struct {
	Cookie         string // value of the locale cookie, if any
	AcceptLanguage string // raw Accept-Language header
}

// Decision is the outcome of negotiating one request path.
type Decision struct {
	Locale string
	Source Source
	// Key is the matched route; empty when the path is not in the table.
	Key RouteKey
	// Path is the concrete path without locale prefix.
	Path string
	// Redirect is the canonical URL path when the request path is not already in it.
	Redirect string
}

// Found reports whether the request matched a known route.
func (d Decision) Found() bool { return d.Key != "" }

// Negotiator decides the effective locale of a request and its canonical URL.
type Negotiator struct {
	table   *Table
	policy  PrefixPolicy
	matcher language.Matcher
}

// NewNegotiator builds a Negotiator over table. Locale codes that are not valid
// BCP 47 tags cannot be matched from Accept-Language and are rejected.
func NewNegotiator(table *Table, policy PrefixPolicy) (*Negotiator, error) {
	tags := make([]language.Tag, 0, len(table.locales))
	for _, l := range table.locales {
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("routing: locale %q: %w", l, err)
		}
		tags = append(tags, tag)
	}
	if _, err := ParsePrefixPolicy(string(policy)); err != nil {
		return nil, err
	}
	return &Negotiator{
		table:   table,
		policy:  policy,
		matcher: language.NewMatcher(tags),
	}, nil
}

// Table returns the underlying route table.
func (n *Negotiator) Table() *Table { return n.table }

// Policy returns the active prefix policy.
func (n *Negotiator) Policy() PrefixPolicy { return n.policy }

// MatchLanguage picks the supported locale best matching an Accept-Language
// header. Only confident matches count; anything else reports false.
func (n *Negotiator) MatchLanguage(acceptLanguage string) (string, bool) {
	acceptLanguage = strings.TrimSpace(acceptLanguage)
	if acceptLanguage == "" {
		return "", false
	}
	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return "", false
	}
	_, idx, conf := n.matcher.Match(desired...)
	if conf == language.No {
		return "", false
	}
	return n.table.locales[idx], true
}

// Href returns the canonical URL path of key in locale under the active policy.
func (n *Negotiator) Href(key RouteKey, locale string) string {
	return n.prefixed(n.table.Resolve(key, locale), locale)
}

func (n *Negotiator) prefixed(path, locale string) string {
	switch n.policy {
	case PrefixNever:
		return path
	case PrefixAsNeeded:
		if locale == n.table.defaultLocale {
			return path
		}
	}
	return LocalePath(locale, path)
}

// LocalePath joins a locale prefix and a concrete path. The root collapses to
// the bare locale segment: ("tr", "/") is "/tr".
func LocalePath(locale, path string) string {
	if path == "/" || path == "" {
		return "/" + locale
	}
	return "/" + locale + path
}

// Negotiate resolves the locale for a request path. The locale comes from the
// path prefix, then the cookie, then Accept-Language, then the default.
func (n *Negotiator) Negotiate(path string, pref Preference) Decision {
	if path == "" {
		path = "/"
	}
	d := Decision{}
	rest := path
	if seg, tail := splitFirst(path); n.table.Supports(seg) {
		d.Locale, d.Source = seg, SourcePath
		rest = tail
	}
	if d.Locale == "" {
		switch {
		case n.table.Supports(pref.Cookie):
			d.Locale, d.Source = pref.Cookie, SourceCookie
		default:
			if l, ok := n.MatchLanguage(pref.AcceptLanguage); ok {
				d.Locale, d.Source = l, SourceHeader
			} else {
				d.Locale, d.Source = n.table.defaultLocale, SourceDefault
			}
		}
	}

	want := rest
	if key, ok := n.lookup(rest, d.Locale); ok {
		d.Key = key
		want = n.table.Resolve(key, d.Locale)
	}
	d.Path = want
	if canonical := n.prefixed(want, d.Locale); canonical != path {
		d.Redirect = canonical
	}
	return d
}

func (n *Negotiator) lookup(path, locale string) (RouteKey, bool) {
	candidates := []string{path}
	if !strings.HasSuffix(path, "/") {
		candidates = append(candidates, path+"/")
	}
	for _, p := range candidates {
		if key, ok := n.table.KeyFor(p, locale); ok {
			return key, true
		}
	}
	// a path from another locale's namespace still identifies the page
	for _, p := range candidates {
		for _, l := range n.table.locales {
			if key, ok := n.table.byPath[l][p]; ok {
				return key, true
			}
		}
	}
	return "", false
}

// splitFirst returns the first path segment and the remainder, which always
// starts with "/". "/tr/projeler/" gives ("tr", "/projeler/"); "/tr" gives ("tr", "/").
func splitFirst(path string) (string, string) {
	trimmed := strings.TrimPrefix(path, "/")
	seg, tail, found := strings.Cut(trimmed, "/")
	if !found {
		return seg, "/"
	}
	return seg, "/" + tail
}
