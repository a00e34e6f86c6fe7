package nav

import (
	"strings"

	"gndzkrkc.com/site/internal/routing"
)

// Labels looks up a translated message without falling back to another locale.
type Labels interface {
	Lookup(lang, key string) (string, bool)
}

// Crumb represents a breadcrumb entry pointing at an ancestor page.
type Crumb struct {
	Key   routing.RouteKey
	Label string
	Href  string
}

// LocaleLink is one entry of the language switcher.
type LocaleLink struct {
	Locale string
	Href   string
	Active bool
}

// RouteLabelKey is the message id holding the display name of a route.
func RouteLabelKey(key routing.RouteKey) string {
	return "navigation.routes." + string(key)
}

// Breadcrumbs builds the ancestor trail of the page at concretePath (without
// locale prefix). Rules:
// - Nothing on the home page or on paths missing from the table
// - Every ancestor prefix present in the table becomes a crumb, root-most first
// - Labels come from navigation.routes.<key>, else the raw segment
func Breadcrumbs(n *routing.Negotiator, labels Labels, locale, concretePath string) []Crumb {
	if concretePath == "" || concretePath == "/" {
		return nil
	}
	table := n.Table()
	key, ok := table.KeyFor(concretePath, locale)
	if !ok || key == "/" {
		return nil
	}

	segments := routing.Segments(string(key))
	var crumbs []Crumb
	for i := len(segments) - 2; i >= 0; i-- {
		candidate := routing.RouteKey("/" + strings.Join(segments[:i+1], "/") + "/")
		if !table.Has(candidate) {
			continue
		}
		name := segments[i]
		if labels != nil {
			if v, ok := labels.Lookup(locale, RouteLabelKey(candidate)); ok && v != "" {
				name = v
			}
		}
		crumbs = append([]Crumb{{Key: candidate, Label: name, Href: n.Href(candidate, locale)}}, crumbs...)
	}
	return crumbs
}

// LocaleLinks links the page identified by key in every supported locale.
// Unknown pages link to each locale's home page. Links to other locales always
// carry the locale prefix so the path wins over a stored cookie; the locale
// middleware then redirects to the canonical form of the active policy.
func LocaleLinks(n *routing.Negotiator, key routing.RouteKey, current string) []LocaleLink {
	table := n.Table()
	if key == "" || !table.Has(key) {
		key = "/"
	}
	known := table.Has(key)
	locales := table.Locales()
	out := make([]LocaleLink, 0, len(locales))
	for _, l := range locales {
		var href string
		switch {
		case !known && l == current:
			href = "/"
		case !known:
			href = routing.LocalePath(l, "/")
		case l == current:
			href = n.Href(key, l)
		default:
			href = routing.LocalePath(l, table.Resolve(key, l))
		}
		out = append(out, LocaleLink{Locale: l, Href: href, Active: l == current})
	}
	return out
}
