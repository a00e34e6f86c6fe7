// Package seo holds document metadata and schema.org payloads.
package seo

import (
	"html/template"
	"sort"
)

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
	Locale      string
}

// Alternate is one <link rel="alternate" hreflang> entry.
type Alternate struct {
	Hreflang string
	Href     string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Alternates  []Alternate
	JSONLD      []template.JS
}

// NoIndex is the robots value for pages crawlers should skip.
const NoIndex = "noindex, nofollow"

// SortAlternates turns a hreflang → URL map into a stable list: locales in
// lexical order, then xDefault.
func SortAlternates(m map[string]string, xDefault string) []Alternate {
	out := make([]Alternate, 0, len(m))
	for lang, href := range m {
		if lang == xDefault {
			continue
		}
		out = append(out, Alternate{Hreflang: lang, Href: href})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hreflang < out[j].Hreflang })
	if href, ok := m[xDefault]; ok {
		out = append(out, Alternate{Hreflang: xDefault, Href: href})
	}
	return out
}

// OGLocale maps a site locale to the Open Graph territory form.
func OGLocale(lang string) string {
	switch lang {
	case "tr":
		return "tr_TR"
	case "en":
		return "en_US"
	default:
		return lang
	}
}
