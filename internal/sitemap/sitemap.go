// Package sitemap derives crawl hints for every route × locale pair of the
// route table and encodes them as a sitemaps.org document.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gndzkrkc.com/site/internal/routing"
)

// XDefault is the hreflang value pointing crawlers at the default locale.
const XDefault = "x-default"

// Change frequency hints.
const (
	Weekly  = "weekly"
	Monthly = "monthly"
	Yearly  = "yearly"
)

// Entry is one URL of the sitemap.
type Entry struct {
	URL             string
	ChangeFrequency string
	Priority        float64
	// Alternates maps locale (and XDefault) to the absolute URL of the same page.
	Alternates map[string]string
}

// Builder produces entries for a route table rooted at an origin such as
// "https://gndzkrkc.com". URLs always carry the locale prefix whatever the
// prefix policy; page hreflang links use the policy's canonical form instead.
type Builder struct {
	table  *routing.Table
	origin string
}

// NewBuilder returns a Builder; a trailing slash on origin is dropped.
func NewBuilder(table *routing.Table, origin string) *Builder {
	return &Builder{table: table, origin: strings.TrimRight(origin, "/")}
}

// Build emits one entry per route key and locale, keys in declaration order.
func (b *Builder) Build() []Entry {
	out := make([]Entry, 0, len(b.table.Keys())*len(b.table.Locales()))
	for _, key := range b.table.Keys() {
		out = append(out, b.EntriesFor(key)...)
	}
	return out
}

// EntriesFor returns the entries of a single route key, one per locale.
// An unknown key panics.
func (b *Builder) EntriesFor(key routing.RouteKey) []Entry {
	if !b.table.Has(key) {
		panic(fmt.Sprintf("sitemap: unknown route key %q", key))
	}
	depth := routing.Depth(key)
	freq, prio := ChangeFrequency(depth), Priority(depth)
	alternates := b.Alternates(key)

	entries := make([]Entry, 0, len(b.table.Locales()))
	for _, l := range b.table.Locales() {
		alt := make(map[string]string, len(alternates))
		for k, v := range alternates {
			alt[k] = v
		}
		entries = append(entries, Entry{
			URL:             b.URL(key, l),
			ChangeFrequency: freq,
			Priority:        prio,
			Alternates:      alt,
		})
	}
	return entries
}

// Alternates maps every locale plus XDefault to the page's absolute URL.
func (b *Builder) Alternates(key routing.RouteKey) map[string]string {
	out := make(map[string]string, len(b.table.Locales())+1)
	for _, l := range b.table.Locales() {
		out[l] = b.URL(key, l)
	}
	out[XDefault] = b.URL(key, b.table.DefaultLocale())
	return out
}

// URL is origin + "/" + locale + path, the root collapsing to the bare locale.
func (b *Builder) URL(key routing.RouteKey, locale string) string {
	return b.origin + routing.LocalePath(locale, b.table.Resolve(key, locale))
}

// Priority starts at 1.0 and drops 0.2 per level of depth, never below 0.2.
// It is computed in tenths so 0.6 stays 0.6.
func Priority(depth int) float64 {
	tenths := 10 - 2*depth
	if tenths < 2 {
		tenths = 2
	}
	return float64(tenths) / 10
}

// ChangeFrequency is weekly for the home page, monthly two levels down and
// yearly below that.
func ChangeFrequency(depth int) string {
	switch {
	case depth == 0:
		return Weekly
	case depth <= 2:
		return Monthly
	default:
		return Yearly
	}
}

type urlset struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	XHTML   string   `xml:"xmlns:xhtml,attr"`
	URLs    []xmlURL `xml:"url"`
}

type xmlURL struct {
	Loc        string    `xml:"loc"`
	ChangeFreq string    `xml:"changefreq"`
	Priority   string    `xml:"priority"`
	Links      []xmlLink `xml:"xhtml:link"`
}

type xmlLink struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// WriteXML encodes entries as a sitemaps.org urlset with xhtml:link alternates.
// Alternates are written in locale order with x-default last.
func WriteXML(w io.Writer, entries []Entry) error {
	doc := urlset{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		XHTML: "http://www.w3.org/1999/xhtml",
		URLs:  make([]xmlURL, 0, len(entries)),
	}
	for _, e := range entries {
		u := xmlURL{
			Loc:        e.URL,
			ChangeFreq: e.ChangeFrequency,
			Priority:   strconv.FormatFloat(e.Priority, 'f', 1, 64),
		}
		for _, lang := range sortedLangs(e.Alternates) {
			u.Links = append(u.Links, xmlLink{Rel: "alternate", Hreflang: lang, Href: e.Alternates[lang]})
		}
		doc.URLs = append(doc.URLs, u)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func sortedLangs(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		if k != XDefault {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	if _, ok := m[XDefault]; ok {
		out = append(out, XDefault)
	}
	return out
}
