package handlers

import (
	"net/http"

	"gndzkrkc.com/site/internal/content"
	"gndzkrkc.com/site/internal/format"
	"gndzkrkc.com/site/internal/i18n"
	"gndzkrkc.com/site/internal/nav"
	"gndzkrkc.com/site/internal/routing"
	"gndzkrkc.com/site/internal/seo"
	"gndzkrkc.com/site/internal/sitemap"
	"gndzkrkc.com/site/internal/theme"
)

// Route keys of the pages the site renders.
const (
	KeyHome         routing.RouteKey = "/"
	KeyStayHydrated routing.RouteKey = "/projects/stay-hydrated/"
	KeyPrivacy      routing.RouteKey = "/projects/stay-hydrated/privacy-notice/"
	KeyLocalization routing.RouteKey = "/projects/stay-hydrated/localization/"
)

// Request is what a view needs to know about the incoming request.
type Request struct {
	Lang  string
	Key   routing.RouteKey // empty when the path matched no route
	Path  string           // request path, used as the theme toggle return target
	Nonce string
	Theme theme.Theme
}

// PageData is the view model shared by every page of the layout.
type PageData struct {
	// Template names the page body template rendered inside "base".
	Template string
	Status   int

	Lang      string
	Nonce     string
	Path      string
	Theme     theme.Theme
	NextTheme theme.Theme
	HomeHref  string
	SEO       seo.Meta
	Site      Site

	Breadcrumbs []nav.Crumb
	Locales     []nav.LocaleLink

	// Links resolves the localized URLs a page body points at.
	Links map[string]string

	Content        *content.Page
	FallbackNotice string
	Updated        string
	UpdatedISO     string
	Effective      string
	EffectiveISO   string
	Version        string
}

// Views assembles PageData from the route table, messages and site facts.
type Views struct {
	neg  *routing.Negotiator
	msgs *i18n.Bundle
	site Site
}

// NewViews returns a Views for the site served under site.Origin.
func NewViews(neg *routing.Negotiator, msgs *i18n.Bundle, site Site) *Views {
	return &Views{neg: neg, msgs: msgs, site: site}
}

func (v *Views) base(req Request, tmpl, title, description string) PageData {
	d := PageData{
		Template:  tmpl,
		Status:    http.StatusOK,
		Lang:      req.Lang,
		Nonce:     req.Nonce,
		Path:      req.Path,
		Theme:     req.Theme,
		NextTheme: req.Theme.Next(),
		HomeHref:  v.neg.Href(KeyHome, req.Lang),
		Site:      v.site,
		Locales:   nav.LocaleLinks(v.neg, req.Key, req.Lang),
		Links: map[string]string{
			"stay-hydrated": v.neg.Href(KeyStayHydrated, req.Lang),
			"privacy":       v.neg.Href(KeyPrivacy, req.Lang),
			"localization":  v.neg.Href(KeyLocalization, req.Lang),
		},
		SEO: seo.Meta{
			Title:       title,
			Description: description,
		},
	}
	d.SEO.OG = seo.OpenGraph{
		Title:       title,
		Description: description,
		Type:        "website",
		SiteName:    v.site.Name,
		Locale:      seo.OGLocale(req.Lang),
	}

	if req.Key == "" {
		return d
	}
	canonical := v.absURL(req.Key, req.Lang)
	d.SEO.Canonical = canonical
	d.SEO.OG.URL = canonical
	d.SEO.Alternates = seo.SortAlternates(v.alternates(req.Key), sitemap.XDefault)

	d.Breadcrumbs = nav.Breadcrumbs(v.neg, v.msgs, req.Lang, v.neg.Table().Resolve(req.Key, req.Lang))
	if len(d.Breadcrumbs) > 0 {
		items := []seo.BreadcrumbItem{{Name: v.msgs.T(req.Lang, "navigation.home"), Item: v.absURL(KeyHome, req.Lang)}}
		for _, c := range d.Breadcrumbs {
			items = append(items, seo.BreadcrumbItem{Name: c.Label, Item: v.absURL(c.Key, req.Lang)})
		}
		items = append(items, seo.BreadcrumbItem{Name: v.routeName(req.Lang, req.Key), Item: canonical})
		d.SEO.JSONLD = append(d.SEO.JSONLD, seo.JSON(seo.BreadcrumbList(items)))
	}
	return d
}

// absURL is the canonical absolute URL of key in lang under the active prefix policy.
func (v *Views) absURL(key routing.RouteKey, lang string) string {
	return v.site.Origin + v.neg.Href(key, lang)
}

func (v *Views) alternates(key routing.RouteKey) map[string]string {
	table := v.neg.Table()
	out := make(map[string]string, len(table.Locales())+1)
	for _, l := range table.Locales() {
		out[l] = v.absURL(key, l)
	}
	out[sitemap.XDefault] = v.absURL(key, table.DefaultLocale())
	return out
}

func (v *Views) routeName(lang string, key routing.RouteKey) string {
	if s, ok := v.msgs.Lookup(lang, nav.RouteLabelKey(key)); ok {
		return s
	}
	segs := routing.Segments(string(key))
	if len(segs) == 0 {
		return v.msgs.T(lang, "navigation.home")
	}
	return segs[len(segs)-1]
}

// Content renders a markdown page such as the privacy notice.
func (v *Views) Content(req Request, page content.Page) PageData {
	title := firstNonEmpty(page.SEO.Title, page.Title)
	description := firstNonEmpty(page.SEO.Description, page.Summary)
	d := v.base(req, "content", title, description)
	d.SEO.OG.Type = "article"
	d.Content = &page
	if !page.UpdatedAt.IsZero() {
		d.Updated = v.msgs.Tf(req.Lang, "content.last-updated", map[string]any{"Date": format.FmtDate(page.UpdatedAt, req.Lang)})
		d.UpdatedISO = format.ISODate(page.UpdatedAt)
	}
	if !page.EffectiveDate.IsZero() {
		d.Effective = v.msgs.Tf(req.Lang, "content.effective", map[string]any{"Date": format.FmtDate(page.EffectiveDate, req.Lang)})
		d.EffectiveISO = format.ISODate(page.EffectiveDate)
	}
	if page.Version != "" {
		d.Version = v.msgs.Tf(req.Lang, "content.version", map[string]any{"Version": page.Version})
	}
	if page.Fallback(req.Lang) {
		d.FallbackNotice = v.msgs.Tf(req.Lang, "content.fallback-notice", map[string]any{"Language": v.msgs.T(req.Lang, "locales."+page.Lang)})
	}
	return d
}

// NotFound renders the catch-all page. It is never indexed.
func (v *Views) NotFound(req Request) PageData {
	req.Key = ""
	d := v.base(req, "not-found",
		v.msgs.T(req.Lang, "navigation.not-found.metadata.title"),
		v.msgs.T(req.Lang, "navigation.not-found.metadata.description"))
	d.Status = http.StatusNotFound
	d.SEO.Robots = seo.NoIndex
	return d
}

func firstNonEmpty(values ...string) string {
	for _, s := range values {
		if s != "" {
			return s
		}
	}
	return ""
}
