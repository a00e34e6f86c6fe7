package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gndzkrkc.com/site/internal/content"
	"gndzkrkc.com/site/internal/i18n"
	"gndzkrkc.com/site/internal/routing"
	"gndzkrkc.com/site/internal/seo"
	"gndzkrkc.com/site/internal/theme"
)

func newViews(t *testing.T, policy routing.PrefixPolicy) *Views {
	t.Helper()
	neg, err := routing.NewNegotiator(routing.DefaultTable(), policy)
	require.NoError(t, err)
	msgs, err := i18n.Load("../../locales", "en", []string{"en", "tr"})
	require.NoError(t, err)
	return NewViews(neg, msgs, DefaultSite("https://gndzkrkc.com"))
}

func TestHomeView(t *testing.T) {
	d := newViews(t, routing.PrefixAlways).Home(Request{Lang: "tr", Theme: theme.Dark})

	assert.Equal(t, "home", d.Template)
	assert.Equal(t, "/tr", d.HomeHref)
	assert.Equal(t, theme.System, d.NextTheme)
	assert.Equal(t, "https://gndzkrkc.com/tr", d.SEO.Canonical)
	assert.Equal(t, []seo.Alternate{
		{Hreflang: "en", Href: "https://gndzkrkc.com/en"},
		{Hreflang: "tr", Href: "https://gndzkrkc.com/tr"},
		{Hreflang: "x-default", Href: "https://gndzkrkc.com/en"},
	}, d.SEO.Alternates)
	assert.Empty(t, d.Breadcrumbs)
	require.Len(t, d.SEO.JSONLD, 2)
	assert.Contains(t, string(d.SEO.JSONLD[0]), `"@type":"Person"`)
	assert.Equal(t, "/tr/projeler/su-gunlugu/", d.Links["stay-hydrated"])
	assert.Equal(t, "tr_TR", d.SEO.OG.Locale)
}

func TestStayHydratedView(t *testing.T) {
	d := newViews(t, routing.PrefixAsNeeded).StayHydrated(Request{Lang: "en"})

	assert.Equal(t, "https://gndzkrkc.com/projects/stay-hydrated/", d.SEO.Canonical)
	assert.Equal(t, "/projects/stay-hydrated/privacy-notice/", d.Links["privacy"])
	assert.Empty(t, d.Breadcrumbs, "/projects/ is not a page")
	require.Len(t, d.Locales, 2)
	assert.Equal(t, "/tr/projeler/su-gunlugu/", d.Locales[1].Href)
}

func TestContentViewBreadcrumbs(t *testing.T) {
	v := newViews(t, routing.PrefixAlways)
	page := content.Page{
		Lang:      "tr",
		Title:     "Gizlilik Bildirimi",
		Summary:   "Özet",
		UpdatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	d := v.Content(Request{Lang: "tr", Key: KeyPrivacy}, page)

	assert.Equal(t, "content", d.Template)
	assert.Equal(t, "Gizlilik Bildirimi", d.SEO.Title)
	assert.Equal(t, "Özet", d.SEO.Description)
	require.Len(t, d.Breadcrumbs, 1)
	assert.Equal(t, "Su Günlüğü", d.Breadcrumbs[0].Label)
	assert.Equal(t, "/tr/projeler/su-gunlugu/", d.Breadcrumbs[0].Href)
	require.Len(t, d.SEO.JSONLD, 1)
	assert.Contains(t, string(d.SEO.JSONLD[0]), "BreadcrumbList")
	assert.Contains(t, string(d.SEO.JSONLD[0]), "https://gndzkrkc.com/tr/projeler/su-gunlugu/gizlilik-bildirimi/")
	assert.Equal(t, "Son güncelleme: 1 Haziran 2025", d.Updated)
	assert.Equal(t, "2025-06-01", d.UpdatedISO)
	assert.Empty(t, d.FallbackNotice)
}

func TestContentViewFallbackAndMeta(t *testing.T) {
	v := newViews(t, routing.PrefixAlways)
	page := content.Page{
		Lang:          "en",
		Title:         "Privacy Notice",
		EffectiveDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Version:       "1.0",
	}
	d := v.Content(Request{Lang: "tr", Key: KeyPrivacy}, page)

	assert.Equal(t, "Bu sayfa henüz dilinizde mevcut değil, English olarak gösteriliyor.", d.FallbackNotice)
	assert.Equal(t, "Yürürlük tarihi: 1 Haziran 2025", d.Effective)
	assert.Equal(t, "2025-06-01", d.EffectiveISO)
	assert.Equal(t, "Sürüm 1.0", d.Version)
}

func TestNotFoundView(t *testing.T) {
	d := newViews(t, routing.PrefixAlways).NotFound(Request{Lang: "en", Key: KeyPrivacy})

	assert.Equal(t, 404, d.Status)
	assert.Equal(t, seo.NoIndex, d.SEO.Robots)
	assert.Empty(t, d.SEO.Canonical)
	assert.Empty(t, d.Breadcrumbs)
	assert.Equal(t, "Page not found", d.SEO.Title)
	assert.Equal(t, "/en", d.Locales[0].Href)
}
