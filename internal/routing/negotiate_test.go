package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNegotiator(t *testing.T, policy PrefixPolicy) *Negotiator {
	t.Helper()
	n, err := NewNegotiator(DefaultTable(), policy)
	require.NoError(t, err)
	return n
}

func TestNegotiateAlwaysPrefix(t *testing.T) {
	n := newNegotiator(t, PrefixAlways)

	cases := []struct {
		name     string
		path     string
		pref     Preference
		locale   string
		source   Source
		key      RouteKey
		redirect string
	}{
		{"root defaults", "/", Preference{}, "en", SourceDefault, "/", "/en"},
		{"root from header", "/", Preference{AcceptLanguage: "tr-TR,tr;q=0.9,en;q=0.8"}, "tr", SourceHeader, "/", "/tr"},
		{"cookie beats header", "/", Preference{Cookie: "tr", AcceptLanguage: "en"}, "tr", SourceCookie, "/", "/tr"},
		{"unsupported cookie ignored", "/", Preference{Cookie: "de", AcceptLanguage: "de-DE"}, "en", SourceDefault, "/", "/en"},
		{"prefixed root canonical", "/tr", Preference{}, "tr", SourcePath, "/", ""},
		{"prefixed root trailing slash", "/en/", Preference{}, "en", SourcePath, "/", "/en"},
		{"localized path canonical", "/tr/projeler/su-gunlugu/", Preference{}, "tr", SourcePath, "/projects/stay-hydrated/", ""},
		{"canonical key under tr", "/tr/projects/stay-hydrated/", Preference{}, "tr", SourcePath, "/projects/stay-hydrated/", "/tr/projeler/su-gunlugu/"},
		{"missing trailing slash", "/en/projects/stay-hydrated", Preference{}, "en", SourcePath, "/projects/stay-hydrated/", "/en/projects/stay-hydrated/"},
		{"prefix beats cookie", "/en/projects/stay-hydrated/", Preference{Cookie: "tr"}, "en", SourcePath, "/projects/stay-hydrated/", ""},
		{"unprefixed localized path", "/projeler/su-gunlugu/yerellestirme/", Preference{Cookie: "tr"}, "tr", SourceCookie, "/projects/stay-hydrated/localization/", "/tr/projeler/su-gunlugu/yerellestirme/"},
		{"foreign namespace", "/en/projeler/su-gunlugu/", Preference{}, "en", SourcePath, "/projects/stay-hydrated/", "/en/projects/stay-hydrated/"},
		{"unknown path prefixed", "/en/nope", Preference{}, "en", SourcePath, "", ""},
		{"unknown path unprefixed", "/nope", Preference{}, "en", SourceDefault, "", "/en/nope"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := n.Negotiate(tc.path, tc.pref)
			assert.Equal(t, tc.locale, d.Locale)
			assert.Equal(t, tc.source, d.Source)
			assert.Equal(t, tc.key, d.Key)
			assert.Equal(t, tc.redirect, d.Redirect)
		})
	}
}

func TestNegotiateAsNeeded(t *testing.T) {
	n := newNegotiator(t, PrefixAsNeeded)

	d := n.Negotiate("/", Preference{})
	assert.Empty(t, d.Redirect)
	assert.Equal(t, "en", d.Locale)

	d = n.Negotiate("/en/projects/stay-hydrated/", Preference{})
	assert.Equal(t, "/projects/stay-hydrated/", d.Redirect)

	d = n.Negotiate("/", Preference{AcceptLanguage: "tr"})
	assert.Equal(t, "/tr", d.Redirect)

	d = n.Negotiate("/tr/projeler/su-gunlugu/", Preference{})
	assert.Empty(t, d.Redirect)
	assert.Equal(t, "tr", d.Locale)
}

func TestNegotiateNever(t *testing.T) {
	n := newNegotiator(t, PrefixNever)

	d := n.Negotiate("/tr/projeler/su-gunlugu/", Preference{})
	assert.Equal(t, "tr", d.Locale)
	assert.Equal(t, "/projeler/su-gunlugu/", d.Redirect)

	d = n.Negotiate("/projeler/su-gunlugu/", Preference{Cookie: "tr"})
	assert.Empty(t, d.Redirect)
	assert.Equal(t, RouteKey("/projects/stay-hydrated/"), d.Key)

	d = n.Negotiate("/projeler/su-gunlugu/", Preference{Cookie: "en"})
	assert.Equal(t, "/projects/stay-hydrated/", d.Redirect)
}

// Following a redirect with the negotiated locale persisted as the cookie must
// land on a canonical URL.
func TestNegotiateRedirectIsIdempotent(t *testing.T) {
	prefs := []Preference{
		{},
		{AcceptLanguage: "tr"},
		{AcceptLanguage: "en-US"},
		{Cookie: "tr"},
		{Cookie: "en", AcceptLanguage: "tr"},
	}
	for _, policy := range []PrefixPolicy{PrefixAlways, PrefixAsNeeded, PrefixNever} {
		n := newNegotiator(t, policy)
		tbl := n.Table()
		var paths []string
		for _, key := range tbl.Keys() {
			for _, l := range tbl.Locales() {
				p := tbl.Resolve(key, l)
				paths = append(paths, p, LocalePath(l, p), n.Href(key, l))
			}
		}
		paths = append(paths, "/missing", "/tr/missing/")
		for _, p := range paths {
			for _, pref := range prefs {
				first := n.Negotiate(p, pref)
				if first.Redirect == "" {
					continue
				}
				second := n.Negotiate(first.Redirect, Preference{Cookie: first.Locale, AcceptLanguage: pref.AcceptLanguage})
				assert.Empty(t, second.Redirect, "%s: %s -> %s -> %s", policy, p, first.Redirect, second.Redirect)
				assert.Equal(t, first.Locale, second.Locale)
				assert.Equal(t, first.Key, second.Key)
			}
		}
	}
}

func TestHrefIsCanonical(t *testing.T) {
	for _, policy := range []PrefixPolicy{PrefixAlways, PrefixAsNeeded, PrefixNever} {
		n := newNegotiator(t, policy)
		for _, key := range n.Table().Keys() {
			for _, l := range n.Table().Locales() {
				href := n.Href(key, l)
				d := n.Negotiate(href, Preference{Cookie: l})
				assert.Empty(t, d.Redirect, "%s %s", policy, href)
				assert.Equal(t, key, d.Key)
			}
		}
	}
}

func TestMatchLanguage(t *testing.T) {
	n := newNegotiator(t, PrefixAlways)

	got, ok := n.MatchLanguage("en;q=0.8, tr;q=0.9")
	require.True(t, ok)
	assert.Equal(t, "tr", got)

	_, ok = n.MatchLanguage("de-DE, fr;q=0.5")
	assert.False(t, ok)

	_, ok = n.MatchLanguage("")
	assert.False(t, ok)
}

func TestParsePrefixPolicy(t *testing.T) {
	p, err := ParsePrefixPolicy(" As-Needed ")
	require.NoError(t, err)
	assert.Equal(t, PrefixAsNeeded, p)

	p, err = ParsePrefixPolicy("")
	require.NoError(t, err)
	assert.Equal(t, PrefixAlways, p)

	_, err = ParsePrefixPolicy("sometimes")
	assert.Error(t, err)
}
