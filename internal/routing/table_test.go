package routing

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFallsBackToKey(t *testing.T) {
	tbl := MustTable([]string{"en", "tr"}, "en", []Route{
		{Key: "/", Pathname: Shared("/")},
		{Key: "/project/", Pathname: PerLocale(map[string]string{"tr": "/proje/"})},
	})
	assert.Equal(t, "/proje/", tbl.Resolve("/project/", "tr"))
	assert.Equal(t, "/project/", tbl.Resolve("/project/", "en"))
	assert.Equal(t, "/", tbl.Resolve("/", "tr"))
}

func TestResolveNeverEmpty(t *testing.T) {
	tbl := DefaultTable()
	for _, key := range tbl.Keys() {
		for _, l := range tbl.Locales() {
			got := tbl.Resolve(key, l)
			assert.NotEmpty(t, got, "%s/%s", l, key)
		}
	}
}

func TestResolveUnknownKeyPanics(t *testing.T) {
	tbl := DefaultTable()
	assert.Panics(t, func() { tbl.Resolve("/nope/", "en") })
}

func TestKeyForReverseLookup(t *testing.T) {
	tbl := DefaultTable()

	key, ok := tbl.KeyFor("/projeler/su-gunlugu/gizlilik-bildirimi/", "tr")
	require.True(t, ok)
	assert.Equal(t, RouteKey("/projects/stay-hydrated/privacy-notice/"), key)

	key, ok = tbl.KeyFor("/projects/stay-hydrated/", "tr")
	require.True(t, ok, "canonical key is accepted in every namespace")
	assert.Equal(t, RouteKey("/projects/stay-hydrated/"), key)

	_, ok = tbl.KeyFor("/projeler/su-gunlugu/", "en")
	assert.False(t, ok)
}

func TestNewTableRejectsDuplicateConcretePaths(t *testing.T) {
	_, err := NewTable([]string{"en", "tr"}, "en", []Route{
		{Key: "/a/", Pathname: PerLocale(map[string]string{"tr": "/x/"})},
		{Key: "/b/", Pathname: PerLocale(map[string]string{"tr": "/x/"})},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTable))
}

func TestNewTableValidation(t *testing.T) {
	cases := map[string]struct {
		locales []string
		def     string
		routes  []Route
	}{
		"no locales":         {nil, "en", nil},
		"unknown default":    {[]string{"en"}, "tr", nil},
		"key without slash":  {[]string{"en"}, "en", []Route{{Key: "/about", Pathname: Shared("/about/")}}},
		"bad override":       {[]string{"en", "tr"}, "en", []Route{{Key: "/a/", Pathname: PerLocale(map[string]string{"tr": "hakkinda"})}}},
		"unsupported locale": {[]string{"en"}, "en", []Route{{Key: "/a/", Pathname: PerLocale(map[string]string{"de": "/b/"})}}},
		"duplicate key":      {[]string{"en"}, "en", []Route{{Key: "/a/", Pathname: Shared("/a/")}, {Key: "/a/", Pathname: Shared("/a/")}}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewTable(tc.locales, tc.def, tc.routes)
			assert.ErrorIs(t, err, ErrInvalidTable)
		})
	}
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 0, Depth("/"))
	assert.Equal(t, 1, Depth("/project/"))
	assert.Equal(t, 2, Depth("/project/notice/"))
}

func TestParseTableKeepsOrderAndVariants(t *testing.T) {
	src := []byte(`
locales: [en, tr]
default_locale: en
pathnames:
  /: /
  /projects/stay-hydrated/:
    tr: /projeler/su-gunlugu/
  /about/: /about/
`)
	tbl, err := ParseTable(src)
	require.NoError(t, err)
	assert.Equal(t, []RouteKey{"/", "/projects/stay-hydrated/", "/about/"}, tbl.Keys())
	assert.Equal(t, "/projeler/su-gunlugu/", tbl.Resolve("/projects/stay-hydrated/", "tr"))
	assert.Equal(t, "/about/", tbl.Resolve("/about/", "tr"))
	assert.Equal(t, "en", tbl.DefaultLocale())
}

func TestParseTableRejectsSequences(t *testing.T) {
	_, err := ParseTable([]byte("locales: [en]\ndefault_locale: en\npathnames:\n  /a/: [x]\n"))
	assert.ErrorIs(t, err, ErrInvalidTable)
}

func TestLoadTableMatchesDefault(t *testing.T) {
	tbl, err := LoadTable(filepath.Join("..", "..", "routes.yaml"))
	require.NoError(t, err)
	def := DefaultTable()
	assert.Equal(t, def.Keys(), tbl.Keys())
	for _, key := range def.Keys() {
		for _, l := range def.Locales() {
			assert.Equal(t, def.Resolve(key, l), tbl.Resolve(key, l))
		}
	}
}

func TestLoadTableMissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "routes.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
