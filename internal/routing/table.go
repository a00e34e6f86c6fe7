package routing

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidTable wraps every configuration problem found while building a Table.
var ErrInvalidTable = errors.New("routing: invalid route table")

// RouteKey identifies a logical page independent of locale, e.g. "/projects/stay-hydrated/".
type RouteKey string

// Pathname is either a path shared by all locales or a set of per-locale overrides.
// Exactly one of the two forms is populated; use Shared or PerLocale to build one.
type Pathname struct {
	shared    string
	overrides map[string]string
}

// Shared returns a pathname used verbatim for every locale.
func Shared(path string) Pathname { return Pathname{shared: path} }

// PerLocale returns a pathname with locale-specific overrides. Locales missing
// from the map fall back to the route key.
func PerLocale(overrides map[string]string) Pathname {
	cp := make(map[string]string, len(overrides))
	for k, v := range overrides {
		cp[k] = v
	}
	return Pathname{overrides: cp}
}

// IsShared reports whether p uses the single shared form.
func (p Pathname) IsShared() bool { return p.overrides == nil }

// Route pairs a key with its pathname entry.
type Route struct {
	Key      RouteKey
	Pathname Pathname
}

// Table is the immutable locale-aware route table. Build it with NewTable.
type Table struct {
	locales       []string
	defaultLocale string
	routes        []Route
	byKey         map[RouteKey]Pathname
	// byPath maps locale -> concrete path -> key
	byPath map[string]map[string]RouteKey
}

// NewTable validates and indexes the route table.
func NewTable(locales []string, defaultLocale string, routes []Route) (*Table, error) {
	if len(locales) == 0 {
		return nil, fmt.Errorf("%w: no locales", ErrInvalidTable)
	}
	t := &Table{
		locales:       append([]string(nil), locales...),
		defaultLocale: defaultLocale,
		routes:        make([]Route, 0, len(routes)),
		byKey:         make(map[RouteKey]Pathname, len(routes)),
		byPath:        make(map[string]map[string]RouteKey, len(locales)),
	}
	for _, l := range locales {
		if l == "" {
			return nil, fmt.Errorf("%w: empty locale code", ErrInvalidTable)
		}
		if _, dup := t.byPath[l]; dup {
			return nil, fmt.Errorf("%w: duplicate locale %q", ErrInvalidTable, l)
		}
		t.byPath[l] = map[string]RouteKey{}
	}
	if _, ok := t.byPath[defaultLocale]; !ok {
		return nil, fmt.Errorf("%w: default locale %q is not supported", ErrInvalidTable, defaultLocale)
	}

	for _, r := range routes {
		if !validPath(string(r.Key)) {
			return nil, fmt.Errorf("%w: route key %q must begin and end with /", ErrInvalidTable, r.Key)
		}
		if _, dup := t.byKey[r.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate route key %q", ErrInvalidTable, r.Key)
		}
		if r.Pathname.IsShared() && !validPath(r.Pathname.shared) {
			return nil, fmt.Errorf("%w: shared path %q for %q must begin and end with /", ErrInvalidTable, r.Pathname.shared, r.Key)
		}
		for l, p := range r.Pathname.overrides {
			if _, ok := t.byPath[l]; !ok {
				return nil, fmt.Errorf("%w: %q overrides unsupported locale %q", ErrInvalidTable, r.Key, l)
			}
			if !validPath(p) {
				return nil, fmt.Errorf("%w: %s path %q for %q must begin and end with /", ErrInvalidTable, l, p, r.Key)
			}
		}
		t.byKey[r.Key] = r.Pathname
		t.routes = append(t.routes, r)
	}

	for _, r := range t.routes {
		for _, l := range t.locales {
			p := t.Resolve(r.Key, l)
			if other, taken := t.byPath[l][p]; taken {
				return nil, fmt.Errorf("%w: %q and %q both resolve to %s%s", ErrInvalidTable, other, r.Key, l, p)
			}
			t.byPath[l][p] = r.Key
		}
	}
	return t, nil
}

// MustTable is NewTable that panics on error; meant for package-level defaults.
func MustTable(locales []string, defaultLocale string, routes []Route) *Table {
	t, err := NewTable(locales, defaultLocale, routes)
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve returns the concrete path for key in locale. Shared entries ignore the
// locale; per-locale entries fall back to the key itself. Unknown keys panic:
// every caller draws keys from the table.
func (t *Table) Resolve(key RouteKey, locale string) string {
	p, ok := t.byKey[key]
	if !ok {
		panic(fmt.Sprintf("routing: unknown route key %q", key))
	}
	if p.IsShared() {
		return p.shared
	}
	if v, ok := p.overrides[locale]; ok {
		return v
	}
	return string(key)
}

// KeyFor maps a concrete, unprefixed path back to its route key in locale's
// namespace. The canonical key itself is accepted as well so links written
// against keys still resolve.
func (t *Table) KeyFor(path, locale string) (RouteKey, bool) {
	if ns, ok := t.byPath[locale]; ok {
		if k, ok := ns[path]; ok {
			return k, true
		}
	}
	if _, ok := t.byKey[RouteKey(path)]; ok {
		return RouteKey(path), true
	}
	return "", false
}

// Has reports whether key is registered.
func (t *Table) Has(key RouteKey) bool {
	_, ok := t.byKey[key]
	return ok
}

// Keys returns the route keys in declaration order.
func (t *Table) Keys() []RouteKey {
	out := make([]RouteKey, 0, len(t.routes))
	for _, r := range t.routes {
		out = append(out, r.Key)
	}
	return out
}

// Locales returns the supported locale codes in configured order.
func (t *Table) Locales() []string { return append([]string(nil), t.locales...) }

// DefaultLocale returns the locale used when nothing else matches.
func (t *Table) DefaultLocale() string { return t.defaultLocale }

// Supports reports whether locale is one of the configured codes.
func (t *Table) Supports(locale string) bool {
	_, ok := t.byPath[locale]
	return ok
}

// Depth counts the non-empty segments of a canonical key: "/" is 0,
// "/projects/stay-hydrated/" is 2.
func Depth(key RouteKey) int {
	return len(Segments(string(key)))
}

// Segments splits a path into its non-empty "/"-delimited parts.
func Segments(path string) []string {
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func validPath(p string) bool {
	return strings.HasPrefix(p, "/") && strings.HasSuffix(p, "/") && !strings.Contains(p, "//")
}

// tableFile is the YAML layout of routes.yaml.
type tableFile struct {
	Locales       []string  `yaml:"locales"`
	DefaultLocale string    `yaml:"default_locale"`
	Pathnames     yaml.Node `yaml:"pathnames"`
}

// ParseTable reads a YAML route table. Pathname values are either a string
// (shared) or a mapping of locale to path (per-locale). Declaration order is kept.
func ParseTable(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	if f.Pathnames.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: pathnames must be a mapping", ErrInvalidTable)
	}
	routes := make([]Route, 0, len(f.Pathnames.Content)/2)
	for i := 0; i+1 < len(f.Pathnames.Content); i += 2 {
		keyNode, valNode := f.Pathnames.Content[i], f.Pathnames.Content[i+1]
		key := RouteKey(keyNode.Value)
		switch valNode.Kind {
		case yaml.ScalarNode:
			routes = append(routes, Route{Key: key, Pathname: Shared(valNode.Value)})
		case yaml.MappingNode:
			overrides := map[string]string{}
			if err := valNode.Decode(&overrides); err != nil {
				return nil, fmt.Errorf("%w: pathname %q: %v", ErrInvalidTable, key, err)
			}
			routes = append(routes, Route{Key: key, Pathname: PerLocale(overrides)})
		default:
			return nil, fmt.Errorf("%w: pathname %q must be a string or a mapping (line %d)", ErrInvalidTable, key, valNode.Line)
		}
	}
	return NewTable(f.Locales, f.DefaultLocale, routes)
}

// LoadTable reads and parses a YAML route table from disk.
func LoadTable(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load route table %s: %w", path, err)
	}
	return ParseTable(raw)
}

// DefaultTable is the site's built-in route table.
func DefaultTable() *Table {
	return MustTable([]string{"en", "tr"}, "en", []Route{
		{Key: "/", Pathname: Shared("/")},
		{Key: "/projects/stay-hydrated/", Pathname: PerLocale(map[string]string{
			"tr": "/projeler/su-gunlugu/",
		})},
		{Key: "/projects/stay-hydrated/privacy-notice/", Pathname: PerLocale(map[string]string{
			"tr": "/projeler/su-gunlugu/gizlilik-bildirimi/",
		})},
		{Key: "/projects/stay-hydrated/localization/", Pathname: PerLocale(map[string]string{
			"tr": "/projeler/su-gunlugu/yerellestirme/",
		})},
	})
}
