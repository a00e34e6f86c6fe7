// Package content loads localized markdown pages with YAML front matter from
// disk and renders them to sanitized HTML.
package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no locale of the fallback chain has the page.
var ErrNotFound = errors.New("content: not found")

// Page is a localized markdown document.
type Page struct {
	Kind          string
	Slug          string
	Lang          string
	Title         string
	Summary       string
	Body          template.HTML
	EffectiveDate time.Time
	UpdatedAt     time.Time
	Version       string
	SEO           SEO
}

// Fallback reports whether the page was served from another locale than requested.
func (p Page) Fallback(requested string) bool { return p.Lang != requested }

// SEO holds optional metadata overrides.
type SEO struct {
	Title       string
	Description string
}

type frontMatter struct {
	Title         string `yaml:"title"`
	Summary       string `yaml:"summary"`
	Lang          string `yaml:"lang"`
	EffectiveDate string `yaml:"effective_date"`
	UpdatedAt     string `yaml:"updated_at"`
	Version       string `yaml:"version"`
	SEO           struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
	} `yaml:"seo"`
}

const defaultDir = "content"

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	htmlPolicy = newHTMLPolicy()
)

func newHTMLPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

// Render converts markdown to HTML and strips anything outside the allowed
// element set (scripts, inline handlers, styles).
func Render(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("content: render markdown: %w", err)
	}
	return template.HTML(htmlPolicy.SanitizeBytes(buf.Bytes())), nil
}

type cacheEntry struct {
	page    Page
	expires time.Time
}

// Store reads pages from dir/<kind>/<lang>/<slug>.md and keeps them in memory
// for ttl.
type Store struct {
	dir      string
	fallback string
	ttl      time.Duration
	now      func() time.Time

	mu    sync.RWMutex
	items map[string]cacheEntry
}

// NewStore returns a Store. Missing pages fall back to the fallback locale.
// A non-positive ttl disables caching.
func NewStore(dir, fallback string, ttl time.Duration) *Store {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = defaultDir
	}
	return &Store{
		dir:      dir,
		fallback: fallback,
		ttl:      ttl,
		now:      time.Now,
		items:    map[string]cacheEntry{},
	}
}

// Get returns the page in lang, else in the fallback locale.
func (s *Store) Get(ctx context.Context, kind, slug, lang string) (Page, error) {
	kind = sanitizeSegment(kind)
	slug = sanitizeSegment(slug)
	lang = sanitizeSegment(lang)
	if kind == "" || slug == "" {
		return Page{}, ErrNotFound
	}

	cacheKey := strings.Join([]string{kind, lang, slug}, "|")
	if page, ok := s.cached(cacheKey); ok {
		return page, nil
	}

	priority := []string{lang}
	if lang != s.fallback {
		priority = append(priority, s.fallback)
	}
	for _, candidate := range priority {
		if err := ctx.Err(); err != nil {
			return Page{}, err
		}
		if candidate == "" {
			continue
		}
		page, err := s.read(kind, slug, candidate)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			// parse issues stop the chain
			return Page{}, err
		}
		s.store(cacheKey, page)
		return page, nil
	}
	return Page{}, ErrNotFound
}

func (s *Store) read(kind, slug, lang string) (Page, error) {
	file := filepath.Join(s.dir, kind, lang, slug+".md")
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Page{}, ErrNotFound
		}
		return Page{}, fmt.Errorf("content: read %s: %w", file, err)
	}

	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("content: parse front matter %s: %w", file, err)
		}
	}
	html, err := Render([]byte(body))
	if err != nil {
		return Page{}, fmt.Errorf("%s: %w", file, err)
	}

	page := Page{
		Kind:          kind,
		Slug:          slug,
		Lang:          firstNonEmpty(strings.TrimSpace(front.Lang), lang),
		Title:         strings.TrimSpace(front.Title),
		Summary:       strings.TrimSpace(front.Summary),
		Body:          html,
		EffectiveDate: parseDate(front.EffectiveDate),
		UpdatedAt:     parseDate(front.UpdatedAt),
		Version:       strings.TrimSpace(front.Version),
		SEO: SEO{
			Title:       strings.TrimSpace(front.SEO.Title),
			Description: strings.TrimSpace(front.SEO.Description),
		},
	}
	if page.UpdatedAt.IsZero() {
		if info, err := os.Stat(file); err == nil {
			page.UpdatedAt = info.ModTime()
		}
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	return page, nil
}

func (s *Store) cached(key string) (Page, bool) {
	if s.ttl <= 0 {
		return Page{}, false
	}
	s.mu.RLock()
	entry, ok := s.items[key]
	s.mu.RUnlock()
	if !ok || s.now().After(entry.expires) {
		return Page{}, false
	}
	return entry.page, true
}

func (s *Store) store(key string, page Page) {
	if s.ttl <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = cacheEntry{page: page, expires: s.now().Add(s.ttl)}
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	input = strings.ReplaceAll(input, "\r\n", "\n")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n")
		}
	}
	return "", input
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

func sanitizeSegment(s string) string {
	s = strings.Trim(strings.TrimSpace(strings.ToLower(s)), "/")
	if s == "" || strings.Contains(s, "..") || strings.ContainsAny(s, `/\`) {
		return ""
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
