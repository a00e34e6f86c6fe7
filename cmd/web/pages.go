package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"gndzkrkc.com/site/internal/content"
	"gndzkrkc.com/site/internal/handlers"
	mw "gndzkrkc.com/site/internal/middleware"
	"gndzkrkc.com/site/internal/routing"
	"gndzkrkc.com/site/internal/sitemap"
	"gndzkrkc.com/site/internal/theme"
)

type contentRef struct{ kind, slug string }

// contentPages maps routes to markdown documents under the content directory.
var contentPages = map[routing.RouteKey]contentRef{
	handlers.KeyPrivacy:      {kind: "stay-hydrated", slug: "privacy-notice"},
	handlers.KeyLocalization: {kind: "stay-hydrated", slug: "localization"},
}

// handlePage renders whichever page the Locale middleware matched.
func (s *server) handlePage(w http.ResponseWriter, r *http.Request) {
	d, _ := mw.DecisionFrom(r.Context())
	req := handlers.Request{
		Lang:  mw.Lang(r, s.neg.Table().DefaultLocale()),
		Key:   d.Key,
		Path:  r.URL.Path,
		Nonce: mw.Nonce(r.Context()),
		Theme: theme.FromRequest(r),
	}

	switch d.Key {
	case handlers.KeyHome:
		s.render(w, r, s.views.Home(req))
	case handlers.KeyStayHydrated:
		s.render(w, r, s.views.StayHydrated(req))
	default:
		ref, ok := contentPages[d.Key]
		if !ok {
			s.render(w, r, s.views.NotFound(req))
			return
		}
		page, err := s.pages.Get(r.Context(), ref.kind, ref.slug, req.Lang)
		if errors.Is(err, content.ErrNotFound) {
			s.render(w, r, s.views.NotFound(req))
			return
		}
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		s.render(w, r, s.views.Content(req, page))
	}
}

// handleSitemap serves every route in every locale with hreflang alternates.
func (s *server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := sitemap.WriteXML(&buf, s.sitemap.Build()); err != nil {
		s.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *server) handleRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = fmt.Fprintf(w, "User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", s.cfg.Origin)
}

// handleTheme stores the posted theme (or the next one in the cycle) and
// sends the visitor back where they came from.
func (s *server) handleTheme(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	next := theme.FromRequest(r).Next()
	if v := r.PostFormValue("theme"); v != "" {
		next = theme.Parse(v)
	}
	theme.Set(w, next)
	http.Redirect(w, r, theme.SafeReturn(r.PostFormValue("return")), http.StatusSeeOther)
}
