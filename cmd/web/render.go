package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gndzkrkc.com/site/internal/handlers"
	"gndzkrkc.com/site/internal/i18n"
)

// renderer owns the parsed templates: one set per page under pages/, each a
// clone of the shared layout and partials.
type renderer struct {
	dir   string
	dev   bool
	funcs template.FuncMap

	mu    sync.RWMutex
	pages map[string]*template.Template
}

func newRenderer(dir string, dev bool, msgs *i18n.Bundle) (*renderer, error) {
	rd := &renderer{
		dir:   dir,
		dev:   dev,
		funcs: templateFuncs(msgs),
	}
	// parse once even in dev mode so broken templates fail at startup
	pages, err := rd.parse()
	if err != nil {
		return nil, err
	}
	rd.pages = pages
	return rd, nil
}

func templateFuncs(msgs *i18n.Bundle) template.FuncMap {
	return template.FuncMap{
		"now": time.Now,
		"t":   msgs.T,
		// tf "key" "Name" value ... interpolates pairs into the message.
		"tf": func(lang, key string, pairs ...any) string {
			data := make(map[string]any, len(pairs)/2)
			for i := 0; i+1 < len(pairs); i += 2 {
				data[fmt.Sprint(pairs[i])] = pairs[i+1]
			}
			return msgs.Tf(lang, key, data)
		},
		"list": func(items ...string) []string { return items },
	}
}

func (rd *renderer) parse() (map[string]*template.Template, error) {
	// Recursively discover all .tmpl files. Note: ParseGlob doesn't support **.
	var shared, pages []string
	if err := filepath.WalkDir(rd.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".tmpl") {
			return nil
		}
		if filepath.Base(filepath.Dir(path)) == "pages" {
			pages = append(pages, path)
		} else {
			shared = append(shared, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(shared) == 0 || len(pages) == 0 {
		return nil, fmt.Errorf("no templates found under %s", rd.dir)
	}
	root, err := template.New("_root").Funcs(rd.funcs).ParseFiles(shared...)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*template.Template, len(pages))
	for _, p := range pages {
		t, err := root.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFiles(p); err != nil {
			return nil, err
		}
		out[strings.TrimSuffix(filepath.Base(p), ".tmpl")] = t
	}
	return out, nil
}

// lookup returns the template set of a page. In dev mode, templates are
// reparsed on each request.
func (rd *renderer) lookup(page string) (*template.Template, error) {
	if rd.dev {
		pages, err := rd.parse()
		if err != nil {
			return nil, fmt.Errorf("template parse error: %w", err)
		}
		rd.mu.Lock()
		rd.pages = pages
		rd.mu.Unlock()
	}
	rd.mu.RLock()
	t, ok := rd.pages[page]
	rd.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("template %q not found", page)
	}
	return t, nil
}

// render executes the base layout with the page body of d.Template. Output is
// buffered so a failing template still yields a clean 500.
func (s *server) render(w http.ResponseWriter, r *http.Request, d handlers.PageData) {
	t, err := s.tmpl.lookup(d.Template)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", d); err != nil {
		s.serverError(w, r, fmt.Errorf("template exec error: %w", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	status := d.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
