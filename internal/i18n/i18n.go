package i18n

import (
	"fmt"
	"os"
	"path/filepath"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Bundle holds the translated messages of every supported locale. Message
// files are nested YAML documents; nested keys are joined with ".", so
// {navigation: {home: Home}} registers "navigation.home".
type Bundle struct {
	dict     map[string]map[string]string
	fallback string
	bundle   *goi18n.Bundle
}

// Load reads <dir>/<lang>.yaml for every supported locale. The fallback
// locale's file is mandatory; other locales may be missing.
func Load(dir string, fallback string, supported []string) (*Bundle, error) {
	if len(supported) == 0 {
		supported = []string{"en", "tr"}
	}
	fbTag, err := language.Parse(fallback)
	if err != nil {
		return nil, fmt.Errorf("fallback locale %q: %w", fallback, err)
	}
	b := &Bundle{
		dict:     map[string]map[string]string{},
		fallback: fallback,
		bundle:   goi18n.NewBundle(fbTag),
	}
	for _, l := range supported {
		path := filepath.Join(dir, l+".yaml")
		raw, err := os.ReadFile(path)
		if err != nil {
			// allow missing file for non-default locales
			if l == fallback {
				return nil, fmt.Errorf("load locale %s: %w", l, err)
			}
			continue
		}
		if err := b.add(l, raw); err != nil {
			return nil, err
		}
	}
	if _, ok := b.dict[fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %s not loaded", fallback)
	}
	return b, nil
}

// add parses one message file and registers it for lang.
func (b *Bundle) add(lang string, raw []byte) error {
	tag, err := language.Parse(lang)
	if err != nil {
		return fmt.Errorf("locale %q: %w", lang, err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("unmarshal %s: %w", lang, err)
	}
	flat := map[string]string{}
	if err := flatten("", doc, flat); err != nil {
		return fmt.Errorf("messages %s: %w", lang, err)
	}
	msgs := make([]*goi18n.Message, 0, len(flat))
	for id, text := range flat {
		msgs = append(msgs, &goi18n.Message{ID: id, Other: text})
	}
	if err := b.bundle.AddMessages(tag, msgs...); err != nil {
		return fmt.Errorf("register %s: %w", lang, err)
	}
	b.dict[lang] = flat
	return nil
}

func flatten(prefix string, node map[string]any, out map[string]string) error {
	for k, v := range node {
		id := k
		if prefix != "" {
			id = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			out[id] = val
		case map[string]any:
			if err := flatten(id, val, out); err != nil {
				return err
			}
		case nil:
			out[id] = ""
		default:
			out[id] = fmt.Sprint(val)
		}
	}
	return nil
}

// Lookup returns the raw message registered for key in lang without falling
// back to another locale.
func (b *Bundle) Lookup(lang, key string) (string, bool) {
	m, ok := b.dict[lang]
	if !ok {
		return "", false
	}
	v, ok := m[key]
	return v, ok
}

// T returns translation for key in lang, falling back to default and finally key.
func (b *Bundle) T(lang, key string) string {
	return b.Tf(lang, key, nil)
}

// Tf is T with template data, e.g. Tf("en", "navigation.aria-go-to", map[string]any{"Page": "Home"})
// for a message "Go to {{.Page}}".
func (b *Bundle) Tf(lang, key string, data map[string]any) string {
	src := lang
	if _, ok := b.Lookup(lang, key); !ok {
		if _, ok := b.Lookup(b.fallback, key); !ok {
			return key
		}
		src = b.fallback
	}
	loc := goi18n.NewLocalizer(b.bundle, src)
	out, err := loc.Localize(&goi18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil {
		raw, _ := b.Lookup(src, key)
		return raw
	}
	return out
}
