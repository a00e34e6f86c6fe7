package seo

import (
	"encoding/json"
	"html/template"
)

// JSON marshals v for a <script type="application/ld+json"> body. json.Marshal
// escapes <, > and &, so the result cannot close the script element. It
// returns an empty value on error.
func JSON(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return template.JS(b)
}

// PersonInfo describes the site owner.
type PersonInfo struct {
	Name        string
	JobTitle    string
	Description string
	URL         string
	Image       string
	Email       string
	SameAs      []string
}

// Person returns a schema.org Person payload.
func Person(p PersonInfo) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Person",
		"name":     p.Name,
		"url":      p.URL,
	}
	if p.JobTitle != "" {
		m["jobTitle"] = p.JobTitle
	}
	if p.Description != "" {
		m["description"] = p.Description
	}
	if p.Image != "" {
		m["image"] = p.Image
	}
	if len(p.SameAs) > 0 {
		m["sameAs"] = p.SameAs
	}
	if p.Email != "" {
		m["email"] = p.Email
	}
	return m
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url, inLanguage string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if inLanguage != "" {
		m["inLanguage"] = inLanguage
	}
	return m
}

// MobileApplication describes an app listed on a store.
func MobileApplication(name, description, url, installURL string) map[string]any {
	m := map[string]any{
		"@context":            "https://schema.org",
		"@type":               "MobileApplication",
		"name":                name,
		"operatingSystem":     "Android",
		"applicationCategory": "HealthApplication",
		"offers": map[string]any{
			"@type":         "Offer",
			"price":         "0",
			"priceCurrency": "USD",
		},
	}
	if description != "" {
		m["description"] = description
	}
	if url != "" {
		m["url"] = url
	}
	if installURL != "" {
		m["installUrl"] = installURL
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}
