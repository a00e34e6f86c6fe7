package handlers

import (
	"gndzkrkc.com/site/internal/seo"
)

// Home renders the portfolio landing page.
func (v *Views) Home(req Request) PageData {
	req.Key = KeyHome
	d := v.base(req, "home",
		v.msgs.T(req.Lang, "metadata.title"),
		v.msgs.T(req.Lang, "metadata.description"))
	d.SEO.OG.Type = "profile"
	d.SEO.JSONLD = append(d.SEO.JSONLD,
		seo.JSON(seo.Person(seo.PersonInfo{
			Name:        v.site.Name,
			JobTitle:    v.msgs.T(req.Lang, "home.headline"),
			Description: v.msgs.T(req.Lang, "metadata.description"),
			URL:         v.site.Origin,
			Email:       v.site.Email,
			SameAs:      []string{v.site.GitHubURL, v.site.LinkedInURL},
		})),
		seo.JSON(seo.WebSite(v.site.Name, v.site.Origin, req.Lang)),
	)
	return d
}

// StayHydrated renders the app landing page.
func (v *Views) StayHydrated(req Request) PageData {
	req.Key = KeyStayHydrated
	d := v.base(req, "stay-hydrated",
		v.msgs.T(req.Lang, "projects.stay-hydrated.metadata.title"),
		v.msgs.T(req.Lang, "projects.stay-hydrated.metadata.description"))
	d.SEO.JSONLD = append(d.SEO.JSONLD, seo.JSON(seo.MobileApplication(
		v.msgs.T(req.Lang, "projects.stay-hydrated.title"),
		v.msgs.T(req.Lang, "projects.stay-hydrated.summary"),
		d.SEO.Canonical,
		v.site.PlayStoreURL,
	)))
	return d
}
