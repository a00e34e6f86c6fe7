package handlers

// Site holds the fixed facts about the owner and the Stay Hydrated app.
type Site struct {
	Name   string
	Origin string

	GitHubURL   string
	LinkedInURL string
	Email       string

	PlayStoreURL string
	CrowdinURL   string
	SupportEmail string
}

// DefaultSite returns the production site facts served from origin.
func DefaultSite(origin string) Site {
	return Site{
		Name:         "Gündüz Karakeçe",
		Origin:       origin,
		GitHubURL:    "https://github.com/gndzkrkc",
		LinkedInURL:  "https://www.linkedin.com/in/gndzkrkc/",
		Email:        "contact@gndzkrkc.com",
		PlayStoreURL: "https://play.google.com/store/apps/details?id=gndzkrkc.stayhydrated",
		CrowdinURL:   "https://crowdin.com/project/stayhydrated",
		SupportEmail: "stayhydrated@gndzkrkc.com",
	}
}
