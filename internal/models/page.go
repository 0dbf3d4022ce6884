package models

import "fmt"

// Page identifies a view of the application. The set is closed.
type Page string

const (
	PageHome                Page = "home"
	PageSignup              Page = "signup"
	PageLogin               Page = "login"
	PageDashboard           Page = "dashboard"
	PageChallenges          Page = "challenges"
	PageAITherapist         Page = "ai_therapist"
	PageSettings            Page = "settings"
	PageHelp                Page = "help"
	PagePlaylist            Page = "playlist"
	PageBookRecommendations Page = "book_recommendations"
	PageShop                Page = "shop"
)

// DashboardPages are the sidebar views reachable only while logged in.
var DashboardPages = []Page{
	PageDashboard,
	PageChallenges,
	PageAITherapist,
	PageSettings,
	PageHelp,
	PagePlaylist,
	PageBookRecommendations,
	PageShop,
}

// IsDashboard reports whether p belongs to the authenticated sidebar group.
func (p Page) IsDashboard() bool {
	for _, d := range DashboardPages {
		if p == d {
			return true
		}
	}
	return false
}

// ParsePage converts a client supplied identifier into a Page.
func ParsePage(s string) (Page, error) {
	switch p := Page(s); p {
	case PageHome, PageSignup, PageLogin:
		return p, nil
	default:
		if p.IsDashboard() {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown page %q", s)
}
