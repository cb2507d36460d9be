// Package navigation provides the page chrome shared by all templates:
// the menu, breadcrumbs and who is signed in.
package navigation

import (
	"github.com/postsportal/postsportal/internal/auth"
)

// Page identifiers used for the menu.
const (
	PageHome      = "home"
	PageDashboard = "dashboard"
	PagePosts     = "posts"
)

// Link is a menu entry or breadcrumb.
type Link struct {
	Page   string
	Title  string
	URL    string
	Active bool
}

// Menu is the main menu in display order.
var Menu = []Link{
	{Page: PageHome, Title: "Home", URL: "/"},
	{Page: PageDashboard, Title: "Dashboard", URL: "/dashboard"},
	{Page: PagePosts, Title: "Posts", URL: "/posts"},
}

// Context represents the navigation context for a page.
type Context struct {
	PageTitle     string
	ActivePage    string
	Menu          []Link
	Breadcrumbs   []Link
	Authenticated bool
	DisplayName   string
}

// NewContext creates a navigation context with the menu entry of activePage marked.
func NewContext(pageTitle, activePage string) *Context {
	menu := make([]Link, len(Menu))
	for i, l := range Menu {
		l.Active = l.Page == activePage
		menu[i] = l
	}

	return &Context{
		PageTitle:   pageTitle,
		ActivePage:  activePage,
		Menu:        menu,
		Breadcrumbs: make([]Link, 0),
	}
}

// AddBreadcrumb appends a breadcrumb.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, Link{Title: title, URL: url, Active: active})

	return c
}

// WithUser marks the context as signed in when user is set. The display
// name is the first of the name, email and sub claims that is a non-empty string.
func (c *Context) WithUser(user auth.TokenPayload) *Context {
	if user == nil {
		return c
	}

	c.Authenticated = true
	c.DisplayName = "signed in"

	claims, _ := user["userinfo"].(map[string]any)
	for _, key := range []string{"name", "email", "sub"} {
		if v, ok := claims[key].(string); ok && v != "" {
			c.DisplayName = v
			break
		}
	}

	return c
}

// IsActive checks if page is the current page.
func (c *Context) IsActive(page string) bool {
	return c.ActivePage == page
}
