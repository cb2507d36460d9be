package auth

import (
	"net/url"
	"strings"
)

// FederatedLogoutURL returns the Auth0 logout endpoint of domain that ends
// the provider session and sends the browser back to returnTo.
func FederatedLogoutURL(domain, returnTo, clientID string) string {
	var b strings.Builder

	b.WriteString("https://")
	b.WriteString(domain)
	b.WriteString("/v2/logout?returnTo=")
	b.WriteString(url.QueryEscape(returnTo))
	b.WriteString("&client_id=")
	b.WriteString(url.QueryEscape(clientID))

	return b.String()
}
