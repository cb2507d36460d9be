// Package uniuri generates cryptographically secure random strings.
// The login flow uses it for OAuth2 state, OIDC nonce and PKCE verifier values.
package uniuri
