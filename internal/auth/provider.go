package auth

import (
	"context"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
)

// DefaultScopes is the scope set requested at login.
var DefaultScopes = []string{oidc.ScopeOpenID, "profile", "email"}

// PendingRequest is the state of one login attempt, kept by the caller
// between AuthorizationRedirect and Exchange.
type PendingRequest struct {
	State        string    `json:"state"`
	Nonce        string    `json:"nonce"`
	CodeVerifier string    `json:"code_verifier"`
	RedirectURI  string    `json:"redirect_uri"`
	IssuedAt     time.Time `json:"issued_at"`
}

// CallbackParams are the parameters the provider sends to the callback URI.
type CallbackParams struct {
	Code             string
	State            string
	Error            string
	ErrorDescription string
}

// TokenPayload is the result of a successful exchange: the token response
// fields plus the verified ID token claims under "userinfo".
type TokenPayload map[string]any

// IdentityProvider builds authorization redirects and redeems callbacks.
type IdentityProvider interface {
	AuthorizationRedirect(ctx context.Context, redirectURI string) (string, PendingRequest, error)
	Exchange(ctx context.Context, pending PendingRequest, params CallbackParams) (TokenPayload, error)
}
