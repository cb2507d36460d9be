package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/postsportal/postsportal/internal/uniuri"
)

// OIDCConfig holds the OpenID Connect settings of the provider.
type OIDCConfig struct {
	// Domain is the provider tenant domain, e.g. "tenant.eu.auth0.com".
	Domain string
	// ClientID is the OAuth2 client identifier.
	ClientID string
	// ClientSecret is the OAuth2 client secret.
	ClientSecret string
	// IssuerURL overrides the issuer derived from Domain ("https://{Domain}/").
	IssuerURL string
	// Scopes are the OAuth2 scopes to request (default: DefaultScopes).
	Scopes []string
	// HTTPClient is used for discovery, key fetches and the token exchange.
	HTTPClient *http.Client
}

// Issuer returns the issuer URL. Discovery is fetched from
// Issuer()+".well-known/openid-configuration".
func (c *OIDCConfig) Issuer() string {
	if c.IssuerURL != "" {
		return c.IssuerURL
	}

	return "https://" + c.Domain + "/"
}

func (c *OIDCConfig) validate() error {
	var missing []string

	if c.Domain == "" && c.IssuerURL == "" {
		missing = append(missing, "domain")
	}

	if c.ClientID == "" {
		missing = append(missing, "client id")
	}

	if c.ClientSecret == "" {
		missing = append(missing, "client secret")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingSetting, strings.Join(missing, ", "))
	}

	return nil
}

// OIDCClient implements IdentityProvider against an OIDC provider found by discovery.
// The discovery document is fetched on first use and cached once it loaded.
type OIDCClient struct {
	config OIDCConfig

	mu       sync.Mutex
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
}

// NewOIDCClient creates a client. No network call is made until the first login.
func NewOIDCClient(config OIDCConfig) *OIDCClient {
	if len(config.Scopes) == 0 {
		config.Scopes = DefaultScopes
	}

	if config.HTTPClient == nil {
		config.HTTPClient = cleanhttp.DefaultPooledClient()
	}

	return &OIDCClient{config: config}
}

func (p *OIDCClient) discover(ctx context.Context) (*oidc.Provider, *oidc.IDTokenVerifier, error) {
	if err := p.config.validate(); err != nil {
		return nil, nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.provider != nil {
		return p.provider, p.verifier, nil
	}

	provider, err := oidc.NewProvider(p.clientContext(ctx), p.config.Issuer())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load OIDC discovery for %s: %w", p.config.Issuer(), err)
	}

	p.provider = provider
	p.verifier = provider.Verifier(&oidc.Config{ClientID: p.config.ClientID})

	log.Info().Str("issuer", p.config.Issuer()).Msg("OIDC provider discovered")

	return p.provider, p.verifier, nil
}

func (p *OIDCClient) clientContext(ctx context.Context) context.Context {
	return oidc.ClientContext(ctx, p.config.HTTPClient)
}

func (p *OIDCClient) oauth2Config(provider *oidc.Provider, redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     p.config.ClientID,
		ClientSecret: p.config.ClientSecret,
		RedirectURL:  redirectURI,
		Endpoint:     provider.Endpoint(),
		Scopes:       p.config.Scopes,
	}
}

// AuthorizationRedirect returns the provider authorize URL for redirectURI
// with fresh state, nonce and PKCE challenge.
func (p *OIDCClient) AuthorizationRedirect(ctx context.Context, redirectURI string) (string, PendingRequest, error) {
	provider, _, err := p.discover(ctx)
	if err != nil {
		return "", PendingRequest{}, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	pending := PendingRequest{
		State:        uniuri.New(),
		Nonce:        uniuri.New(),
		CodeVerifier: oauth2.GenerateVerifier(),
		RedirectURI:  redirectURI,
		IssuedAt:     time.Now().UTC(),
	}

	authURL := p.oauth2Config(provider, redirectURI).AuthCodeURL(
		pending.State,
		oidc.Nonce(pending.Nonce),
		oauth2.S256ChallengeOption(pending.CodeVerifier),
	)

	return authURL, pending, nil
}

// Exchange validates the callback against pending, redeems the code and
// verifies the returned ID token.
func (p *OIDCClient) Exchange(ctx context.Context, pending PendingRequest, params CallbackParams) (TokenPayload, error) {
	payload, err := p.exchange(ctx, pending, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthExchange, err)
	}

	return payload, nil
}

func (p *OIDCClient) exchange(ctx context.Context, pending PendingRequest, params CallbackParams) (TokenPayload, error) {
	if params.Error != "" {
		return nil, fmt.Errorf("%w: %s: %s", ErrProviderError, params.Error, params.ErrorDescription)
	}

	if pending.State == "" || subtle.ConstantTimeCompare([]byte(pending.State), []byte(params.State)) != 1 {
		return nil, ErrStateMismatch
	}

	if params.Code == "" {
		return nil, ErrMissingCode
	}

	provider, verifier, err := p.discover(ctx)
	if err != nil {
		return nil, err
	}

	ctx = p.clientContext(ctx)

	var opts []oauth2.AuthCodeOption
	if pending.CodeVerifier != "" {
		opts = append(opts, oauth2.VerifierOption(pending.CodeVerifier))
	}

	token, err := p.oauth2Config(provider, pending.RedirectURI).Exchange(ctx, params.Code, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange token: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, ErrNoIDToken
	}

	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(idToken.Nonce), []byte(pending.Nonce)) != 1 {
		return nil, ErrNonceMismatch
	}

	var claims map[string]any
	if err = idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to parse claims: %w", err)
	}

	return newTokenPayload(token, rawIDToken, claims), nil
}

func newTokenPayload(token *oauth2.Token, rawIDToken string, claims map[string]any) TokenPayload {
	payload := TokenPayload{
		"access_token": token.AccessToken,
		"token_type":   token.TokenType,
		"id_token":     rawIDToken,
		"userinfo":     claims,
	}

	if scope, ok := token.Extra("scope").(string); ok {
		payload["scope"] = scope
	}

	if expiresIn := token.Extra("expires_in"); expiresIn != nil {
		payload["expires_in"] = expiresIn
	}

	if !token.Expiry.IsZero() {
		payload["expires_at"] = token.Expiry.Unix()
	}

	return payload
}
