// Package auth holds the relationship with the OpenID Connect provider.
//
// IdentityProvider is what the login handlers depend on. It has two
// operations:
//   - AuthorizationRedirect builds the provider authorize URL for a callback
//     URI and returns the PendingRequest (state, nonce, PKCE verifier) the
//     caller keeps until the callback arrives.
//   - Exchange checks the callback against the PendingRequest, redeems the
//     code and verifies the ID token against the provider's discovery keys.
//
// OIDCClient implements IdentityProvider with go-oidc and x/oauth2. It is the
// only place where identity assertions are verified.
//
// Failures are reported as ErrConfiguration or ErrAuthExchange, each joined
// with a more specific cause:
//
//	payload, err := client.Exchange(ctx, pending, params)
//	if errors.Is(err, auth.ErrStateMismatch) {
//	    // replayed or forged callback
//	}
//
// FederatedLogoutURL composes the provider logout redirect.
package auth
