package auth

import "errors"

var (
	// ErrConfiguration is returned when the provider settings are incomplete
	// or the discovery document can not be loaded.
	ErrConfiguration = errors.New("identity provider configuration error")

	// ErrAuthExchange is returned for every failed callback: provider error,
	// state mismatch, rejected code or an ID token that does not verify.
	ErrAuthExchange = errors.New("authorization code exchange failed")

	// ErrMissingSetting is returned when a required provider setting is empty.
	ErrMissingSetting = errors.New("missing provider setting")

	// ErrStateMismatch is returned when the callback state does not match the
	// state issued for the pending login, or no login is pending.
	ErrStateMismatch = errors.New("state token mismatch")

	// ErrMissingCode is returned when the callback carries no authorization code.
	ErrMissingCode = errors.New("authorization code missing")

	// ErrProviderError is returned when the provider redirected back with an error parameter.
	ErrProviderError = errors.New("provider returned an error")

	// ErrNoIDToken is returned when the OAuth2 token response doesn't contain an ID token.
	ErrNoIDToken = errors.New("no id_token in token response")

	// ErrNonceMismatch is returned when the ID token nonce differs from the one sent at login.
	ErrNonceMismatch = errors.New("id token nonce mismatch")
)
