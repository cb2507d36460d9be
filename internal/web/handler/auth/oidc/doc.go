// Package oidc provides the handlers of the OpenID Connect login flow.
//
//   - GET  /login    stores a pending login in the session and redirects to
//     the provider's authorize endpoint
//   - GET  /callback (or POST for form_post) redeems the code, stores the
//     token payload as the session user and redirects to /
//
// A failed callback is returned to the fiber error handler as is and the
// session is not saved. Logout lives in the logout handler package.
package oidc
