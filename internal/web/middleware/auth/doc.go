// Package auth provides the session middleware for the web application.
//
// The middleware loads the browser session once per request and attaches it
// to the request, so handlers receive it through session.FromContext instead
// of reading cookies themselves. When the session holds a user, the token
// payload is also stored in fiber.Locals under CurrentUserKey for templates.
//
// No route is protected here: authorization is limited to what each handler
// chooses to show.
//
// Usage:
//
//	app.Use(authmiddleware.New(sessionStore))
package auth
