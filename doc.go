// Package main provides the entry point of Posts Portal. It runs a fiber web
// server that signs users in with the OpenID Connect authorization code flow
// against Auth0, keeps the user in an encrypted cookie session and proxies a
// RapidAPI posts endpoint as a list of {title, content} objects.
//
// Settings come from the environment and an optional .env file, see
// "postsportal config".
package main
