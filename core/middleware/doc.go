// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: verifies HS256 bearer tokens and exposes the caller's user id.
//   - rayid: tags every request with a ray id for log correlation.
//
// Public routes are registered before auth so they answer without a token.
package middleware
