// Package server holds the HTTP server configuration and constants.
//
// The main application entry point handles the server startup; this package defines the
// configuration structure and the valid deployment environments.
package server
