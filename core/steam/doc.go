// Package steam is the client for the remote game library.
//
// WebAPI needs an API key and covers identity resolution (ResolveSteamID) and the owned
// titles list (GetOwnedGames). Store reads public catalog details and caches them in a
// cache.Store. Failures are classified with ErrNotFound and ErrUpstream so callers can map
// them with errors.Is.
package steam
