// Package games implements the game library feature.
//
// The central operation is the Steam library sync: a handle (vanity name, 17-digit id or
// community profile URL) is normalized and resolved, the owned titles are fetched, and each
// title is reconciled on a bounded worker pool. Reconciling a title is an atomic upsert of
// the Game keyed by (user_id, steam_app_id) followed by a refresh of its single aggregate
// steam_api PlaySession, whose duration is the lifetime playtime in seconds. A failing
// title is reported in SyncResult.Failed and never aborts the batch.
//
// Local titles are added through AddManualGame and may be enriched with store metadata.
// Enrichment is best-effort: the row is written even when the lookup fails.
//
// # Routes
//
//	POST /games/steam/sync  {"steam_id": "..."}
//	POST /games             {"name", "executable_name", "steam_app_id" | "steam_url"}
//	GET  /games             ?platform=&page=&limit=
//	GET  /games/:id
package games
