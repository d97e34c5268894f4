// Package system provides health and consistency checks for the service.
//
// # Checks Provided
//
//   - Health: database ping and bucket existence. Public.
//   - Structure: required bucket folders (covers/, snapshots/), with ?fix=true to create them.
//   - Schema: live columns of the library tables compared with the GORM models.
//
// # HTTP Endpoints
//
//   - GET /system/health
//   - GET /system/structure
//   - GET /system/schema
package system
