// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure Postgres (the hosted production store), MySQL, or SQLite
// connections from the application's configuration. Query logs go through zap via zapgorm2.
//
// # Schema Inspection
//
// GetTableColumns lists the live columns of a table for each supported dialect. The system
// feature uses it to compare the deployed schema against the GORM models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database, log)
//	if err != nil {
//	    log.Fatal("Database connection failed", zap.Error(err))
//	}
//
//	columns, err := database.GetTableColumns(db, "games")
package database
