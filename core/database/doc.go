// Package database handles the cache database connection.
//
// It provides a wrapper around GORM to configure sqlite or MySQL connections
// based on the application's configuration. The database only backs the
// persistent purchase cache (core/cache.DBStore); its schema is migrated by
// the store itself.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
