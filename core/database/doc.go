// Package database handles the connection to the run journal database.
//
// It provides a wrapper around GORM to configure MySQL connections from the
// application's configuration. The journal is optional: when Connect fails the
// server keeps running and simply stops recording render runs.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Warn("Optional database connection failed", zap.Error(err))
//	}
//
// Tests open GORM on top of go-sqlmock through Open.
package database
