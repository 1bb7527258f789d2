// Package config provides configuration management for the purchase manager.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Backend: entitlement backend URL, API key and timeouts
//   - Billing: static catalog location for the development billing client
//   - Cache: local cache backend selection (memory, database, object)
//   - Database: cache database connection details (sqlite or MySQL)
//   - Storage: S3/MinIO credentials and bucket settings
//   - Server: stub backend server settings
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Backend.URL)
package config
