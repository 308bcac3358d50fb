// Package config provides configuration management for the tree reconciler.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file (loaded with godotenv). Defaults come from the `default`
// struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, body limit)
//   - Database: MySQL connection details for the run journal
//   - Storage: S3/MinIO credentials and the scenario bucket
//   - Log: Logging level and format
//   - Engine: SVG tag, pass logging and replay batching
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Engine.SVGTag)
package config
