// Package config provides configuration management for the chapter relay.
//
// Configuration is loaded from environment variables using the env package.
// A .env file in the working directory is read first when present; real
// environment variables take precedence over it.
//
// Only RAPIDAPI_KEY is mandatory. Everything else has a default suitable
// for local development.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("HTTP server will listen on %s\n", cfg.GetHTTPAddr())
package config
