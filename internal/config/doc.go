// Package config manages application configuration for the Shepherd API.
//
// Configuration is read from environment variables. A .env file in the
// working directory is applied first when present; variables already set in
// the environment take precedence.
//
//	cfg, err := config.Load()
//	if err != nil { ... }
//	if err := cfg.Validate(); err != nil { ... }
//
// Validate reports every problem at once through errors.Join.
//
// # Configuration Groups
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS, metrics)
//   - DatabaseConfig: SurrealDB connection settings
//   - JWTConfig: RS256 keys, issuer and access token lifetime
//   - EmailConfig: mail transport (ses or log) and sender
//   - RedisConfig: optional shared idempotency store
//   - CatalogConfig: ministry catalog file
//   - InvitationConfig: invitation lifetime, registration link, bootstrap admin
//   - RateLimitConfig: per-client request limits
//
// # Environment Variables
//
//	SERVER_PORT            HTTP port (default: 8080)
//	SERVER_ENV             development, production or test
//	DB_HOST, DB_PORT       SurrealDB address
//	JWT_PRIVATE_KEY_PATH   RS256 signing key (or JWT_PRIVATE_KEY inline)
//	EMAIL_PROVIDER         ses or log (default: log)
//	EMAIL_FROM             sender address, required for ses
//	REDIS_ADDR             enables the Redis idempotency store
//	CATALOG_PATH           ministry catalog JSON (default: embedded)
//	INVITATION_ACCEPT_URL  registration page the invitation token is appended to
//	BOOTSTRAP_ADMIN_EMAIL  may register without an invitation and becomes admin
package config
