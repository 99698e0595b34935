// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration: WAFFLE's CoreConfig covers
// ports, TLS, logging level, CORS, and the other framework-level settings.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Trusted gateway headers. The upstream authentication layer verifies
	// identity tokens and forwards the user id; this service only parses it.
	IdentityHeader  string // Header carrying the authenticated user id
	WorkspaceHeader string // Header carrying the workspace reference (membership id)
}
