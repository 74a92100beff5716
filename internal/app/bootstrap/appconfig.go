// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, logging, CORS); everything here is
// specific to the staff service.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI                    string        // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase               string        // Database name within MongoDB
	MongoMaxPoolSize            uint64        // Upper bound on pooled connections
	MongoMinPoolSize            uint64        // Connections kept warm
	MongoServerSelectionTimeout time.Duration // How long a store call waits for a usable server

	// Listing defaults
	DefaultPageSize    int // Users per page when limit is omitted
	MaxPageSize        int // Upper bound on limit and page_size
	EvaluationPageSize int // Evaluations per page when page_size is omitted

	// PlaceholderActor is recorded as updated_by/commenter when a request
	// carries no X-Staff-Actor header.
	PlaceholderActor string

	// RefreshRateLimit caps POST /api/users/refresh per client IP per
	// minute. Zero disables the cap.
	RefreshRateLimit int

	// TrustProxyHeaders keys the refresh cap on X-Forwarded-For/X-Real-IP
	// instead of the connection's address. Off unless a proxy sets them.
	TrustProxyHeaders bool

	// Store call timeouts
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration
}
