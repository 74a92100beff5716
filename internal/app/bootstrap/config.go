// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/staffhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for StaffHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, default_page_size, etc.
//   - Environment variables: STAFFHUB_MONGO_URI, STAFFHUB_DEFAULT_PAGE_SIZE, etc.
//   - Command-line flags: --mongo_uri, --default_page_size, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "staff_hub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "mongo_server_selection_timeout", Default: "5s", Desc: "How long a store call waits for a usable MongoDB server"},

	// Listing
	{Name: "default_page_size", Default: 20, Desc: "Users per page when limit is omitted"},
	{Name: "max_page_size", Default: 100, Desc: "Largest accepted limit/page_size"},
	{Name: "evaluation_page_size", Default: 10, Desc: "Evaluations per page when page_size is omitted"},

	{Name: "placeholder_actor", Default: "system", Desc: "Identity recorded on writes when no X-Staff-Actor header is sent"},
	{Name: "refresh_rate_limit", Default: 6, Desc: "User cache refreshes allowed per client per minute (0 disables)"},
	{Name: "trust_proxy_headers", Default: false, Desc: "Identify clients by X-Forwarded-For/X-Real-IP (enable only behind a proxy that sets them)"},

	// Store timeouts
	{Name: "timeout_short", Default: "5s", Desc: "Timeout for single-document reads and writes"},
	{Name: "timeout_medium", Default: "10s", Desc: "Timeout for list queries and cache hydration"},
	{Name: "timeout_long", Default: "30s", Desc: "Timeout for writes that touch more than one collection"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig merges, in order of precedence,
// command-line flags, environment variables (STAFFHUB_* for the app),
// config files, and the defaults above.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "STAFFHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:                    appValues.String("mongo_uri"),
		MongoDatabase:               appValues.String("mongo_database"),
		MongoMaxPoolSize:            uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize:            uint64(appValues.Int("mongo_min_pool_size")),
		MongoServerSelectionTimeout: appValues.Duration("mongo_server_selection_timeout", 5*time.Second),

		DefaultPageSize:    appValues.Int("default_page_size"),
		MaxPageSize:        appValues.Int("max_page_size"),
		EvaluationPageSize: appValues.Int("evaluation_page_size"),

		PlaceholderActor:  appValues.String("placeholder_actor"),
		RefreshRateLimit:  appValues.Int("refresh_rate_limit"),
		TrustProxyHeaders: appValues.Bool("trust_proxy_headers"),

		TimeoutShort:  appValues.Duration("timeout_short", timeouts.DefaultShort),
		TimeoutMedium: appValues.Duration("timeout_medium", timeouts.DefaultMedium),
		TimeoutLong:   appValues.Duration("timeout_long", timeouts.DefaultLong),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// The MongoDB URI is checked before any connection is attempted, and the
// page sizes must be usable by the listing operations.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	return validateAppConfig(appCfg)
}

func validateAppConfig(appCfg AppConfig) error {
	if appCfg.MongoDatabase == "" {
		return fmt.Errorf("mongo_database must be set")
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}
	for name, v := range map[string]int{
		"default_page_size":    appCfg.DefaultPageSize,
		"max_page_size":        appCfg.MaxPageSize,
		"evaluation_page_size": appCfg.EvaluationPageSize,
	} {
		if v < 1 {
			return fmt.Errorf("%s must be positive, got %d", name, v)
		}
	}
	if appCfg.DefaultPageSize > appCfg.MaxPageSize || appCfg.EvaluationPageSize > appCfg.MaxPageSize {
		return fmt.Errorf("page sizes must not exceed max_page_size (%d)", appCfg.MaxPageSize)
	}
	return nil
}
