// internal/app/system/limits/limits.go
package limits

// Request body size limits for the JSON API.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxJSONBody bounds every user, evaluation, and metric request body.
	MaxJSONBody = 1 << 20 // 1 MB
)
