// internal/app/system/limits/limits.go
package limits

// Request body size limits.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxJSONBodySize caps JSON request bodies (registration, login,
	// store creation). No legitimate payload in this API comes close.
	MaxJSONBodySize = 1 << 20 // 1 MB
)
