package domain

import "time"

// Default gateway endpoints.
const (
	DefaultSearchURL  = "https://search.arke.institute"
	DefaultAPIURL     = "https://api.arke.institute"
	DefaultOCRURL     = "https://ocr.arke.institute"
	DefaultViewerURL  = "https://arke.institute"
	DefaultLogLevel   = "warn"
	defaultTimeout    = 30 * time.Second
	defaultRate       = 20.0
	defaultBurst      = 10
	defaultMaxRetries = 2
)

// GatewaySettings holds the remote Arke service configuration.
type GatewaySettings struct {
	// SearchURL is the semantic search service base URL.
	SearchURL string

	// APIURL serves /entities and /ipfs.
	APIURL string

	// OCRURL is the OCR extraction service base URL.
	OCRURL string

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// RatePerSecond throttles outbound requests across all endpoints.
	RatePerSecond float64

	// Burst is the throttle's bucket size.
	Burst int

	// MaxRetries is the number of transport-level retries for idempotent
	// GETs on transient failures. Zero disables retries.
	MaxRetries int
}

// ViewerSettings controls the links emitted in rendered output.
type ViewerSettings struct {
	// BaseURL is prefixed to a PI to build its view link.
	BaseURL string
}

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// Namespaces is the fallback catalogue used when the gateway
	// cannot list its namespaces at start-up.
	Namespaces []string
}

// LogSettings holds logging configuration.
type LogSettings struct {
	// Level is one of debug, info, warn, error.
	Level string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Gateway GatewaySettings
	Viewer  ViewerSettings
	Search  SearchSettings
	Log     LogSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Gateway: GatewaySettings{
			SearchURL:     DefaultSearchURL,
			APIURL:        DefaultAPIURL,
			OCRURL:        DefaultOCRURL,
			Timeout:       defaultTimeout,
			RatePerSecond: defaultRate,
			Burst:         defaultBurst,
			MaxRetries:    defaultMaxRetries,
		},
		Viewer: ViewerSettings{
			BaseURL: DefaultViewerURL,
		},
		Search: SearchSettings{
			Namespaces: DefaultNamespaces(),
		},
		Log: LogSettings{
			Level: DefaultLogLevel,
		},
	}
}

// ToolConfig is the immutable configuration handed to the tool surface.
type ToolConfig struct {
	Catalog       Catalog
	ViewerBaseURL string
}
