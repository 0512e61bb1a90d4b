package services

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/arke-mcp/internal/core/domain"
	"github.com/custodia-labs/arke-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/arke-mcp/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keySearchURL     = "gateway.search_url"
	keyAPIURL        = "gateway.api_url"
	keyOCRURL        = "gateway.ocr_url"
	keyTimeout       = "gateway.timeout_seconds"
	keyRatePerSecond = "gateway.rate_per_second"
	keyBurst         = "gateway.burst"
	keyMaxRetries    = "gateway.max_retries"
	keyViewerBaseURL = "viewer.base_url"
	keyNamespaces    = "search.namespaces"
	keyLogLevel      = "log.level"
)

// settingKeys lists every supported key in display order.
var settingKeys = []string{
	keySearchURL,
	keyAPIURL,
	keyOCRURL,
	keyTimeout,
	keyRatePerSecond,
	keyBurst,
	keyMaxRetries,
	keyViewerBaseURL,
	keyNamespaces,
	keyLogLevel,
}

var logLevels = []string{"debug", "info", "warn", "error"}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing or ill-typed values
// fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Gateway: domain.GatewaySettings{
			SearchURL:     s.getString(keySearchURL, defaults.Gateway.SearchURL),
			APIURL:        s.getString(keyAPIURL, defaults.Gateway.APIURL),
			OCRURL:        s.getString(keyOCRURL, defaults.Gateway.OCRURL),
			Timeout:       s.getSeconds(keyTimeout, defaults.Gateway.Timeout),
			RatePerSecond: s.getFloat(keyRatePerSecond, defaults.Gateway.RatePerSecond),
			Burst:         s.getInt(keyBurst, defaults.Gateway.Burst),
			MaxRetries:    s.getCount(keyMaxRetries, defaults.Gateway.MaxRetries),
		},
		Viewer: domain.ViewerSettings{
			BaseURL: strings.TrimRight(s.getString(keyViewerBaseURL, defaults.Viewer.BaseURL), "/"),
		},
		Search: domain.SearchSettings{
			Namespaces: s.getStringSlice(keyNamespaces, defaults.Search.Namespaces),
		},
		Log: domain.LogSettings{
			Level: s.getLogLevel(defaults.Log.Level),
		},
	}

	return settings, nil
}

// Set parses value for key and persists it.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	var typed any
	switch key {
	case keySearchURL, keyAPIURL, keyOCRURL, keyViewerBaseURL:
		if err := validateURL(value); err != nil {
			return domain.NewValidationError(key, err.Error(), "Use an absolute http(s) URL.")
		}
		typed = strings.TrimRight(value, "/")
	case keyTimeout, keyBurst:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return domain.NewValidationError(key, fmt.Sprintf("must be a positive integer, got %q", value), "")
		}
		typed = int64(n)
	case keyMaxRetries:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return domain.NewValidationError(key, fmt.Sprintf("must be a non-negative integer, got %q", value), "")
		}
		typed = int64(n)
	case keyRatePerSecond:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return domain.NewValidationError(key, fmt.Sprintf("must be a positive number, got %q", value), "")
		}
		typed = f
	case keyNamespaces:
		ns := splitList(value)
		if len(ns) == 0 {
			return domain.NewValidationError(key, "at least one namespace is required",
				"Separate namespaces with commas, e.g. series,fileUnit.")
		}
		typed = ns
	case keyLogLevel:
		level := strings.ToLower(value)
		if !slices.Contains(logLevels, level) {
			return domain.NewValidationError(key, fmt.Sprintf("unknown level %q", value),
				"One of: "+strings.Join(logLevels, ", ")+".")
		}
		typed = level
	default:
		return domain.NewValidationError("key", fmt.Sprintf("unknown setting %q", key),
			"Known settings: "+strings.Join(settingKeys, ", ")+".")
	}

	if err := s.configStore.Set(key, typed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Lookup returns the effective value of key as display text.
func (s *SettingsService) Lookup(key string) (string, error) {
	settings, err := s.Get()
	if err != nil {
		return "", err
	}

	switch key {
	case keySearchURL:
		return settings.Gateway.SearchURL, nil
	case keyAPIURL:
		return settings.Gateway.APIURL, nil
	case keyOCRURL:
		return settings.Gateway.OCRURL, nil
	case keyTimeout:
		return strconv.Itoa(int(settings.Gateway.Timeout / time.Second)), nil
	case keyRatePerSecond:
		return strconv.FormatFloat(settings.Gateway.RatePerSecond, 'f', -1, 64), nil
	case keyBurst:
		return strconv.Itoa(settings.Gateway.Burst), nil
	case keyMaxRetries:
		return strconv.Itoa(settings.Gateway.MaxRetries), nil
	case keyViewerBaseURL:
		return settings.Viewer.BaseURL, nil
	case keyNamespaces:
		return strings.Join(settings.Search.Namespaces, ","), nil
	case keyLogLevel:
		return settings.Log.Level, nil
	default:
		return "", domain.NewValidationError("key", fmt.Sprintf("unknown setting %q", key),
			"Known settings: "+strings.Join(settingKeys, ", ")+".")
	}
}

// Keys returns every supported setting key.
func (s *SettingsService) Keys() []string {
	return slices.Clone(settingKeys)
}

// Validate checks the stored settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	urls := []struct {
		key, value string
	}{
		{keySearchURL, settings.Gateway.SearchURL},
		{keyAPIURL, settings.Gateway.APIURL},
		{keyOCRURL, settings.Gateway.OCRURL},
		{keyViewerBaseURL, settings.Viewer.BaseURL},
	}
	for _, u := range urls {
		if err := validateURL(u.value); err != nil {
			return fmt.Errorf("%s: %w", u.key, err)
		}
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

// getCount is getInt for keys where zero is meaningful.
func (s *SettingsService) getCount(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetInt(key)
	if val < 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Second
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getLogLevel(defaultVal string) string {
	val := strings.ToLower(s.configStore.GetString(keyLogLevel))
	if !slices.Contains(logLevels, val) {
		return defaultVal
	}
	return val
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid URL %q: must be absolute http(s)", raw)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
