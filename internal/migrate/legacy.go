package migrate

import (
	"time"
)

// Legacy v1 collection names.
const (
	LegacyClients   = "clients"
	LegacyLocations = "locations"
	LegacyContracts = "contracts"
)

// Legacy contract kinds found in the v1 contracts collection.
const (
	legacyKindService       = "service"
	legacyKindEventPlanning = "event-planning"
)

// firstString returns the first present non-empty string among keys.
// Legacy documents are inconsistently cased, so callers pass every
// spelling that occurs in the wild.
func firstString(data map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := data[key].(string); ok && v != "" {
			return v
		}
	}

	return ""
}

func legacyInt64(data map[string]any, keys ...string) int64 {
	for _, key := range keys {
		switch v := data[key].(type) {
		case int64:
			return v
		case int:
			return int64(v)
		case float64:
			return int64(v)
		}
	}

	return 0
}

// legacyDate reads a date that legacy records store either as a real
// timestamp or as a string in one of two formats.
func legacyDate(data map[string]any, keys ...string) (time.Time, bool) {
	for _, key := range keys {
		switch v := data[key].(type) {
		case time.Time:
			return v, true
		case string:
			for _, layout := range []string{time.DateOnly, time.RFC3339} {
				if t, err := time.Parse(layout, v); err == nil {
					return t, true
				}
			}
		}
	}

	return time.Time{}, false
}

func legacyTimestamp(data map[string]any, key string, fallback time.Time) time.Time {
	if t, ok := legacyDate(data, key); ok {
		return t
	}

	return fallback
}
