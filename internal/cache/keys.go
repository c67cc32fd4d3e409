package cache

import "strings"

const (
	GlobalKeyPrefix = "trivia"
)

// GenerateCacheKey joins prefix, service, object type and identifier with ":".
// Optional params are joined by "_" and appended as one more segment.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return baseKey + ":" + strings.Join(paramsKey, "_")
	}
	return baseKey
}
