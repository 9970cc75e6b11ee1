package cache

import "strings"

const (
	GlobalKeyPrefix = "lingodeck"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// LessonFlashcardsKey is the cache key for a lesson's flashcard list.
func LessonFlashcardsKey(lessonID string) string {
	return GenerateCacheKey("lesson", "flashcards", lessonID)
}

// AuthStateKey is the cache key for a pending OAuth state token.
func AuthStateKey(state string) string {
	return GenerateCacheKey("auth", "state", state)
}
