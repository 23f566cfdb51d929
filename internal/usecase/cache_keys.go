package usecase

import (
	"strings"

	"github.com/google/uuid"
)

const (
	listBadges     = "badges"
	listPriorities = "priorities"
)

func userListCacheKey(userID uuid.UUID, list string) string {
	return "dash:" + userID.String() + ":" + normalizeListName(list)
}

func PrioritiesCacheKey(userID uuid.UUID) string {
	return userListCacheKey(userID, listPriorities)
}

// UserCachePattern matches every cached list of one user. Lock keys are
// outside it.
func UserCachePattern(userID uuid.UUID) string {
	return "dash:" + userID.String() + ":*"
}

// OrderLockKey guards concurrent order writes for one user's list.
func OrderLockKey(userID uuid.UUID, list string) string {
	return "dash:lock:" + normalizeListName(list) + ":" + userID.String()
}

func normalizeListName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
