package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key for a user's active login session.
func (r *CacheKeyStruct) UserSessionKey(userID int) string {
	return fmt.Sprintf("login:%d", userID)
}

// OverviewKey returns the cache key for the allocation status overview of a session.
func (r *CacheKeyStruct) OverviewKey(sessionID int) string {
	return fmt.Sprintf("overview:session:%d", sessionID)
}

// SemesterStatsKey returns the cache key for a session's aggregate allocation stats.
func (r *CacheKeyStruct) SemesterStatsKey(sessionID int) string {
	return fmt.Sprintf("overview:session:%d:stats", sessionID)
}

// UMISClassOptionsKey returns the cache key for UMIS class-option reference data.
func (r *CacheKeyStruct) UMISClassOptionsKey() string {
	return "umis:class_options"
}

var CacheKey = NewCacheKeyStruct()
