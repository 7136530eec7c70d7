package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key for a candidate's login session
func (r *CacheKeyStruct) UserSessionKey(userID int) string {
	return fmt.Sprintf("login:%d", userID)
}

// QuestionSetKey returns the cache key for a test's sanitized question payload
func (r *CacheKeyStruct) QuestionSetKey(testType string) string {
	return fmt.Sprintf("test:%s:questions", testType)
}

// TestSessionStartKey returns the cache key for a candidate's timed-test start
func (r *CacheKeyStruct) TestSessionStartKey(userID int, testType string) string {
	return fmt.Sprintf("user:%d:test:%s:session_start", userID, testType)
}

// TestProgressKey returns the cache key for a candidate's autosaved answers
func (r *CacheKeyStruct) TestProgressKey(userID int, testType string) string {
	return fmt.Sprintf("user:%d:test:%s:progress", userID, testType)
}

// AnswerBufferKey returns the cache key for a candidate's live answer hash
func (r *CacheKeyStruct) AnswerBufferKey(userID int, testType string) string {
	return fmt.Sprintf("user:%d:test:%s:answers", userID, testType)
}

var CacheKey = NewCacheKeyStruct()
