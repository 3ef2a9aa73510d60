package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")

	// ErrAchievementNotUnlocked is returned when an unlock call modified
	// nothing. The storage layer cannot tell a missing user apart from an
	// already-unlocked achievement here, so the two cases share one error.
	ErrAchievementNotUnlocked = errors.New("user not found or achievement already unlocked")

	// Achievement catalog errors
	ErrAchievementNotFound = errors.New("achievement not found")
	ErrAchievementExists   = errors.New("achievement already exists")
)
