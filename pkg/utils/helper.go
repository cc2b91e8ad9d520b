package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// GenerateState membuat random state string untuk OAuth flow
func GenerateState() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "state"
	}
	return hex.EncodeToString(buf)
}
