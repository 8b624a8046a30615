package config

import (
	"io"
	"time"
)

// Config is the read side of the application configuration. Missing keys
// return the zero value of the requested type.
type Config interface {
	io.Closer

	// GetSecond reads an integer and returns it as a number of seconds.
	GetSecond(key string) time.Duration
	// GetMinute reads an integer and returns it as a number of minutes.
	GetMinute(key string) time.Duration

	GetInt(key string) int
	GetInt64(key string) int64
	GetFloat64(key string) float64
	GetBool(key string) bool
	GetString(key string) string

	// GetArray reads "a,b,c" and returns its trimmed, non-empty elements.
	// Native YAML sequences are accepted too.
	GetArray(key string) []string

	// GetMap reads "k1:v1,k2:v2".
	GetMap(key string) map[string]string
}
