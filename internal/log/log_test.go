package log

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
		{"  error  ", LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestSetLevelFilters(t *testing.T) {
	defer SetLevel(LevelInfo)

	SetLevel(LevelWarn)
	assert.False(t, enabled(LevelDebug))
	assert.False(t, enabled(LevelInfo))
	assert.True(t, enabled(LevelWarn))
	assert.True(t, enabled(LevelError))

	SetLevel(LevelDebug)
	assert.True(t, enabled(LevelDebug))
}

// The level may be changed while other goroutines are logging; meaningful
// under the race detector.
func TestSetLevelConcurrentWithLogging(t *testing.T) {
	defer SetLevel(LevelInfo)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetLevel(LevelDebug)
		}()
		go func() {
			defer wg.Done()
			Info("level change during logging", "n", 1)
		}()
	}
	wg.Wait()
}
