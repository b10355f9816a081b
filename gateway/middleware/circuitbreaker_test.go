package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCircuitBreaker_OpensAfterMaxFailures(t *testing.T) {
	cb := NewCircuitBreaker("backoffice", 3, 30*time.Second)

	assert.Equal(t, StateClosed, cb.GetState())

	for i := 0; i < 3; i++ {
		assert.True(t, cb.Allow())
		cb.RecordResult(true)
	}

	assert.Equal(t, StateOpen, cb.GetState())
	assert.False(t, cb.Allow())
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker("backoffice", 3, 30*time.Second)

	cb.RecordResult(true)
	cb.RecordResult(true)
	cb.RecordResult(false)
	cb.RecordResult(true)
	cb.RecordResult(true)

	// Never saw three consecutive failures
	assert.Equal(t, StateClosed, cb.GetState())
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb := NewCircuitBreaker("backoffice", 1, 10*time.Millisecond)

	cb.RecordResult(true)
	assert.Equal(t, StateOpen, cb.GetState())
	assert.False(t, cb.Allow())

	time.Sleep(20 * time.Millisecond)

	// Timeout elapsed: probe requests are allowed through
	assert.True(t, cb.Allow())
	assert.Equal(t, StateHalfOpen, cb.GetState())

	// Three successes close the circuit again
	cb.RecordResult(false)
	cb.RecordResult(false)
	cb.RecordResult(false)
	assert.Equal(t, StateClosed, cb.GetState())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb := NewCircuitBreaker("backoffice", 1, 10*time.Millisecond)

	cb.RecordResult(true)
	time.Sleep(20 * time.Millisecond)
	assert.True(t, cb.Allow())

	cb.RecordResult(true)
	assert.Equal(t, StateOpen, cb.GetState())
	assert.False(t, cb.Allow())
}

func TestCircuitBreakerManager(t *testing.T) {
	manager := NewCircuitBreakerManager()

	a := manager.GetOrCreate("backoffice")
	b := manager.GetOrCreate("backoffice")
	assert.Same(t, a, b)

	stats := manager.GetAllStats()
	assert.Contains(t, stats, "backoffice")
}

func TestDetermineServiceFromPath(t *testing.T) {
	assert.Equal(t, "backoffice", determineServiceFromPath("/api/returns"))
	assert.Equal(t, "backoffice", determineServiceFromPath("/api/products/3"))
	assert.Equal(t, "backoffice", determineServiceFromPath("/health"))
	assert.Equal(t, "", determineServiceFromPath("/metrics"))
	assert.Equal(t, "", determineServiceFromPath("/"))
}
