package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	b := NewBreaker("binance", 3, time.Hour)
	assert.Equal(t, StateClosed, b.State())

	b.Failure()
	b.Failure()
	assert.True(t, b.Allow())

	b.Failure()
	assert.Equal(t, StateOpen, b.State())
	assert.False(t, b.Allow())
}

func TestBreaker_SuccessResetsCount(t *testing.T) {
	b := NewBreaker("gate", 2, time.Hour)
	b.Failure()
	b.Success()
	b.Failure()
	assert.Equal(t, StateClosed, b.State())
	assert.True(t, b.Allow())
}

func TestBreaker_HalfOpenProbe(t *testing.T) {
	b := NewBreaker("gate", 1, time.Millisecond)
	b.Failure()
	assert.False(t, b.Allow())

	time.Sleep(5 * time.Millisecond)
	assert.True(t, b.Allow())
	assert.Equal(t, StateHalfOpen, b.State())

	// A failed probe trips straight back to open.
	b.Failure()
	assert.Equal(t, StateOpen, b.State())
	assert.False(t, b.Allow())
}

func TestBreaker_DefaultThreshold(t *testing.T) {
	b := NewBreaker("kraken", 0, time.Hour)
	b.Failure()
	b.Failure()
	assert.True(t, b.Allow())
	b.Failure()
	assert.False(t, b.Allow())
}
