package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseIntervalDuration(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"15m", 15 * time.Minute, true},
		{"1h", time.Hour, true},
		{"1d", 24 * time.Hour, true},
		{"2w", 14 * 24 * time.Hour, true},
		{" 1H ", time.Hour, true},
		{"", 0, false},
		{"m", 0, false},
		{"0h", 0, false},
		{"-1h", 0, false},
		{"1x", 0, false},
		{"1.5h", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseIntervalDuration(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRunEvery_ImmediateFirstRunAndCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	runs := 0
	RunEvery(ctx, time.Hour, func(context.Context) {
		runs++
		cancel()
	})
	assert.Equal(t, 1, runs)
}

func TestRunEvery_Ticks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runs := make(chan struct{}, 10)
	go RunEvery(ctx, 5*time.Millisecond, func(context.Context) {
		runs <- struct{}{}
	})
	for i := 0; i < 3; i++ {
		select {
		case <-runs:
		case <-time.After(time.Second):
			t.Fatal("scheduler stopped ticking")
		}
	}
}
