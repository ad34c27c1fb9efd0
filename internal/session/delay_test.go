package session

import (
	"testing"
	"time"
)

func TestPlaybackDelay(t *testing.T) {
	tests := []struct {
		name       string
		contentLen int
		followUp   bool
		want       time.Duration
	}{
		{"first round short turn", 20, false, 600 * time.Millisecond},
		{"first round scales with length", 100, false, 1000 * time.Millisecond},
		{"first round capped at two seconds", 1000, false, 2 * time.Second},
		{"first round cap boundary", 300, false, 2 * time.Second},
		{"follow-up short turn floors at one second", 10, true, time.Second},
		{"follow-up floor boundary", 50, true, time.Second},
		{"follow-up scales past the floor", 100, true, 1200 * time.Millisecond},
		{"empty first-round turn", 0, false, 500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlaybackDelay(tt.contentLen, tt.followUp); got != tt.want {
				t.Errorf("PlaybackDelay(%d, %v) = %v, want %v", tt.contentLen, tt.followUp, got, tt.want)
			}
		})
	}
}
