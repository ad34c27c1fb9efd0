package session

import "time"

// DelayFunc computes the pause before a turn is revealed, from the turn's
// content length and whether the round is a follow-up.
type DelayFunc func(contentLen int, followUp bool) time.Duration

// PlaybackDelay is the default reveal pacing. First-round turns scale up
// with length and cap at 2s; follow-up turns pace faster with a 1s floor so
// injected questions feel answered promptly.
func PlaybackDelay(contentLen int, followUp bool) time.Duration {
	if followUp {
		d := 800*time.Millisecond + time.Duration(contentLen)*4*time.Millisecond
		if d < time.Second {
			return time.Second
		}
		return d
	}
	d := 500*time.Millisecond + time.Duration(contentLen)*5*time.Millisecond
	if d > 2*time.Second {
		return 2 * time.Second
	}
	return d
}
