package services

import "time"

// pause simulates the network round-trip of the original client API so
// consumers exercise their loading states. A zero duration disables it.
func pause(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
