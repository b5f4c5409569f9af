package twitter

import "time"

// SetClock replaces the timestamp and nonce sources so signatures are reproducible.
func (a *OAuth) SetClock(now func() time.Time, nonce func() (string, error)) {
	a.now = now
	a.nonce = nonce
}
