package api

import (
	"errors"
	"time"
)

const tickInterval = time.Second

// SessionTicker drives the countdown while a session is running. It fires
// once a second and leaves deciding whether anything needs to happen to
// the tick callback.
type SessionTicker struct {
	tick func()
}

func NewSessionTicker(tick func()) (*SessionTicker, error) {
	if tick == nil {
		return nil, errors.New("no tick callback provided for session ticker")
	}

	return &SessionTicker{
		tick: tick,
	}, nil
}

func (s *SessionTicker) Run() {
	ticker := time.NewTicker(tickInterval)

	for range ticker.C {
		s.tick()
	}
}
