package service

import (
	"strconv"
	"sync"

	apperrors "stayease/pkg/errors"

	"golang.org/x/sync/singleflight"
)

// actionGuard allows one user action per booking at a time. A repeat of the
// action that is already running joins it; a different action is refused.
type actionGuard struct {
	mu     sync.Mutex
	active map[int64]string
	group  singleflight.Group
}

func newActionGuard() *actionGuard {
	return &actionGuard{active: make(map[int64]string)}
}

func (g *actionGuard) do(bookingID int64, action string, fn func() (any, error)) (any, error) {
	key := strconv.FormatInt(bookingID, 10) + ":" + action

	g.mu.Lock()
	if current, ok := g.active[bookingID]; ok && current != action {
		g.mu.Unlock()
		return nil, apperrors.InFlight(current)
	}
	g.active[bookingID] = action
	g.mu.Unlock()

	v, err, _ := g.group.Do(key, func() (any, error) {
		defer func() {
			g.mu.Lock()
			delete(g.active, bookingID)
			g.mu.Unlock()
		}()
		return fn()
	})
	return v, err
}

// collapse joins concurrent calls that share key without the per-booking check.
func (g *actionGuard) collapse(key string, fn func() (any, error)) (any, error) {
	v, err, _ := g.group.Do(key, fn)
	return v, err
}
