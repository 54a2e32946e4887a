package memory

import (
	"context"
	"sync"
	"time"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/ports"
)

var _ ports.Locker = (*Locker)(nil)

// Locker lock en proceso con vencimiento; sirve cuando no hay Redis configurado.
type Locker struct {
	mu    sync.Mutex
	held  map[string]time.Time
	nowFn func() time.Time
}

func NewLocker() *Locker {
	return &Locker{held: make(map[string]time.Time), nowFn: time.Now}
}

func (l *Locker) Acquire(_ context.Context, key string, ttl time.Duration) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.nowFn()
	if exp, ok := l.held[key]; ok && now.Before(exp) {
		return nil, false, nil
	}
	exp := now.Add(ttl)
	l.held[key] = exp
	release := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.held[key].Equal(exp) {
			delete(l.held, key)
		}
	}
	return release, true, nil
}
