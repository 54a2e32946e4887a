package memory

import (
	"context"
	"sync"
)

// table almacén genérico por id; guarda copias para que el llamador no comparta memoria.
type table[T any] struct {
	mu      sync.RWMutex
	rows    map[string]T
	order   []string
	idOf    func(*T) string
	cloneFn func(T) T
}

func newTable[T any](idOf func(*T) string) *table[T] {
	return &table[T]{rows: make(map[string]T), idOf: idOf, cloneFn: func(v T) T { return v }}
}

func (t *table[T]) create(_ context.Context, v *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.idOf(v)
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = t.cloneFn(*v)
	return nil
}

func (t *table[T]) get(_ context.Context, id string) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[id]
	if !ok {
		return nil, nil
	}
	out := t.cloneFn(v)
	return &out, nil
}

func (t *table[T]) update(_ context.Context, v *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.idOf(v)
	if _, ok := t.rows[id]; !ok {
		return nil
	}
	t.rows[id] = t.cloneFn(*v)
	return nil
}

func (t *table[T]) delete(_ context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return nil
	}
	delete(t.rows, id)
	for i, o := range t.order {
		if o == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

// list en orden de inserción, filtrado por keep (nil = todos).
func (t *table[T]) list(keep func(*T) bool) []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*T, 0, len(t.order))
	for _, id := range t.order {
		v := t.cloneFn(t.rows[id])
		if keep == nil || keep(&v) {
			out = append(out, &v)
		}
	}
	return out
}

// listReverse más recientes primero.
func (t *table[T]) listReverse(keep func(*T) bool) []*T {
	out := t.list(keep)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
