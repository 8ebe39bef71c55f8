package domain

import "slices"

// Queue is a priority container that keeps its items unsorted and caches the
// position of the best one. Ranks may change after items are pushed; callers
// signal that with Update and the next Peek or Pop rescans the items.
type Queue[T any] struct {
	items   []T
	compare func(a, b T) int
	best    int
	dirty   bool
}

// NewQueue creates a queue ordered by compare, where a positive result means
// a ranks above b.
func NewQueue[T any](compare func(a, b T) int) *Queue[T] {
	return &Queue[T]{compare: compare}
}

// Push adds an item. The cached best is kept when it can be updated with a
// single comparison.
func (q *Queue[T]) Push(item T) {
	q.items = append(q.items, item)

	switch {
	case len(q.items) == 1:
		q.best = 0
		q.dirty = false
	case !q.dirty && q.compare(item, q.items[q.best]) > 0:
		q.best = len(q.items) - 1
	}
}

// Peek returns the best item without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}

	q.refresh()

	return q.items[q.best], true
}

// Pop removes and returns the best item.
func (q *Queue[T]) Pop() (T, bool) {
	item, ok := q.Peek()
	if !ok {
		return item, false
	}

	q.items = slices.Delete(q.items, q.best, q.best+1)
	q.dirty = true

	return item, true
}

// Update invalidates the cached best.
func (q *Queue[T]) Update() {
	q.dirty = true
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	return len(q.items)
}

// Items returns the queued items in insertion order.
func (q *Queue[T]) Items() []T {
	return slices.Clone(q.items)
}

// Sorted returns the items best first without changing the queue.
func (q *Queue[T]) Sorted() []T {
	out := slices.Clone(q.items)
	slices.SortStableFunc(out, func(a, b T) int {
		return q.compare(b, a)
	})

	return out
}

func (q *Queue[T]) refresh() {
	if !q.dirty {
		return
	}

	q.best = 0
	for i := 1; i < len(q.items); i++ {
		if q.compare(q.items[i], q.items[q.best]) > 0 {
			q.best = i
		}
	}

	q.dirty = false
}
