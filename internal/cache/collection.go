package cache

import "slices"

type entity interface {
	EntityID() string
}

// collection is an insertion-ordered sequence with an id index.
type collection[T entity] struct {
	items []T
	index map[string]int
	state State
	clone func(T) T
}

func newCollection[T entity](clone func(T) T) *collection[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &collection[T]{index: map[string]int{}, clone: clone}
}

// reset replaces the contents and marks the collection Loaded.
func (c *collection[T]) reset(items []T) {
	c.items = make([]T, 0, len(items))
	for _, v := range items {
		c.items = append(c.items, c.clone(v))
	}
	c.reindex()
	c.state = Loaded
}

func (c *collection[T]) reindex() {
	c.index = make(map[string]int, len(c.items))
	for i, v := range c.items {
		c.index[v.EntityID()] = i
	}
}

func (c *collection[T]) get(id string) (T, bool) {
	i, ok := c.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.clone(c.items[i]), true
}

func (c *collection[T]) add(v T) {
	c.items = append(c.items, c.clone(v))
	c.index[v.EntityID()] = len(c.items) - 1
}

// replace overwrites the element sharing v's id. Reports false if absent.
func (c *collection[T]) replace(v T) bool {
	i, ok := c.index[v.EntityID()]
	if !ok {
		return false
	}
	c.items[i] = c.clone(v)
	return true
}

// removeWhere evicts every element matching pred and returns how many went.
func (c *collection[T]) removeWhere(pred func(T) bool) int {
	before := len(c.items)
	c.items = slices.DeleteFunc(c.items, pred)
	removed := before - len(c.items)
	if removed > 0 {
		c.reindex()
	}
	return removed
}

func (c *collection[T]) remove(id string) bool {
	if _, ok := c.index[id]; !ok {
		return false
	}
	return c.removeWhere(func(v T) bool { return v.EntityID() == id }) > 0
}

// patch calls fn on every element in place and returns how many it changed.
func (c *collection[T]) patch(fn func(*T) bool) int {
	n := 0
	for i := range c.items {
		if fn(&c.items[i]) {
			n++
		}
	}
	return n
}

func (c *collection[T]) snapshot() []T {
	out := make([]T, 0, len(c.items))
	for _, v := range c.items {
		out = append(out, c.clone(v))
	}
	return out
}

func (c *collection[T]) filter(pred func(T) bool) []T {
	out := []T{}
	for _, v := range c.items {
		if pred(v) {
			out = append(out, c.clone(v))
		}
	}
	return out
}

// sortStable reorders with a stable sort and rebuilds the index.
func (c *collection[T]) sortStable(cmp func(a, b T) int) {
	slices.SortStableFunc(c.items, cmp)
	c.reindex()
}
