// Package cellmap implements a table of named cells. Each entry is a
// *cell.Cell that can be handed out to any number of holders; the table only
// owns the cells, never a second copy of their values.
package cellmap

import (
	"fmt"

	"github.com/dolthub/swiss"
	"github.com/mna/movecell/cell"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// A Map maps keys to cells. If you know the final number of entries, pass it
// to New to avoid rehashing. Like a cell, a Map is not safe for concurrent use.
type Map[K comparable, V any] struct {
	m *swiss.Map[K, *cell.Cell[V]]
}

// New returns a map with initial capacity for at least size entries.
func New[K comparable, V any](size int) *Map[K, V] {
	if size < 0 {
		size = 0
	}
	return &Map[K, V]{m: swiss.NewMap[K, *cell.Cell[V]](uint32(size))}
}

func (m *Map[K, V]) String() string { return fmt.Sprintf("cellmap(%p)", m) }

// Len returns the number of cells in the map.
func (m *Map[K, V]) Len() int { return m.m.Count() }

// Cell returns the cell stored under k and true, or nil and false if there is
// none.
func (m *Map[K, V]) Cell(k K) (*cell.Cell[V], bool) {
	return m.m.Get(k)
}

// Insert stores c under k and returns the cell previously stored there, if
// any. The previous cell is left untouched, holders of it keep a valid cell.
func (m *Map[K, V]) Insert(k K, c *cell.Cell[V]) (prev *cell.Cell[V], ok bool) {
	prev, ok = m.m.Get(k)
	m.m.Put(k, c)
	return prev, ok
}

// Replace stores v in the cell under k and returns the previous value and
// true. If there is no cell under k, a new one is created holding v and the
// zero value and false are returned.
func (m *Map[K, V]) Replace(k K, v V) (V, bool) {
	if c, ok := m.m.Get(k); ok {
		return c.Replace(v), true
	}
	m.m.Put(k, cell.New(v))

	var zero V
	return zero, false
}

// Take calls Take on the cell under k. It returns false if there is no such
// cell.
func (m *Map[K, V]) Take(k K) (V, bool) {
	c, ok := m.m.Get(k)
	if !ok {
		var zero V
		return zero, false
	}
	return c.Take(), true
}

// Remove deletes the cell under k from the map, consumes it and returns its
// value. Holders of the removed cell can no longer use it.
func (m *Map[K, V]) Remove(k K) (V, bool) {
	c, ok := m.m.Get(k)
	if !ok {
		var zero V
		return zero, false
	}
	// consume first: if the cell is in use, the entry must stay in place
	v := c.IntoInner()
	m.m.Delete(k)
	return v, true
}

// Range calls fn for each key and cell, in unspecified order, until fn returns
// false. The map must not be modified during Range.
func (m *Map[K, V]) Range(fn func(k K, c *cell.Cell[V]) bool) {
	m.m.Iter(func(k K, c *cell.Cell[V]) bool {
		return !fn(k, c)
	})
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[K constraints.Ordered, V any](m *Map[K, V]) []K {
	keys := make([]K, 0, m.Len())
	m.Range(func(k K, _ *cell.Cell[V]) bool {
		keys = append(keys, k)
		return true
	})
	slices.Sort(keys)
	return keys
}
