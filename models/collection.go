// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Collection is an immutable, insertion-ordered sequence of records keyed by
// [Record.RecordID]. Every mutating method returns a new *Collection and leaves
// the receiver untouched, so two states of the same collection can be compared
// by pointer to detect "nothing changed".
//
// Records with an empty id are dropped, and a later record with an id already
// present replaces the earlier one in place.
type Collection[T Record] struct {
	items []T
	index map[string]int
}

// NewCollection builds a collection from items, preserving their order.
func NewCollection[T Record](items ...T) *Collection[T] {
	c := &Collection[T]{
		items: make([]T, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for _, item := range items {
		c.put(item)
	}
	return c
}

func (c *Collection[T]) put(item T) {
	id := item.RecordID()
	if id == "" {
		return
	}
	if pos, ok := c.index[id]; ok {
		c.items[pos] = item
		return
	}
	c.index[id] = len(c.items)
	c.items = append(c.items, item)
}

func (c *Collection[T]) clone() *Collection[T] {
	out := &Collection[T]{
		items: make([]T, len(c.items), len(c.items)+1),
		index: make(map[string]int, len(c.index)+1),
	}
	copy(out.items, c.items)
	for k, v := range c.index {
		out.index[k] = v
	}
	return out
}

// Len returns the number of records. A nil collection is empty.
func (c *Collection[T]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Get returns the record with the given id.
func (c *Collection[T]) Get(id string) (T, bool) {
	var zero T
	if c == nil {
		return zero, false
	}
	pos, ok := c.index[id]
	if !ok {
		return zero, false
	}
	return c.items[pos], true
}

// Items returns a copy of the records in insertion order.
func (c *Collection[T]) Items() []T {
	if c == nil {
		return nil
	}
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// IDs returns record ids in insertion order.
func (c *Collection[T]) IDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, len(c.items))
	for i, item := range c.items {
		ids[i] = item.RecordID()
	}
	return ids
}

// Upsert returns a new collection with items inserted or replaced by id.
func (c *Collection[T]) Upsert(items ...T) *Collection[T] {
	if c == nil {
		return NewCollection(items...)
	}
	out := c.clone()
	for _, item := range items {
		out.put(item)
	}
	return out
}

// Remove returns a new collection without the given ids. Missing ids are
// ignored.
func (c *Collection[T]) Remove(ids ...string) *Collection[T] {
	if c == nil {
		return NewCollection[T]()
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if _, ok := drop[item.RecordID()]; !ok {
			kept = append(kept, item)
		}
	}
	return NewCollection(kept...)
}
