/**
 * @description
 * This file implements the generic JSON-file-backed collection that underpins
 * every record store in the service. One collection owns one backing file
 * containing a JSON array, mirrored into an in-memory map keyed by generated
 * id and loaded once at construction. Every mutation synchronously rewrites
 * the whole file — acceptable at prototype data volumes only.
 *
 * Durability is deliberately weak: a failed file write is logged and the
 * in-memory state is NOT rolled back, so memory can run ahead of disk until
 * the next successful write. Startup failures degrade to an empty collection
 * rather than aborting the process.
 *
 * @dependencies
 * - encoding/json, os, path/filepath, sync: Standard Go libraries.
 * - github.com/google/uuid: Random suffix for generated record ids.
 */

package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// collection is a file-backed keyed set of records. All operations take the
// collection mutex, so compound operations like findOrInsert are atomic with
// respect to other callers of the same collection.
type collection[T any] struct {
	mu    sync.RWMutex
	path  string
	label string
	idOf  func(T) string

	records map[string]T
	order   []string // insertion order, preserved across rewrites
}

// newCollection opens (or initializes) the backing file at path and loads it
// into memory. Read or parse failures leave the collection empty.
func newCollection[T any](path, label string, idOf func(T) string) *collection[T] {
	c := &collection[T]{
		path:    path,
		label:   label,
		idOf:    idOf,
		records: make(map[string]T),
	}
	c.load()
	return c
}

// newRecordID generates a record id as a millisecond timestamp joined with a
// short random suffix. Not monotonic beyond millisecond resolution; the
// suffix keeps same-millisecond ids from colliding.
func newRecordID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

func (c *collection[T]) load() {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("level=warn component=store collection=%s msg=\"backing file unreadable; starting empty\" path=%s err=%v", c.label, c.path, err)
		}
		return
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("level=warn component=store collection=%s msg=\"backing file unparsable; starting empty\" path=%s err=%v", c.label, c.path, err)
		return
	}

	for _, item := range items {
		id := c.idOf(item)
		if id == "" {
			continue
		}
		if _, exists := c.records[id]; !exists {
			c.order = append(c.order, id)
		}
		c.records[id] = item
	}
}

// persist rewrites the entire backing file from the in-memory state. Must be
// called with the write lock held. Failures are logged only; memory stays
// ahead of disk until the next successful write.
func (c *collection[T]) persist() {
	items := make([]T, 0, len(c.order))
	for _, id := range c.order {
		items = append(items, c.records[id])
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		log.Printf("level=error component=store collection=%s msg=\"marshal failed; disk state stale\" err=%v", c.label, err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		log.Printf("level=error component=store collection=%s msg=\"data dir unavailable; disk state stale\" path=%s err=%v", c.label, c.path, err)
		return
	}

	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		log.Printf("level=error component=store collection=%s msg=\"file write failed; disk state stale\" path=%s err=%v", c.label, c.path, err)
	}
}

// insert stores a new record and rewrites the file. The record must already
// carry its generated id.
func (c *collection[T]) insert(rec T) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.idOf(rec)
	if _, exists := c.records[id]; !exists {
		c.order = append(c.order, id)
	}
	c.records[id] = rec
	c.persist()
	return rec
}

// find returns the record with the given id by exact map lookup.
func (c *collection[T]) find(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.records[id]
	return rec, ok
}

// findFirst scans records in insertion order and returns the first one
// matching the predicate.
func (c *collection[T]) findFirst(pred func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.findFirstLocked(pred)
}

func (c *collection[T]) findFirstLocked(pred func(T) bool) (T, bool) {
	for _, id := range c.order {
		if rec := c.records[id]; pred(rec) {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

// findOrInsert returns the first record matching the predicate, or inserts
// the result of build. The scan and insert happen under one write lock, so
// concurrent callers cannot both create. The boolean reports creation.
func (c *collection[T]) findOrInsert(pred func(T) bool, build func() T) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.findFirstLocked(pred); ok {
		return existing, false
	}

	rec := build()
	id := c.idOf(rec)
	c.order = append(c.order, id)
	c.records[id] = rec
	c.persist()
	return rec, true
}

// all returns a snapshot of every record in insertion order.
func (c *collection[T]) all() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]T, 0, len(c.order))
	for _, id := range c.order {
		items = append(items, c.records[id])
	}
	return items
}

// update applies mutate to the stored record and rewrites the file. An
// unknown id is a no-op that leaves the backing file untouched.
func (c *collection[T]) update(id string, mutate func(T) T) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.records[id]
	if !ok {
		var zero T
		return zero, false
	}

	updated := mutate(rec)
	c.records[id] = updated
	c.persist()
	return updated, true
}

// remove deletes the record if present and rewrites the file only when a
// removal actually occurred.
func (c *collection[T]) remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.records[id]; !ok {
		return false
	}
	delete(c.records, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.persist()
	return true
}
