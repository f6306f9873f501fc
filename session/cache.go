// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"sort"
	"strings"
	"sync"
)

// ThreadCache is the in-memory store of thread metadata: an id→Thread
// map plus a name→id index for resolution. Entries are populated lazily
// on first reference and overwritten whenever fresher data arrives from
// the backend; nothing is evicted before the session ends.
//
// Push events call Put from the listen goroutine while a command may be
// reading, so all access goes through an RWMutex.
type ThreadCache struct {
	mu       sync.RWMutex
	byID     map[string]Thread
	idByName map[string]string
}

// NewThreadCache creates an empty cache.
func NewThreadCache() *ThreadCache {
	return &ThreadCache{
		byID:     make(map[string]Thread),
		idByName: make(map[string]string),
	}
}

// Put stores or overwrites the thread keyed by its id. If the thread
// has a name, the name→id index is (re)written for that exact string.
// A rename removes the previous name's index entry so the cache
// reflects only the latest write for the id. Total over well-formed
// input — there are no error conditions.
func (c *ThreadCache) Put(thread Thread) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if previous, ok := c.byID[thread.ID]; ok && previous.Name != "" && previous.Name != thread.Name {
		delete(c.idByName, previous.Name)
	}
	c.byID[thread.ID] = thread
	if thread.Name != "" {
		c.idByName[thread.Name] = thread.ID
	}
}

// ByID returns the cached thread for an exact id. Absence is a normal
// outcome — callers fall through to a backend fetch.
func (c *ThreadCache) ByID(id string) (Thread, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	thread, ok := c.byID[id]
	return thread, ok
}

// IDByName returns the id mapped to the exact name string.
func (c *ThreadCache) IDByName(name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.idByName[name]
	return id, ok
}

// ResolveName scans the name index for names whose lowercase form
// starts with the lowercased input and returns the id of the best
// match. Order is deterministic: most recently active thread first,
// ties broken by lexicographic name. (The map's iteration order must
// never decide a resolution.)
func (c *ThreadCache) ResolveName(input string) (string, bool) {
	prefix := strings.ToLower(input)

	c.mu.RLock()
	defer c.mu.RUnlock()

	var candidates []string
	for name := range c.idByName {
		if strings.HasPrefix(strings.ToLower(name), prefix) {
			candidates = append(candidates, name)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}

	sort.Slice(candidates, func(i, j int) bool {
		a := c.byID[c.idByName[candidates[i]]]
		b := c.byID[c.idByName[candidates[j]]]
		if a.LastActivityTS != b.LastActivityTS {
			return a.LastActivityTS > b.LastActivityTS
		}
		return candidates[i] < candidates[j]
	})
	return c.idByName[candidates[0]], true
}

// Threads returns a snapshot of all cached threads, most recently
// active first.
func (c *ThreadCache) Threads() []Thread {
	c.mu.RLock()
	threads := make([]Thread, 0, len(c.byID))
	for _, thread := range c.byID {
		threads = append(threads, thread)
	}
	c.mu.RUnlock()

	sort.Slice(threads, func(i, j int) bool {
		if threads[i].LastActivityTS != threads[j].LastActivityTS {
			return threads[i].LastActivityTS > threads[j].LastActivityTS
		}
		return threads[i].ID < threads[j].ID
	})
	return threads
}

// Len returns the number of cached threads.
func (c *ThreadCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byID)
}
