/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: cache.go
Description: Optional fingerprint-keyed cache of schema inference and fact
encoding results. Purely additive: the pipeline is correct without it. Keys are
content hashes of the serialized table, so concurrent invocations share only
immutable derived values.
*/

package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"

	"github.com/evcruz3/draco-guide/pkg/facts"
	"github.com/evcruz3/draco-guide/pkg/interfaces"
)

// encodingCache stores immutable (Schema, FactSet) pairs by table
// fingerprint
type encodingCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	schema  *interfaces.Schema
	factSet *facts.FactSet
}

func newEncodingCache() *encodingCache {
	return &encodingCache{entries: make(map[string]cacheEntry)}
}

// fingerprint hashes the canonical JSON serialization of the table.
// encoding/json sorts map keys, so the fingerprint is deterministic.
func fingerprint(table interfaces.Table) (string, bool) {
	data, err := json.Marshal(table)
	if err != nil {
		return "", false // Unserializable tables simply skip the cache
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), true
}

func (c *encodingCache) get(key string) (*interfaces.Schema, *facts.FactSet, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, nil, false
	}
	return entry.schema, entry.factSet, true
}

func (c *encodingCache) put(key string, s *interfaces.Schema, fs *facts.FactSet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{schema: s, factSet: fs}
}
