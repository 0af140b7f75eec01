package engine

import (
	"sync"
	"sync/atomic"
)

// Number of shards for table locking (power of 2 for fast modulo)
const evalShardCount = 256
const evalShardMask = evalShardCount - 1

// EvalEntry stores one cached static evaluation.
type EvalEntry struct {
	Key   uint64 // Position hash mixed with the weights fingerprint
	Score int32
	Valid bool
}

// EvalTable caches static evaluations so that transpositions reached by
// different search branches are scored once.
// Uses sharded locking so parallel workers can share it.
type EvalTable struct {
	entries []EvalEntry
	shards  [evalShardCount]sync.RWMutex
	size    uint64
	mask    uint64

	// Statistics (atomic for thread-safety)
	hits   atomic.Uint64
	probes atomic.Uint64
}

// NewEvalTable creates an evaluation cache with the given size in MB.
func NewEvalTable(sizeMB int) *EvalTable {
	entrySize := uint64(16)
	numEntries := (uint64(sizeMB) * 1024 * 1024) / entrySize
	if numEntries < evalShardCount {
		numEntries = evalShardCount
	}

	// Round down to power of 2 for fast modulo
	numEntries = roundDownToPowerOf2(numEntries)

	return &EvalTable{
		entries: make([]EvalEntry, numEntries),
		size:    numEntries,
		mask:    numEntries - 1,
	}
}

// roundDownToPowerOf2 rounds n down to the nearest power of 2.
func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe looks up a cached score.
func (et *EvalTable) Probe(key uint64) (int, bool) {
	et.probes.Add(1)

	idx := key & et.mask
	shard := idx & evalShardMask

	et.shards[shard].RLock()
	entry := et.entries[idx]
	et.shards[shard].RUnlock()

	if entry.Valid && entry.Key == key {
		et.hits.Add(1)
		return int(entry.Score), true
	}
	return 0, false
}

// Store saves a score, always replacing the slot.
func (et *EvalTable) Store(key uint64, score int) {
	idx := key & et.mask
	shard := idx & evalShardMask

	et.shards[shard].Lock()
	et.entries[idx] = EvalEntry{Key: key, Score: int32(score), Valid: true}
	et.shards[shard].Unlock()
}

// Clear empties the table and resets statistics.
func (et *EvalTable) Clear() {
	for s := range et.shards {
		et.shards[s].Lock()
	}
	for i := range et.entries {
		et.entries[i] = EvalEntry{}
	}
	for s := range et.shards {
		et.shards[s].Unlock()
	}
	et.hits.Store(0)
	et.probes.Store(0)
}

// HitRate returns the cache hit rate as a percentage.
func (et *EvalTable) HitRate() float64 {
	probes := et.probes.Load()
	if probes == 0 {
		return 0
	}
	return float64(et.hits.Load()) / float64(probes) * 100
}

// Size returns the number of entries in the table.
func (et *EvalTable) Size() uint64 {
	return et.size
}
