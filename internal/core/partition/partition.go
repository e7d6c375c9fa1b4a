package partition

import "hash/fnv"

// For returns the shard for key among n shards.
// Stable and deterministic: the same key always maps to the same shard.
// Uses FNV-32a (stdlib, fast, well-distributed).
func For(key string, n int) int {
	if n <= 1 {
		return 0
	}
	h := fnv.New32a()
	h.Write([]byte(key))
	return int(h.Sum32() % uint32(n))
}
