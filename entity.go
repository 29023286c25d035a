package depot

// Entity identifies an entity across the world layer's shards. Index is
// unique within a shard, Shard selects the shard, and Generation increments
// when the world layer reuses an index, invalidating stale handles. At any
// instant an (Index, Generation) pair identifies at most one live entity.
type Entity struct {
	Index      uint32
	Shard      uint32
	Generation uint32
}
