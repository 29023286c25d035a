package depot

// IndexAllocator recycles entity indices for the world layer. Freed indices
// are reused oldest-first; when none are free a monotonic counter supplies a
// new index. The allocator does not detect double frees or frees of indices
// it never handed out; that is the caller's contract. Generation bumping on
// reuse is the world layer's job.
type IndexAllocator struct {
	free []uint32
	head int
	next uint32
}

// Alloc returns the oldest freed index if any exist, otherwise a fresh one.
func (a *IndexAllocator) Alloc() uint32 {
	if a.head < len(a.free) {
		index := a.free[a.head]
		a.head++
		if a.head == len(a.free) {
			a.free = a.free[:0]
			a.head = 0
		}
		return index
	}
	index := a.next
	a.next++
	return index
}

// Free queues an index for reuse.
func (a *IndexAllocator) Free(index uint32) {
	a.free = append(a.free, index)
}

// Allocated returns the number of indices currently handed out.
func (a *IndexAllocator) Allocated() int {
	return int(a.next) - (len(a.free) - a.head)
}
