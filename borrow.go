package depot

import "sync/atomic"

// exclusiveBit marks the flag as exclusively borrowed. The lower bits count
// live shared borrows.
const exclusiveBit uint32 = 1 << 31

// borrowFlag tracks borrow state for one value: 0 means free, 1..N means N
// shared borrows, exclusiveBit means one exclusive borrow. Shared and
// exclusive borrows never coexist.
type borrowFlag struct {
	bits atomic.Uint32
}

// acquireShared increments the flag, then inspects the exclusive bit. The
// increment happens even when an exclusive borrow is outstanding; such a
// phantom increment is cleared when the exclusive release stores zero, so a
// failed acquire must not decrement.
func (f *borrowFlag) acquireShared() bool {
	return f.bits.Add(1)&exclusiveBit == 0
}

func (f *borrowFlag) releaseShared() {
	f.bits.Add(^uint32(0))
}

// acquireExclusive succeeds only if no borrows of either kind are
// outstanding.
func (f *borrowFlag) acquireExclusive() bool {
	return f.bits.CompareAndSwap(0, exclusiveBit)
}

// releaseExclusive stores zero rather than clearing the bit, wiping any
// phantom increments accumulated by failed shared acquires.
func (f *borrowFlag) releaseExclusive() {
	f.bits.Store(0)
}

// Ref is a guard over a shared borrow. The borrow lasts until Release is
// called exactly once; pair acquisition with a deferred Release so the
// borrow ends on every exit path. The pointed-to value must not be mutated
// through a Ref.
type Ref[T any] struct {
	flag  *borrowFlag
	value *T
}

// Get returns the borrowed value.
func (r Ref[T]) Get() *T {
	return r.value
}

// Release ends the borrow.
func (r Ref[T]) Release() {
	r.flag.releaseShared()
}

// RefMut is a guard over an exclusive borrow. The borrow lasts until Release
// is called exactly once; pair acquisition with a deferred Release so the
// borrow ends on every exit path.
type RefMut[T any] struct {
	flag  *borrowFlag
	value *T
}

// Get returns the borrowed value.
func (r RefMut[T]) Get() *T {
	return r.value
}

// Release ends the borrow.
func (r RefMut[T]) Release() {
	r.flag.releaseExclusive()
}
