package depot

import "reflect"

// Cell guards a single value with run-time borrow checking. Many shared
// borrows or exactly one exclusive borrow may be live at a time. The flag is
// atomic, so a Cell may be shared across goroutines; acquisition never
// blocks, a conflicting borrow fails immediately.
type Cell[T any] struct {
	value T
	flag  borrowFlag
}

// Borrow acquires a shared borrow, panicking on conflict. Use TryBorrow to
// handle conflicts gracefully.
func (c *Cell[T]) Borrow() Ref[T] {
	ref, err := c.TryBorrow()
	if err != nil {
		panic(err)
	}
	return ref
}

// TryBorrow acquires a shared borrow. It fails with AlreadyExclusiveError if
// an exclusive borrow is outstanding.
func (c *Cell[T]) TryBorrow() (Ref[T], error) {
	if !c.flag.acquireShared() {
		return Ref[T]{}, AlreadyExclusiveError{Type: reflect.TypeFor[T]()}
	}
	return Ref[T]{flag: &c.flag, value: &c.value}, nil
}

// BorrowMut acquires an exclusive borrow, panicking on conflict. Use
// TryBorrowMut to handle conflicts gracefully.
func (c *Cell[T]) BorrowMut() RefMut[T] {
	ref, err := c.TryBorrowMut()
	if err != nil {
		panic(err)
	}
	return ref
}

// TryBorrowMut acquires an exclusive borrow. It fails with
// AlreadySharedError if any borrow is outstanding.
func (c *Cell[T]) TryBorrowMut() (RefMut[T], error) {
	if !c.flag.acquireExclusive() {
		return RefMut[T]{}, AlreadySharedError{Type: reflect.TypeFor[T]()}
	}
	return RefMut[T]{flag: &c.flag, value: &c.value}, nil
}
