package depot

import (
	"reflect"
	"unsafe"
)

// ErasedBuffer is a growable buffer whose element type is fixed at
// construction but not carried by the buffer's own type, letting containers
// hold buffers of differing element types without boxing each value.
//
// Caller contract: the type parameter passed to BufferPush, BufferExtend and
// BufferValues must be the type the buffer was constructed with. Violations
// are not detected at run time.
type ErasedBuffer struct {
	data     unsafe.Pointer
	len      int
	cap      int
	elemSize uintptr
	elemType reflect.Type

	// backing pins the current allocation. It is a typed slice so the
	// collector scans pointers stored in elements.
	backing reflect.Value
}

// Len returns the number of queued elements.
func (b *ErasedBuffer) Len() int {
	return b.len
}

// Cap returns the element capacity of the current allocation.
func (b *ErasedBuffer) Cap() int {
	return b.cap
}

// Clear resets the length to zero. Memory is kept for reuse and elements are
// not torn down; anything they reference stays reachable until overwritten
// by later pushes or dropped with the buffer.
func (b *ErasedBuffer) Clear() {
	b.len = 0
}

// grow reallocates to hold at least need elements, doubling the current
// capacity when that is larger.
func (b *ErasedBuffer) grow(need int) {
	newCap := max(need, 2*b.cap)
	if newCap < 4 {
		newCap = 4
	}
	next := reflect.MakeSlice(reflect.SliceOf(b.elemType), newCap, newCap)
	if b.len > 0 {
		reflect.Copy(next, b.backing.Slice(0, b.len))
	}
	b.backing = next
	b.data = next.UnsafePointer()
	b.cap = newCap
}

// BufferPush appends one value.
func BufferPush[T any](b *ErasedBuffer, value T) {
	if b.len == b.cap {
		b.grow(b.len + 1)
	}
	*(*T)(unsafe.Add(b.data, uintptr(b.len)*b.elemSize)) = value
	b.len++
}

// BufferExtend appends values in order.
func BufferExtend[T any](b *ErasedBuffer, values []T) {
	if len(values) == 0 {
		return
	}
	if b.len+len(values) > b.cap {
		b.grow(b.len + len(values))
	}
	dst := unsafe.Slice((*T)(b.data), b.cap)
	copy(dst[b.len:], values)
	b.len += len(values)
}

// BufferValues returns the queued elements in push order. The slice aliases
// the buffer's memory and is invalidated by the next push, clear or reuse.
func BufferValues[T any](b *ErasedBuffer) []T {
	if b.len == 0 {
		return nil
	}
	return unsafe.Slice((*T)(b.data), b.len)
}
