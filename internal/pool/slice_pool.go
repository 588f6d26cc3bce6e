package pool

import "sync"

// Slice pools for the per-batch buffers of the simulator.
var (
	complexSlicePool = sync.Pool{
		New: func() any { return &[]complex128{} },
	}
	byteSlicePool = sync.Pool{
		New: func() any { return &[]uint8{} },
	}
)

// GetComplexSlice retrieves a complex128 slice of length size from the pool.
//
// The contents are unspecified. The caller must call the returned cleanup function to
// return the slice to the pool.
//
// Example:
//
//	amp, cleanup := pool.GetComplexSlice(1 << n)
//	defer cleanup()
func GetComplexSlice(size int) ([]complex128, func()) {
	ptr, _ := complexSlicePool.Get().(*[]complex128)
	slice := resize(*ptr, size)
	*ptr = slice

	return slice, func() { complexSlicePool.Put(ptr) }
}

// GetByteSlice retrieves a uint8 slice of length size from the pool.
//
// The contents are unspecified. The caller must call the returned cleanup function to
// return the slice to the pool.
func GetByteSlice(size int) ([]uint8, func()) {
	ptr, _ := byteSlicePool.Get().(*[]uint8)
	slice := resize(*ptr, size)
	*ptr = slice

	return slice, func() { byteSlicePool.Put(ptr) }
}

func resize[T any](s []T, size int) []T {
	if cap(s) < size {
		return make([]T, size)
	}

	return s[:size]
}
