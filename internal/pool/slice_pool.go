package pool

import "sync"

// Slice pools for the key and value columns of the blob codec.
var (
	int64SlicePool = sync.Pool{
		New: func() any { return &[]int64{} },
	}
	float64SlicePool = sync.Pool{
		New: func() any { return &[]float64{} },
	}
)

// GetInt64Slice returns an int64 slice of length size and a cleanup function
// that must be called, typically deferred, to return it to the pool.
//
// Example:
//
//	keys, cleanup := pool.GetInt64Slice(ts.Len())
//	defer cleanup()
func GetInt64Slice(size int) ([]int64, func()) {
	ptr, _ := int64SlicePool.Get().(*[]int64)

	return resize(ptr, size), func() { int64SlicePool.Put(ptr) }
}

// GetFloat64Slice is GetInt64Slice for float64 values.
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)

	return resize(ptr, size), func() { float64SlicePool.Put(ptr) }
}

func resize[T any](ptr *[]T, size int) []T {
	slice := *ptr
	if cap(slice) < size {
		slice = make([]T, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice
}
