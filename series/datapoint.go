package series

import "fmt"

// DataPoint is a single key/value pair, the unit of iteration and ingestion.
type DataPoint[K any, V any] struct {
	Key   K `json:"timestamp"`
	Value V `json:"value"`
}

// NewDataPoint creates a data point.
func NewDataPoint[K any, V any](key K, value V) DataPoint[K, V] {
	return DataPoint[K, V]{Key: key, Value: value}
}

func (dp DataPoint[K, V]) String() string {
	return fmt.Sprintf("(%v, %v)", dp.Key, dp.Value)
}
