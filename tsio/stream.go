package tsio

import (
	"context"
	"iter"

	"github.com/arloliu/tsx/series"
)

// Send forwards every point of seq into ch, in order.
//
// It blocks while ch is full and returns ctx.Err() as soon as ctx is done;
// points not yet sent are dropped. Send does not close ch.
func Send[K comparable, V any](ctx context.Context, ch chan<- series.DataPoint[K, V], seq iter.Seq[series.DataPoint[K, V]]) error {
	for dp := range seq {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ch <- dp:
		}
	}

	return nil
}

// Pipe runs seq in a new goroutine and streams its points through a channel
// with the given buffer size.
//
// The channel is closed once seq is exhausted or ctx is done. wait blocks
// until the goroutine returns and reports ctx.Err() if it stopped early.
// Consumers that stop reading before the channel is closed must cancel ctx,
// otherwise the producer goroutine blocks forever.
func Pipe[K comparable, V any](ctx context.Context, seq iter.Seq[series.DataPoint[K, V]], buffer int) (<-chan series.DataPoint[K, V], func() error) {
	ch := make(chan series.DataPoint[K, V], max(buffer, 0))
	done := make(chan struct{})

	var err error
	go func() {
		defer close(done)
		defer close(ch)
		err = Send(ctx, ch, seq)
	}()

	return ch, func() error {
		<-done
		return err
	}
}

// Receive adapts ch into a sequence that ends when ch is closed.
func Receive[K comparable, V any](ch <-chan series.DataPoint[K, V]) iter.Seq[series.DataPoint[K, V]] {
	return func(yield func(series.DataPoint[K, V]) bool) {
		for dp := range ch {
			if !yield(dp) {
				return
			}
		}
	}
}
