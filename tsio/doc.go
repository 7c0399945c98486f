// Package tsio moves time series in and out of a process.
//
// Every reader builds its result with the unchecked series constructors: the
// order of the input is kept as is and never re-validated. Call
// Index().IsMonotonic() on the result, or rebuild it with series.New, when the
// source is not trusted.
//
// Adapters:
//   - CSV: ReadCSV / WriteCSV with caller-supplied record parsers and
//     formatters, plus built-in time/int key helpers.
//   - JSON: ReadJSON / WriteJSON over arrays of {"timestamp", "value"} records.
//   - Blob: BlobEncoder / DecodeBlob, a compressed columnar encoding of
//     float-valued series.
//   - Channels: Send, Pipe and Receive bridge iterators and goroutines.
//   - Frames: FrameWriter / FrameReader carry length-prefixed points over a
//     byte stream.
package tsio
