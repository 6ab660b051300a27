// Package audio holds the canonical sample representation and the pure
// processing stages of the capture pipeline: native-format conversion to
// float32, the lock-guarded sample buffer shared between a capture goroutine
// and its drainer, per-stream resampling, and the mixing functions that
// combine the loopback and microphone streams.
package audio
