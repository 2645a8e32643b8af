// Package transport publishes per-frame analysis payloads to external
// consumers. Implementations are thread-safe and must never block the
// render tick: a slow or absent consumer drops frames, it does not stall
// the visualizer.
package transport

// Transport is a generic sink for per-frame data.
type Transport interface {
	Send(data any) error
	Close() error
}
