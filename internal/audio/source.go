package audio

// Source is one audio attachment: something that produces samples into a
// Tap while it runs. The pipeline owns exactly one started source at a
// time; Stop must be idempotent so teardown can be best-effort.
type Source interface {
	// Start begins producing samples. An error here means the source is
	// unavailable; the caller decides whether to retry.
	Start() error
	// Stop halts production and releases the underlying stream. Calling
	// Stop on an already-stopped source is a no-op.
	Stop() error
	// SampleRate returns the source's sample rate in Hz.
	SampleRate() float64
	// Tap returns the ring buffer the source writes into.
	Tap() *Tap
	// Describe returns a short human-readable label for logging.
	Describe() string
}
