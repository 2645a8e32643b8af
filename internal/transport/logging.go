package transport

import applog "visualizer/internal/log"

// LoggingTransport is the fallback sink used when no network transport is
// configured with --verbose. It logs at debug level and never fails.
type LoggingTransport struct{}

func NewLoggingTransport() *LoggingTransport {
	return &LoggingTransport{}
}

func (lt *LoggingTransport) Send(data any) error {
	applog.Debugf("transport: frame %+v", data)
	return nil
}

func (lt *LoggingTransport) Close() error {
	return nil
}

var _ Transport = (*LoggingTransport)(nil)
