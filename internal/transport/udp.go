// SPDX-License-Identifier: MIT
package transport

import (
	"encoding/json"
	"fmt"
	"net"
	"sync"

	applog "visualizer/internal/log"
)

// UDPTransport sends each frame payload as a single compact JSON datagram
// to a fixed address. Datagrams that would exceed a safe MTU are dropped;
// UDP loss is acceptable for ephemeral frame data.
type UDPTransport struct {
	conn *net.UDPConn

	mu     sync.Mutex
	closed bool
}

// maxDatagram caps the serialized payload size. Larger frames are dropped
// rather than fragmented.
const maxDatagram = 8192

func NewUDPTransport(addr string) (*UDPTransport, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("udp transport: resolve %q: %w", addr, err)
	}
	conn, err := net.DialUDP("udp", nil, udpAddr)
	if err != nil {
		return nil, fmt.Errorf("udp transport: dial %q: %w", addr, err)
	}
	applog.Infof("transport: udp publisher sending to %s", addr)
	return &UDPTransport{conn: conn}, nil
}

func (t *UDPTransport) Send(data any) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("udp transport: marshal: %w", err)
	}
	if len(payload) > maxDatagram {
		applog.Debugf("transport: dropping oversized datagram (%d bytes)", len(payload))
		return nil
	}
	if _, err := t.conn.Write(payload); err != nil {
		// Transient send errors (e.g. ICMP unreachable) are expected when
		// no receiver is listening.
		applog.Debugf("transport: udp write: %v", err)
	}
	return nil
}

// Close releases the socket. Idempotent.
func (t *UDPTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	return t.conn.Close()
}

var _ Transport = (*UDPTransport)(nil)
