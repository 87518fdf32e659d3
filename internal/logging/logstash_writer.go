package logging

import (
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

var errCoolingDown = errors.New("logstash: waiting before reconnect")

// LogstashWriter mirrors newline-delimited log lines to a Logstash TCP input.
// Lines written while Logstash is unreachable are counted and dropped, so the
// request path never waits on the log shipper.
type LogstashWriter struct {
	addr         string
	dialTimeout  time.Duration
	writeTimeout time.Duration
	backoff      time.Duration

	mu        sync.Mutex
	conn      net.Conn
	nextDial  time.Time
	closed    bool
	sent      atomic.Int64
	dropped   atomic.Int64
	reconnect atomic.Int64
}

type Option func(*LogstashWriter)

func WithDialTimeout(d time.Duration) Option {
	return func(w *LogstashWriter) { w.dialTimeout = d }
}

func WithWriteTimeout(d time.Duration) Option {
	return func(w *LogstashWriter) { w.writeTimeout = d }
}

// WithBackoff sets how long the writer waits after a failed dial or write. Defaults to 5s.
func WithBackoff(d time.Duration) Option {
	return func(w *LogstashWriter) { w.backoff = d }
}

func NewLogstashWriter(addr string, opts ...Option) (*LogstashWriter, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("logstash: empty address")
	}
	w := &LogstashWriter{
		addr:         addr,
		dialTimeout:  2 * time.Second,
		writeTimeout: time.Second,
		backoff:      5 * time.Second,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Stats is a snapshot of the writer's delivery counters.
type Stats struct {
	Sent       int64
	Dropped    int64
	Reconnects int64
}

func (w *LogstashWriter) Stats() Stats {
	return Stats{
		Sent:       w.sent.Load(),
		Dropped:    w.dropped.Load(),
		Reconnects: w.reconnect.Load(),
	}
}

// Write always reports len(p) on success or drop so a MultiWriter keeps logging locally.
func (w *LogstashWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	line := make([]byte, 0, len(p)+1)
	line = append(line, p...)
	if line[len(line)-1] != '\n' {
		line = append(line, '\n')
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, io.ErrClosedPipe
	}
	if err := w.connectLocked(); err != nil {
		w.dropped.Add(1)
		return len(p), nil
	}
	if w.writeTimeout > 0 {
		_ = w.conn.SetWriteDeadline(time.Now().Add(w.writeTimeout))
	}
	if _, err := w.conn.Write(line); err != nil {
		w.dropConnLocked()
		w.nextDial = time.Now().Add(w.backoff)
		w.dropped.Add(1)
		return len(p), nil
	}
	w.sent.Add(1)
	return len(p), nil
}

func (w *LogstashWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.dropConnLocked()
}

func (w *LogstashWriter) connectLocked() error {
	if w.conn != nil {
		return nil
	}
	if time.Now().Before(w.nextDial) {
		return errCoolingDown
	}
	conn, err := net.DialTimeout("tcp", w.addr, w.dialTimeout)
	if err != nil {
		w.nextDial = time.Now().Add(w.backoff)
		return err
	}
	w.conn = conn
	w.nextDial = time.Time{}
	w.reconnect.Add(1)
	return nil
}

func (w *LogstashWriter) dropConnLocked() error {
	if w.conn == nil {
		return nil
	}
	err := w.conn.Close()
	w.conn = nil
	return err
}
