// Package gate blocks process startup until the network dependencies a
// deployment needs (MySQL, Redis) accept TCP connections, then hands
// control to the real application command.
package gate

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Endpoint is one network dependency the gate must confirm is accepting
// connections before the application command is launched.
type Endpoint struct {
	Name string // label used in status lines, e.g. "mysql"
	Host string
	Port int
}

// ParseEndpoint parses a "host:port" pair. The name defaults to the host.
func ParseEndpoint(s string) (Endpoint, error) {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return Endpoint{}, fmt.Errorf("invalid endpoint %q: %w", s, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return Endpoint{}, fmt.Errorf("invalid port in endpoint %q", s)
	}
	return Endpoint{Name: host, Host: host, Port: port}, nil
}

// Addr returns the host:port pair for dialing
func (e Endpoint) Addr() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// String returns a human-readable label for status lines
func (e Endpoint) String() string {
	if e.Name != "" && e.Name != e.Host {
		return fmt.Sprintf("%s (%s)", e.Name, e.Addr())
	}
	return e.Addr()
}

// Dialer abstracts connection attempts so tests can simulate
// dependencies that come up after a number of retries.
type Dialer interface {
	DialContext(ctx context.Context, network, addr string) (net.Conn, error)
}

// Waiter polls dependency endpoints until all of them accept a TCP
// connection at least once. Each probe connection is closed immediately;
// the gate never speaks any application-level protocol.
type Waiter struct {
	endpoints []Endpoint
	interval  time.Duration
	maxWait   time.Duration // 0 means wait forever
	parallel  bool
	dialer    Dialer
	sleep     func(ctx context.Context, d time.Duration) error
	logger    *zap.Logger
}

// Option configures a Waiter
type Option func(*Waiter)

// WithInterval sets the delay between connection attempts
func WithInterval(d time.Duration) Option {
	return func(w *Waiter) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithMaxWait bounds the total wait. Zero keeps the default behavior of
// waiting forever, which favors availability over fail-fast startup.
func WithMaxWait(d time.Duration) Option {
	return func(w *Waiter) { w.maxWait = d }
}

// WithParallel polls all endpoints concurrently instead of in declaration
// order. Only the "launch after all ready" contract is preserved.
func WithParallel(parallel bool) Option {
	return func(w *Waiter) { w.parallel = parallel }
}

// WithDialer sets the dialer used for connection probes
func WithDialer(d Dialer) Option {
	return func(w *Waiter) { w.dialer = d }
}

// WithLogger sets the logger for status lines
func WithLogger(logger *zap.Logger) Option {
	return func(w *Waiter) { w.logger = logger }
}

// NewWaiter creates a Waiter for the given endpoints, polled in order
func NewWaiter(endpoints []Endpoint, opts ...Option) *Waiter {
	w := &Waiter{
		endpoints: endpoints,
		interval:  time.Second,
		dialer:    &net.Dialer{Timeout: time.Second},
		sleep:     sleepContext,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Wait blocks until every endpoint has accepted a TCP connection at least
// once, the max wait elapses, or ctx is canceled. Endpoints that are
// already available are confirmed without any retry delay.
func (w *Waiter) Wait(ctx context.Context) error {
	if len(w.endpoints) == 0 {
		return nil
	}

	if w.maxWait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.maxWait)
		defer cancel()
	}

	if w.parallel {
		return w.waitParallel(ctx)
	}

	for _, ep := range w.endpoints {
		if err := w.waitOne(ctx, ep); err != nil {
			return err
		}
	}
	return nil
}

// waitParallel polls all endpoints concurrently and returns the first error
func (w *Waiter) waitParallel(ctx context.Context) error {
	errCh := make(chan error, len(w.endpoints))
	for _, ep := range w.endpoints {
		go func(ep Endpoint) {
			errCh <- w.waitOne(ctx, ep)
		}(ep)
	}

	var firstErr error
	for range w.endpoints {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// waitOne retries a single endpoint until it accepts a connection.
// An endpoint available on the Nth attempt incurs exactly N-1 delays.
func (w *Waiter) waitOne(ctx context.Context, ep Endpoint) error {
	w.logger.Info("Waiting for dependency", zap.String("endpoint", ep.String()))

	for attempt := 1; ; attempt++ {
		conn, err := w.dialer.DialContext(ctx, "tcp", ep.Addr())
		if err == nil {
			_ = conn.Close()
			w.logger.Info("Dependency is available",
				zap.String("endpoint", ep.String()),
				zap.Int("attempts", attempt),
			)
			return nil
		}

		if ctx.Err() != nil {
			return fmt.Errorf("gave up waiting for %s: %w", ep.String(), ctx.Err())
		}

		if err := w.sleep(ctx, w.interval); err != nil {
			return fmt.Errorf("gave up waiting for %s: %w", ep.String(), err)
		}
	}
}

// sleepContext sleeps for d unless ctx is canceled first
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// FormatEndpoints renders the endpoint list for log output
func FormatEndpoints(endpoints []Endpoint) string {
	parts := make([]string, len(endpoints))
	for i, ep := range endpoints {
		parts[i] = ep.String()
	}
	return strings.Join(parts, ", ")
}
