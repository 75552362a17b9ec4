package gate

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn is a no-op net.Conn for successful fake dials
type fakeConn struct {
	net.Conn
}

func (fakeConn) Close() error { return nil }

// fakeDialer succeeds for each address once a configured number of
// attempts has failed. It records the order of every dial attempt.
type fakeDialer struct {
	mu        sync.Mutex
	failures  map[string]int // attempts that fail before success
	attempts  map[string]int
	dialOrder []string
}

func newFakeDialer(failures map[string]int) *fakeDialer {
	return &fakeDialer{
		failures: failures,
		attempts: make(map[string]int),
	}
}

func (d *fakeDialer) DialContext(_ context.Context, _, addr string) (net.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.attempts[addr]++
	d.dialOrder = append(d.dialOrder, addr)
	if d.attempts[addr] <= d.failures[addr] {
		return nil, errors.New("connection refused")
	}
	return fakeConn{}, nil
}

func (d *fakeDialer) attemptCount(addr string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.attempts[addr]
}

// sleepRecorder counts sleeps instead of actually waiting
type sleepRecorder struct {
	mu     sync.Mutex
	sleeps []time.Duration
}

func (r *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	r.sleeps = append(r.sleeps, d)
	r.mu.Unlock()
	return ctx.Err()
}

func (r *sleepRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sleeps)
}

func newTestWaiter(endpoints []Endpoint, dialer Dialer, rec *sleepRecorder, opts ...Option) *Waiter {
	w := NewWaiter(endpoints, append([]Option{WithDialer(dialer)}, opts...)...)
	if rec != nil {
		w.sleep = rec.sleep
	}
	return w
}

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Endpoint
		wantErr bool
	}{
		{
			name:  "host and port",
			input: "mysql:3306",
			want:  Endpoint{Name: "mysql", Host: "mysql", Port: 3306},
		},
		{
			name:  "ip address",
			input: "10.0.0.5:6379",
			want:  Endpoint{Name: "10.0.0.5", Host: "10.0.0.5", Port: 6379},
		},
		{
			name:    "missing port",
			input:   "mysql",
			wantErr: true,
		},
		{
			name:    "non-numeric port",
			input:   "mysql:abc",
			wantErr: true,
		},
		{
			name:    "port out of range",
			input:   "mysql:70000",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEndpoint(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWaiter_ImmediatelyAvailableEndpointsNeverSleep(t *testing.T) {
	endpoints := []Endpoint{
		{Name: "mysql", Host: "mysql", Port: 3306},
		{Name: "redis", Host: "redis", Port: 6379},
	}
	dialer := newFakeDialer(nil) // all dials succeed first try
	rec := &sleepRecorder{}

	w := newTestWaiter(endpoints, dialer, rec)
	err := w.Wait(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, rec.count(), "available endpoints must be confirmed without any delay")
	assert.Equal(t, 1, dialer.attemptCount("mysql:3306"))
	assert.Equal(t, 1, dialer.attemptCount("redis:6379"))
}

func TestWaiter_RetriesUntilEndpointAccepts(t *testing.T) {
	endpoints := []Endpoint{{Name: "mysql", Host: "mysql", Port: 3306}}
	dialer := newFakeDialer(map[string]int{"mysql:3306": 4})
	rec := &sleepRecorder{}

	w := newTestWaiter(endpoints, dialer, rec)
	err := w.Wait(context.Background())

	require.NoError(t, err)
	// Success on the 5th attempt means exactly 4 delays.
	assert.Equal(t, 5, dialer.attemptCount("mysql:3306"))
	assert.Equal(t, 4, rec.count())
}

func TestWaiter_SequentialOrderIsPreserved(t *testing.T) {
	endpoints := []Endpoint{
		{Name: "mysql", Host: "mysql", Port: 3306},
		{Name: "redis", Host: "redis", Port: 6379},
	}
	dialer := newFakeDialer(map[string]int{
		"mysql:3306": 3,
		"redis:6379": 1,
	})
	rec := &sleepRecorder{}

	w := newTestWaiter(endpoints, dialer, rec)
	err := w.Wait(context.Background())
	require.NoError(t, err)

	// No redis dial may happen before mysql has been confirmed.
	sawRedis := false
	for _, addr := range dialer.dialOrder {
		if addr == "redis:6379" {
			sawRedis = true
		}
		if addr == "mysql:3306" {
			assert.False(t, sawRedis, "mysql was dialed after redis in sequential mode")
		}
	}
	assert.Equal(t, 4, dialer.attemptCount("mysql:3306"))
	assert.Equal(t, 2, dialer.attemptCount("redis:6379"))
	assert.Equal(t, 3+1, rec.count())
}

func TestWaiter_ParallelWaitsForAllEndpoints(t *testing.T) {
	endpoints := []Endpoint{
		{Name: "mysql", Host: "mysql", Port: 3306},
		{Name: "redis", Host: "redis", Port: 6379},
	}
	dialer := newFakeDialer(map[string]int{
		"mysql:3306": 2,
		"redis:6379": 5,
	})
	rec := &sleepRecorder{}

	w := newTestWaiter(endpoints, dialer, rec, WithParallel(true))
	err := w.Wait(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, dialer.attemptCount("mysql:3306"))
	assert.Equal(t, 6, dialer.attemptCount("redis:6379"))
}

func TestWaiter_MaxWaitGivesUp(t *testing.T) {
	endpoints := []Endpoint{{Name: "mysql", Host: "mysql", Port: 3306}}
	// Never succeeds.
	dialer := newFakeDialer(map[string]int{"mysql:3306": int(^uint(0) >> 1)})

	w := NewWaiter(endpoints,
		WithDialer(dialer),
		WithInterval(time.Millisecond),
		WithMaxWait(20*time.Millisecond),
	)

	err := w.Wait(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "mysql")
}

func TestWaiter_ContextCancellationStopsWaiting(t *testing.T) {
	endpoints := []Endpoint{{Name: "redis", Host: "redis", Port: 6379}}
	dialer := newFakeDialer(map[string]int{"redis:6379": int(^uint(0) >> 1)})

	ctx, cancel := context.WithCancel(context.Background())
	w := NewWaiter(endpoints, WithDialer(dialer), WithInterval(time.Millisecond))

	done := make(chan error, 1)
	go func() { done <- w.Wait(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after context cancellation")
	}
}

func TestWaiter_NoEndpoints(t *testing.T) {
	w := NewWaiter(nil)
	assert.NoError(t, w.Wait(context.Background()))
}

func TestWaiter_DefaultDialerAgainstRealListener(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	ep, err := ParseEndpoint(ln.Addr().String())
	require.NoError(t, err)

	w := NewWaiter([]Endpoint{ep}, WithMaxWait(5*time.Second))
	assert.NoError(t, w.Wait(context.Background()))
}

func TestHandoff_EmptyCommand(t *testing.T) {
	err := Handoff(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoCommand)

	err = Handoff([]string{})
	assert.ErrorIs(t, err, ErrNoCommand)
}

func TestHandoff_CommandNotFound(t *testing.T) {
	err := Handoff([]string{"definitely-not-a-real-command-xyz"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoCommand)
}

func TestFormatEndpoints(t *testing.T) {
	endpoints := []Endpoint{
		{Name: "mysql", Host: "db.internal", Port: 3306},
		{Name: "redis", Host: "redis", Port: 6379},
	}
	assert.Equal(t, "mysql (db.internal:3306), redis:6379", FormatEndpoints(endpoints))
}
