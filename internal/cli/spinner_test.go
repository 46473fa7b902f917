package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDrawsAndStops(t *testing.T) {
	var out syncBuffer
	s := newSpinner(context.Background(), &out, "rendering png")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()
	s.Stop()

	if !strings.Contains(out.String(), "rendering png") {
		t.Errorf("spinner output = %q", out.String())
	}
}

func TestSpinnerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinner(ctx, &syncBuffer{}, "waiting")
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after cancellation")
	}
	s.Stop()
}
