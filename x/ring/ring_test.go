package ring

import (
	"sync"
	"testing"
)

func TestNewRejectsBadSize(t *testing.T) {
	for _, n := range []int{0, 1, 3, 12} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("New(%d) did not panic", n)
				}
			}()
			New(n)
		}()
	}
}

func TestOrderAcrossWrap(t *testing.T) {
	r := New(16)
	const N = 1000
	src := make([]byte, N)
	for i := range src {
		src[i] = byte(i * 7)
	}
	dst := make([]byte, 0, N)
	tmp := make([]byte, 5)
	p := src
	for len(dst) < N {
		if len(p) > 0 {
			step := min(len(p), 7)
			p = p[r.WriteFrom(p[:step]):]
		}
		n := r.ReadInto(tmp)
		dst = append(dst, tmp[:n]...)
	}
	for i := range src {
		if src[i] != dst[i] {
			t.Fatalf("mismatch at %d: got %d want %d", i, dst[i], src[i])
		}
	}
}

func TestFullAndEmpty(t *testing.T) {
	r := New(4)
	if n := r.WriteFrom([]byte("abcdef")); n != 4 {
		t.Fatalf("WriteFrom = %d, want 4", n)
	}
	if r.Space() != 0 || r.PutByte('x') {
		t.Fatalf("ring should be full")
	}
	if c, ok := r.Peek(); !ok || c != 'a' {
		t.Fatalf("Peek = %q, %v", c, ok)
	}
	for _, want := range []byte("abcd") {
		c, ok := r.GetByte()
		if !ok || c != want {
			t.Fatalf("GetByte = %q, %v; want %q", c, ok, want)
		}
	}
	if _, ok := r.GetByte(); ok {
		t.Fatalf("GetByte on empty ring succeeded")
	}
	if r.Available() != 0 || r.Space() != r.Cap() {
		t.Fatalf("Available=%d Space=%d", r.Available(), r.Space())
	}
}

func TestReadableEdge(t *testing.T) {
	r := New(8)
	r.PutByte(1)
	r.PutByte(2) // not an edge
	select {
	case <-r.Readable():
	default:
		t.Fatalf("no readable edge after first write")
	}
	select {
	case <-r.Readable():
		t.Fatalf("second write must not signal")
	default:
	}
}

func TestConcurrentProducerConsumer(t *testing.T) {
	r := New(32)
	const N = 10_000
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < N; {
			if r.PutByte(byte(i)) {
				i++
			}
		}
	}()
	for i := 0; i < N; {
		c, ok := r.GetByte()
		if !ok {
			continue
		}
		if c != byte(i) {
			t.Fatalf("byte %d = %d", i, c)
		}
		i++
	}
	wg.Wait()
}
