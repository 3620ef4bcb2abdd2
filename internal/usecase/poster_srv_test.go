package usecase

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestPosterFetch_CoalescesConcurrentCallers(t *testing.T) {
	data := pngBytes(t)
	gate := make(chan struct{})
	calls := int32(0)

	gw := &fakeGateway{
		fetchImage: func(ctx context.Context, id string) ([]byte, error) {
			atomic.AddInt32(&calls, 1)
			<-gate
			return data, nil
		},
	}
	svc := NewPosterService(gw, zap.NewNop())

	const callers = 8
	var wg sync.WaitGroup
	var ready sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		ready.Add(1)
		go func(i int) {
			defer wg.Done()
			ready.Done()
			_, errs[i] = svc.Fetch(context.Background(), "poster-1")
		}(i)
	}

	// Release the gateway only once every caller is underway, so they all
	// attach to the single in-flight fetch.
	ready.Wait()
	time.Sleep(20 * time.Millisecond)
	close(gate)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("caller %d: %v", i, err)
		}
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected 1 gateway call, got %d", got)
	}
}

func TestPosterFetch_CacheHitSkipsGateway(t *testing.T) {
	data := pngBytes(t)
	calls := int32(0)
	gw := &fakeGateway{
		fetchImage: func(ctx context.Context, id string) ([]byte, error) {
			atomic.AddInt32(&calls, 1)
			return data, nil
		},
	}
	svc := NewPosterService(gw, zap.NewNop())

	for i := 0; i < 3; i++ {
		if _, err := svc.Fetch(context.Background(), "poster-1"); err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected 1 gateway call, got %d", got)
	}
}

func TestPosterFetch_FailureIsNotCached(t *testing.T) {
	data := pngBytes(t)
	calls := int32(0)
	gw := &fakeGateway{
		fetchImage: func(ctx context.Context, id string) ([]byte, error) {
			if atomic.AddInt32(&calls, 1) == 1 {
				return nil, errors.New("boom")
			}
			return data, nil
		},
	}
	svc := NewPosterService(gw, zap.NewNop())

	if _, err := svc.Fetch(context.Background(), "poster-1"); err == nil {
		t.Fatal("expected first fetch to fail")
	}
	img, err := svc.Fetch(context.Background(), "poster-1")
	if err != nil {
		t.Fatalf("retry should succeed: %v", err)
	}
	if img == nil {
		t.Fatal("expected decoded image")
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected retry to hit the gateway, got %d calls", got)
	}
}

func TestPosterFetch_UndecodableBytesFail(t *testing.T) {
	gw := &fakeGateway{
		fetchImage: func(ctx context.Context, id string) ([]byte, error) {
			return []byte("not an image"), nil
		},
	}
	svc := NewPosterService(gw, zap.NewNop())

	if _, err := svc.Fetch(context.Background(), "poster-1"); err == nil {
		t.Fatal("expected decode error")
	}
}
