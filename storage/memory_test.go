package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestMemoryStore_LastCapture(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10)

	if _, err := s.LastCapture(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("empty store err = %v, want ErrNotFound", err)
	}

	for i := 0; i < 3; i++ {
		c := &Capture{
			Address:    fmt.Sprintf("https://example.com/%d", i),
			Scheme:     "metrics-graph",
			StartMS:    int64(i),
			EndMS:      int64(i + 1),
			Mode:       "absolute",
			CapturedAt: time.UnixMilli(int64(1700000000000 + i)),
		}
		if err := s.SaveCapture(ctx, c); err != nil {
			t.Fatalf("SaveCapture failed: %v", err)
		}
		if c.ID == "" {
			t.Fatal("SaveCapture did not assign an ID")
		}
	}

	last, err := s.LastCapture(ctx)
	if err != nil {
		t.Fatalf("LastCapture failed: %v", err)
	}
	if last.StartMS != 2 {
		t.Errorf("last StartMS = %d, want 2", last.StartMS)
	}
}

func TestMemoryStore_EvictsOldest(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(3)

	for i := 0; i < 5; i++ {
		err := s.SaveCapture(ctx, &Capture{StartMS: int64(i), CapturedAt: time.UnixMilli(int64(i))})
		if err != nil {
			t.Fatalf("SaveCapture failed: %v", err)
		}
	}

	got, err := s.ListCaptures(ctx, 0)
	if err != nil {
		t.Fatalf("ListCaptures failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	// newest first; captures 0 and 1 were evicted
	for i, want := range []int64{4, 3, 2} {
		if got[i].StartMS != want {
			t.Errorf("got[%d].StartMS = %d, want %d", i, got[i].StartMS, want)
		}
	}
}

func TestMemoryStore_ListLimit(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10)
	for i := 0; i < 5; i++ {
		if err := s.SaveCapture(ctx, &Capture{StartMS: int64(i)}); err != nil {
			t.Fatalf("SaveCapture failed: %v", err)
		}
	}
	got, err := s.ListCaptures(ctx, 2)
	if err != nil {
		t.Fatalf("ListCaptures failed: %v", err)
	}
	if len(got) != 2 || got[0].StartMS != 4 || got[1].StartMS != 3 {
		t.Errorf("got %+v", got)
	}
}
