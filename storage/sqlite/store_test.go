package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmakk0301/aws-console-time-keeper/storage"
)

func newTestStore(t *testing.T, capacity int) *Store {
	t.Helper()
	ctx := context.Background()
	s, err := New(ctx, filepath.Join(t.TempDir(), "captures.db"), capacity)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SaveAndLast(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, 10)

	if _, err := s.LastCapture(ctx); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("empty store err = %v, want ErrNotFound", err)
	}

	base := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)
	for i := 0; i < 3; i++ {
		c := &storage.Capture{
			Address:    fmt.Sprintf("https://console.aws.amazon.com/%d", i),
			Scheme:     "log-events",
			StartMS:    int64(1700000000000 + i),
			EndMS:      int64(1700003600000 + i),
			Mode:       "absolute",
			CapturedAt: base.Add(time.Duration(i) * time.Second),
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
	if last.StartMS != 1700000000002 {
		t.Errorf("last StartMS = %d", last.StartMS)
	}
	if !last.CapturedAt.Equal(base.Add(2 * time.Second)) {
		t.Errorf("CapturedAt = %v", last.CapturedAt)
	}
}

func TestStore_BoundedHistory(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, 3)

	base := time.Date(2023, 11, 14, 22, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		c := &storage.Capture{
			Address:    "https://console.aws.amazon.com/x",
			Scheme:     "hash-state",
			StartMS:    int64(i),
			EndMS:      int64(i),
			Mode:       "relative",
			CapturedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := s.SaveCapture(ctx, c); err != nil {
			t.Fatalf("SaveCapture failed: %v", err)
		}
	}

	got, err := s.ListCaptures(ctx, 0)
	if err != nil {
		t.Fatalf("ListCaptures failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3 (oldest evicted)", len(got))
	}
	for i, want := range []int64{5, 4, 3} {
		if got[i].StartMS != want {
			t.Errorf("got[%d].StartMS = %d, want %d", i, got[i].StartMS, want)
		}
	}
}
