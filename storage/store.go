package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// DefaultHistoryCapacity bounds the capture history. The store evicts the
// oldest captures past this many.
const DefaultHistoryCapacity = 50

// Capture is one remembered time range together with where it was read.
type Capture struct {
	ID         string    `json:"id"`
	Address    string    `json:"address"`
	Scheme     string    `json:"scheme"`
	StartMS    int64     `json:"start_ms"`
	EndMS      int64     `json:"end_ms"`
	Mode       string    `json:"mode"`
	CapturedAt time.Time `json:"captured_at"`
}

// Storer persists the last captured range and a bounded, ordered history.
type Storer interface {
	// SaveCapture appends a capture, evicting the oldest past capacity.
	SaveCapture(ctx context.Context, c *Capture) error

	// LastCapture returns the most recent capture, or ErrNotFound.
	LastCapture(ctx context.Context) (*Capture, error)

	// ListCaptures returns up to limit captures, newest first.
	ListCaptures(ctx context.Context, limit int) ([]Capture, error)

	Close() error
}
