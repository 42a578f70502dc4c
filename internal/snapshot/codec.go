// Package snapshot encodes the whole store as a single JSON blob. Unlike the
// excel codec it is structure-preserving: ids survive a round-trip untouched.
// The legacy store generation used the same shape, so this codec also reads
// the one-time migration source.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/thankimquy/FOODORDER/internal/domain"
)

func Encode(w io.Writer, snap domain.Snapshot) error {
	if snap.Foods == nil {
		snap.Foods = []domain.FoodItem{}
	}
	if snap.Orders == nil {
		snap.Orders = []domain.Order{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	return nil
}

func Decode(r io.Reader) (domain.Snapshot, error) {
	var snap domain.Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("%w: malformed snapshot: %v", domain.ErrImport, err)
	}

	if snap.Foods == nil {
		snap.Foods = []domain.FoodItem{}
	}
	if snap.Orders == nil {
		snap.Orders = []domain.Order{}
	}
	for i := range snap.Orders {
		if snap.Orders[i].Items == nil {
			snap.Orders[i].Items = []domain.OrderItem{}
		}
	}

	return snap, nil
}
