package ordering

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrDuplicateID    = errors.New("ordering: duplicate item id")
	ErrNotDense       = errors.New("ordering: order keys are not a dense 1..N range")
	ErrUnknownID      = errors.New("ordering: unknown item id")
	ErrLengthMismatch = errors.New("ordering: update does not cover every item")
)

// Load normalizes a fetched list. Items without an order key get the next
// unused integer starting at 1, in the order received; the list is then
// stably sorted by key and re-keyed 1..N.
func Load[T any](raw []RawItem[T]) []Item[T] {
	out := make([]Item[T], 0, len(raw))
	if len(raw) == 0 {
		return out
	}

	used := make(map[int]struct{}, len(raw))
	for _, r := range raw {
		if r.OrderKey != nil {
			used[*r.OrderKey] = struct{}{}
		}
	}

	next := 1
	for _, r := range raw {
		var key int
		if r.OrderKey != nil {
			key = *r.OrderKey
		} else {
			for {
				if _, taken := used[next]; !taken {
					break
				}
				next++
			}
			key = next
			used[next] = struct{}{}
			next++
		}
		out = append(out, Item[T]{ID: r.ID, OrderKey: key, Payload: r.Payload})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderKey < out[j].OrderKey })
	rekey(out)
	return out
}

func rekey[T any](items []Item[T]) {
	for i := range items {
		items[i].OrderKey = i + 1
	}
}

// ValidatePermutation checks that updates assign a dense 1..N order to
// exactly the ids in current.
func ValidatePermutation[T any](current []Item[T], updates []OrderUpdate) error {
	if len(updates) != len(current) {
		return fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(updates), len(current))
	}

	known := make(map[string]struct{}, len(current))
	for _, it := range current {
		known[it.ID] = struct{}{}
	}

	seenIDs := make(map[string]struct{}, len(updates))
	seenKeys := make([]bool, len(updates)+1)
	for _, u := range updates {
		if _, ok := known[u.ID]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownID, u.ID)
		}
		if _, dup := seenIDs[u.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateID, u.ID)
		}
		seenIDs[u.ID] = struct{}{}

		if u.OrderKey < 1 || u.OrderKey > len(updates) || seenKeys[u.OrderKey] {
			return ErrNotDense
		}
		seenKeys[u.OrderKey] = true
	}
	return nil
}

// Apply returns current rearranged according to updates, which must have
// passed ValidatePermutation.
func Apply[T any](current []Item[T], updates []OrderUpdate) []Item[T] {
	keys := make(map[string]int, len(updates))
	for _, u := range updates {
		keys[u.ID] = u.OrderKey
	}
	out := make([]Item[T], len(current))
	copy(out, current)
	for i := range out {
		out[i].OrderKey = keys[out[i].ID]
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderKey < out[j].OrderKey })
	return out
}
