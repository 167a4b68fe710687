// Package ordering assigns order slots in collections that keep a unique
// (parent, order) constraint: recipe photos, ingredients in a recipe and
// ingredient groups in a recipe.
//
// Two policies exist. Append assigns count+1 and is used for ingredient rows
// and groups. OwnerInsert gives photos of the recipe owner priority: a new
// owner photo is slotted right after the last owner photo and colliding
// non-owner photos are pushed up, the first one by a gap so later owner
// inserts rarely cascade.
package ordering

import (
	"sort"

	"github.com/google/uuid"
)

const DefaultGap = 10

// Slot is an existing member of an ordered collection.
type Slot struct {
	ID      uuid.UUID
	Order   int
	IsOwner bool
}

// Move relocates one existing member.
type Move struct {
	ID   uuid.UUID
	From int
	To   int
}

// Append is the append-only policy. It is not safe under concurrent writers:
// two inserts may read the same count and the second one is rejected by the
// unique constraint.
func Append(count int) int {
	return count + 1
}

// Tail returns the tail slot for a non-owner insert: count+1, or max+1 when
// earlier bumps already occupy count+1.
func Tail(slots []Slot) int {
	next := len(slots) + 1
	max := 0
	taken := false
	for _, s := range slots {
		if s.Order == next {
			taken = true
		}
		if s.Order > max {
			max = s.Order
		}
	}
	if taken {
		return max + 1
	}
	return next
}

// SortByOrder returns a copy of slots sorted by order ascending.
func SortByOrder(slots []Slot) []Slot {
	out := make([]Slot, len(slots))
	copy(out, slots)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// OwnerFirst returns owner slots in order followed by the others in order.
func OwnerFirst(slots []Slot) []Slot {
	sorted := SortByOrder(slots)
	out := make([]Slot, 0, len(sorted))
	for _, s := range sorted {
		if s.IsOwner {
			out = append(out, s)
		}
	}
	for _, s := range sorted {
		if !s.IsOwner {
			out = append(out, s)
		}
	}
	return out
}

// OwnerInsert computes the order of a new owner member and the moves that
// clear its slot. Moves come back in persist order, highest target first, so
// applying them one by one never puts two rows on the same order.
func OwnerInsert(slots []Slot, gap int) (int, []Move) {
	if gap < 1 {
		gap = 1
	}
	sorted := SortByOrder(slots)

	lastOwner := 0
	for _, s := range sorted {
		if s.IsOwner {
			lastOwner = s.Order
		}
	}
	newOrder := lastOwner + 1

	pivot := -1
	for i, s := range sorted {
		if !s.IsOwner && s.Order > lastOwner {
			pivot = i
			break
		}
	}
	if pivot < 0 || sorted[pivot].Order > newOrder {
		return newOrder, nil
	}

	var moves []Move
	running := newOrder
	for _, s := range sorted[pivot:] {
		if s.Order > running {
			break
		}
		to := running + 1
		if len(moves) == 0 {
			to = running + gap
		}
		moves = append(moves, Move{ID: s.ID, From: s.Order, To: to})
		running = to
	}

	for i, j := 0, len(moves)-1; i < j; i, j = i+1, j-1 {
		moves[i], moves[j] = moves[j], moves[i]
	}
	return newOrder, moves
}

// Apply returns slots with moves applied, for callers that keep the
// collection in memory after persisting.
func Apply(slots []Slot, moves []Move) []Slot {
	to := make(map[uuid.UUID]int, len(moves))
	for _, m := range moves {
		to[m.ID] = m.To
	}
	out := make([]Slot, len(slots))
	for i, s := range slots {
		if o, ok := to[s.ID]; ok {
			s.Order = o
		}
		out[i] = s
	}
	return out
}
