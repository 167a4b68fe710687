package ordering

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slot(order int, owner bool) Slot {
	return Slot{ID: uuid.New(), Order: order, IsOwner: owner}
}

func TestAppend(t *testing.T) {
	assert.Equal(t, 1, Append(0))
	assert.Equal(t, 4, Append(3))
}

func TestTail(t *testing.T) {
	assert.Equal(t, 1, Tail(nil))
	assert.Equal(t, 3, Tail([]Slot{slot(1, true), slot(2, false)}))
	// count+1 already used once the first member is gone
	assert.Equal(t, 4, Tail([]Slot{slot(2, false), slot(3, false)}))
	assert.Equal(t, 3, Tail([]Slot{slot(1, true), slot(11, false)}))
}

func TestOwnerInsertIntoEmpty(t *testing.T) {
	order, moves := OwnerInsert(nil, DefaultGap)
	assert.Equal(t, 1, order)
	assert.Empty(t, moves)
}

func TestOwnerInsertBumpsNonOwnerByGap(t *testing.T) {
	p1 := slot(1, false)
	order, moves := OwnerInsert([]Slot{p1}, DefaultGap)
	assert.Equal(t, 1, order)
	require.Len(t, moves, 1)
	assert.Equal(t, Move{ID: p1.ID, From: 1, To: 1 + DefaultGap}, moves[0])
}

func TestOwnerInsertNoCollisionWhenGapLeft(t *testing.T) {
	slots := []Slot{slot(1, true), slot(11, false), slot(12, false)}
	order, moves := OwnerInsert(slots, DefaultGap)
	assert.Equal(t, 2, order)
	assert.Empty(t, moves)
}

func TestOwnerInsertCascadesWithPlusOne(t *testing.T) {
	a, b, c, d := slot(1, true), slot(2, false), slot(3, false), slot(20, false)
	order, moves := OwnerInsert([]Slot{d, c, b, a}, 10)
	assert.Equal(t, 2, order)
	// b -> 12, c -> 13, d untouched; highest target first.
	assert.Equal(t, []Move{
		{ID: c.ID, From: 3, To: 13},
		{ID: b.ID, From: 2, To: 12},
	}, moves)
}

func TestOwnerInsertGapOfOneStillPersistsSafely(t *testing.T) {
	a, b, c := slot(1, false), slot(2, false), slot(3, false)
	order, moves := OwnerInsert([]Slot{a, b, c}, 1)
	assert.Equal(t, 1, order)
	assert.Equal(t, []Move{
		{ID: c.ID, From: 3, To: 4},
		{ID: b.ID, From: 2, To: 3},
		{ID: a.ID, From: 1, To: 2},
	}, moves)
	assertNoTransientCollision(t, []Slot{a, b, c}, order, moves)
}

func TestOwnerFirst(t *testing.T) {
	n1, o1, n2, o2 := slot(1, false), slot(2, true), slot(3, false), slot(7, true)
	got := OwnerFirst([]Slot{n2, o2, n1, o1})
	assert.Equal(t, []Slot{o1, o2, n1, n2}, got)
}

// assertNoTransientCollision replays moves one at a time against a set of
// occupied orders, then places the new member.
func assertNoTransientCollision(t *testing.T, slots []Slot, newOrder int, moves []Move) {
	t.Helper()
	occupied := map[int]uuid.UUID{}
	for _, s := range slots {
		occupied[s.Order] = s.ID
	}
	for _, m := range moves {
		holder, taken := occupied[m.To]
		require.False(t, taken && holder != m.ID, "move %+v collides", m)
		delete(occupied, m.From)
		occupied[m.To] = m.ID
	}
	_, taken := occupied[newOrder]
	require.False(t, taken, "new order %d still taken", newOrder)
}

// Random collections built by replaying owner/non-owner inserts must keep
// unique orders, keep owners ahead of everybody else and place each owner
// insert right after the previous owner member.
func TestOwnerInsertProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 300; round++ {
		gap := 1 + rng.Intn(12)
		var slots []Slot
		owners := 0
		for step := 0; step < 1+rng.Intn(25); step++ {
			if rng.Intn(2) == 0 {
				order, moves := OwnerInsert(slots, gap)
				require.Equal(t, owners+1, order)
				for i := 1; i < len(moves); i++ {
					require.Greater(t, moves[i-1].To, moves[i].To)
				}
				assertNoTransientCollision(t, slots, order, moves)
				slots = append(Apply(slots, moves), slot(order, true))
				owners++
			} else {
				slots = append(slots, slot(Tail(slots), false))
			}

			seen := map[int]bool{}
			maxOwner, minOther := 0, int(^uint(0)>>1)
			for _, s := range slots {
				require.False(t, seen[s.Order], "duplicate order %d", s.Order)
				seen[s.Order] = true
				require.Positive(t, s.Order)
				if s.IsOwner && s.Order > maxOwner {
					maxOwner = s.Order
				}
				if !s.IsOwner && s.Order < minOther {
					minOther = s.Order
				}
			}
			require.Less(t, maxOwner, minOther)
		}
	}
}
