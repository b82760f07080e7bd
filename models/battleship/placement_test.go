package battleship

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

func newSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 42))
}

func newTestRand() *rand.Rand {
	return newSeededRand(7)
}

func TestPlaceManyIsPairwiseDisjoint(t *testing.T) {
	placer := NewPlacer(newTestRand())

	ships, err := placer.PlaceMany(11, 12, nil, nil, DefaultMaxPlacementTries)
	require.NoError(t, err)
	require.Len(t, ships, 12)

	seen := make(CellSet)
	for i, ship := range ships {
		require.True(t, ship.IsPlaced(), "ship %d not placed", i)
		cells := NewCellSet(ship.Cells()...)
		require.True(t, seen.Disjoint(cells), "ship %d overlaps an earlier ship", i)
		seen.Union(cells)
	}
	assert.Len(t, seen, 12*ShipLength)
}

func TestSpawnAvoidsForbidden(t *testing.T) {
	placer := NewPlacer(newTestRand())

	// Only column 2 is free on a 3x3 grid.
	forbidden := NewCellSet(
		NewCoordinates(0, 0), NewCoordinates(0, 1), NewCoordinates(0, 2),
		NewCoordinates(1, 0), NewCoordinates(1, 1), NewCoordinates(1, 2),
	)

	ship, err := placer.SpawnNonOverlapping(3, forbidden, nil, DefaultMaxPlacementTries)
	require.NoError(t, err)
	assert.Equal(t, []Coordinates{{2, 0}, {2, 1}, {2, 2}}, ship.Cells())
	assert.Equal(t, OrientationVertical, ship.Orientation())
}

func TestSpawnRespectsOrientations(t *testing.T) {
	placer := NewPlacer(newTestRand())

	for range 50 {
		ship, err := placer.SpawnNonOverlapping(5, nil, []Orientation{OrientationHorizontal}, DefaultMaxPlacementTries)
		require.NoError(t, err)
		assert.Equal(t, OrientationHorizontal, ship.Orientation())
	}
}

func TestSpawnExhausted(t *testing.T) {
	placer := NewPlacer(newTestRand())

	forbidden := make(CellSet)
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			forbidden.Add(NewCoordinates(x, y))
		}
	}

	_, err := placer.SpawnNonOverlapping(3, forbidden, nil, 100)
	require.ErrorIs(t, err, cerr.ErrPlacementExhausted)
}

func TestPlaceManyExhaustedOnCrowdedGrid(t *testing.T) {
	placer := NewPlacer(newTestRand())

	ships, err := placer.PlaceMany(3, 3, nil, []Orientation{OrientationVertical}, DefaultMaxPlacementTries)
	require.NoError(t, err)
	require.Len(t, ships, 3)

	_, err = placer.PlaceMany(3, 4, nil, []Orientation{OrientationVertical}, 500)
	require.ErrorIs(t, err, cerr.ErrPlacementExhausted)
}

func TestPlaceManyDoesNotMutateForbidden(t *testing.T) {
	placer := NewPlacer(newTestRand())
	forbidden := NewCellSet(NewCoordinates(5, 5))

	_, err := placer.PlaceMany(11, 4, forbidden, nil, DefaultMaxPlacementTries)
	require.NoError(t, err)
	assert.Len(t, forbidden, 1)
}

func TestRandomPivotAlwaysFits(t *testing.T) {
	placer := NewPlacer(newTestRand())

	for range 500 {
		for _, orientation := range AllOrientations {
			pivot := placer.RandomPivot(4, orientation)
			_, err := Span(4, pivot, orientation)
			require.NoError(t, err)
		}
	}
}

func TestSpawnIsUniformOverValidPlacements(t *testing.T) {
	type placement struct {
		pivot       Coordinates
		orientation Orientation
	}

	placer := NewPlacer(newSeededRand(99))
	counts := make(map[placement]int)
	const draws = 6000

	for range draws {
		ship, err := placer.SpawnNonOverlapping(3, nil, nil, DefaultMaxPlacementTries)
		require.NoError(t, err)
		counts[placement{ship.Pivot(), ship.Orientation()}]++
	}

	// 3 vertical pivots on column centers and 3 horizontal pivots on row centers
	expected := []placement{
		{NewCoordinates(0, 1), OrientationVertical},
		{NewCoordinates(1, 1), OrientationVertical},
		{NewCoordinates(2, 1), OrientationVertical},
		{NewCoordinates(1, 0), OrientationHorizontal},
		{NewCoordinates(1, 1), OrientationHorizontal},
		{NewCoordinates(1, 2), OrientationHorizontal},
	}
	require.Len(t, counts, len(expected))

	share := draws / len(expected)
	for _, p := range expected {
		assert.InDelta(t, share, counts[p], float64(share)/5, "placement %+v", p)
	}
}
