package battleship

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

func TestTargetCandidatesAroundSingleHit(t *testing.T) {
	enemy := NewEnemy(11, newTestRand())
	enemy.knownHits.Add(NewCoordinates(5, 5))

	expected := []Coordinates{
		{4, 4}, {4, 5}, {4, 6},
		{5, 4}, {5, 6},
		{6, 4}, {6, 5}, {6, 6},
	}
	assert.Equal(t, expected, enemy.TargetCandidates())
}

func TestTargetCandidatesClippedAtCorner(t *testing.T) {
	enemy := NewEnemy(11, newTestRand())
	enemy.knownHits.Add(NewCoordinates(0, 0))
	enemy.fired.Add(NewCoordinates(0, 0))
	enemy.fired.Add(NewCoordinates(1, 1))

	assert.Equal(t, []Coordinates{{0, 1}, {1, 0}}, enemy.TargetCandidates())
}

func TestTargetCandidatesAccumulateOverAllHits(t *testing.T) {
	enemy := NewEnemy(11, newTestRand())
	enemy.knownHits.Add(NewCoordinates(2, 2))
	enemy.knownHits.Add(NewCoordinates(8, 8))

	candidates := NewCellSet(enemy.TargetCandidates()...)
	assert.Len(t, candidates, 16)
	assert.True(t, candidates.Has(NewCoordinates(1, 1)))
	assert.True(t, candidates.Has(NewCoordinates(9, 9)))
}

func TestPickTargetTargetsNeighborsOfHit(t *testing.T) {
	enemy := NewEnemy(11, newTestRand())
	enemy.knownHits.Add(NewCoordinates(5, 5))
	enemy.fired.Add(NewCoordinates(5, 5))

	for range 50 {
		target, err := enemy.PickTarget()
		require.NoError(t, err)
		assert.LessOrEqual(t, abs(target.X-5), 1)
		assert.LessOrEqual(t, abs(target.Y-5), 1)
		assert.NotEqual(t, NewCoordinates(5, 5), target)
	}
}

func TestPickTargetFallsBackToHuntWhenNeighborsExhausted(t *testing.T) {
	enemy := NewEnemy(11, newTestRand())
	hit := NewCoordinates(5, 5)
	enemy.knownHits.Add(hit)
	enemy.fired.Add(hit)
	for _, n := range hit.Neighbors(11) {
		enemy.fired.Add(n)
	}

	target, err := enemy.PickTarget()
	require.NoError(t, err)
	assert.False(t, enemy.HasFiredAt(target))
	assert.Greater(t, target.Distance(hit), 1.5)

	// The stale hit stays known.
	assert.Equal(t, []Coordinates{hit}, enemy.KnownHits())
}

func TestFireNeverRepeatsUntilGridExhausted(t *testing.T) {
	const gridSize = 6
	enemy := NewEnemy(gridSize, newTestRand())
	defender := NewShip(gridSize)
	require.NoError(t, defender.Place(NewCoordinates(2, 2), OrientationVertical))

	seen := make(CellSet)
	for range gridSize * gridSize {
		shot, err := enemy.Fire(defender)
		require.NoError(t, err)
		require.False(t, seen.Has(shot.Coordinates), "cell %v fired twice", shot.Coordinates)
		seen.Add(shot.Coordinates)

		assert.Equal(t, NewCellSet(defender.Cells()...).Has(shot.Coordinates), shot.Hit)
		for _, hit := range enemy.KnownHits() {
			assert.True(t, enemy.HasFiredAt(hit))
		}
	}

	_, err := enemy.Fire(defender)
	require.ErrorIs(t, err, cerr.ErrNoTargetsRemaining)
	assert.True(t, defender.IsSunk())
	assert.Len(t, enemy.KnownHits(), ShipLength)
}

func TestFireMissKeepsKnownHits(t *testing.T) {
	enemy := NewEnemy(3, newTestRand())
	defender := NewShip(3)
	require.NoError(t, defender.Place(NewCoordinates(1, 1), OrientationVertical))

	// Leave only a water cell unfired.
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			if x == 0 && y == 0 {
				continue
			}
			enemy.fired.Add(NewCoordinates(x, y))
		}
	}
	enemy.knownHits.Add(NewCoordinates(1, 1))

	shot, err := enemy.Fire(defender)
	require.NoError(t, err)
	assert.Equal(t, EnemyShot{Coordinates: NewCoordinates(0, 0), Hit: false}, shot)
	assert.Equal(t, []Coordinates{{1, 1}}, enemy.KnownHits())
}

func TestActivateIsOneWay(t *testing.T) {
	enemy := NewEnemy(11, newTestRand())
	require.False(t, enemy.IsActive())

	assert.True(t, enemy.Activate())
	assert.False(t, enemy.Activate())
	assert.True(t, enemy.IsActive())
}
