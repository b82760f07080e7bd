package battleship

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceIsEuclidean(t *testing.T) {
	tests := []struct {
		a, b     Coordinates
		expected float64
	}{
		{a: NewCoordinates(5, 5), b: NewCoordinates(5, 5), expected: 0},
		{a: NewCoordinates(5, 5), b: NewCoordinates(5, 7), expected: 2},
		{a: NewCoordinates(0, 0), b: NewCoordinates(3, 4), expected: 5},
		{a: NewCoordinates(1, 1), b: NewCoordinates(2, 2), expected: 1.4142135623730951},
	}

	for _, test := range tests {
		assert.InDelta(t, test.expected, test.a.Distance(test.b), 1e-9)
		assert.InDelta(t, test.expected, test.b.Distance(test.a), 1e-9)
	}
}

func TestNeighbors(t *testing.T) {
	assert.Len(t, NewCoordinates(5, 5).Neighbors(11), 8)
	assert.Len(t, NewCoordinates(0, 5).Neighbors(11), 5)
	assert.Len(t, NewCoordinates(10, 10).Neighbors(11), 3)
	assert.NotContains(t, NewCoordinates(5, 5).Neighbors(11), NewCoordinates(5, 5))
}

func TestInBounds(t *testing.T) {
	assert.True(t, NewCoordinates(0, 0).InBounds(3))
	assert.True(t, NewCoordinates(2, 2).InBounds(3))
	assert.False(t, NewCoordinates(3, 0).InBounds(3))
	assert.False(t, NewCoordinates(0, -1).InBounds(3))
}

func TestBoardIgnoresOffGridEvents(t *testing.T) {
	board := NewBoard(3)
	board.Render(NewCellEvent(NewCoordinates(5, 5), CellPlayerHit))
	board.Render(NewCellEvent(NewCoordinates(2, 1), CellEnemyMiss))

	rows := board.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, CellEnemyMiss, rows[1][2])
	assert.Equal(t, CellEmpty, board.At(NewCoordinates(5, 5)))

	rows[1][2] = CellPlayerHit
	assert.Equal(t, CellEnemyMiss, board.At(NewCoordinates(2, 1)))
}

func TestCellEventJSON(t *testing.T) {
	raw, err := json.Marshal(NewCellEvent(NewCoordinates(1, 2), CellFriendlySunk))
	require.NoError(t, err)
	assert.JSONEq(t, `{"coordinates":{"x":1,"y":2},"category":"friendly-sunk"}`, string(raw))

	var event CellEvent
	require.NoError(t, json.Unmarshal(raw, &event))
	assert.Equal(t, CellFriendlySunk, event.Category)

	require.Error(t, json.Unmarshal([]byte(`{"category":"sunk"}`), &event))
}
