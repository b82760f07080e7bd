package battleship

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

func TestGameManagerLifecycle(t *testing.T) {
	bgm := NewBattleshipGameManager()

	game, err := bgm.CreateGame(DefaultConfig())
	require.NoError(t, err)
	_, err = uuid.Parse(game.Uuid())
	require.NoError(t, err)

	found, err := bgm.GetGame(game.Uuid())
	require.NoError(t, err)
	assert.Same(t, game, found)
	assert.Equal(t, 1, bgm.Count())

	bgm.TerminateGame(game.Uuid())
	_, err = bgm.GetGame(game.Uuid())
	require.ErrorIs(t, err, cerr.ErrNotFound)
	assert.Equal(t, 0, bgm.Count())
}

func TestGameManagerRejectsInvalidConfig(t *testing.T) {
	bgm := NewBattleshipGameManager()

	_, err := bgm.CreateGame(Config{GridSize: 1})
	require.ErrorIs(t, err, cerr.ErrInvalidConfig)
	assert.Equal(t, 0, bgm.Count())
}

func TestGameManagerConcurrentCreate(t *testing.T) {
	bgm := NewBattleshipGameManager()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			game, err := bgm.CreateGame(DefaultConfig())
			if err != nil {
				t.Error(err)
				return
			}
			if _, err := bgm.GetGame(game.Uuid()); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	// Full uuids never collide, so no game overwrote another
	assert.Equal(t, 20, bgm.Count())
}

func TestGameManagerNeverOverwritesGame(t *testing.T) {
	bgm := NewBattleshipGameManager()

	game, err := bgm.CreateGame(DefaultConfig())
	require.NoError(t, err)

	require.Error(t, bgm.insert(game))
	found, err := bgm.GetGame(game.Uuid())
	require.NoError(t, err)
	assert.Same(t, game, found)
	assert.Equal(t, 1, bgm.Count())
}
