package battleship

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

func TestDefaultConfigIsValid(t *testing.T) {
	config := DefaultConfig()
	require.NoError(t, config.Validate())
	assert.Equal(t, 11, config.GridSize)
	assert.Equal(t, 99, config.GoalScore)
	assert.Equal(t, 33, config.BullseyeBonus)
	assert.Equal(t, 1.0, config.BullseyeDistance)
	assert.Equal(t, 3.0, config.NearTriggerDistance)
	assert.Equal(t, 10000, config.MaxPlacementTries)
}

func TestValidateReportsEveryField(t *testing.T) {
	config := Config{
		GridSize:            2,
		GoalScore:           0,
		BullseyeBonus:       33,
		BullseyeDistance:    -1,
		NearTriggerDistance: 3,
		MaxPlacementTries:   10,
	}

	err := config.Validate()
	require.ErrorIs(t, err, cerr.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "grid_size=2")
	assert.Contains(t, err.Error(), "goal_score=0")
	assert.Contains(t, err.Error(), "bullseye_distance=-1")
	assert.NotContains(t, err.Error(), "max_placement_tries")
}

func TestValidateBounds(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		expectErr string
	}{
		{name: "largest grid", mutate: func(c *Config) { c.GridSize = MaxGridSize }},
		{name: "grid above max", mutate: func(c *Config) { c.GridSize = MaxGridSize + 1 }, expectErr: "grid_size"},
		{name: "huge grid", mutate: func(c *Config) { c.GridSize = 1 << 40 }, expectErr: "grid_size"},
		{name: "tries at cap", mutate: func(c *Config) { c.MaxPlacementTries = MaxPlacementTriesCap }},
		{name: "tries above cap", mutate: func(c *Config) { c.MaxPlacementTries = 1 << 62 }, expectErr: "max_placement_tries"},
		{name: "zero distances", mutate: func(c *Config) { c.BullseyeDistance, c.NearTriggerDistance = 0, 0 }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := DefaultConfig()
			test.mutate(&config)

			err := config.Validate()
			if test.expectErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, cerr.ErrInvalidConfig)
			assert.Contains(t, err.Error(), test.expectErr)
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}

func TestConfigOverrideApply(t *testing.T) {
	config, err := ConfigOverride{GridSize: ptr(7), NearTriggerDistance: ptr(2.0)}.Apply(DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 7, config.GridSize)
	assert.Equal(t, 2.0, config.NearTriggerDistance)
	assert.Equal(t, DefaultGoalScore, config.GoalScore)
	assert.Equal(t, DefaultBullseyeDistance, config.BullseyeDistance)
	assert.True(t, config.TargetAvoidsFriendly)
}

func TestConfigOverrideKeepsExplicitZeroAndFalse(t *testing.T) {
	config, err := ConfigOverride{
		BullseyeDistance:     ptr(0.0),
		NearTriggerDistance:  ptr(0.0),
		TargetAvoidsFriendly: ptr(false),
	}.Apply(DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 0.0, config.BullseyeDistance)
	assert.Equal(t, 0.0, config.NearTriggerDistance)
	assert.False(t, config.TargetAvoidsFriendly)
}

func TestConfigOverrideRejects(t *testing.T) {
	tests := []struct {
		name      string
		override  ConfigOverride
		expectErr string
	}{
		{name: "oversized grid", override: ConfigOverride{GridSize: ptr(1 << 40)}, expectErr: "grid_size"},
		{name: "more tries than the server allows", override: ConfigOverride{MaxPlacementTries: ptr(DefaultMaxPlacementTries + 1)}, expectErr: "max_placement_tries"},
		{name: "negative distance", override: ConfigOverride{BullseyeDistance: ptr(-1.0)}, expectErr: "bullseye_distance"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := test.override.Apply(DefaultConfig())
			require.ErrorIs(t, err, cerr.ErrInvalidConfig)
			assert.Contains(t, err.Error(), test.expectErr)
		})
	}

	// Lowering the placement budget is allowed
	config, err := ConfigOverride{MaxPlacementTries: ptr(50)}.Apply(DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 50, config.MaxPlacementTries)
}
