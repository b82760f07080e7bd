package battleship

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

const (
	DefaultGridSize            int     = 11
	DefaultGoalScore           int     = 99
	DefaultBullseyeBonus       int     = 33
	DefaultBullseyeDistance    float64 = 1
	DefaultNearTriggerDistance float64 = 3

	// Upper bounds keep a single game's buffers small.
	MaxGridSize          int = 100
	MaxPlacementTriesCap int = 1_000_000
)

// Config is copied into a game at construction and never changes after.
type Config struct {
	GridSize             int     `json:"grid_size"`
	GoalScore            int     `json:"goal_score"`
	BullseyeBonus        int     `json:"bullseye_bonus"`
	BullseyeDistance     float64 `json:"bullseye_distance"`
	NearTriggerDistance  float64 `json:"near_trigger_distance"`
	MaxPlacementTries    int     `json:"max_placement_tries"`
	TargetAvoidsFriendly bool    `json:"target_avoids_friendly"`
}

func DefaultConfig() Config {
	return Config{
		GridSize:             DefaultGridSize,
		GoalScore:            DefaultGoalScore,
		BullseyeBonus:        DefaultBullseyeBonus,
		BullseyeDistance:     DefaultBullseyeDistance,
		NearTriggerDistance:  DefaultNearTriggerDistance,
		MaxPlacementTries:    DefaultMaxPlacementTries,
		TargetAvoidsFriendly: true,
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var result *multierror.Error

	if c.GridSize < MinGridSize || c.GridSize > MaxGridSize {
		result = multierror.Append(result, cerr.ErrConfigField("grid_size", c.GridSize, fmt.Sprintf("must be between %d and %d", MinGridSize, MaxGridSize)))
	}
	if c.GoalScore <= 0 {
		result = multierror.Append(result, cerr.ErrConfigField("goal_score", c.GoalScore, "must be positive"))
	}
	if c.BullseyeBonus <= 0 {
		result = multierror.Append(result, cerr.ErrConfigField("bullseye_bonus", c.BullseyeBonus, "must be positive"))
	}
	if c.BullseyeDistance < 0 {
		result = multierror.Append(result, cerr.ErrConfigField("bullseye_distance", c.BullseyeDistance, "must not be negative"))
	}
	if c.NearTriggerDistance < 0 {
		result = multierror.Append(result, cerr.ErrConfigField("near_trigger_distance", c.NearTriggerDistance, "must not be negative"))
	}
	if c.MaxPlacementTries <= 0 || c.MaxPlacementTries > MaxPlacementTriesCap {
		result = multierror.Append(result, cerr.ErrConfigField("max_placement_tries", c.MaxPlacementTries, fmt.Sprintf("must be between 1 and %d", MaxPlacementTriesCap)))
	}

	return result.ErrorOrNil()
}

// ConfigOverride is a partial Config sent by a client. Nil fields keep the
// base value, so zero and false can be requested explicitly.
type ConfigOverride struct {
	GridSize             *int     `json:"grid_size,omitempty"`
	GoalScore            *int     `json:"goal_score,omitempty"`
	BullseyeBonus        *int     `json:"bullseye_bonus,omitempty"`
	BullseyeDistance     *float64 `json:"bullseye_distance,omitempty"`
	NearTriggerDistance  *float64 `json:"near_trigger_distance,omitempty"`
	MaxPlacementTries    *int     `json:"max_placement_tries,omitempty"`
	TargetAvoidsFriendly *bool    `json:"target_avoids_friendly,omitempty"`
}

// Apply returns base with every set field of o applied. A client may lower
// the placement budget of base but never raise it. The result is validated.
func (o ConfigOverride) Apply(base Config) (Config, error) {
	c := base
	if o.GridSize != nil {
		c.GridSize = *o.GridSize
	}
	if o.GoalScore != nil {
		c.GoalScore = *o.GoalScore
	}
	if o.BullseyeBonus != nil {
		c.BullseyeBonus = *o.BullseyeBonus
	}
	if o.BullseyeDistance != nil {
		c.BullseyeDistance = *o.BullseyeDistance
	}
	if o.NearTriggerDistance != nil {
		c.NearTriggerDistance = *o.NearTriggerDistance
	}
	if o.MaxPlacementTries != nil {
		c.MaxPlacementTries = *o.MaxPlacementTries
	}
	if o.TargetAvoidsFriendly != nil {
		c.TargetAvoidsFriendly = *o.TargetAvoidsFriendly
	}

	var result *multierror.Error
	if c.MaxPlacementTries > base.MaxPlacementTries {
		result = multierror.Append(result, cerr.ErrConfigField("max_placement_tries", c.MaxPlacementTries, fmt.Sprintf("must not exceed %d", base.MaxPlacementTries)))
	}
	if err := c.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := result.ErrorOrNil(); err != nil {
		return Config{}, err
	}
	return c, nil
}
