package battleship

import (
	"math/rand/v2"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

// EnemyShot is the outcome of one enemy shot against the friendly ship.
type EnemyShot struct {
	Coordinates Coordinates `json:"coordinates"`
	Hit         bool        `json:"hit"`
}

// Enemy holds the search state of the AI opponent. The mode is never stored:
// it hunts while no hit is known and targets the neighborhood of known hits
// otherwise.
type Enemy struct {
	gridSize  int
	active    bool
	fired     CellSet
	knownHits CellSet
	rng       *rand.Rand
}

func NewEnemy(gridSize int, rng *rand.Rand) *Enemy {
	return &Enemy{
		gridSize:  gridSize,
		fired:     make(CellSet),
		knownHits: make(CellSet),
		rng:       rng,
	}
}

func (e *Enemy) IsActive() bool {
	return e.active
}

// Activate wakes the enemy up. It returns true only on the call that did it.
func (e *Enemy) Activate() bool {
	if e.active {
		return false
	}
	e.active = true
	return true
}

func (e *Enemy) Fired() []Coordinates {
	return e.fired.Sorted()
}

func (e *Enemy) KnownHits() []Coordinates {
	return e.knownHits.Sorted()
}

func (e *Enemy) HasFiredAt(c Coordinates) bool {
	return e.fired.Has(c)
}

// TargetCandidates is the set of unfired 8-neighbors of every known hit.
// Hits of a sunk ship are never dropped.
func (e *Enemy) TargetCandidates() []Coordinates {
	candidates := make(CellSet)
	for hit := range e.knownHits {
		for _, n := range hit.Neighbors(e.gridSize) {
			if !e.fired.Has(n) {
				candidates.Add(n)
			}
		}
	}
	return candidates.Sorted()
}

func (e *Enemy) huntCandidates() []Coordinates {
	cells := make([]Coordinates, 0, e.gridSize*e.gridSize-len(e.fired))
	for x := 0; x < e.gridSize; x++ {
		for y := 0; y < e.gridSize; y++ {
			c := NewCoordinates(x, y)
			if !e.fired.Has(c) {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

// PickTarget chooses the next cell without firing at it.
func (e *Enemy) PickTarget() (Coordinates, error) {
	if len(e.knownHits) > 0 {
		if candidates := e.TargetCandidates(); len(candidates) > 0 {
			return candidates[e.rng.IntN(len(candidates))], nil
		}
	}

	candidates := e.huntCandidates()
	if len(candidates) == 0 {
		return Coordinates{}, cerr.ErrNoTargetsRemaining
	}
	return candidates[e.rng.IntN(len(candidates))], nil
}

// Fire picks a cell and shoots the defender. Known hits are kept even when the
// shot sinks the defender; the caller checks IsSunk.
func (e *Enemy) Fire(defender *Ship) (EnemyShot, error) {
	target, err := e.PickTarget()
	if err != nil {
		return EnemyShot{}, err
	}

	e.fired.Add(target)
	if defender.RegisterShot(target) {
		e.knownHits.Add(target)
		return EnemyShot{Coordinates: target, Hit: true}, nil
	}
	return EnemyShot{Coordinates: target, Hit: false}, nil
}
