package battleship

import (
	"math/rand/v2"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

const DefaultMaxPlacementTries int = 10000

// Placer samples ship positions by reject-and-resample.
type Placer struct {
	rng *rand.Rand
}

func NewPlacer(rng *rand.Rand) *Placer {
	return &Placer{rng: rng}
}

// RandomPivot returns a pivot that leaves room for a full span along the
// orientation axis.
func (p *Placer) RandomPivot(gridSize int, orientation Orientation) Coordinates {
	if orientation == OrientationVertical {
		return NewCoordinates(p.rng.IntN(gridSize), 1+p.rng.IntN(gridSize-2))
	}
	return NewCoordinates(1+p.rng.IntN(gridSize-2), p.rng.IntN(gridSize))
}

// SpawnNonOverlapping places a new ship whose cells avoid forbidden. Both
// orientations are used when orientations is empty.
func (p *Placer) SpawnNonOverlapping(gridSize int, forbidden CellSet, orientations []Orientation, maxTries int) (*Ship, error) {
	if len(orientations) == 0 {
		orientations = AllOrientations
	}
	if maxTries <= 0 {
		maxTries = DefaultMaxPlacementTries
	}
	if gridSize < MinGridSize {
		return nil, cerr.ErrConfigField("grid_size", gridSize, "must be at least 3")
	}

	for range maxTries {
		orientation := orientations[p.rng.IntN(len(orientations))]
		pivot := p.RandomPivot(gridSize, orientation)

		cells, err := Span(gridSize, pivot, orientation)
		if err != nil {
			continue
		}
		if !forbidden.Disjoint(NewCellSet(cells...)) {
			continue
		}

		ship := NewShip(gridSize)
		if err := ship.Place(pivot, orientation); err != nil {
			return nil, err
		}
		return ship, nil
	}

	return nil, cerr.ErrPlacementExhaustedAfter(maxTries)
}

// PlaceMany spawns count ships that overlap neither forbidden nor each other.
// Ships are returned in placement order.
func (p *Placer) PlaceMany(gridSize, count int, forbidden CellSet, orientations []Orientation, maxTries int) ([]*Ship, error) {
	blocked := forbidden.Clone()
	ships := make([]*Ship, 0, count)

	for range count {
		ship, err := p.SpawnNonOverlapping(gridSize, blocked, orientations, maxTries)
		if err != nil {
			return nil, err
		}
		ships = append(ships, ship)
		blocked.Union(ship.cells)
	}
	return ships, nil
}
